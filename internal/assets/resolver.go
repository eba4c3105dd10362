package assets

import "errors"

// AssetResolver layers a custom directory over the embedded assets. Lookups
// hit the custom loader first and fall back to embedded only when the asset
// is absent there, so users can override a single theme without copying the
// rest.
type AssetResolver struct {
	custom   AssetLoader // nil when no custom path is configured
	embedded AssetLoader
}

// NewAssetResolver builds a resolver. An empty customBasePath yields an
// embedded-only resolver; a non-empty path must be a readable directory.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	r := &AssetResolver{embedded: NewEmbeddedLoader()}
	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		r.custom = fsLoader
	}
	return r, nil
}

func (r *AssetResolver) LoadStyle(name string) (string, error) {
	if r.custom != nil {
		content, err := r.custom.LoadStyle(name)
		// Validation and I/O errors surface as-is; only a missing style
		// falls through to the embedded set.
		if err == nil || !errors.Is(err, ErrStyleNotFound) {
			return content, err
		}
	}
	return r.embedded.LoadStyle(name)
}

func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	if r.custom != nil {
		content, err := r.custom.LoadTemplate(name)
		if err == nil || !errors.Is(err, ErrTemplateNotFound) {
			return content, err
		}
	}
	return r.embedded.LoadTemplate(name)
}

// HasCustomLoader reports whether a custom asset directory is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}

var _ AssetLoader = (*AssetResolver)(nil)
