package assets

import (
	"fmt"
	"strings"
)

// AssetLoader defines the contract for loading theme stylesheets and HTML
// templates. Implementations may load from embedded assets, filesystem, etc.
type AssetLoader interface {
	// LoadStyle loads a theme stylesheet by name (without .css extension).
	// Returns ErrStyleNotFound if the theme doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)

	// LoadTemplate loads an HTML template by name (without .html extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadTemplate(name string) (string, error)
}

// DefaultThemeName is the built-in theme used when none is requested.
const DefaultThemeName = "red"

// ThemeNames lists the built-in themes in display order.
func ThemeNames() []string {
	return []string{"red", "insta", "wechat", "zhihu", "dark"}
}

// ValidateAssetName rejects names that could reach outside the asset
// directories. Dots are banned outright so a name can never smuggle an
// extension or a traversal sequence into the file path.
func ValidateAssetName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	case strings.ContainsAny(name, "/\\."):
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
