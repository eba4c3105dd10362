package assets

import (
	"embed"
	"fmt"
)

//go:embed styles templates
var builtin embed.FS

// EmbeddedLoader serves the built-in themes and the card template compiled
// into the binary.
type EmbeddedLoader struct{}

func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

func (*EmbeddedLoader) LoadStyle(name string) (string, error) {
	return readBuiltin(name, "styles/"+name+".css", ErrStyleNotFound)
}

func (*EmbeddedLoader) LoadTemplate(name string) (string, error) {
	return readBuiltin(name, "templates/"+name+".html", ErrTemplateNotFound)
}

func readBuiltin(name, path string, notFound error) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	content, err := builtin.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %q", notFound, name)
	}
	return string(content), nil
}

var _ AssetLoader = (*EmbeddedLoader)(nil)
