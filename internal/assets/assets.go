package assets

var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a built-in theme stylesheet by bare name (no .css
// extension, no path). Returns ErrStyleNotFound for unknown themes.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// LoadTemplate loads a built-in page template by bare name (no .html
// extension, no path). Returns ErrTemplateNotFound for unknown templates.
func LoadTemplate(name string) (string, error) {
	return defaultLoader.LoadTemplate(name)
}
