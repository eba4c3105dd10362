// Package assets serves the theme stylesheets and card page templates that
// dress rendered pages.
//
// Three loaders implement AssetLoader. EmbeddedLoader carries the built-in
// themes (red, insta, wechat, zhihu, dark) and the card template compiled
// into the binary via go:embed. FilesystemLoader reads a user-supplied
// directory laid out as:
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css       theme stylesheets (e.g., red.css)
//	└── templates/
//	    └── {name}.html      page templates (card.html)
//
// AssetResolver is what the service actually uses: it consults the custom
// directory first and falls back to the embedded set when a name is missing,
// so a user can override one theme without copying the others.
//
// Names are validated before touching the filesystem, and FilesystemLoader
// additionally resolves symlinks and confirms every path stays inside its
// base directory.
package assets
