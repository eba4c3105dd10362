package assets

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateAssetName(t *testing.T) {
	tests := []struct {
		name      string
		assetName string
		wantErr   bool
	}{
		{name: "simple name", assetName: "red", wantErr: false},
		{name: "hyphenated name", assetName: "my-theme", wantErr: false},
		{name: "empty", assetName: "", wantErr: true},
		{name: "forward slash", assetName: "a/b", wantErr: true},
		{name: "backslash", assetName: `a\b`, wantErr: true},
		{name: "dot", assetName: "theme.css", wantErr: true},
		{name: "traversal", assetName: "../secret", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAssetName(tt.assetName)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAssetName(%q) error = %v, wantErr %v", tt.assetName, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrInvalidAssetName) {
				t.Errorf("error = %v, want ErrInvalidAssetName", err)
			}
		})
	}
}

func TestEmbeddedLoaderStyles(t *testing.T) {
	loader := NewEmbeddedLoader()

	for _, theme := range ThemeNames() {
		t.Run(theme, func(t *testing.T) {
			content, err := loader.LoadStyle(theme)
			if err != nil {
				t.Fatalf("LoadStyle(%q) error = %v", theme, err)
			}
			if !strings.Contains(content, ".content") {
				t.Errorf("theme %q does not style the content box", theme)
			}
		})
	}
}

func TestEmbeddedLoaderStyleNotFound(t *testing.T) {
	_, err := NewEmbeddedLoader().LoadStyle("no-such-theme")
	if !errors.Is(err, ErrStyleNotFound) {
		t.Errorf("error = %v, want ErrStyleNotFound", err)
	}
}

func TestEmbeddedLoaderTemplate(t *testing.T) {
	content, err := NewEmbeddedLoader().LoadTemplate("card")
	if err != nil {
		t.Fatalf("LoadTemplate(card) error = %v", err)
	}
	for _, want := range []string{"{{.Content}}", "{{.Width}}", "{{.CSS}}"} {
		if !strings.Contains(content, want) {
			t.Errorf("card template missing %q", want)
		}
	}

	_, err = NewEmbeddedLoader().LoadTemplate("missing")
	if !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("error = %v, want ErrTemplateNotFound", err)
	}
}

func TestEmbeddedLoaderRejectsTraversal(t *testing.T) {
	_, err := NewEmbeddedLoader().LoadStyle("../templates/card")
	if !errors.Is(err, ErrInvalidAssetName) {
		t.Errorf("error = %v, want ErrInvalidAssetName", err)
	}
}

func TestDefaultThemeIsBuiltIn(t *testing.T) {
	found := false
	for _, name := range ThemeNames() {
		if name == DefaultThemeName {
			found = true
		}
	}
	if !found {
		t.Errorf("default theme %q not in ThemeNames()", DefaultThemeName)
	}
	if _, err := LoadStyle(DefaultThemeName); err != nil {
		t.Errorf("LoadStyle(default) error = %v", err)
	}
}

// ---------------------------------------------------------------------------
// Filesystem loader
// ---------------------------------------------------------------------------

// setupAssetDir builds a minimal custom asset directory.
func setupAssetDir(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	for dir, file := range map[string]string{
		"styles":    "custom.css",
		"templates": "card.html",
	} {
		if err := os.MkdirAll(filepath.Join(base, dir), 0o750); err != nil {
			t.Fatal(err)
		}
		content := "content of " + file
		if err := os.WriteFile(filepath.Join(base, dir, file), []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return base
}

func TestNewFilesystemLoader(t *testing.T) {
	t.Run("valid directory", func(t *testing.T) {
		if _, err := NewFilesystemLoader(setupAssetDir(t)); err != nil {
			t.Errorf("NewFilesystemLoader() error = %v", err)
		}
	})

	t.Run("empty path", func(t *testing.T) {
		_, err := NewFilesystemLoader("")
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("error = %v, want ErrInvalidBasePath", err)
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := NewFilesystemLoader(filepath.Join(t.TempDir(), "nope"))
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("error = %v, want ErrInvalidBasePath", err)
		}
	})

	t.Run("file instead of directory", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "f")
		if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
			t.Fatal(err)
		}
		_, err := NewFilesystemLoader(file)
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func TestFilesystemLoaderLoadStyle(t *testing.T) {
	loader, err := NewFilesystemLoader(setupAssetDir(t))
	if err != nil {
		t.Fatal(err)
	}

	content, err := loader.LoadStyle("custom")
	if err != nil {
		t.Fatalf("LoadStyle(custom) error = %v", err)
	}
	if content != "content of custom.css" {
		t.Errorf("content = %q", content)
	}

	_, err = loader.LoadStyle("absent")
	if !errors.Is(err, ErrStyleNotFound) {
		t.Errorf("error = %v, want ErrStyleNotFound", err)
	}
}

func TestFilesystemLoaderLoadTemplate(t *testing.T) {
	loader, err := NewFilesystemLoader(setupAssetDir(t))
	if err != nil {
		t.Fatal(err)
	}

	content, err := loader.LoadTemplate("card")
	if err != nil {
		t.Fatalf("LoadTemplate(card) error = %v", err)
	}
	if content != "content of card.html" {
		t.Errorf("content = %q", content)
	}
}

func TestFilesystemLoaderRejectsInvalidNames(t *testing.T) {
	loader, err := NewFilesystemLoader(setupAssetDir(t))
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"", "a/b", "..", "theme.css"} {
		if _, err := loader.LoadStyle(name); !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("LoadStyle(%q) error = %v, want ErrInvalidAssetName", name, err)
		}
	}
}

// ---------------------------------------------------------------------------
// Resolver
// ---------------------------------------------------------------------------

func TestAssetResolverEmbeddedOnly(t *testing.T) {
	resolver, err := NewAssetResolver("")
	if err != nil {
		t.Fatal(err)
	}
	if resolver.HasCustomLoader() {
		t.Error("resolver should not report a custom loader")
	}
	if _, err := resolver.LoadStyle(DefaultThemeName); err != nil {
		t.Errorf("LoadStyle(default) error = %v", err)
	}
}

func TestAssetResolverCustomFirst(t *testing.T) {
	base := setupAssetDir(t)
	// Shadow a built-in theme with a custom file of the same name.
	shadow := filepath.Join(base, "styles", DefaultThemeName+".css")
	if err := os.WriteFile(shadow, []byte("shadowed"), 0o600); err != nil {
		t.Fatal(err)
	}

	resolver, err := NewAssetResolver(base)
	if err != nil {
		t.Fatal(err)
	}
	if !resolver.HasCustomLoader() {
		t.Fatal("resolver should report a custom loader")
	}

	content, err := resolver.LoadStyle(DefaultThemeName)
	if err != nil {
		t.Fatalf("LoadStyle() error = %v", err)
	}
	if content != "shadowed" {
		t.Errorf("content = %q, want custom file to win", content)
	}
}

func TestAssetResolverFallsBackToEmbedded(t *testing.T) {
	resolver, err := NewAssetResolver(setupAssetDir(t))
	if err != nil {
		t.Fatal(err)
	}

	// "wechat" exists only in the embedded set.
	content, err := resolver.LoadStyle("wechat")
	if err != nil {
		t.Fatalf("LoadStyle(wechat) error = %v", err)
	}
	if content == "" {
		t.Error("embedded fallback returned empty content")
	}
}

func TestAssetResolverNotFoundInBoth(t *testing.T) {
	resolver, err := NewAssetResolver(setupAssetDir(t))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := resolver.LoadStyle("nowhere"); !errors.Is(err, ErrStyleNotFound) {
		t.Errorf("error = %v, want ErrStyleNotFound", err)
	}
}

func TestAssetResolverDoesNotMaskValidationErrors(t *testing.T) {
	resolver, err := NewAssetResolver(setupAssetDir(t))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := resolver.LoadStyle("../escape"); !errors.Is(err, ErrInvalidAssetName) {
		t.Errorf("error = %v, want ErrInvalidAssetName", err)
	}
}

func TestAssetResolverInvalidBasePath(t *testing.T) {
	if _, err := NewAssetResolver(filepath.Join(t.TempDir(), "missing")); !errors.Is(err, ErrInvalidBasePath) {
		t.Errorf("error = %v, want ErrInvalidBasePath", err)
	}
}
