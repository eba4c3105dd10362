// Package hints appends short actionable suggestions to error messages.
// Every hint renders as "\n  hint: <text>" so callers can concatenate it
// directly onto an error string.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-md2card/internal/fileutil"
)

// ciEnvVars mark a CI run when any of them is set.
var ciEnvVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"}

// IsInContainer reports whether the process runs inside Docker, detected by
// the /.dockerenv marker. A variable so tests can override detection.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

func inCI() bool {
	for _, v := range ciEnvVars {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// ForBrowserConnect suggests the rod environment variables most likely to
// fix a failed Chrome launch in the current environment.
func ForBrowserConnect() string {
	var suggestions []string
	if (inCI() || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		suggestions = append(suggestions, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		suggestions = append(suggestions, "set ROD_BROWSER_BIN to use custom Chrome")
	}
	return render(strings.Join(suggestions, "; "))
}

// ForTimeout points at the --timeout flag for slow renders.
func ForTimeout() string {
	return render("for large documents, use --timeout flag")
}

// ForConfigNotFound suggests --config and, when a user config location was
// among the searched paths, creating a file there.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-md2card") {
			hint += " or create " + p
			break
		}
	}
	return render(hint)
}

// ForOutputDirectory covers mkdir failures on the card output directory.
func ForOutputDirectory() string {
	return render("check parent directory exists and is writable")
}

// ForThemeNotFound lists the built-in themes the user can pick instead.
func ForThemeNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return render("available: " + strings.Join(available, ", "))
}

func render(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
