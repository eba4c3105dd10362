package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/alnah/go-md2card/internal/assets"
)

// ErrCardRender indicates the card template failed to render.
var ErrCardRender = errors.New("card template rendering failed")

// CardData holds everything the card template needs for one page.
type CardData struct {
	// Geometry from the active preset, in pixels.
	Width         int
	Height        int
	PaddingTop    int
	PaddingBottom int
	PaddingSides  int

	// ThemeCSS is the theme stylesheet, UserCSS any caller additions.
	ThemeCSS string
	UserCSS  string

	// Watermark is the small caption in the card's corner; Footer an
	// optional line under the content (date, handle, tag line).
	Watermark string
	Footer    string

	// PageNumber and PageCount position this card in the sequence.
	PageNumber int
	PageCount  int
}

// CardWrapper wraps one page fragment into a complete card document.
type CardWrapper interface {
	WrapPage(ctx context.Context, pageHTML string, data *CardData) (string, error)
}

// templateData is what the template actually executes against; CSS and
// content are pre-sanitized and marked safe here, in one place.
type templateData struct {
	CardData
	CSS     template.CSS
	Content template.HTML
}

// CardWrapping renders page fragments through the card HTML template.
type CardWrapping struct {
	tmpl *template.Template
}

// NewCardWrapping creates a CardWrapping with the embedded card template.
// Panics if the template cannot be loaded or parsed (programmer error).
func NewCardWrapping() *CardWrapping {
	tmplContent, err := assets.LoadTemplate("card")
	if err != nil {
		panic("failed to load card template: " + err.Error())
	}

	tmpl, err := template.New("card").Parse(tmplContent)
	if err != nil {
		panic("failed to parse card template: " + err.Error())
	}

	return &CardWrapping{tmpl: tmpl}
}

// WrapPage renders the full card document for one page fragment.
// An empty fragment is a valid blank page and renders an empty content box.
func (w *CardWrapping) WrapPage(ctx context.Context, pageHTML string, data *CardData) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if data == nil {
		data = &CardData{}
	}

	td := templateData{
		CardData: *data,
		CSS:      template.CSS(SanitizeCSS(data.ThemeCSS + "\n" + data.UserCSS)),
		// The fragment is the classifier's own re-emitted markup; escaping
		// it here would corrupt the content.
		Content: template.HTML(pageHTML), // #nosec G203 -- markup round-trips from the classifier
	}

	var buf bytes.Buffer
	if err := w.tmpl.Execute(&buf, td); err != nil {
		return "", fmt.Errorf("%w: %v", ErrCardRender, err)
	}
	return buf.String(), nil
}

// SanitizeCSS escapes sequences that could break out of a <style> block.
func SanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
