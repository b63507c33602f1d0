package services

import (
	"bytes"
	"embed"
	"text/template"

	"atelierapi/languageutil"
	"atelierapi/models"

	"github.com/getsentry/sentry-go"
)

//go:embed templates
var embededTemplates embed.FS

const (
	defaultGradientTop    = "#1a1a2e"
	defaultGradientBottom = "#16213e"
	placeholderCaption    = "Demo preview. Live image generation was not available for this design."
)

// PlaceholderService renders the last-resort vector image locally. No
// network, no failure modes: malformed input is rejected upstream by the
// PreferenceSet factory.
type PlaceholderService struct {
	tmpl *template.Template
}

func NewPlaceholderService() *PlaceholderService {
	return &PlaceholderService{
		tmpl: template.Must(template.ParseFS(embededTemplates, "templates/*.tmpl")),
	}
}

type placeholderData struct {
	TopColor      string
	BottomColor   string
	StyleLabel    string
	OccasionLabel string
	GenderLabel   string
	Caption       string
}

// RenderPlaceholder draws a two-color gradient from the first two requested
// colors and overlays the preference labels. Byte-for-byte identical for
// equal preference sets.
func (s *PlaceholderService) RenderPlaceholder(prefs *models.PreferenceSet) []byte {
	top, bottom := defaultGradientTop, defaultGradientBottom
	if len(prefs.Colors) > 0 {
		top = prefs.Colors[0]
		bottom = top
	}
	if len(prefs.Colors) > 1 {
		bottom = prefs.Colors[1]
	}

	data := placeholderData{
		TopColor:      top,
		BottomColor:   bottom,
		StyleLabel:    languageutil.Label(prefs.Style),
		OccasionLabel: languageutil.Label(prefs.Occasion),
		GenderLabel:   languageutil.Label(prefs.Gender),
		Caption:       placeholderCaption,
	}

	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, "placeholder.svg.tmpl", data); err != nil {
		// Parsed template over plain strings, this should never fire.
		sentry.CaptureException(err)
	}
	return buf.Bytes()
}
