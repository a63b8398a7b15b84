package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/ZanzyTHEbar/resume-match-analyzer/internal/state"
)

//go:embed templates/page.html.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html.tmpl"))

// AIActions are shown as disabled placeholders next to the results.
var AIActions = []string{
	"Explain score",
	"Generate talking points",
	"Rewrite bullets",
	"Suggest keyword phrasing",
	"Cover-letter paragraph",
}

// Page is everything needed to render the analyzer page.
type Page struct {
	State state.State
	Nonce string
	Error string
}

type pageData struct {
	State       state.State
	Theme       state.Theme
	Tokens      Tokens
	ToggleLabel string
	Nonce       string
	Error       string
	ReportToken string
	CanAnalyze  bool
	ResumeChars int
	JobChars    int
	View        *View
	AIActions   []string
}

func newPageData(p Page) (pageData, error) {
	token, err := state.EncodeReport(p.State.Report)
	if err != nil {
		return pageData{}, err
	}

	theme := state.ParseTheme(string(p.State.Theme))
	toggle := "Light mode"
	if theme == state.ThemeLight {
		toggle = "Dark mode"
	}

	return pageData{
		State:       p.State,
		Theme:       theme,
		Tokens:      ThemeTokens(theme),
		ToggleLabel: toggle,
		Nonce:       p.Nonce,
		Error:       p.Error,
		ReportToken: token,
		CanAnalyze:  p.State.CanAnalyze(),
		ResumeChars: p.State.ResumeChars(),
		JobChars:    p.State.JobChars(),
		View:        NewView(p.State.Report),
		AIActions:   AIActions,
	}, nil
}

// HTML renders the full page. Output depends only on p, so rendering the
// same page twice yields identical bytes.
func HTML(w io.Writer, p Page) error {
	data, err := newPageData(p)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}
	_, err = buf.WriteTo(w)
	return err
}
