package render

import (
	"html/template"

	"github.com/ZanzyTHEbar/resume-match-analyzer/internal/state"
)

// Tokens are the colors of one theme, kept in one place so the template
// only refers to CSS variables.
type Tokens struct {
	PageBg      template.CSS
	CardBg      template.CSS
	PanelBg     template.CSS
	InputBg     template.CSS
	Border      template.CSS
	Text        template.CSS
	TextMuted   template.CSS
	Accent      template.CSS
	AccentHover template.CSS
	DangerBg    template.CSS
	DangerText  template.CSS
	WarnBg      template.CSS
	WarnText    template.CSS
}

var themes = map[state.Theme]Tokens{
	state.ThemeDark: {
		PageBg:      "#1F1F1F",
		CardBg:      "#2A2A2A",
		PanelBg:     "#2F2F2F",
		InputBg:     "#333333",
		Border:      "#3D3D3D",
		Text:        "#E5E5E5",
		TextMuted:   "#A3A3A3",
		Accent:      "#4F7CAC",
		AccentHover: "#5F8FC4",
		DangerBg:    "#3A1E1E",
		DangerText:  "#FCA5A5",
		WarnBg:      "#3A3218",
		WarnText:    "#FCD34D",
	},
	state.ThemeLight: {
		PageBg:      "#F6F7F9",
		CardBg:      "#FFFFFF",
		PanelBg:     "#F2F4F7",
		InputBg:     "#FFFFFF",
		Border:      "#D0D5DD",
		Text:        "#111827",
		TextMuted:   "#667085",
		Accent:      "#2563EB",
		AccentHover: "#1D4ED8",
		DangerBg:    "#FEE2E2",
		DangerText:  "#991B1B",
		WarnBg:      "#FEF3C7",
		WarnText:    "#92400E",
	},
}

// ThemeTokens returns the colors for a theme, dark for unknown values.
func ThemeTokens(t state.Theme) Tokens {
	if tokens, ok := themes[t]; ok {
		return tokens
	}
	return themes[state.ThemeDark]
}
