package state

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ZanzyTHEbar/resume-match-analyzer/internal/analysis"
	"github.com/ZanzyTHEbar/resume-match-analyzer/internal/report"
)

// Theme is the page display mode. It affects styling only.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// ParseTheme maps unknown or empty values to the dark default.
func ParseTheme(s string) Theme {
	if Theme(strings.ToLower(strings.TrimSpace(s))) == ThemeLight {
		return ThemeLight
	}
	return ThemeDark
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// State is everything the page shows: the two pasted texts, the report
// currently displayed (nil before the first analysis) and the theme.
type State struct {
	ResumeText string              `json:"resumeText"`
	JobText    string              `json:"jobText"`
	Report     *report.MatchReport `json:"report,omitempty"`
	Theme      Theme               `json:"theme"`
}

// New returns the initial state: empty inputs, no report, dark theme.
func New() State {
	return State{Theme: ThemeDark}
}

// CanAnalyze reports whether both inputs contain non-whitespace text.
func (s State) CanAnalyze() bool {
	return strings.TrimSpace(s.ResumeText) != "" && strings.TrimSpace(s.JobText) != ""
}

func (s State) SetResumeText(text string) State {
	s.ResumeText = text
	return s
}

func (s State) SetJobText(text string) State {
	s.JobText = text
	return s
}

// RunAnalysis replaces the report with the producer's output. When the
// inputs are not ready the state is returned unchanged.
func (s State) RunAnalysis(p analysis.Producer) State {
	if !s.CanAnalyze() {
		return s
	}
	r := p.Produce(s.ResumeText, s.JobText)
	s.Report = &r
	return s
}

// ToggleTheme flips the theme and leaves the report untouched.
func (s State) ToggleTheme() State {
	s.Theme = s.Theme.Toggle()
	return s
}

func (s State) WithTheme(t Theme) State {
	s.Theme = ParseTheme(string(t))
	return s
}

// ResumeChars is the character count shown under the inputs.
func (s State) ResumeChars() int {
	return utf8.RuneCountInString(s.ResumeText)
}

func (s State) JobChars() int {
	return utf8.RuneCountInString(s.JobText)
}

// EncodeReport serializes a report into an opaque URL-safe token.
// A nil report encodes to the empty string.
func EncodeReport(r *report.MatchReport) (string, error) {
	if r == nil {
		return "", nil
	}
	data, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// DecodeReport parses a token produced by EncodeReport. The empty token
// decodes to nil; tokens carrying an invalid report are rejected.
func DecodeReport(token string) (*report.MatchReport, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, nil
	}
	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("malformed report token: %w", err)
	}
	var r report.MatchReport
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("malformed report token: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("invalid report token: %w", err)
	}
	return &r, nil
}
