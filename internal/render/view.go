package render

import (
	"github.com/ZanzyTHEbar/resume-match-analyzer/internal/report"
)

// View is a report prepared for display. Building it never touches the report.
type View struct {
	Score           int
	MaxScore        int
	Decision        string
	Why             []string
	Bars            []Bar
	Missing         []QualificationView
	MatchedKeywords []string
	MissingKeywords []string
}

// Bar is one radar category, capped to its bound.
type Bar struct {
	Label   string
	Value   int
	Max     int
	Percent int
}

// QualificationView is a missing qualification with its display penalty.
type QualificationView struct {
	Text     string
	Hard     bool
	Severity string
	Penalty  int
}

// NewView builds the display model. A nil report yields a nil view, which
// suppresses the results section entirely.
func NewView(r *report.MatchReport) *View {
	if r == nil {
		return nil
	}

	v := &View{
		Score:           report.Clamp(r.Score, 0, report.MaxScore),
		MaxScore:        report.MaxScore,
		Decision:        r.Decision,
		Why:             append([]string(nil), r.Why...),
		MatchedKeywords: append([]string(nil), r.Keywords.Matched...),
		MissingKeywords: append([]string(nil), r.Keywords.Missing...),
	}

	for _, axis := range r.Radar.Axes() {
		value := report.Clamp(axis.Value, 0, axis.Max)
		v.Bars = append(v.Bars, Bar{
			Label:   axis.Label,
			Value:   value,
			Max:     axis.Max,
			Percent: value * 100 / axis.Max,
		})
	}

	for _, q := range r.MissingQualifications {
		qv := QualificationView{
			Text:     q.Text,
			Hard:     q.Severity == report.SeverityHard,
			Severity: "Soft",
			Penalty:  report.ClampPenalty(q.Penalty),
		}
		if qv.Hard {
			qv.Severity = "Hard"
		}
		v.Missing = append(v.Missing, qv)
	}

	return v
}
