package report

import (
	"errors"
	"fmt"
	"strings"
)

// Severity marks a missing qualification as strictly required or preferred.
type Severity string

const (
	SeverityHard Severity = "hard"
	SeveritySoft Severity = "soft"
)

// Per-category radar bounds.
const (
	MaxSkills     = 25
	MaxExperience = 25
	MaxEducation  = 10
	MaxKeyword    = 20
	MaxImpact     = 20

	MaxScore          = 100
	MaxPenaltyDisplay = 20
)

// Radar holds the five bounded category scores.
type Radar struct {
	Skills     int `json:"skills"`
	Experience int `json:"experience"`
	Education  int `json:"education"`
	Keyword    int `json:"keyword"`
	Impact     int `json:"impact"`
}

// Sum returns the total of all sub-scores.
func (r Radar) Sum() int {
	return r.Skills + r.Experience + r.Education + r.Keyword + r.Impact
}

// Axis is a single named radar category with its bound.
type Axis struct {
	Key   string
	Label string
	Value int
	Max   int
}

// Axes returns the categories in display order.
func (r Radar) Axes() []Axis {
	return []Axis{
		{Key: "skills", Label: "Skills", Value: r.Skills, Max: MaxSkills},
		{Key: "experience", Label: "Experience", Value: r.Experience, Max: MaxExperience},
		{Key: "education", Label: "Education", Value: r.Education, Max: MaxEducation},
		{Key: "keyword", Label: "Keywords", Value: r.Keyword, Max: MaxKeyword},
		{Key: "impact", Label: "Impact", Value: r.Impact, Max: MaxImpact},
	}
}

// Qualification is a requirement from the job description the resume does not show.
type Qualification struct {
	Text     string   `json:"text"`
	Severity Severity `json:"severity"`
	Penalty  int      `json:"penalty"`
}

// Keywords splits job terms by whether the resume covers them.
type Keywords struct {
	Matched []string `json:"matched"`
	Missing []string `json:"missing"`
}

// MatchReport is the result of comparing one resume against one job description.
type MatchReport struct {
	Score                 int             `json:"score"`
	Decision              string          `json:"decision"`
	Radar                 Radar           `json:"radar"`
	Why                   []string        `json:"why"`
	MissingQualifications []Qualification `json:"missingQualifications"`
	Keywords              Keywords        `json:"keywords"`
}

// Validate reports every invariant violation found in the report.
func (r *MatchReport) Validate() error {
	if r == nil {
		return errors.New("report is nil")
	}

	var errs []error
	if r.Score < 0 || r.Score > MaxScore {
		errs = append(errs, fmt.Errorf("score %d outside [0, %d]", r.Score, MaxScore))
	}
	for _, axis := range r.Radar.Axes() {
		if axis.Value < 0 || axis.Value > axis.Max {
			errs = append(errs, fmt.Errorf("radar %s %d outside [0, %d]", axis.Key, axis.Value, axis.Max))
		}
	}
	for i, q := range r.MissingQualifications {
		if q.Penalty < 0 {
			errs = append(errs, fmt.Errorf("missing qualification %d has negative penalty %d", i, q.Penalty))
		}
		if q.Severity != SeverityHard && q.Severity != SeveritySoft {
			errs = append(errs, fmt.Errorf("missing qualification %d has unknown severity %q", i, q.Severity))
		}
	}
	if overlap := r.Keywords.Overlap(); len(overlap) > 0 {
		errs = append(errs, fmt.Errorf("keywords both matched and missing: %s", strings.Join(overlap, ", ")))
	}

	return errors.Join(errs...)
}

// Consistent reports whether the radar sub-scores add up to the overall score.
func (r *MatchReport) Consistent() bool {
	return r != nil && r.Radar.Sum() == r.Score
}

// Overlap returns terms present in both groups, compared case-insensitively.
func (k Keywords) Overlap() []string {
	seen := make(map[string]struct{}, len(k.Matched))
	for _, term := range k.Matched {
		seen[strings.ToLower(term)] = struct{}{}
	}

	var overlap []string
	for _, term := range k.Missing {
		if _, ok := seen[strings.ToLower(term)]; ok {
			overlap = append(overlap, term)
		}
	}
	return overlap
}

// Clone returns a deep copy of the report.
func (r *MatchReport) Clone() *MatchReport {
	if r == nil {
		return nil
	}
	cp := *r
	cp.Why = append([]string(nil), r.Why...)
	cp.MissingQualifications = append([]Qualification(nil), r.MissingQualifications...)
	cp.Keywords = Keywords{
		Matched: append([]string(nil), r.Keywords.Matched...),
		Missing: append([]string(nil), r.Keywords.Missing...),
	}
	return &cp
}

// ClampPenalty bounds a penalty to the displayable range.
func ClampPenalty(p int) int {
	return Clamp(p, 0, MaxPenaltyDisplay)
}

// Clamp bounds n to [lo, hi].
func Clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
