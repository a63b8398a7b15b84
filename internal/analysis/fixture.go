package analysis

import "github.com/ZanzyTHEbar/resume-match-analyzer/internal/report"

// FixtureProducer ignores its inputs and always returns the same sample report.
// It backs demos and the sample endpoint; KeywordProducer is the real analyzer.
type FixtureProducer struct{}

func (FixtureProducer) Produce(_, _ string) report.MatchReport {
	return *SampleReport()
}

// SampleReport returns a fresh copy of the fixed sample report.
func SampleReport() *report.MatchReport {
	return &report.MatchReport{
		Score:    78,
		Decision: "Strong Fit (Student-level)",
		Radar: report.Radar{
			Skills:     22,
			Experience: 17,
			Education:  9,
			Keyword:    15,
			Impact:     15,
		},
		Why: []string{
			"Meets degree + core language expectations (Java/C/Python).",
			"Early software experience (mentorship + web projects).",
			"Missing explicit OS/complexity keywords and distributed systems terms.",
		},
		MissingQualifications: []report.Qualification{
			{Text: "Operating Systems (explicit)", Severity: report.SeverityHard, Penalty: 6},
			{Text: "Complexity analysis / Big-O (explicit)", Severity: report.SeverityHard, Penalty: 6},
			{Text: "Distributed systems / microservices exposure", Severity: report.SeveritySoft, Penalty: 4},
			{Text: "Relational databases (SQL)", Severity: report.SeveritySoft, Penalty: 3},
		},
		Keywords: report.Keywords{
			Matched: []string{"Java", "C", "Python", "React", "API", "Git"},
			Missing: []string{"AWS", "microservices", "scalability", "fault-tolerant", "monitoring", "SQL"},
		},
	}
}
