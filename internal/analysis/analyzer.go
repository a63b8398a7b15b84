package analysis

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/resume-match-analyzer/internal/report"
)

// KeywordProducer scores a resume against a job description from the terms,
// requirements and signals it can find in both texts.
type KeywordProducer struct {
	lexicon       *Lexicon
	referenceYear int
}

// NewKeywordProducer creates a producer. referenceYear resolves open-ended
// date ranges such as "2022 - present"; zero means the current year.
func NewKeywordProducer(lexicon *Lexicon, referenceYear int) *KeywordProducer {
	if lexicon == nil {
		lexicon = DefaultLexicon()
	}
	lexicon.compile()
	if referenceYear <= 0 {
		referenceYear = time.Now().Year()
	}
	return &KeywordProducer{lexicon: lexicon, referenceYear: referenceYear}
}

// Produce implements Producer.
func (p *KeywordProducer) Produce(resumeText, jobText string) report.MatchReport {
	resume := ParseDocument(resumeText)
	job := ParseDocument(jobText)
	ev := p.gather(resume, job, resumeText)

	radar := scoreRadar(ev)
	r := report.MatchReport{
		Score: radar.Sum(),
		Radar: radar,
	}
	r.Decision = report.DecisionFor(r.Score)
	r.Keywords = ev.keywords()
	r.MissingQualifications = ev.missingQualifications(radar)
	r.Why = ev.rationale()

	return r
}

func (p *KeywordProducer) gather(resume, job *Document, resumeText string) *evidence {
	ev := &evidence{}

	inResume := make(map[int]bool)
	for _, s := range resume.Sentences {
		for _, h := range p.lexicon.match(s) {
			inResume[h.term] = true
		}
	}

	index := make(map[int]int)
	for _, s := range job.Sentences {
		hits := p.lexicon.match(s)
		sort.Slice(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })
		for _, h := range hits {
			if i, ok := index[h.term]; ok {
				if s.Severity == report.SeverityHard {
					ev.terms[i].Severity = report.SeverityHard
				}
				continue
			}
			index[h.term] = len(ev.terms)
			ev.terms = append(ev.terms, jobTerm{
				Name:     p.lexicon.Terms[h.term].Name,
				Severity: s.Severity,
				Matched:  inResume[h.term],
			})
		}
	}

	ev.requiredYears, ev.yearsSeverity = RequiredYears(job)
	ev.resumeYears = ResumeYears(resumeText, p.referenceYear)
	ev.markers = ExperienceMarkers(resume)

	ev.requiredDegree, ev.degreeSeverity = RequiredDegree(job)
	ev.heldDegree = DegreeIn(resumeText, true)

	jobWords := ContentWords(job)
	resumeWords := make(map[string]bool)
	for _, w := range ContentWords(resume) {
		resumeWords[w] = true
	}
	ev.jobWords = len(jobWords)
	for _, w := range jobWords {
		if resumeWords[w] {
			ev.coveredWords++
		}
	}

	ev.verbs, ev.metrics = ImpactSignals(resume)

	return ev
}

// keywords splits job terms in job order. Each term lands in exactly one group.
func (e *evidence) keywords() report.Keywords {
	k := report.Keywords{Matched: []string{}, Missing: []string{}}
	for _, t := range e.terms {
		if t.Matched {
			k.Matched = append(k.Matched, t.Name)
		} else {
			k.Missing = append(k.Missing, t.Name)
		}
	}
	return k
}

func (e *evidence) missingQualifications(radar report.Radar) []report.Qualification {
	quals := []report.Qualification{}

	if e.requiredDegree > DegreeNone && e.heldDegree < e.requiredDegree {
		quals = append(quals, report.Qualification{
			Text:     fmt.Sprintf("%s degree", e.requiredDegree),
			Severity: e.degreeSeverity,
			Penalty:  report.MaxEducation - radar.Education,
		})
	}
	if e.requiredYears > 0 && e.resumeYears < float64(e.requiredYears) {
		lost := points((1-e.yearsRatio())*0.75, report.MaxExperience)
		if lost < 1 {
			lost = 1
		}
		quals = append(quals, report.Qualification{
			Text:     fmt.Sprintf("%d+ years of experience", e.requiredYears),
			Severity: e.yearsSeverity,
			Penalty:  lost,
		})
	}
	for _, t := range e.terms {
		if t.Matched {
			continue
		}
		quals = append(quals, report.Qualification{
			Text:     t.Name,
			Severity: t.Severity,
			Penalty:  e.termPenalty(t),
		})
	}

	sort.SliceStable(quals, func(i, j int) bool {
		return quals[i].Severity == report.SeverityHard && quals[j].Severity != report.SeverityHard
	})
	return quals
}

func (e *evidence) rationale() []string {
	var why []string

	var matched, hardMissing []string
	for _, t := range e.terms {
		switch {
		case t.Matched:
			matched = append(matched, t.Name)
		case t.Severity == report.SeverityHard:
			hardMissing = append(hardMissing, t.Name)
		}
	}

	switch {
	case len(e.terms) == 0:
		why = append(why, "No recognizable technical terms in the job description; skills scored neutrally.")
	case len(matched) == 0:
		why = append(why, fmt.Sprintf("None of the %d job terms appear in the resume.", len(e.terms)))
	default:
		why = append(why, fmt.Sprintf("Covers %d of %d job terms (%s).", len(matched), len(e.terms), summarize(matched, 4)))
	}

	switch {
	case e.requiredYears > 0 && e.resumeYears >= float64(e.requiredYears):
		why = append(why, fmt.Sprintf("Shows %s of experience against %d+ required.", formatYears(e.resumeYears), e.requiredYears))
	case e.requiredYears > 0:
		why = append(why, fmt.Sprintf("Shows %s of experience; the role asks for %d+.", formatYears(e.resumeYears), e.requiredYears))
	default:
		why = append(why, fmt.Sprintf("No explicit years requirement; %d experience signals found.", e.markers))
	}

	switch {
	case e.requiredDegree == DegreeNone && e.heldDegree > DegreeNone:
		why = append(why, fmt.Sprintf("No degree requirement stated; resume lists a %s degree.", e.heldDegree))
	case e.requiredDegree == DegreeNone:
		why = append(why, "No degree requirement stated.")
	case e.heldDegree >= e.requiredDegree:
		why = append(why, fmt.Sprintf("Meets the %s degree expectation.", e.requiredDegree))
	default:
		why = append(why, fmt.Sprintf("Below the %s degree expectation.", e.requiredDegree))
	}

	if len(hardMissing) > 0 {
		why = append(why, fmt.Sprintf("Missing hard requirements: %s.", summarize(hardMissing, 5)))
	}

	why = append(why, fmt.Sprintf("%d action verbs and %d quantified results support impact.", e.verbs, e.metrics))

	return why
}

func summarize(items []string, limit int) string {
	if len(items) <= limit {
		return strings.Join(items, ", ")
	}
	return fmt.Sprintf("%s, +%d more", strings.Join(items[:limit], ", "), len(items)-limit)
}

func formatYears(y float64) string {
	if y == 1 {
		return "1 year"
	}
	return fmt.Sprintf("%.0f years", y)
}
