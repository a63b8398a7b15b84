package analysis

import (
	"math"

	"github.com/ZanzyTHEbar/resume-match-analyzer/internal/report"
)

var (
	// requirement weights for skills coverage
	severityWeights = map[report.Severity]float64{
		report.SeverityHard: 2,
		report.SeveritySoft: 1,
	}
	neutralRatio       = 0.5 // used when the job gives no evidence for a category
	keywordSaturation  = 0.6 // content-word coverage that earns full keyword points
	markerSaturation   = 4.0
	verbSaturation     = 6.0
	metricSaturation   = 3.0
	implicitYearsScale = 3.0
)

// jobTerm is a lexicon term found in the job description.
type jobTerm struct {
	Name     string
	Severity report.Severity
	Matched  bool
}

// evidence is everything the scorer needs, extracted once per request.
type evidence struct {
	terms []jobTerm

	requiredYears int
	yearsSeverity report.Severity
	resumeYears   float64
	markers       int

	requiredDegree DegreeLevel
	degreeSeverity report.Severity
	heldDegree     DegreeLevel

	jobWords     int
	coveredWords int

	verbs   int
	metrics int
}

func clip(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func ratio(n, d float64) float64 {
	if d <= 0 {
		return 0
	}
	return clip(n/d, 0, 1)
}

// points scales a [0,1] ratio onto a category bound.
func points(r float64, max int) int {
	return int(math.Round(clip(r, 0, 1) * float64(max)))
}

func (e *evidence) termWeights() (matched, total float64) {
	for _, t := range e.terms {
		w := severityWeights[t.Severity]
		total += w
		if t.Matched {
			matched += w
		}
	}
	return matched, total
}

func (e *evidence) skillsRatio() float64 {
	matched, total := e.termWeights()
	if total == 0 {
		return neutralRatio
	}
	return matched / total
}

func (e *evidence) yearsRatio() float64 {
	if e.requiredYears == 0 {
		return 1
	}
	return ratio(e.resumeYears, float64(e.requiredYears))
}

func (e *evidence) experienceRatio() float64 {
	markerRatio := ratio(float64(e.markers), markerSaturation)
	if e.requiredYears > 0 {
		return 0.75*e.yearsRatio() + 0.25*markerRatio
	}
	return math.Max(markerRatio, ratio(e.resumeYears, implicitYearsScale))
}

func (e *evidence) educationRatio() float64 {
	switch {
	case e.requiredDegree == DegreeNone && e.heldDegree > DegreeNone:
		return 1
	case e.requiredDegree == DegreeNone:
		return 0.6
	case e.heldDegree >= e.requiredDegree:
		return 1
	case e.heldDegree > DegreeNone && e.heldDegree == e.requiredDegree-1:
		return 0.6
	case e.heldDegree > DegreeNone:
		return 0.4
	default:
		return 0.1
	}
}

func (e *evidence) keywordRatio() float64 {
	if e.jobWords == 0 {
		return neutralRatio
	}
	return ratio(float64(e.coveredWords)/float64(e.jobWords), keywordSaturation)
}

func (e *evidence) impactRatio() float64 {
	return 0.5*ratio(float64(e.verbs), verbSaturation) + 0.5*ratio(float64(e.metrics), metricSaturation)
}

// scoreRadar converts evidence into bounded category scores.
func scoreRadar(e *evidence) report.Radar {
	return report.Radar{
		Skills:     points(e.skillsRatio(), report.MaxSkills),
		Experience: points(e.experienceRatio(), report.MaxExperience),
		Education:  points(e.educationRatio(), report.MaxEducation),
		Keyword:    points(e.keywordRatio(), report.MaxKeyword),
		Impact:     points(e.impactRatio(), report.MaxImpact),
	}
}

// termPenalty is the share of skills points a single missing term costs.
func (e *evidence) termPenalty(t jobTerm) int {
	_, total := e.termWeights()
	if total == 0 {
		return 0
	}
	p := int(math.Round(float64(report.MaxSkills) * severityWeights[t.Severity] / total))
	if p < 1 {
		p = 1
	}
	return p
}
