package analysis

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/resume-match-analyzer/internal/report"
)

// DegreeLevel orders academic degrees.
type DegreeLevel int

const (
	DegreeNone DegreeLevel = iota
	DegreeAssociate
	DegreeBachelor
	DegreeMaster
	DegreeDoctorate
)

func (d DegreeLevel) String() string {
	switch d {
	case DegreeAssociate:
		return "Associate's"
	case DegreeBachelor:
		return "Bachelor's"
	case DegreeMaster:
		return "Master's"
	case DegreeDoctorate:
		return "Doctorate"
	default:
		return "none"
	}
}

var (
	yearsRegex     = regexp.MustCompile(`(?i)\b(\d{1,2})\s*\+?\s*(?:-|–|to)?\s*(?:\d{1,2}\s*\+?\s*)?(?:years?|yrs?)\b`)
	dateRangeRegex = regexp.MustCompile(`(?i)\b((?:19|20)\d{2})\s*(?:-|–|—|to)\s*((?:19|20)\d{2}|present|current|now|today)\b`)
	metricRegex    = regexp.MustCompile(`(?i)(\$\s?\d[\d,.]*[kmb]?|\b\d[\d,.]*\s*(?:%|percent\b|x\b|k\b|m\b|\+\s*(?:users|customers|clients|students|downloads)|(?:users|customers|clients|students|downloads|requests|ms|hours|projects|members|people)\b))`)

	degreePatterns = []struct {
		level DegreeLevel
		re    *regexp.Regexp
	}{
		{DegreeDoctorate, regexp.MustCompile(`(?i)\bph\.?\s?d\b|\bdoctorate\b|\bdoctoral\b`)},
		{DegreeMaster, regexp.MustCompile(`(?i)\bmaster'?s?\b|\bm\.s\.?c?\b|\bmsc\b|\bmba\b|\bm\.?eng\b`)},
		{DegreeBachelor, regexp.MustCompile(`(?i)\bbachelor'?s?\b|\bb\.s\.?c?\b|\bbsc\b|\bb\.a\.|\bb\.?eng\b|\bundergraduate\b|\bbs\s+(?:in|degree)\b|\bba\s+(?:in|degree)\b`)},
		{DegreeAssociate, regexp.MustCompile(`(?i)\bassociate'?s?\s+degree\b`)},
	}
	genericDegree = regexp.MustCompile(`(?i)\bdegree\b`)
	notDegree     = regexp.MustCompile(`(?i)\b(?:scrum|web|quiz|dungeon|chess)\s+master\b|\bmaster\s+(?:branch|data|node|class)\b`)

	actionVerbs = map[string]bool{
		"built": true, "led": true, "improved": true, "reduced": true, "increased": true,
		"designed": true, "developed": true, "launched": true, "shipped": true, "optimized": true,
		"mentored": true, "created": true, "implemented": true, "delivered": true, "automated": true,
		"architected": true, "managed": true, "migrated": true, "scaled": true, "won": true,
		"founded": true, "grew": true, "saved": true, "streamlined": true, "refactored": true,
		"deployed": true, "owned": true, "spearheaded": true, "accelerated": true, "published": true,
	}

	experienceMarkers = map[string]bool{
		"intern": true, "internship": true, "engineer": true, "developer": true, "mentor": true,
		"mentorship": true, "lead": true, "manager": true, "consultant": true, "analyst": true,
		"freelance": true, "contractor": true, "assistant": true, "teaching": true, "project": true,
		"projects": true, "hackathon": true, "volunteer": true, "researcher": true, "architect": true,
	}

	stopwords = map[string]bool{
		"the": true, "and": true, "for": true, "with": true, "you": true, "your": true, "our": true,
		"are": true, "will": true, "that": true, "this": true, "have": true, "has": true, "from": true,
		"who": true, "what": true, "all": true, "can": true, "their": true, "they": true, "them": true,
		"into": true, "about": true, "other": true, "more": true, "such": true, "any": true, "not": true,
		"but": true, "its": true, "work": true, "team": true, "teams": true, "role": true, "years": true,
		"year": true, "experience": true, "ability": true, "strong": true, "skills": true, "skill": true,
		"including": true, "using": true, "plus": true, "preferred": true, "required": true, "must": true,
		"etc": true, "per": true, "new": true, "well": true, "also": true, "able": true, "based": true,
		"within": true, "across": true, "help": true, "join": true, "looking": true, "candidate": true,
		"candidates": true, "position": true, "company": true, "job": true, "responsibilities": true,
		"requirements": true, "qualifications": true, "minimum": true, "knowledge": true, "understanding": true,
		"working": true, "least": true, "both": true, "each": true, "how": true, "was": true, "were": true,
		"been": true, "being": true, "which": true, "where": true, "when": true, "would": true, "should": true,
		"may": true, "might": true, "like": true, "just": true, "than": true, "then": true, "there": true,
		"these": true, "those": true, "while": true, "nice": true, "bonus": true, "equal": true,
		"opportunity": true, "employer": true, "benefits": true, "salary": true,
	}
)

// RequiredYears is the largest years-of-experience figure a job asks for,
// with the severity of the sentence that asked.
func RequiredYears(doc *Document) (int, report.Severity) {
	best, sev := 0, report.SeveritySoft
	for _, s := range doc.Sentences {
		for _, m := range yearsRegex.FindAllStringSubmatch(s.Text, -1) {
			n, err := strconv.Atoi(m[1])
			if err != nil || n > 30 {
				continue
			}
			if n > best {
				best, sev = n, s.Severity
			}
		}
	}
	return best, sev
}

// ResumeYears estimates years of experience from explicit figures and date ranges.
func ResumeYears(text string, referenceYear int) float64 {
	explicit := 0
	for _, m := range yearsRegex.FindAllStringSubmatch(text, -1) {
		if n, err := strconv.Atoi(m[1]); err == nil && n <= 40 && n > explicit {
			explicit = n
		}
	}

	ranged := 0
	for _, m := range dateRangeRegex.FindAllStringSubmatch(text, -1) {
		start, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		end := referenceYear
		if n, err := strconv.Atoi(m[2]); err == nil {
			end = n
		}
		if d := end - start; d > 0 && d <= 40 {
			ranged += d
		}
	}

	if ranged > explicit {
		return float64(ranged)
	}
	return float64(explicit)
}

// DegreeIn returns the highest degree level mentioned in text.
// A bare "degree" counts as a bachelor's when allowGeneric is set.
func DegreeIn(text string, allowGeneric bool) DegreeLevel {
	text = notDegree.ReplaceAllString(text, "")
	for _, p := range degreePatterns {
		if p.re.MatchString(text) {
			return p.level
		}
	}
	if allowGeneric && genericDegree.MatchString(text) {
		return DegreeBachelor
	}
	return DegreeNone
}

// RequiredDegree returns the lowest degree level a job accepts and the
// severity of the sentence that states it.
func RequiredDegree(doc *Document) (DegreeLevel, report.Severity) {
	level, sev := DegreeNone, report.SeveritySoft
	for _, s := range doc.Sentences {
		text := notDegree.ReplaceAllString(s.Text, "")
		lowest := DegreeNone
		for i := len(degreePatterns) - 1; i >= 0; i-- {
			if degreePatterns[i].re.MatchString(text) {
				lowest = degreePatterns[i].level
				break
			}
		}
		if lowest == DegreeNone && genericDegree.MatchString(text) {
			lowest = DegreeBachelor
		}
		if lowest == DegreeNone {
			continue
		}
		if level == DegreeNone || (s.Severity == report.SeverityHard && sev == report.SeveritySoft) {
			level, sev = lowest, s.Severity
		}
	}
	return level, sev
}

// ImpactSignals counts distinct action verbs and quantified results.
func ImpactSignals(doc *Document) (verbs, metrics int) {
	seen := make(map[string]bool)
	for _, s := range doc.Sentences {
		for _, t := range s.Lower {
			if actionVerbs[t] && !seen[t] {
				seen[t] = true
				verbs++
			}
		}
		metrics += len(metricRegex.FindAllString(s.Text, -1))
	}
	return verbs, metrics
}

// ExperienceMarkers counts distinct role and project words.
func ExperienceMarkers(doc *Document) int {
	seen := make(map[string]bool)
	for _, t := range doc.Words() {
		if experienceMarkers[t] {
			seen[t] = true
		}
	}
	return len(seen)
}

// stem folds simple English plurals.
func stem(w string) string {
	switch {
	case len(w) > 4 && strings.HasSuffix(w, "ies"):
		return w[:len(w)-3] + "y"
	case len(w) > 4 && strings.HasSuffix(w, "s") && !strings.HasSuffix(w, "ss"):
		return w[:len(w)-1]
	default:
		return w
	}
}

// ContentWords returns the distinct meaningful words of a document in order.
func ContentWords(doc *Document) []string {
	seen := make(map[string]bool)
	var words []string
	for _, w := range doc.Words() {
		if len(w) < 3 || stopwords[w] || isNumber(w) {
			continue
		}
		w = stem(w)
		if !seen[w] {
			seen[w] = true
			words = append(words, w)
		}
	}
	return words
}

func isNumber(w string) bool {
	_, err := strconv.Atoi(w)
	return err == nil
}
