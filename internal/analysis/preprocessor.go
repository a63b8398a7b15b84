package analysis

import (
	"regexp"
	"strings"

	"github.com/ZanzyTHEbar/resume-match-analyzer/internal/report"
)

var (
	tokenRegex    = regexp.MustCompile(`[A-Za-z0-9][A-Za-z0-9+#]*`)
	sentenceSplit = regexp.MustCompile(`[.;!?]+(\s+|$)`)
	bulletPrefix  = regexp.MustCompile(`^\s*([-*•·▪◦]+|\d+[.)])\s*`)
)

// Sentence is one requirement-sized span of text with its tokens.
type Sentence struct {
	Text     string
	Tokens   []string // original casing
	Lower    []string
	Severity report.Severity
}

// Document is text split into classified sentences.
type Document struct {
	Sentences []Sentence
}

type section int

const (
	sectionNone section = iota
	sectionHard
	sectionSoft
)

var (
	softHeaderPhrases = [][]string{{"preferred"}, {"nice", "to", "have"}, {"bonus"}, {"desired"}, {"pluses"}, {"good", "to", "have"}, {"optional"}}
	hardHeaderPhrases = [][]string{{"required"}, {"requirements"}, {"requirement"}, {"minimum"}, {"basic", "qualifications"}, {"must", "have"}, {"must", "haves"}, {"qualifications"}, {"what", "you", "need"}}

	softMarkers = [][]string{{"preferred"}, {"nice", "to", "have"}, {"a", "plus"}, {"bonus"}, {"ideally"}, {"desirable"}, {"desired"}, {"familiarity"}, {"exposure", "to"}, {"good", "to", "have"}}
	hardMarkers = [][]string{{"required"}, {"must"}, {"minimum"}, {"at", "least"}, {"essential"}, {"mandatory"}, {"requirement"}, {"need", "to"}}

	headerFiller = map[string]bool{
		"the": true, "and": true, "our": true, "your": true, "you": true, "what": true, "have": true,
		"must": true, "minimum": true, "basic": true, "preferred": true, "nice": true, "to": true,
		"bonus": true, "points": true, "desired": true, "required": true, "additional": true,
		"plus": true, "pluses": true, "qualifications": true, "qualification": true, "skills": true,
		"experience": true, "requirements": true, "requirement": true, "need": true, "haves": true,
		"good": true, "optional": true, "technical": true,
	}
)

// tokenize splits text into word tokens keeping their casing.
func tokenize(text string) []string {
	return tokenRegex.FindAllString(text, -1)
}

func lowerTokens(text string) []string {
	toks := tokenize(text)
	for i, t := range toks {
		toks[i] = strings.ToLower(t)
	}
	return toks
}

// indexPhrase returns the token index where phrase starts, or -1.
func indexPhrase(tokens, phrase []string) int {
	if len(phrase) == 0 || len(phrase) > len(tokens) {
		return -1
	}
outer:
	for i := 0; i <= len(tokens)-len(phrase); i++ {
		for j, p := range phrase {
			if tokens[i+j] != p {
				continue outer
			}
		}
		return i
	}
	return -1
}

func containsAny(tokens []string, phrases [][]string) bool {
	for _, p := range phrases {
		if indexPhrase(tokens, p) >= 0 {
			return true
		}
	}
	return false
}

// headerSection classifies a heading. Soft wins over hard so that
// "Preferred qualifications" is not read as required.
func headerSection(lower []string) section {
	switch {
	case containsAny(lower, softHeaderPhrases):
		return sectionSoft
	case containsAny(lower, hardHeaderPhrases):
		return sectionHard
	default:
		return sectionNone
	}
}

// isBareHeader reports whether a colon-less line consists only of heading words.
func isBareHeader(lower []string) bool {
	if len(lower) == 0 || len(lower) > 5 {
		return false
	}
	for _, t := range lower {
		if !headerFiller[t] {
			return false
		}
	}
	return headerSection(lower) != sectionNone
}

func classify(lower []string, sec section) report.Severity {
	switch {
	case containsAny(lower, softMarkers):
		return report.SeveritySoft
	case containsAny(lower, hardMarkers):
		return report.SeverityHard
	case sec == sectionHard:
		return report.SeverityHard
	default:
		return report.SeveritySoft
	}
}

// ParseDocument splits text into sentences, tracking requirement sections.
// Lines under a "Requirements:"-style heading default to hard, under a
// "Preferred:"-style heading to soft; explicit markers in a sentence override.
func ParseDocument(text string) *Document {
	doc := &Document{}
	sec := sectionNone

	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(bulletPrefix.ReplaceAllString(line, ""))
		if line == "" {
			continue
		}

		if idx := strings.Index(line, ":"); idx >= 0 && !strings.HasPrefix(line[idx+1:], "/") {
			head := lowerTokens(line[:idx])
			if len(head) > 0 && len(head) <= 5 {
				sec = headerSection(head)
				line = strings.TrimSpace(line[idx+1:])
				if line == "" {
					continue
				}
			}
		} else if lower := lowerTokens(line); isBareHeader(lower) {
			sec = headerSection(lower)
			continue
		}

		for _, raw := range sentenceSplit.Split(line, -1) {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				continue
			}
			toks := tokenize(raw)
			if len(toks) == 0 {
				continue
			}
			lower := make([]string, len(toks))
			for i, t := range toks {
				lower[i] = strings.ToLower(t)
			}
			doc.Sentences = append(doc.Sentences, Sentence{
				Text:     raw,
				Tokens:   toks,
				Lower:    lower,
				Severity: classify(lower, sec),
			})
		}
	}

	return doc
}

// Words returns every lowercase token in document order.
func (d *Document) Words() []string {
	var words []string
	for _, s := range d.Sentences {
		words = append(words, s.Lower...)
	}
	return words
}
