package analysis

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/resume-match-analyzer/internal/report"
)

// Producer turns a resume and a job description into a match report.
// Implementations must be pure: no mutation of inputs, safe for concurrent use.
type Producer interface {
	Produce(resumeText, jobText string) report.MatchReport
}

// ProducerFunc adapts a plain function to the Producer interface.
type ProducerFunc func(resumeText, jobText string) report.MatchReport

func (f ProducerFunc) Produce(resumeText, jobText string) report.MatchReport {
	return f(resumeText, jobText)
}

// Mode selects a Producer implementation.
type Mode string

const (
	ModeFixture Mode = "fixture"
	ModeKeyword Mode = "keyword"
)

// ParseMode accepts a mode name case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeFixture:
		return ModeFixture, nil
	case ModeKeyword, "":
		return ModeKeyword, nil
	default:
		return "", fmt.Errorf("unknown analyzer mode %q (want %q or %q)", s, ModeFixture, ModeKeyword)
	}
}

// NewProducer builds the producer for the given mode.
func NewProducer(mode Mode, lexicon *Lexicon, referenceYear int) (Producer, error) {
	switch mode {
	case ModeFixture:
		return FixtureProducer{}, nil
	case ModeKeyword:
		if lexicon == nil {
			lexicon = DefaultLexicon()
		}
		return NewKeywordProducer(lexicon, referenceYear), nil
	default:
		return nil, fmt.Errorf("unknown analyzer mode %q", mode)
	}
}
