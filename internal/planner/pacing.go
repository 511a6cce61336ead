package planner

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/emilianohg/storyboard/internal/models"
)

const (
	WordsPerMinute = 150
	HookMaxSeconds = 30.0
	HookMaxWords   = 75

	// OptimalVideoSeconds is the length past which a script is flagged as too long.
	OptimalVideoSeconds = 600.0
)

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

type PacingWarning struct {
	Severity Severity
	Message  string
}

type Pacing struct {
	WordCount        int
	CharacterCount   int
	EstimatedSeconds float64 // speaking time at WordsPerMinute
	Warnings         []PacingWarning
}

// AnalyzePacing estimates how long text takes to say. Hook sections are
// also checked against the hook length limits.
func AnalyzePacing(text string, section models.SectionType) Pacing {
	words := len(strings.Fields(text))
	m := Pacing{
		WordCount:        words,
		CharacterCount:   utf8.RuneCountInString(text),
		EstimatedSeconds: float64(words) / WordsPerMinute * 60,
	}
	secs := math.Round(m.EstimatedSeconds)

	if section == models.SectionHook {
		switch {
		case m.EstimatedSeconds > HookMaxSeconds:
			m.warn(SeverityError, fmt.Sprintf("Hook is too long (%.0fs > %.0fs). Viewers will leave.", secs, HookMaxSeconds))
		case m.EstimatedSeconds > HookMaxSeconds*0.8:
			m.warn(SeverityWarning, fmt.Sprintf("Hook is close to the limit (~%.0fs).", secs))
		case m.EstimatedSeconds > 0:
			m.warn(SeveritySuccess, fmt.Sprintf("Hook length is good (~%.0fs).", secs))
		}
	}

	if m.EstimatedSeconds > OptimalVideoSeconds {
		m.warn(SeverityWarning, "Script runs past 10 minutes.")
	}

	if section == models.SectionHook && words > HookMaxWords {
		m.warn(SeverityError, "Hook has too many words. Keep it short and clear.")
	}
	return m
}

func (m *Pacing) warn(s Severity, msg string) {
	m.Warnings = append(m.Warnings, PacingWarning{Severity: s, Message: msg})
}

// AnnotateSection stores the word count and spoken length of the section notes.
func AnnotateSection(s *models.TimelineSection) Pacing {
	m := AnalyzePacing(s.Notes, s.Type)
	words := m.WordCount
	secs := m.EstimatedSeconds
	s.WordCount = &words
	s.EstimatedDuration = &secs
	return m
}
