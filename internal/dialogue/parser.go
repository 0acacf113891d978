// Package dialogue extracts speaker-labeled lines from generated script text.
package dialogue

import (
	"errors"
	"regexp"
	"strings"

	"github.com/hyperjump/genie/internal/models"
)

// ErrNoDialogueFound signals a script with zero recognizable speaker-labeled
// lines; callers must surface it rather than produce empty audio.
var ErrNoDialogueFound = errors.New("no valid dialogue lines found: format lines as 'Alex: your line'")

// markupRe matches emphasis markup wrapped around a speaker label, with the
// colon on either side of the closing markup (e.g. "**Alex:**" or "*Ben*:").
var markupRe = regexp.MustCompile(`[*_]{1,2}(\s*[A-Za-z]+\s*)[*_]{0,2}:[*_]{0,2}`)

// labelRe matches a known speaker label with variable whitespace around the colon.
var labelRe = regexp.MustCompile(`\b(Alex|Ben)\s*:\s*`)

// lineRe extracts one speaker-labeled line per script line, in document order.
var lineRe = regexp.MustCompile(`(?m)^(Alex|Ben):(.*)$`)

// StripMarkup removes emphasis markup around speaker labels, leaving "Label:".
func StripMarkup(script string) string {
	return markupRe.ReplaceAllString(script, "$1:")
}

// NormalizeLabels collapses whitespace around the label-colon boundary for the
// two known speakers, leaving "Alex:" / "Ben:" flush with the utterance.
func NormalizeLabels(script string) string {
	return labelRe.ReplaceAllString(script, "$1:")
}

// Parse normalizes script formatting and extracts all dialogue lines in
// document order. Utterances are whitespace-trimmed but otherwise verbatim;
// lines that trim to empty are kept so downstream progress accounting can
// count them. Returns ErrNoDialogueFound when no line matches.
func Parse(script string) ([]models.DialogueLine, error) {
	cleaned := NormalizeLabels(StripMarkup(script))
	matches := lineRe.FindAllStringSubmatch(cleaned, -1)
	if len(matches) == 0 {
		return nil, ErrNoDialogueFound
	}
	lines := make([]models.DialogueLine, len(matches))
	for i, m := range matches {
		lines[i] = models.DialogueLine{
			Speaker:   models.Speaker(m[1]),
			Utterance: strings.TrimSpace(m[2]),
		}
	}
	return lines, nil
}
