package script

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DialogueLine is a single authored line of dialogue. Index is the line's
// position in the original script order and never changes after parsing.
type DialogueLine struct {
	Index   int
	Speaker string
	Text    string
}

// linePattern matches "- Speaker: text", "* Speaker: text", "• Speaker: text",
// or a bare "Speaker: text" line.
var linePattern = regexp.MustCompile(`^[-*•]?\s*(.+?):\s*(.+)$`)

// Parse extracts dialogue lines from script text. Lines that do not match
// the speaker format are skipped. Text is normalized to NFC so decomposed
// Hangul from some editors compares equal to composed input.
func Parse(text string) []DialogueLine {
	text = norm.NFC.String(text)

	var lines []DialogueLine
	index := 0
	for _, raw := range strings.Split(strings.TrimSpace(text), "\n") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		m := linePattern.FindStringSubmatch(raw)
		if m == nil {
			continue
		}
		lines = append(lines, DialogueLine{
			Index:   index,
			Speaker: strings.TrimSpace(m[1]),
			Text:    strings.TrimSpace(m[2]),
		})
		index++
	}
	return lines
}

// ParseFile reads and parses a script file.
func ParseFile(path string) ([]DialogueLine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return Parse(string(data)), nil
}

// UniqueSpeakers returns the speakers in order of first appearance.
func UniqueSpeakers(lines []DialogueLine) []string {
	seen := make(map[string]struct{}, len(lines))
	var speakers []string
	for _, line := range lines {
		if _, ok := seen[line.Speaker]; ok {
			continue
		}
		seen[line.Speaker] = struct{}{}
		speakers = append(speakers, line.Speaker)
	}
	return speakers
}

// GroupBySpeaker groups dialogue lines by speaker, preserving each
// speaker's original relative order.
func GroupBySpeaker(lines []DialogueLine) map[string][]DialogueLine {
	groups := make(map[string][]DialogueLine)
	for _, line := range lines {
		groups[line.Speaker] = append(groups[line.Speaker], line)
	}
	return groups
}
