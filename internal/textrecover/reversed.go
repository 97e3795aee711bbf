package textrecover

import "strings"

// statementWords are tokens that show up on virtually every statement. They
// score a candidate decoding: a page whose mirror image contains more of
// them than the page itself was stored right-to-left.
var statementWords = []string{
	"account", "statement", "balance", "value", "period",
	"beginning", "ending", "total", "withdrawal", "contract",
	"premium", "contribution", "date", "number", "page",
}

func keywordScore(text string) int {
	lower := strings.ToLower(text)
	score := 0
	for _, w := range statementWords {
		score += strings.Count(lower, w)
	}
	return score
}

func reverseLine(line string) string {
	runes := []rune(line)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

func reverseAllLines(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = reverseLine(line)
	}
	return strings.Join(lines, "\n")
}

// RepairReversedLines detects text whose lines were extracted right-to-left
// and mirrors each line back. Text that already reads forward is returned
// unchanged.
func RepairReversedLines(text string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	forward := keywordScore(text)
	mirrored := reverseAllLines(text)
	if keywordScore(mirrored) > forward {
		return mirrored
	}
	return text
}
