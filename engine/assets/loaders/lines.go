package loaders

import (
	"bufio"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/spaghettifunk/anima-scene/engine/core"
)

// WarnFunc receives non-fatal parse diagnostics. It must be safe for
// concurrent use if parsers run concurrently.
type WarnFunc func(msg string, args ...interface{})

// LogWarnings routes parse diagnostics to the engine logger.
var LogWarnings WarnFunc = core.LogWarn

// DiscardWarnings drops parse diagnostics.
func DiscardWarnings(string, ...interface{}) {}

// keywordLine is one non-blank, non-comment line split into its keyword,
// the raw remainder and the remainder's whitespace-separated fields.
type keywordLine struct {
	number  int
	keyword string
	args    string
	fields  []string
}

// scanKeywordLines calls fn for every line of text that carries a keyword.
func scanKeywordLines(text string, fn func(l keywordLine)) {
	scanner := bufio.NewScanner(strings.NewReader(text))
	// a single line can never be longer than the whole text
	scanner.Buffer(make([]byte, 0, 64*1024), len(text)+1)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		// Skip comments and empty lines
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		keyword, args := line, ""
		if i := strings.IndexAny(line, " \t"); i >= 0 {
			keyword = line[:i]
			args = strings.TrimLeft(line[i:], " \t")
		}
		fn(keywordLine{
			number:  lineNo,
			keyword: keyword,
			args:    args,
			fields:  strings.Fields(args),
		})
	}
}

// parseFloat never fails: malformed input becomes NaN.
func parseFloat(s string) float32 {
	f, err := strconv.ParseFloat(s, 32)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return float32(math.NaN())
	}
	return float32(f)
}

func parseFloats(fields []string) []float32 {
	out := make([]float32, len(fields))
	for i, f := range fields {
		out[i] = parseFloat(f)
	}
	return out
}

// firstFloat parses the first field, NaN when there is none.
func firstFloat(fields []string) float32 {
	if len(fields) == 0 {
		return float32(math.NaN())
	}
	return parseFloat(fields[0])
}

// parseInt accepts integers and truncates finite decimals. ok is false when
// no integer could be read.
func parseInt(s string) (int, bool) {
	if i, err := strconv.Atoi(s); err == nil {
		return i, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(f), true
}
