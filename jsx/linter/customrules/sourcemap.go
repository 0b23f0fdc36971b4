package customrules

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dop251/goja"
	"github.com/go-sourcemap/sourcemap"
)

// inlineSourceMapPrefix is the prefix for inline source maps.
const inlineSourceMapPrefix = "//# sourceMappingURL=data:application/json;base64,"

// ExtractInlineSourceMap extracts and parses an inline source map from JavaScript code.
// Code without an inline source map returns nil.
func ExtractInlineSourceMap(code string) (*sourcemap.Consumer, error) {
	idx := strings.LastIndex(code, inlineSourceMapPrefix)
	if idx == -1 {
		return nil, nil
	}

	b64Data := code[idx+len(inlineSourceMapPrefix):]
	if end := strings.IndexAny(b64Data, "\r\n"); end != -1 {
		b64Data = b64Data[:end]
	}

	jsonData, err := base64.StdEncoding.DecodeString(strings.TrimSpace(b64Data))
	if err != nil {
		return nil, fmt.Errorf("decoding source map base64: %w", err)
	}

	consumer, err := sourcemap.Parse("", jsonData)
	if err != nil {
		if strings.Contains(err.Error(), "mappings are empty") {
			return nil, nil
		}
		return nil, fmt.Errorf("parsing source map: %w", err)
	}

	return consumer, nil
}

// MappedError wraps an error with original source location.
type MappedError struct {
	Original   error
	SourceFile string
	Line       int
	Column     int
	Message    string
}

func (e *MappedError) Error() string {
	if e.SourceFile != "" && e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", e.SourceFile, e.Line, e.Column, e.Message)
	}
	if e.SourceFile != "" {
		return fmt.Sprintf("%s: %s", e.SourceFile, e.Message)
	}
	return e.Message
}

func (e *MappedError) Unwrap() error {
	return e.Original
}

// stackFrame matches a goja stack trace line such as "at create (rule.ts:12:9(14))".
var stackFrame = regexp.MustCompile(`at (?:\S+ \()?([^()\s]+):(\d+):(\d+)`)

// MapException maps a goja exception to the location in the original rule source. The
// innermost frame of sourceFile is used; its position is remapped through sm when the
// rule was transpiled.
func MapException(exc *goja.Exception, sourceFile string, sm *sourcemap.Consumer) *MappedError {
	mapped := &MappedError{
		Original:   exc,
		SourceFile: sourceFile,
		Message:    exceptionMessage(exc),
	}

	line, col, ok := framePosition(exc.String(), sourceFile)
	if !ok {
		return mapped
	}
	mapped.Line, mapped.Column = line, col

	if sm != nil {
		// Source map columns are 0-based.
		if _, _, srcLine, srcCol, ok := sm.Source(line, col-1); ok {
			mapped.Line, mapped.Column = srcLine, srcCol+1
		}
	}
	return mapped
}

// exceptionMessage returns the first line of the exception, without the stack.
func exceptionMessage(exc *goja.Exception) string {
	if v := exc.Value(); v != nil && !goja.IsUndefined(v) {
		return v.String()
	}
	msg, _, _ := strings.Cut(exc.String(), "\n")
	return msg
}

func framePosition(stack, sourceFile string) (int, int, bool) {
	var fallback []string
	for _, m := range stackFrame.FindAllStringSubmatch(stack, -1) {
		if m[1] == sourceFile {
			return atoi(m[2]), atoi(m[3]), true
		}
		if fallback == nil {
			fallback = m
		}
	}
	if fallback == nil {
		return 0, 0, false
	}
	return atoi(fallback[2]), atoi(fallback[3]), true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
