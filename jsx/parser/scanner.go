package parser

import (
	"html"
	"math/big"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/speakeasy-api/jsxlint/jsx/ast"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIllegal
	tokName
	tokPrivateName
	tokNumber
	tokString
	tokTemplate
	tokPunct
	tokRegex
	tokJSXText
)

// token is a scanned token. Scanning is position based: the parser asks the scanner for
// the token starting at an offset in a given mode, so rescanning a token in another
// mode (regular expressions, template continuations, JSX) never needs buffering.
type token struct {
	kind  tokenKind
	value string // identifier name, punctuator, cooked string or template chunk
	raw   string
	start int
	end   int
	// nl is set when a line terminator precedes the token.
	nl       bool
	comments []ast.Comment

	num    float64
	bigint string
	// tail is set for a template chunk ending in a backtick.
	tail bool

	regexPattern string
	regexFlags   string

	errMsg string
}

func (t token) is(punct string) bool {
	return t.kind == tokPunct && t.value == punct
}

func (t token) isName(name string) bool {
	return t.kind == tokName && t.value == name
}

type scanner struct {
	src []byte
}

var punctuators = []string{
	">>>=",
	"...", "===", "!==", "**=", "<<=", ">>=", ">>>", "&&=", "||=", "??=",
	"=>", "==", "!=", "<=", ">=", "&&", "||", "??", "?.", "++", "--", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "<<", ">>", "**",
}

// skipTrivia skips whitespace and comments starting at pos.
func (s *scanner) skipTrivia(pos int, tok *token) (int, bool) {
	for pos < len(s.src) {
		c := s.src[pos]
		switch {
		case c == '\n' || c == '\r':
			tok.nl = true
			pos++
		case c == ' ' || c == '\t' || c == '\v' || c == '\f':
			pos++
		case c == '/' && pos+1 < len(s.src) && s.src[pos+1] == '/':
			start := pos
			pos += 2
			for pos < len(s.src) && s.src[pos] != '\n' && s.src[pos] != '\r' {
				r, size := utf8.DecodeRune(s.src[pos:])
				if r == '\u2028' || r == '\u2029' {
					break
				}
				pos += size
			}
			tok.comments = append(tok.comments, ast.Comment{Loc: ast.Span(start, pos), Text: string(s.src[start+2 : pos])})
		case c == '/' && pos+1 < len(s.src) && s.src[pos+1] == '*':
			start := pos
			end := strings.Index(string(s.src[pos+2:]), "*/")
			if end < 0 {
				tok.kind = tokIllegal
				tok.start = start
				tok.errMsg = "Unterminated comment"
				return pos, false
			}
			text := string(s.src[pos+2 : pos+2+end])
			if strings.ContainsAny(text, "\n\r\u2028\u2029") {
				tok.nl = true
			}
			pos += end + 4
			tok.comments = append(tok.comments, ast.Comment{Loc: ast.Span(start, pos), Block: true, Text: text})
		case c >= utf8.RuneSelf:
			r, size := utf8.DecodeRune(s.src[pos:])
			switch {
			case r == '\u2028' || r == '\u2029':
				tok.nl = true
			case r == '\ufeff' || unicode.Is(unicode.Zs, r):
			default:
				return pos, true
			}
			pos += size
		default:
			return pos, true
		}
	}
	return pos, true
}

// scan returns the next regular JavaScript token at or after pos.
func (s *scanner) scan(pos int) token {
	var tok token
	pos, ok := s.skipTrivia(pos, &tok)
	if !ok {
		return tok
	}
	tok.start = pos
	if pos >= len(s.src) {
		tok.kind = tokEOF
		tok.end = pos
		return tok
	}

	c := s.src[pos]
	switch {
	case isIdentStart(s.peekRune(pos)):
		end := s.scanIdentifier(pos)
		tok.kind = tokName
		tok.value = string(s.src[pos:end])
		tok.end = end
	case c == '#':
		end := s.scanIdentifier(pos + 1)
		if end == pos+1 {
			return s.illegal(tok, pos, "Unexpected character '#'")
		}
		tok.kind = tokPrivateName
		tok.value = string(s.src[pos+1 : end])
		tok.end = end
	case isDigit(c) || (c == '.' && pos+1 < len(s.src) && isDigit(s.src[pos+1])):
		return s.scanNumber(tok, pos)
	case c == '"' || c == '\'':
		return s.scanString(tok, pos)
	case c == '`':
		return s.scanTemplate(tok, pos)
	default:
		for _, p := range punctuators {
			if strings.HasPrefix(string(s.src[pos:min(pos+len(p), len(s.src))]), p) {
				if p == "?." && pos+2 < len(s.src) && isDigit(s.src[pos+2]) {
					continue
				}
				tok.kind = tokPunct
				tok.value = p
				tok.end = pos + len(p)
				return tok
			}
		}
		if strings.IndexByte("{}()[];,<>+-*/%&|^!~?:=.@", c) >= 0 {
			tok.kind = tokPunct
			tok.value = string(c)
			tok.end = pos + 1
			return tok
		}
		r, _ := utf8.DecodeRune(s.src[pos:])
		return s.illegal(tok, pos, "Unexpected character '"+string(r)+"'")
	}
	tok.raw = string(s.src[tok.start:tok.end])
	return tok
}

func (s *scanner) illegal(tok token, pos int, msg string) token {
	tok.kind = tokIllegal
	tok.start = pos
	tok.end = pos
	tok.errMsg = msg
	return tok
}

func (s *scanner) peekRune(pos int) rune {
	if pos >= len(s.src) {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRune(s.src[pos:])
	return r
}

func (s *scanner) scanIdentifier(pos int) int {
	for pos < len(s.src) {
		r, size := utf8.DecodeRune(s.src[pos:])
		if !isIdentPart(r) {
			break
		}
		pos += size
	}
	return pos
}

func (s *scanner) scanNumber(tok token, pos int) token {
	start := pos
	base := 10
	if s.src[pos] == '0' && pos+1 < len(s.src) {
		switch s.src[pos+1] | 0x20 {
		case 'x':
			base = 16
		case 'o':
			base = 8
		case 'b':
			base = 2
		}
	}

	if base != 10 {
		pos += 2
		digitsStart := pos
		for pos < len(s.src) && (isHexDigit(s.src[pos]) || s.src[pos] == '_') {
			pos++
		}
		digits := strings.ReplaceAll(string(s.src[digitsStart:pos]), "_", "")
		isBig := pos < len(s.src) && s.src[pos] == 'n'
		if isBig {
			pos++
		}
		if digits == "" {
			return s.illegal(tok, start, "Invalid number")
		}
		n, ok := new(big.Int).SetString(digits, base)
		if !ok {
			return s.illegal(tok, start, "Invalid number")
		}
		if isBig {
			tok.bigint = n.String()
		}
		f, _ := new(big.Float).SetInt(n).Float64()
		tok.num = f
	} else {
		for pos < len(s.src) && (isDigit(s.src[pos]) || s.src[pos] == '_') {
			pos++
		}
		isBig := pos < len(s.src) && s.src[pos] == 'n'
		if isBig {
			tok.bigint = strings.ReplaceAll(string(s.src[start:pos]), "_", "")
			pos++
		} else {
			if pos < len(s.src) && s.src[pos] == '.' {
				pos++
				for pos < len(s.src) && (isDigit(s.src[pos]) || s.src[pos] == '_') {
					pos++
				}
			}
			if pos < len(s.src) && (s.src[pos]|0x20) == 'e' {
				next := pos + 1
				if next < len(s.src) && (s.src[next] == '+' || s.src[next] == '-') {
					next++
				}
				if next < len(s.src) && isDigit(s.src[next]) {
					pos = next
					for pos < len(s.src) && isDigit(s.src[pos]) {
						pos++
					}
				}
			}
		}
		text := strings.ReplaceAll(string(s.src[start:pos]), "_", "")
		text = strings.TrimSuffix(text, "n")
		if isLegacyOctal(text) {
			v, err := strconv.ParseInt(text[1:], 8, 64)
			if err == nil {
				tok.num = float64(v)
			}
		} else {
			v, err := strconv.ParseFloat(text, 64)
			if err != nil && !isRangeErr(err) {
				return s.illegal(tok, start, "Invalid number")
			}
			tok.num = v
		}
	}

	if pos < len(s.src) && isIdentStart(s.peekRune(pos)) {
		return s.illegal(tok, pos, "Identifier directly after number")
	}

	tok.kind = tokNumber
	tok.end = pos
	tok.raw = string(s.src[start:pos])
	return tok
}

func isRangeErr(err error) bool {
	ne, ok := err.(*strconv.NumError)
	return ok && ne.Err == strconv.ErrRange
}

func isLegacyOctal(text string) bool {
	if len(text) < 2 || text[0] != '0' {
		return false
	}
	for i := 1; i < len(text); i++ {
		if text[i] < '0' || text[i] > '7' {
			return false
		}
	}
	return true
}

func (s *scanner) scanString(tok token, pos int) token {
	quote := s.src[pos]
	start := pos
	pos++
	var sb strings.Builder
	for {
		if pos >= len(s.src) {
			return s.illegal(tok, start, "Unterminated string constant")
		}
		c := s.src[pos]
		if c == quote {
			pos++
			break
		}
		if c == '\n' || c == '\r' {
			return s.illegal(tok, start, "Unterminated string constant")
		}
		if c == '\\' {
			next, ok := s.readEscape(pos, &sb)
			if !ok {
				return s.illegal(tok, pos, "Bad escape sequence")
			}
			pos = next
			continue
		}
		sb.WriteByte(c)
		pos++
	}
	tok.kind = tokString
	tok.value = sb.String()
	tok.end = pos
	tok.raw = string(s.src[start:pos])
	return tok
}

// readEscape decodes the escape sequence at pos (which holds the backslash).
func (s *scanner) readEscape(pos int, sb *strings.Builder) (int, bool) {
	pos++
	if pos >= len(s.src) {
		return pos, false
	}
	c := s.src[pos]
	pos++
	switch c {
	case 'n':
		sb.WriteByte('\n')
	case 't':
		sb.WriteByte('\t')
	case 'r':
		sb.WriteByte('\r')
	case 'b':
		sb.WriteByte('\b')
	case 'f':
		sb.WriteByte('\f')
	case 'v':
		sb.WriteByte('\v')
	case '\r':
		if pos < len(s.src) && s.src[pos] == '\n' {
			pos++
		}
	case '\n':
	case 'x':
		if pos+2 > len(s.src) {
			return pos, false
		}
		v, err := strconv.ParseUint(string(s.src[pos:pos+2]), 16, 8)
		if err != nil {
			return pos, false
		}
		sb.WriteRune(rune(v))
		pos += 2
	case 'u':
		r, next, ok := s.readUnicodeEscape(pos)
		if !ok {
			return pos, false
		}
		sb.WriteRune(r)
		pos = next
	default:
		if c >= '0' && c <= '7' {
			end := pos
			for end < len(s.src) && end < pos+2 && s.src[end] >= '0' && s.src[end] <= '7' {
				end++
			}
			v, _ := strconv.ParseUint(string(s.src[pos-1:end]), 8, 16)
			sb.WriteRune(rune(v))
			pos = end
			return pos, true
		}
		r, size := utf8.DecodeRune(s.src[pos-1:])
		if r == '\u2028' || r == '\u2029' {
			return pos - 1 + size, true
		}
		sb.WriteRune(r)
		pos = pos - 1 + size
	}
	return pos, true
}

func (s *scanner) readUnicodeEscape(pos int) (rune, int, bool) {
	if pos < len(s.src) && s.src[pos] == '{' {
		end := pos + 1
		for end < len(s.src) && s.src[end] != '}' {
			end++
		}
		if end >= len(s.src) {
			return 0, pos, false
		}
		v, err := strconv.ParseUint(string(s.src[pos+1:end]), 16, 32)
		if err != nil || v > unicode.MaxRune {
			return 0, pos, false
		}
		return rune(v), end + 1, true
	}
	if pos+4 > len(s.src) {
		return 0, pos, false
	}
	v, err := strconv.ParseUint(string(s.src[pos:pos+4]), 16, 16)
	if err != nil {
		return 0, pos, false
	}
	r := rune(v)
	next := pos + 4
	// combine surrogate pairs written as two escapes
	if r >= 0xD800 && r <= 0xDBFF && next+6 <= len(s.src) && s.src[next] == '\\' && s.src[next+1] == 'u' {
		lo, err := strconv.ParseUint(string(s.src[next+2:next+6]), 16, 16)
		if err == nil && lo >= 0xDC00 && lo <= 0xDFFF {
			return (r-0xD800)<<10 + (rune(lo) - 0xDC00) + 0x10000, next + 6, true
		}
	}
	return r, next, true
}

// scanTemplate scans a template chunk. pos holds either the opening backtick or the
// closing brace of a substitution.
func (s *scanner) scanTemplate(tok token, pos int) token {
	start := pos
	tok.start = pos
	pos++
	rawStart := pos
	var cooked strings.Builder
	for {
		if pos >= len(s.src) {
			return s.illegal(tok, start, "Unterminated template")
		}
		c := s.src[pos]
		if c == '`' {
			tok.raw = string(s.src[rawStart:pos])
			tok.tail = true
			pos++
			break
		}
		if c == '$' && pos+1 < len(s.src) && s.src[pos+1] == '{' {
			tok.raw = string(s.src[rawStart:pos])
			pos += 2
			break
		}
		if c == '\\' {
			next, ok := s.readEscape(pos, &cooked)
			if !ok {
				return s.illegal(tok, pos, "Bad escape sequence in template")
			}
			pos = next
			continue
		}
		if c == '\r' {
			// line terminators are normalized to \n in both forms
			cooked.WriteByte('\n')
			pos++
			if pos < len(s.src) && s.src[pos] == '\n' {
				pos++
			}
			continue
		}
		cooked.WriteByte(c)
		pos++
	}
	tok.kind = tokTemplate
	tok.value = cooked.String()
	tok.raw = strings.ReplaceAll(tok.raw, "\r\n", "\n")
	tok.end = pos
	return tok
}

// scanRegex rescans the token at pos (a '/' or '/=') as a regular expression literal.
func (s *scanner) scanRegex(prev token) token {
	tok := token{start: prev.start, nl: prev.nl, comments: prev.comments}
	pos := prev.start + 1
	inClass := false
	for {
		if pos >= len(s.src) {
			return s.illegal(tok, tok.start, "Unterminated regular expression")
		}
		c := s.src[pos]
		if c == '\n' || c == '\r' {
			return s.illegal(tok, tok.start, "Unterminated regular expression")
		}
		if c == '\\' {
			pos += 2
			continue
		}
		if c == '[' {
			inClass = true
		} else if c == ']' {
			inClass = false
		} else if c == '/' && !inClass {
			break
		}
		pos++
	}
	pattern := string(s.src[tok.start+1 : pos])
	pos++
	flagsStart := pos
	pos = s.scanIdentifier(pos)
	tok.kind = tokRegex
	tok.regexPattern = pattern
	tok.regexFlags = string(s.src[flagsStart:pos])
	tok.end = pos
	tok.raw = string(s.src[tok.start:pos])
	return tok
}

// scanJSXTag scans a token inside a JSX tag: names may contain '-', strings have no
// escapes, and '>' is never combined with following characters.
func (s *scanner) scanJSXTag(pos int) token {
	var tok token
	pos, ok := s.skipTrivia(pos, &tok)
	if !ok {
		return tok
	}
	tok.start = pos
	if pos >= len(s.src) {
		tok.kind = tokEOF
		tok.end = pos
		return tok
	}

	c := s.src[pos]
	switch {
	case isIdentStart(s.peekRune(pos)):
		end := pos
		for end < len(s.src) {
			r, size := utf8.DecodeRune(s.src[end:])
			if !isIdentPart(r) && r != '-' {
				break
			}
			end += size
		}
		tok.kind = tokName
		tok.value = string(s.src[pos:end])
		tok.end = end
	case c == '"' || c == '\'':
		end := pos + 1
		for end < len(s.src) && s.src[end] != c {
			end++
		}
		if end >= len(s.src) {
			return s.illegal(tok, pos, "Unterminated string constant")
		}
		tok.kind = tokString
		tok.value = html.UnescapeString(string(s.src[pos+1 : end]))
		tok.end = end + 1
	case strings.IndexByte("<>/={}.:", c) >= 0:
		tok.kind = tokPunct
		tok.value = string(c)
		tok.end = pos + 1
	default:
		r, _ := utf8.DecodeRune(s.src[pos:])
		return s.illegal(tok, pos, "Unexpected character '"+string(r)+"' in JSX tag")
	}
	tok.raw = string(s.src[tok.start:tok.end])
	return tok
}

// scanJSXChild scans the next child of a JSX element: text up to '{' or '<', or one
// of those punctuators.
func (s *scanner) scanJSXChild(pos int) token {
	tok := token{start: pos}
	if pos >= len(s.src) {
		return s.illegal(tok, pos, "Unterminated JSX contents")
	}
	switch s.src[pos] {
	case '{', '<':
		tok.kind = tokPunct
		tok.value = string(s.src[pos])
		tok.end = pos + 1
		tok.raw = tok.value
		return tok
	}
	end := pos
	for end < len(s.src) && s.src[end] != '{' && s.src[end] != '<' {
		if s.src[end] == '>' || s.src[end] == '}' {
			return s.illegal(tok, end, "Unexpected token '"+string(s.src[end])+"' in JSX text")
		}
		end++
	}
	tok.kind = tokJSXText
	tok.raw = string(s.src[pos:end])
	tok.value = html.UnescapeString(tok.raw)
	tok.end = end
	return tok
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c|0x20 >= 'a' && c|0x20 <= 'f')
}

func isIdentStart(r rune) bool {
	return r == '$' || r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
		(r >= utf8.RuneSelf && r != utf8.RuneError && (unicode.IsLetter(r) || unicode.Is(unicode.Nl, r)))
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || (r >= '0' && r <= '9') ||
		(r >= utf8.RuneSelf && r != utf8.RuneError && (unicode.IsDigit(r) || unicode.In(r, unicode.Mn, unicode.Mc, unicode.Pc) || r == '\u200c' || r == '\u200d'))
}
