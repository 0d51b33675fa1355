package store

import "sort"

// Pattern is a compiled glob, built once per KEYS call and then matched
// against every candidate key without re-parsing the pattern bytes.
type Pattern struct {
	tokens []patternToken
}

type patternTokenKind int

const (
	tokenLiteral patternTokenKind = iota
	tokenAny                      // '?': exactly one byte
	tokenStar                     // '*': zero or more bytes
	tokenClass                    // '[...]': a byte class, possibly negated
)

type patternToken struct {
	kind   patternTokenKind
	lit    byte
	negate bool
	set    map[byte]bool
}

// CompilePattern parses pat once into a Pattern ready for repeated Match
// calls. Grammar: '*' matches any run of bytes, '?' matches exactly one
// byte, '[...]' is a byte class (leading '!' negates it, '\' escapes the
// next byte inside or outside a class, no range syntax), any other byte
// matches itself. An unterminated class is treated as a literal '[' plus
// its remaining bytes as literals; a trailing lone '\' is a literal '\'.
func CompilePattern(pat string) *Pattern {
	b := []byte(pat)
	var tokens []patternToken

	for i := 0; i < len(b); {
		switch c := b[i]; c {
		case '*':
			tokens = append(tokens, patternToken{kind: tokenStar})
			i++
		case '?':
			tokens = append(tokens, patternToken{kind: tokenAny})
			i++
		case '\\':
			if i+1 < len(b) {
				tokens = append(tokens, patternToken{kind: tokenLiteral, lit: b[i+1]})
				i += 2
			} else {
				tokens = append(tokens, patternToken{kind: tokenLiteral, lit: '\\'})
				i++
			}
		case '[':
			tok, consumed, ok := parseClass(b[i:])
			if !ok {
				for _, r := range b[i:] {
					tokens = append(tokens, patternToken{kind: tokenLiteral, lit: r})
				}
				i = len(b)
				continue
			}
			tokens = append(tokens, tok)
			i += consumed
		default:
			tokens = append(tokens, patternToken{kind: tokenLiteral, lit: c})
			i++
		}
	}

	return &Pattern{tokens: tokens}
}

func parseClass(b []byte) (patternToken, int, bool) {
	i := 1 // skip '['
	negate := false
	if i < len(b) && b[i] == '!' {
		negate = true
		i++
	}

	set := make(map[byte]bool)
	closed := false
	for i < len(b) {
		if b[i] == '\\' && i+1 < len(b) {
			set[b[i+1]] = true
			i += 2
			continue
		}
		if b[i] == ']' {
			closed = true
			i++
			break
		}
		set[b[i]] = true
		i++
	}

	if !closed {
		return patternToken{}, 0, false
	}
	return patternToken{kind: tokenClass, negate: negate, set: set}, i, true
}

// Match reports whether key matches the compiled pattern in full.
func (p *Pattern) Match(key string) bool {
	return matchTokens(p.tokens, []byte(key))
}

// matchTokens is the classic greedy-with-backtrack wildcard matcher,
// extended with a class token alongside literal and '?'.
func matchTokens(toks []patternToken, s []byte) bool {
	ti, si := 0, 0
	starTi, starSi := -1, -1

	for si < len(s) {
		switch {
		case ti < len(toks) && toks[ti].kind == tokenStar:
			starTi, starSi = ti, si
			ti++
		case ti < len(toks) && tokenMatches(toks[ti], s[si]):
			ti++
			si++
		case starTi >= 0:
			starSi++
			si = starSi
			ti = starTi + 1
		default:
			return false
		}
	}

	for ti < len(toks) && toks[ti].kind == tokenStar {
		ti++
	}
	return ti == len(toks)
}

func tokenMatches(tok patternToken, b byte) bool {
	switch tok.kind {
	case tokenLiteral:
		return b == tok.lit
	case tokenAny:
		return true
	case tokenClass:
		member := tok.set[b]
		return member != tok.negate
	}
	return false
}

// matchSortedKeys returns the keys matching pattern in ascending
// lexicographic order. The pattern is compiled exactly once.
func matchSortedKeys(pattern string, candidates []string) []string {
	p := CompilePattern(pattern)
	matched := make([]string, 0, len(candidates))
	for _, k := range candidates {
		if p.Match(k) {
			matched = append(matched, k)
		}
	}
	sort.Strings(matched)
	return matched
}
