package tokenizer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// FormatTokens serializes a caption's tokens as a JSON array of arrays of
// single-entry objects:
//
//	[[{"ENG":"chill"}],[{"CHO":"ㅉ"},{"JUNG":"ㅏ"},{"JONG":"ㅇ"}]]
func FormatTokens(tokens []Token) (string, error) {
	if tokens == nil {
		tokens = []Token{}
	}
	b, err := json.Marshal(tokens)
	if err != nil {
		return "", fmt.Errorf("format tokens: %w", err)
	}
	return string(b), nil
}

// ParseTokens reads the form written by FormatTokens. The single-quoted
// literal form of earlier pipeline runs ([[{'ENG': 'chill'}]]) is accepted
// too. Structural damage is reported as a *DecodeError naming the token.
func ParseTokens(s string) ([]Token, error) {
	src, err := literalToJSON(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	var raw [][]json.RawMessage
	if err := json.Unmarshal(src, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	tokens := make([]Token, len(raw))
	for i, units := range raw {
		if len(units) == 0 {
			return nil, &DecodeError{Token: i, Unit: -1, Reason: "empty token"}
		}
		tok := make(Token, len(units))
		for j, msg := range units {
			u, err := parseUnit(msg)
			if err != nil {
				return nil, &DecodeError{Token: i, Unit: j, Reason: err.Error()}
			}
			tok[j] = u
		}
		tokens[i] = tok
	}
	return tokens, nil
}

// decodeUnit reads one unit object. Repeated keys are rejected rather than
// collapsed; null reads as a unit without tags.
func decodeUnit(msg json.RawMessage) (map[string]string, error) {
	dec := json.NewDecoder(bytes.NewReader(msg))
	first, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if first == nil {
		return nil, nil
	}
	if d, ok := first.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("unit must be an object, found %v", first)
	}

	m := make(map[string]string)
	for dec.More() {
		key, err := dec.Token()
		if err != nil {
			return nil, err
		}
		k := key.(string)
		if _, dup := m[k]; dup {
			return nil, fmt.Errorf("repeated tag %q", k)
		}
		val, err := dec.Token()
		if err != nil {
			return nil, err
		}
		v, ok := val.(string)
		if !ok {
			return nil, fmt.Errorf("tag %q: value must be a string", k)
		}
		m[k] = v
	}
	return m, nil
}

func parseUnit(msg json.RawMessage) (Unit, error) {
	m, err := decodeUnit(msg)
	if err != nil {
		return Unit{}, err
	}
	if len(m) != 1 {
		return Unit{}, fmt.Errorf("unit must carry exactly one tag, found %d", len(m))
	}
	for key, val := range m {
		tag, ok := ParseTag(key)
		if !ok {
			return Unit{}, fmt.Errorf("unknown tag %q", key)
		}
		u := Unit{tag: tag, text: val}
		if err := validateUnit(u); err != nil {
			return Unit{}, err
		}
		return u, nil
	}
	return Unit{}, errors.New("unreachable")
}

// literalToJSON rewrites single-quoted strings as JSON strings. Everything
// outside string literals is copied unchanged.
func literalToJSON(s string) ([]byte, error) {
	if !strings.ContainsRune(s, '\'') {
		return []byte(s), nil
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		switch s[i] {
		case '"':
			end, err := skipQuoted(s, i)
			if err != nil {
				return nil, err
			}
			b.WriteString(s[i:end])
			i = end
		case '\'':
			val, end, err := unquoteSingle(s, i)
			if err != nil {
				return nil, err
			}
			q, err := json.Marshal(val)
			if err != nil {
				return nil, err
			}
			b.Write(q)
			i = end
		default:
			b.WriteByte(s[i])
			i++
		}
	}
	return []byte(b.String()), nil
}

// skipQuoted returns the index just past the double-quoted string starting at i.
func skipQuoted(s string, i int) (int, error) {
	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case '"':
			return j + 1, nil
		}
	}
	return 0, fmt.Errorf("unterminated string at offset %d", i)
}

// unquoteSingle decodes the single-quoted string starting at i and returns
// its value and the index just past the closing quote.
func unquoteSingle(s string, i int) (string, int, error) {
	var b strings.Builder
	for j := i + 1; j < len(s); j++ {
		c := s[j]
		switch {
		case c == '\'':
			return b.String(), j + 1, nil
		case c == '\\' && j+1 < len(s):
			j++
			switch s[j] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case '\\', '\'', '"':
				b.WriteByte(s[j])
			default:
				b.WriteByte('\\')
				b.WriteByte(s[j])
			}
		default:
			b.WriteByte(c)
		}
	}
	return "", 0, fmt.Errorf("unterminated string at offset %d", i)
}
