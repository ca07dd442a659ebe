package tokenizer

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/example/memetrend/internal/hangul"
)

// ErrMalformedToken is wrapped by every error reporting a corrupt token.
var ErrMalformedToken = errors.New("malformed token")

// DecodeError reports a token that violates the unit structure. Token is the
// token's position within its caption and Unit the offending unit's position
// within the token; either is -1 when it does not apply.
type DecodeError struct {
	Token  int
	Unit   int
	Reason string
}

func (e *DecodeError) Error() string {
	switch {
	case e.Token >= 0 && e.Unit >= 0:
		return fmt.Sprintf("malformed token %d, unit %d: %s", e.Token, e.Unit, e.Reason)
	case e.Token >= 0:
		return fmt.Sprintf("malformed token %d: %s", e.Token, e.Reason)
	case e.Unit >= 0:
		return fmt.Sprintf("malformed token, unit %d: %s", e.Unit, e.Reason)
	default:
		return "malformed token: " + e.Reason
	}
}

func (e *DecodeError) Unwrap() error { return ErrMalformedToken }

func unitError(unit int, format string, args ...any) *DecodeError {
	return &DecodeError{Token: -1, Unit: unit, Reason: fmt.Sprintf(format, args...)}
}

// Recombine rebuilds the display word a token stands for. CHO JUNG [JONG]
// runs are matched greedily left to right and recomposed into syllable
// blocks; a unit that cannot start a syllable contributes its raw value.
// Recombine has no side effects.
func Recombine(tok Token) (string, error) {
	if len(tok) == 0 {
		return "", &DecodeError{Token: -1, Unit: -1, Reason: "empty token"}
	}
	for i, u := range tok {
		if err := validateUnit(u); err != nil {
			return "", unitError(i, "%s", err)
		}
	}
	if len(tok) == 1 && tok[0].tag == TagENG {
		return tok[0].text, nil
	}

	var b strings.Builder
	for i := 0; i < len(tok); {
		u := tok[i]
		if u.tag == TagCHO && i+1 < len(tok) && tok[i+1].tag == TagJUNG {
			lead, ok := hangul.LeadIndex(jamo(u))
			if !ok {
				return "", unitError(i, "CHO %q is not a lead consonant", u.text)
			}
			vowel, ok := hangul.VowelIndex(jamo(tok[i+1]))
			if !ok {
				return "", unitError(i+1, "JUNG %q is not a vowel", tok[i+1].text)
			}

			trail, step := 0, 2
			if i+2 < len(tok) && tok[i+2].tag == TagJONG {
				trail, ok = hangul.TrailIndex(jamo(tok[i+2]))
				if !ok {
					return "", unitError(i+2, "JONG %q is not a trailing consonant", tok[i+2].text)
				}
				step = 3
			}

			b.WriteRune(hangul.Compose(lead, vowel, trail))
			i += step
			continue
		}

		// A lone CHO is a standalone consonant token. Inside a group every
		// CHO opens a syllable, so one without a JUNG after it means the
		// stored form was damaged.
		if u.tag == TagCHO && len(tok) > 1 {
			return "", unitError(i, "CHO %q is not followed by JUNG", u.text)
		}

		b.WriteString(u.text)
		i++
	}
	return b.String(), nil
}

// RecombineAll recombines every token of a caption. Errors carry the
// position of the failing token.
func RecombineAll(tokens []Token) ([]string, error) {
	words := make([]string, len(tokens))
	for i, tok := range tokens {
		w, err := Recombine(tok)
		if err != nil {
			return nil, atToken(err, i)
		}
		words[i] = w
	}
	return words, nil
}

func atToken(err error, token int) error {
	var de *DecodeError
	if errors.As(err, &de) {
		cp := *de
		cp.Token = token
		return &cp
	}
	return err
}

func validateUnit(u Unit) error {
	switch u.tag {
	case TagENG:
		if u.text == "" {
			return errors.New("ENG unit is empty")
		}
	case TagCHO, TagJUNG, TagJONG:
		if utf8.RuneCountInString(u.text) != 1 {
			return fmt.Errorf("%s unit %q must hold exactly one character", u.tag, u.text)
		}
	default:
		return errors.New("unit carries no tag")
	}
	return nil
}

func jamo(u Unit) rune {
	r, _ := utf8.DecodeRuneInString(u.text)
	return r
}
