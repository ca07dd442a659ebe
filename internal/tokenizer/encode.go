package tokenizer

import (
	"strings"

	"github.com/example/memetrend/internal/hangul"
	"github.com/example/memetrend/internal/text"
)

// Encoder implements Tokenizer.
type Encoder struct {
	opts options
}

type options struct {
	compose bool
}

// Option configures an Encoder.
type Option func(*options)

// WithCompose enables an NFC pass before cleaning so conjoining Jamo
// sequences are folded into syllable blocks instead of being dropped.
func WithCompose(on bool) Option {
	return func(o *options) { o.compose = on }
}

// NewEncoder returns an Encoder. Without options no Unicode normalization is
// applied.
func NewEncoder(optFns ...Option) *Encoder {
	var opts options
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Encoder{opts: opts}
}

// Encode splits caption into tokens in scan order.
func (e *Encoder) Encode(caption string) []Token {
	if e.opts.compose {
		caption = text.Compose(caption)
	}

	var out []Token
	for _, word := range text.Words(text.Clean(caption)) {
		out = appendWord(out, word)
	}
	return out
}

// Encode splits caption into tokens with the default Encoder.
func Encode(caption string) []Token {
	return NewEncoder().Encode(caption)
}

// appendWord scans one whitespace-delimited word. Letter runs and standalone
// Jamo are emitted as they end; decomposed syllables accumulate in one group
// token emitted after the word's trailing letter run.
func appendWord(out []Token, word string) []Token {
	var letters strings.Builder
	var group Token

	for _, r := range word {
		if text.IsASCIILetter(r) {
			letters.WriteRune(r)
			continue
		}
		if letters.Len() > 0 {
			out = append(out, Token{English(letters.String())})
			letters.Reset()
		}

		var units [3]Unit
		switch n := decompose(r, &units); n {
		case 0:
			// digits
		case 1:
			out = append(out, Token{units[0]})
		default:
			group = append(group, units[:n]...)
		}
	}

	if letters.Len() > 0 {
		out = append(out, Token{English(letters.String())})
	}
	if len(group) > 0 {
		out = append(out, group)
	}
	return out
}

// decompose writes the units for r into dst and returns how many it wrote.
func decompose(r rune, dst *[3]Unit) int {
	switch {
	case hangul.IsSyllable(r):
		lead, vowel, trail, _ := hangul.Decompose(r)
		dst[0], dst[1] = Lead(lead), Vowel(vowel)
		if trail == 0 {
			return 2
		}
		dst[2] = Trail(trail)
		return 3
	case hangul.IsCompatConsonant(r):
		dst[0] = Lead(r)
		return 1
	case hangul.IsCompatVowel(r):
		dst[0] = Vowel(r)
		return 1
	default:
		return 0
	}
}
