package tokenizer

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Tag identifies which variant a Unit holds.
type Tag uint8

const (
	tagNone Tag = iota
	TagENG      // run of ASCII letters
	TagCHO      // lead consonant
	TagJUNG     // vowel
	TagJONG     // trailing consonant
)

var tagNames = [...]string{
	tagNone: "",
	TagENG:  "ENG",
	TagCHO:  "CHO",
	TagJUNG: "JUNG",
	TagJONG: "JONG",
}

func (t Tag) String() string {
	if int(t) < len(tagNames) && t != tagNone {
		return tagNames[t]
	}
	return fmt.Sprintf("Tag(%d)", uint8(t))
}

// ParseTag maps a serialized key (ENG, CHO, JUNG, JONG) to its Tag.
func ParseTag(s string) (Tag, bool) {
	switch s {
	case "ENG":
		return TagENG, true
	case "CHO":
		return TagCHO, true
	case "JUNG":
		return TagJUNG, true
	case "JONG":
		return TagJONG, true
	default:
		return tagNone, false
	}
}

// Unit is a tagged grapheme unit. The zero Unit carries no tag and is
// rejected by Recombine; build units with English, Lead, Vowel and Trail.
type Unit struct {
	tag  Tag
	text string
}

// English returns an ENG unit holding a run of ASCII letters.
func English(s string) Unit { return Unit{tag: TagENG, text: s} }

// Lead returns a CHO unit.
func Lead(r rune) Unit { return Unit{tag: TagCHO, text: string(r)} }

// Vowel returns a JUNG unit.
func Vowel(r rune) Unit { return Unit{tag: TagJUNG, text: string(r)} }

// Trail returns a JONG unit.
func Trail(r rune) Unit { return Unit{tag: TagJONG, text: string(r)} }

// Tag returns the unit's variant.
func (u Unit) Tag() Tag { return u.tag }

// Text returns the value carried by the unit: the letter run for ENG, the
// Jamo character otherwise.
func (u Unit) Text() string { return u.text }

func (u Unit) String() string {
	return u.tag.String() + "(" + u.text + ")"
}

// MarshalJSON writes the unit as a single-entry object, e.g. {"CHO":"ㅁ"}.
func (u Unit) MarshalJSON() ([]byte, error) {
	if u.tag == tagNone || int(u.tag) >= len(tagNames) {
		return nil, fmt.Errorf("marshal unit: %w", ErrMalformedToken)
	}
	val, err := json.Marshal(u.text)
	if err != nil {
		return nil, err
	}
	var b strings.Builder
	b.WriteString(`{"`)
	b.WriteString(u.tag.String())
	b.WriteString(`":`)
	b.Write(val)
	b.WriteByte('}')
	return []byte(b.String()), nil
}

// Token is an ordered, non-empty sequence of units.
type Token []Unit

func (t Token) String() string {
	parts := make([]string, len(t))
	for i, u := range t {
		parts[i] = u.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
