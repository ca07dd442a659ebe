// Package hangul implements the codepoint arithmetic that splits a precomposed
// Hangul syllable into its lead, vowel and trailing Jamo and puts them back
// together. Jamo are expressed as compatibility Jamo (U+3131-U+3163), the
// standalone letters people actually type.
package hangul

const (
	SyllableFirst = 0xAC00
	SyllableLast  = 0xD7A3

	CompatConsonantFirst = 0x3131
	CompatConsonantLast  = 0x314E
	CompatVowelFirst     = 0x314F
	CompatVowelLast      = 0x3163

	LeadCount  = 19
	VowelCount = 21
	TrailCount = 28 // including "no trailing consonant" at index 0

	leadStride = VowelCount * TrailCount // 588
)

var leads = [LeadCount]rune{
	'ㄱ', 'ㄲ', 'ㄴ', 'ㄷ', 'ㄸ', 'ㄹ', 'ㅁ', 'ㅂ', 'ㅃ', 'ㅅ',
	'ㅆ', 'ㅇ', 'ㅈ', 'ㅉ', 'ㅊ', 'ㅋ', 'ㅌ', 'ㅍ', 'ㅎ',
}

var vowels = [VowelCount]rune{
	'ㅏ', 'ㅐ', 'ㅑ', 'ㅒ', 'ㅓ', 'ㅔ', 'ㅕ', 'ㅖ', 'ㅗ', 'ㅘ',
	'ㅙ', 'ㅚ', 'ㅛ', 'ㅜ', 'ㅝ', 'ㅞ', 'ㅟ', 'ㅠ', 'ㅡ', 'ㅢ', 'ㅣ',
}

// trails[0] is unused: index 0 means the syllable has no trailing consonant.
var trails = [TrailCount]rune{
	0, 'ㄱ', 'ㄲ', 'ㄳ', 'ㄴ', 'ㄵ', 'ㄶ', 'ㄷ', 'ㄹ', 'ㄺ',
	'ㄻ', 'ㄼ', 'ㄽ', 'ㄾ', 'ㄿ', 'ㅀ', 'ㅁ', 'ㅂ', 'ㅄ',
	'ㅅ', 'ㅆ', 'ㅇ', 'ㅈ', 'ㅊ', 'ㅋ', 'ㅌ', 'ㅍ', 'ㅎ',
}

var (
	leadIndex  = indexTable(leads[:], 0)
	vowelIndex = indexTable(vowels[:], 0)
	trailIndex = indexTable(trails[1:], 1)
)

func indexTable(table []rune, offset int) map[rune]int {
	m := make(map[rune]int, len(table))
	for i, r := range table {
		m[r] = i + offset
	}
	return m
}

// IsSyllable reports whether r is a precomposed Hangul syllable block.
func IsSyllable(r rune) bool { return r >= SyllableFirst && r <= SyllableLast }

// IsCompatConsonant reports whether r is a standalone compatibility consonant.
func IsCompatConsonant(r rune) bool { return r >= CompatConsonantFirst && r <= CompatConsonantLast }

// IsCompatVowel reports whether r is a standalone compatibility vowel.
func IsCompatVowel(r rune) bool { return r >= CompatVowelFirst && r <= CompatVowelLast }

// Decompose splits a syllable block into its lead consonant, vowel and
// trailing consonant. trail is 0 when the syllable has no final consonant.
// ok is false when r is not a syllable block.
func Decompose(r rune) (lead, vowel, trail rune, ok bool) {
	if !IsSyllable(r) {
		return 0, 0, 0, false
	}
	base := int(r - SyllableFirst)
	lead = leads[base/leadStride]
	vowel = vowels[(base%leadStride)/TrailCount]
	if t := base % TrailCount; t != 0 {
		trail = trails[t]
	}
	return lead, vowel, trail, true
}

// LeadIndex returns the position of r in the 19-entry lead consonant table.
func LeadIndex(r rune) (int, bool) {
	i, ok := leadIndex[r]
	return i, ok
}

// VowelIndex returns the position of r in the 21-entry vowel table.
func VowelIndex(r rune) (int, bool) {
	i, ok := vowelIndex[r]
	return i, ok
}

// TrailIndex returns the position (1..27) of r in the trailing consonant table.
func TrailIndex(r rune) (int, bool) {
	i, ok := trailIndex[r]
	return i, ok
}

// Compose builds the syllable block for the given table indices. The caller
// must pass indices obtained from LeadIndex, VowelIndex and TrailIndex (or 0
// for no trailing consonant).
func Compose(lead, vowel, trail int) rune {
	return rune(SyllableFirst + lead*leadStride + vowel*TrailCount + trail)
}
