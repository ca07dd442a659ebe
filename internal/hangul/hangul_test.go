package hangul

import "testing"

func TestDecompose(t *testing.T) {
	tests := []struct {
		name  string
		in    rune
		lead  rune
		vowel rune
		trail rune
	}{
		{"first block", '가', 'ㄱ', 'ㅏ', 0},
		{"last block", '힣', 'ㅎ', 'ㅣ', 'ㅎ'},
		{"with trailing", '밈', 'ㅁ', 'ㅣ', 'ㅁ'},
		{"double lead", '짱', 'ㅉ', 'ㅏ', 'ㅇ'},
		{"compound trailing", '닭', 'ㄷ', 'ㅏ', 'ㄺ'},
		{"compound vowel", '왜', 'ㅇ', 'ㅙ', 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lead, vowel, trail, ok := Decompose(tt.in)
			if !ok {
				t.Fatalf("Decompose(%q) ok = false", tt.in)
			}

			if lead != tt.lead || vowel != tt.vowel || trail != tt.trail {
				t.Errorf("Decompose(%q) = %q %q %q; want %q %q %q",
					tt.in, lead, vowel, trail, tt.lead, tt.vowel, tt.trail)
			}
		})
	}
}

func TestDecompose_NotSyllable(t *testing.T) {
	for _, r := range []rune{'a', '1', 'ㅋ', 'ㅏ', '漢', 0xAC00 - 1, 0xD7A4} {
		if _, _, _, ok := Decompose(r); ok {
			t.Errorf("Decompose(%U) ok = true; want false", r)
		}
	}
}

func TestComposeInvertsDecompose(t *testing.T) {
	for r := rune(SyllableFirst); r <= SyllableLast; r++ {
		lead, vowel, trail, _ := Decompose(r)

		li, ok := LeadIndex(lead)
		if !ok {
			t.Fatalf("%U: lead %q not in table", r, lead)
		}

		vi, ok := VowelIndex(vowel)
		if !ok {
			t.Fatalf("%U: vowel %q not in table", r, vowel)
		}

		ti := 0
		if trail != 0 {
			ti, ok = TrailIndex(trail)
			if !ok {
				t.Fatalf("%U: trail %q not in table", r, trail)
			}
		}

		if got := Compose(li, vi, ti); got != r {
			t.Fatalf("Compose(%d, %d, %d) = %U; want %U", li, vi, ti, got, r)
		}
	}
}

func TestIndexLookups(t *testing.T) {
	if _, ok := LeadIndex('ㄳ'); ok {
		t.Error("LeadIndex('ㄳ') ok = true; compound consonants cannot lead")
	}

	if _, ok := TrailIndex('ㄸ'); ok {
		t.Error("TrailIndex('ㄸ') ok = true; ㄸ never trails")
	}

	if i, ok := TrailIndex('ㄱ'); !ok || i != 1 {
		t.Errorf("TrailIndex('ㄱ') = %d, %v; want 1, true", i, ok)
	}

	if _, ok := TrailIndex(0); ok {
		t.Error("TrailIndex(0) ok = true; the empty slot is not addressable")
	}

	if _, ok := VowelIndex('ㄱ'); ok {
		t.Error("VowelIndex('ㄱ') ok = true")
	}
}

func TestClassPredicates(t *testing.T) {
	if !IsCompatConsonant('ㄱ') || !IsCompatConsonant('ㅎ') || IsCompatConsonant('ㅏ') {
		t.Error("IsCompatConsonant boundaries wrong")
	}

	if !IsCompatVowel('ㅏ') || !IsCompatVowel('ㅣ') || IsCompatVowel('ㅎ') {
		t.Error("IsCompatVowel boundaries wrong")
	}

	if !IsSyllable('가') || IsSyllable('ㄱ') {
		t.Error("IsSyllable boundaries wrong")
	}
}
