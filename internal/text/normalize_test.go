package text

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{
			name:  "passthrough clean text",
			input: "chill guy 짱",
			want:  "chill guy 짱",
		},
		{
			name:  "trims leading and trailing whitespace",
			input: "  밈 수명주기  ",
			want:  "밈 수명주기",
		},
		{
			name:  "normalizes CRLF to LF",
			input: "line one\r\nline two",
			want:  "line one\nline two",
		},
		{
			name:  "normalizes bare CR to LF",
			input: "line one\rline two",
			want:  "line one\nline two",
		},
		{
			name:    "rejects empty string",
			input:   "",
			wantErr: ErrEmptyText,
		},
		{
			name:    "rejects whitespace-only string",
			input:   "   \t\n  ",
			wantErr: ErrEmptyText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"keeps letters digits hangul", "abc 123 밈", "abc 123 밈"},
		{"drops punctuation", "chill, guy! 짱?", "chill guy 짱"},
		{"drops emoji", "😂밈😂 🔥", "밈 "},
		{"keeps compatibility consonants", "ㅋㅋㅋ", "ㅋㅋㅋ"},
		{"keeps compatibility vowels", "ㅠㅠ ㅏ", "ㅠㅠ ㅏ"},
		{"drops hashtags and mentions", "#밈 @user", "밈 user"},
		{"drops non-ascii latin", "café", "caf"},
		{"drops cjk ideographs", "漢字밈", "밈"},
		{"keeps tabs and newlines", "a\tb\nc", "a\tb\nc"},
		{"drops conjoining jamo", "\u1100\u1161", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.input); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCompose_FoldsConjoiningJamo(t *testing.T) {
	// ᄆ + ᅵ + ᆷ (conjoining) composes to 밈.
	got := Clean(Compose("\u1106\u1175\u11b7"))
	if got != "밈" {
		t.Errorf("Clean(Compose(...)) = %q, want %q", got, "밈")
	}
}

func TestCompose_LeavesCompatibilityJamo(t *testing.T) {
	if got := Compose("ㅋㅋ ㅏ"); got != "ㅋㅋ ㅏ" {
		t.Errorf("Compose changed compatibility jamo: %q", got)
	}
}

func TestWords(t *testing.T) {
	got := Words("  chill\tguy \n짱  ")
	want := []string{"chill", "guy", "짱"}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Words mismatch (-want +got):\n%s", diff)
	}

	if got := Words("   "); len(got) != 0 {
		t.Errorf("Words(blank) = %v, want empty", got)
	}
}
