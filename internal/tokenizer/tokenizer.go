// Package tokenizer turns captions into tokens of tagged grapheme units and
// turns tokens back into display words.
//
// A token is one English letter run, one standalone Jamo, or every decomposed
// unit of every syllable block of a single whitespace-delimited word. The
// merge across syllable boundaries is part of the stored format: Recombine
// relies on it and tokens written by older pipeline runs use it.
package tokenizer

// Tokenizer encodes a caption into tokens.
type Tokenizer interface {
	// Encode splits caption into tokens. It never fails; unsupported
	// characters are dropped.
	Encode(caption string) []Token
}
