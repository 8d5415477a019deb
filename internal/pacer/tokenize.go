// Package pacer implements the word-pacing engine behind the practice screen.
//
// An Engine owns a tokenized word sequence, a cursor into it and a playback
// rate. While playing it advances the cursor one word per tick through a
// Scheduler, stops itself at the end of the sequence and publishes a Snapshot
// to its observers after every change.
package pacer

import "strings"

// Tokenize splits text on runs of whitespace and drops empty tokens.
func Tokenize(text string) []string {
	return strings.Fields(text)
}

// BionicSplit splits a word after ceil(n/2) runes. The first half is meant
// to be emphasized, the second rendered plain.
func BionicSplit(word string) (bold, normal string) {
	runes := []rune(word)
	n := (len(runes) + 1) / 2
	return string(runes[:n]), string(runes[n:])
}
