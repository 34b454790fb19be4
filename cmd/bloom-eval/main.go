// bloom-eval measures Bloom filter accuracy against a word list with known
// ground truth.
//
// The word list is shuffled with a fixed seed and split in half. The first
// half is added to the filter; the second half is never added. Every word
// from both halves is then checked and the answers are tallied as true or
// false positives and negatives.
//
// Usage Examples
// ==============
//
// Fixed filters sized for batches of 1000, 2000, ... words:
//
//	bloom-eval epochs --source /usr/share/dict/words
//
// A scalable filter that starts small and grows:
//
//	bloom-eval scalable --source words.txt.zst --initial-capacity 100 --growth fast
//
// The small built-in walkthrough:
//
//	bloom-eval demo
//
// Exit Codes
// ==========
//
// 0: Success.
// 1: Bad flags, unreadable word list, or invalid filter parameters.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newApp().rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "[err] %v\n", err)
		os.Exit(1)
	}
}
