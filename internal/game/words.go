package game

import (
	"encoding/csv"
	"fmt"
	"log"
	"math/rand"
	"os"
)

// =============================================================================
// WORD BANK
// =============================================================================

var defaultWords = []string{
	"cat", "dog", "house", "tree", "car", "book", "phone", "computer", "pizza", "flower",
	"mountain", "ocean", "guitar", "bicycle", "camera", "butterfly", "rainbow", "castle",
	"elephant", "penguin", "dragon", "rocket", "sandwich", "umbrella", "lighthouse",
	"dinosaur", "spaceship", "treasure", "volcano", "waterfall", "keyboard", "headphones",
	"telescope", "microscope", "hamburger", "ice cream", "birthday cake", "christmas tree",
	"snowman", "fireworks", "balloon", "roller coaster", "ferris wheel", "bike",
	"apple", "mobile", "chair", "table", "window", "android",
}

// WordBank is a static collection of candidate words. Sampling is the only
// capability the rooms need from it.
type WordBank struct {
	words []string
}

func NewWordBank(words []string) (*WordBank, error) {
	if len(words) == 0 {
		return nil, fmt.Errorf("word bank needs at least one word")
	}
	return &WordBank{words: words}, nil
}

// DefaultWordBank returns the built-in word list.
func DefaultWordBank() *WordBank {
	return &WordBank{words: defaultWords}
}

// LoadWordBankCSV builds a bank from the first column of a CSV file.
func LoadWordBankCSV(filePath string) (*WordBank, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("unable to read word file %s: %w", filePath, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("unable to parse %s as CSV: %w", filePath, err)
	}

	var words []string
	for _, record := range records {
		if len(record) < 1 || record[0] == "" {
			log.Println("[LoadWordBankCSV] skipping invalid record:", record)
			continue
		}
		words = append(words, record[0])
	}

	return NewWordBank(words)
}

// Sample returns n distinct words picked uniformly at random. If n exceeds
// the bank size, every word is returned once.
func (wb *WordBank) Sample(n int) []string {
	shuffled := append([]string(nil), wb.words...)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}

func (wb *WordBank) Size() int {
	return len(wb.words)
}
