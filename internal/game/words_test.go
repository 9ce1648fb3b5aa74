package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleReturnsDistinctWords(t *testing.T) {
	bank := DefaultWordBank()

	for i := 0; i < 20; i++ {
		words := bank.Sample(3)
		require.Len(t, words, 3)

		seen := make(map[string]bool)
		for _, w := range words {
			assert.False(t, seen[w], "duplicate word %q in sample", w)
			seen[w] = true
		}
	}
}

func TestSampleCapsAtBankSize(t *testing.T) {
	bank, err := NewWordBank([]string{"cat", "dog"})
	require.NoError(t, err)

	words := bank.Sample(5)
	assert.Len(t, words, 2)
	assert.ElementsMatch(t, []string{"cat", "dog"}, words)
}

func TestNewWordBankRejectsEmptyList(t *testing.T) {
	_, err := NewWordBank(nil)
	assert.Error(t, err)
}

func TestLoadWordBankCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.csv")
	content := "cat,120\ndog,80\n,5\nice cream,40\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	bank, err := LoadWordBankCSV(path)
	require.NoError(t, err)
	assert.Equal(t, 3, bank.Size(), "blank words are skipped")

	words := bank.Sample(3)
	assert.ElementsMatch(t, []string{"cat", "dog", "ice cream"}, words)
}

func TestLoadWordBankCSVMissingFile(t *testing.T) {
	_, err := LoadWordBankCSV(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
