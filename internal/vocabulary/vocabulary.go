// Package vocabulary provides the bilingual word list used by the static quiz.
package vocabulary

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed vocabulary.yml
var bundled []byte

// Word is one Korean term and its French equivalent.
// The same Korean or French term may appear in several words.
type Word struct {
	Korean   string `yaml:"ko" json:"ko"`
	French   string `yaml:"fr" json:"fr"`
	Category string `yaml:"category" json:"category"`
}

type vocabularyFile struct {
	Words []Word `yaml:"words"`
}

// Bundled returns the word list shipped with hanfr.
func Bundled() ([]Word, error) {
	words, err := Parse(bytes.NewReader(bundled))
	if err != nil {
		return nil, fmt.Errorf("Parse(bundled) > %w", err)
	}
	return words, nil
}

// Load reads a word list from path, or the bundled list when path is empty.
func Load(path string) ([]Word, error) {
	if path == "" {
		return Bundled()
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open(%s) > %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	words, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("Parse(%s) > %w", path, err)
	}
	return words, nil
}

// Parse decodes a YAML word list. Every word needs both a Korean and a French term.
func Parse(r io.Reader) ([]Word, error) {
	var decoded vocabularyFile
	if err := yaml.NewDecoder(r).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("yaml.NewDecoder().Decode() > %w", err)
	}
	for i, word := range decoded.Words {
		word.Korean = strings.TrimSpace(word.Korean)
		word.French = strings.TrimSpace(word.French)
		if word.Korean == "" || word.French == "" {
			return nil, fmt.Errorf("word #%d: both ko and fr are required", i+1)
		}
		decoded.Words[i] = word
	}
	return decoded.Words, nil
}

// Categories returns the sorted distinct categories of words.
func Categories(words []Word) []string {
	var categories []string
	for _, word := range words {
		if word.Category == "" || slices.Contains(categories, word.Category) {
			continue
		}
		categories = append(categories, word.Category)
	}
	slices.Sort(categories)
	return categories
}

// FilterByCategory returns the words in any of categories, or all words when
// no category is given.
func FilterByCategory(words []Word, categories ...string) []Word {
	if len(categories) == 0 {
		return words
	}
	var filtered []Word
	for _, word := range words {
		if slices.Contains(categories, word.Category) {
			filtered = append(filtered, word)
		}
	}
	return filtered
}
