package analysis

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// LexiconStore manages custom lexicons by name under a data directory.
type LexiconStore struct {
	dataDir string
}

// NewLexiconStore creates a new lexicon store
func NewLexiconStore(dataDir string) *LexiconStore {
	return &LexiconStore{dataDir: dataDir}
}

func (s *LexiconStore) path(name string) string {
	return filepath.Join(s.dataDir, "lexicons", fmt.Sprintf("%s.json", name))
}

// Load reads the named lexicon, falling back to the built-in one when no file exists.
func (s *LexiconStore) Load(name string) (*Lexicon, error) {
	filePath := s.path(name)

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return DefaultLexicon(), nil
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open lexicon file: %w", err)
	}
	defer file.Close()

	var lex Lexicon
	if err := json.NewDecoder(file).Decode(&lex); err != nil {
		return nil, fmt.Errorf("failed to decode lexicon: %w", err)
	}
	if err := lex.Validate(); err != nil {
		return nil, fmt.Errorf("invalid lexicon %q: %w", name, err)
	}
	lex.compile()

	return &lex, nil
}

// Save writes the lexicon under the given name.
func (s *LexiconStore) Save(name string, lex *Lexicon) error {
	if err := lex.Validate(); err != nil {
		return fmt.Errorf("invalid lexicon %q: %w", name, err)
	}

	filePath := s.path(name)
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create lexicon directory: %w", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create lexicon file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(lex); err != nil {
		return fmt.Errorf("failed to encode lexicon: %w", err)
	}

	return nil
}
