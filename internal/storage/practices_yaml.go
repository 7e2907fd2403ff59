package storage

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// PracticeKind selects one of the practice lists.
type PracticeKind string

const (
	// PracticesBig are shown during big breaks.
	PracticesBig PracticeKind = "practices"
	// PracticesMicro are shown during short pauses.
	PracticesMicro PracticeKind = "micropractices"
)

// ErrEmptyPractice is returned when adding a blank practice text.
var ErrEmptyPractice = errors.New("practice text is empty")

const (
	fallbackPractice      = "Time to rest!"
	fallbackMicroPractice = "A minute for yourself."
)

var defaultPractices = map[PracticeKind][]string{
	PracticesBig: {
		"Walk around the room, noticing every step.",
		"Eye exercise: look up and down, then left and right.",
	},
	PracticesMicro: {
		"One mindful breath in and out.",
		"Feel your feet on the floor.",
	},
}

type yamlPractices struct {
	Practices []string `yaml:"practices"`
}

// PracticeStore keeps the ordered practice lists as YAML files.
// Duplicates are allowed; deletion removes every exact match.
type PracticeStore struct {
	mu     sync.Mutex
	dir    string
	pick   func(n int) int
	logger zerolog.Logger
}

// NewPracticeStore creates a store rooted at dir.
func NewPracticeStore(dir string, logger zerolog.Logger) *PracticeStore {
	return &PracticeStore{
		dir:    dir,
		pick:   rand.IntN,
		logger: logger.With().Str("component", "practice_store").Logger(),
	}
}

// Path returns the file backing kind.
func (store *PracticeStore) Path(kind PracticeKind) string {
	return filepath.Join(store.dir, string(kind)+".yaml")
}

// EnsureDefaults writes the default lists for files that do not exist yet.
func (store *PracticeStore) EnsureDefaults() error {
	store.mu.Lock()
	defer store.mu.Unlock()
	for _, kind := range []PracticeKind{PracticesBig, PracticesMicro} {
		if _, err := os.Stat(store.Path(kind)); err == nil {
			continue
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("stat %s: %w", kind, err)
		}
		if err := store.writeLocked(kind, defaultPractices[kind]); err != nil {
			return err
		}
		store.logger.Info().Str("path", store.Path(kind)).Msg("Default practices written")
	}
	return nil
}

// List returns the practices of kind in file order.
func (store *PracticeStore) List(kind PracticeKind) ([]string, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.readLocked(kind)
}

// Add appends text to the list of kind.
func (store *PracticeStore) Add(kind PracticeKind, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyPractice
	}
	store.mu.Lock()
	defer store.mu.Unlock()
	practices, err := store.readLocked(kind)
	if err != nil {
		return err
	}
	return store.writeLocked(kind, append(practices, text))
}

// Delete removes every entry equal to one of texts and returns how many were removed.
func (store *PracticeStore) Delete(kind PracticeKind, texts ...string) (int, error) {
	if len(texts) == 0 {
		return 0, nil
	}
	remove := make(map[string]struct{}, len(texts))
	for _, text := range texts {
		remove[text] = struct{}{}
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	practices, err := store.readLocked(kind)
	if err != nil {
		return 0, err
	}
	kept := practices[:0]
	for _, practice := range practices {
		if _, ok := remove[practice]; !ok {
			kept = append(kept, practice)
		}
	}
	removed := len(practices) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	if err := store.writeLocked(kind, kept); err != nil {
		return 0, err
	}
	return removed, nil
}

// Random picks a practice of kind, falling back to a built-in text when the
// list is empty or unreadable.
func (store *PracticeStore) Random(kind PracticeKind) string {
	practices, err := store.List(kind)
	if err != nil {
		store.logger.Warn().Err(err).Str("kind", string(kind)).Msg("Failed to read practices")
	}
	if len(practices) == 0 {
		if kind == PracticesMicro {
			return fallbackMicroPractice
		}
		return fallbackPractice
	}
	return practices[store.pick(len(practices))]
}

// RandomPractice returns a big-break practice.
func (store *PracticeStore) RandomPractice() string {
	return store.Random(PracticesBig)
}

// RandomMicroPractice returns a short-pause practice.
func (store *PracticeStore) RandomMicroPractice() string {
	return store.Random(PracticesMicro)
}

func (store *PracticeStore) readLocked(kind PracticeKind) ([]string, error) {
	rawData, err := os.ReadFile(store.Path(kind))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s file: %w", kind, err)
	}
	var fileData yamlPractices
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return nil, fmt.Errorf("parse %s yaml: %w: %v", kind, ErrCorruptFile, err)
	}
	practices := fileData.Practices[:0]
	for _, practice := range fileData.Practices {
		if strings.TrimSpace(practice) != "" {
			practices = append(practices, practice)
		}
	}
	return practices, nil
}

func (store *PracticeStore) writeLocked(kind PracticeKind, practices []string) error {
	if practices == nil {
		practices = []string{}
	}
	serialized, err := yaml.Marshal(yamlPractices{Practices: practices})
	if err != nil {
		return fmt.Errorf("marshal %s yaml: %w", kind, err)
	}
	if err := writeFileAtomic(store.Path(kind), serialized); err != nil {
		return fmt.Errorf("write %s file: %w", kind, err)
	}
	return nil
}
