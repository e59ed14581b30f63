package core

import (
	"encoding/binary"
	"slices"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for indexed entities.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// SourceKind identifies which family of suggestion source produced a candidate.
type SourceKind int

const (
	// SourceKindCompletion is a filename completion from the document index.
	SourceKindCompletion SourceKind = iota + 1
	// SourceKindPopular is a term from the curated popular vocabulary.
	SourceKindPopular
	// SourceKindSemantic is a contextual or corrected phrase.
	SourceKindSemantic
	// SourceKindLearned is a term from the learned library.
	SourceKindLearned
)

func (k SourceKind) String() string {
	switch k {
	case SourceKindCompletion:
		return "completion"
	case SourceKindPopular:
		return "popular"
	case SourceKindSemantic:
		return "semantic"
	case SourceKindLearned:
		return "learned"
	default:
		return "unknown"
	}
}

// Term is a normalized search phrase or word tracked by the learned library.
type Term struct {
	Key             string    // Normalized identity
	DisplayVariants []string  // Original spellings seen for Key, unique, in first-seen order
	Frequency       float64   // Accumulated usage weight
	CreatedAt       time.Time // When the term was first learned
	LastUsedAt      time.Time // When the term was last incremented
}

// HasVariant reports whether v is already one of the term's display variants.
func (t *Term) HasVariant(v string) bool {
	return slices.Contains(t.DisplayVariants, v)
}

// DisplayText returns the text used when the term is offered as a suggestion.
func (t *Term) DisplayText() string {
	if len(t.DisplayVariants) > 0 {
		return t.DisplayVariants[0]
	}
	return t.Key
}

// LibraryStats holds aggregate counters over the learned library.
type LibraryStats struct {
	TotalSearches   uint64
	UniqueTermCount int64
	LastUpdatedAt   time.Time
}

// SearchCount is a per-query search statistic, kept apart from the learned library.
type SearchCount struct {
	Query          string
	Count          uint64
	LastSearchedAt time.Time
}

// Suggestion is a ranked candidate produced for one query. Never persisted.
type Suggestion struct {
	Text        string
	Kind        SourceKind
	RawScore    float64 // Source-local score, not comparable across sources
	Score       float64 // Effective score after re-weighting by relevance
	Category    string  // Free-form provenance tag
	ContextNote string  // Optional annotation
	UsageCount  float64 // Only set for learned suggestions
}

// LibraryReport is the administrative view of the learned library.
type LibraryReport struct {
	Terms []*Term
	Stats LibraryStats
}
