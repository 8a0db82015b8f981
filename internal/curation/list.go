// Package curation holds the in-memory ordered list of place references a
// user edits before saving a collection. It is a plain value object with no
// storage or HTTP dependencies so the rules (bounds, duplicates, reordering)
// can be tested on their own.
package curation

import (
	"errors"
	"fmt"
	"strings"

	"mekanlist/internal/utils"
)

// Kind tags a PlaceRef as lookup-sourced or freeform text.
type Kind string

const (
	KindExternal Kind = "external"
	KindFreeform Kind = "freeform"
)

// Default list bounds. Below the minimum a save is blocked; at the maximum
// further adds are refused.
const (
	DefaultMinPlaces = 2
	DefaultMaxPlaces = 20
)

var (
	ErrDuplicateEntry = errors.New("place already in list")
	ErrListFull       = errors.New("list is full")
	ErrBadIndex       = errors.New("index out of range")
)

// PlaceRef identifies one list entry: either an external place with its
// fetched metadata, or a bare freeform name. TempID is client-local and
// never persisted.
type PlaceRef struct {
	TempID string `json:"temp_id"`
	Kind   Kind   `json:"kind" binding:"required,oneof=external freeform"`
	Name   string `json:"name" binding:"required"`

	// External metadata (empty for freeform entries).
	ExternalID        string   `json:"external_id"`
	Address           string   `json:"address"`
	Phone             string   `json:"phone"`
	Website           string   `json:"website"`
	Latitude          *float64 `json:"latitude"`
	Longitude         *float64 `json:"longitude"`
	Rating            *float64 `json:"rating"`
	RatingCount       *int     `json:"rating_count"`
	PriceLevel        *int     `json:"price_level"`
	OpeningHours      string   `json:"opening_hours"`
	Photos            []string `json:"photos"`
	ExtractedLocation string   `json:"extracted_location"`

	// Curator annotations carried onto the junction row.
	Note             string   `json:"note"`
	RecommendedItems []string `json:"recommended_items"`
}

// List is an ordered set of PlaceRefs with session-level dedup.
type List struct {
	Min   int
	Max   int
	items []PlaceRef
}

// NewList returns an empty list with the default [2,20] bounds.
func NewList() *List {
	return &List{Min: DefaultMinPlaces, Max: DefaultMaxPlaces}
}

// NewListFrom builds a list with default bounds from existing refs, adding
// each in order. It fails on duplicates or overflow so a malformed
// submission payload cannot sneak past the editor rules.
func NewListFrom(refs []PlaceRef) (*List, error) {
	l := NewList()
	for i, ref := range refs {
		if err := l.Add(ref); err != nil {
			return nil, fmt.Errorf("entry %d (%s): %w", i, ref.Name, err)
		}
	}
	return l, nil
}

// Add appends a ref to the end of the list. External entries are rejected
// when their external id is already present; freeform entries when a
// case-insensitive name match exists. Assigns a TempID when missing.
func (l *List) Add(ref PlaceRef) error {
	if len(l.items) >= l.Max {
		return ErrListFull
	}
	ref.Name = strings.TrimSpace(ref.Name)
	if ref.Name == "" && ref.Kind == KindFreeform {
		return errors.New("freeform place needs a name")
	}

	for _, existing := range l.items {
		if ref.Kind == KindExternal && ref.ExternalID != "" && existing.ExternalID == ref.ExternalID {
			return ErrDuplicateEntry
		}
		if ref.Kind == KindFreeform && foldName(existing.Name) == foldName(ref.Name) {
			return ErrDuplicateEntry
		}
	}

	if ref.TempID == "" {
		ref.TempID = "tmp-" + utils.RandStringBytesMaskImpr(8)
	}
	l.items = append(l.items, ref)
	return nil
}

// Remove drops the entry with the given temp id. Returns false when absent.
func (l *List) Remove(tempID string) bool {
	for i, item := range l.items {
		if item.TempID == tempID {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return true
		}
	}
	return false
}

// Reorder moves the entry at from to position to, shifting everything in
// between by one. A stable move: all other relative positions survive.
func (l *List) Reorder(from, to int) error {
	if from < 0 || from >= len(l.items) || to < 0 || to >= len(l.items) {
		return ErrBadIndex
	}
	if from == to {
		return nil
	}
	moved := l.items[from]
	l.items = append(l.items[:from], l.items[from+1:]...)
	rest := append([]PlaceRef{}, l.items[to:]...)
	l.items = append(append(l.items[:to], moved), rest...)
	return nil
}

// Validate checks the submission bounds. Add already refuses overflow, so in
// practice this only ever reports "too few".
func (l *List) Validate() error {
	if len(l.items) < l.Min {
		return fmt.Errorf("at least %d places required, have %d", l.Min, len(l.items))
	}
	if len(l.items) > l.Max {
		return fmt.Errorf("at most %d places allowed, have %d", l.Max, len(l.items))
	}
	return nil
}

// Items returns a copy of the ordered entries.
func (l *List) Items() []PlaceRef {
	out := make([]PlaceRef, len(l.items))
	copy(out, l.items)
	return out
}

// Len reports the current entry count.
func (l *List) Len() int {
	return len(l.items)
}

// foldName lowercases a display name for duplicate comparison. Plain Unicode
// lowercasing, matching what the editor UI enforced.
func foldName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
