package model

import (
	"fmt"
	"strings"
)

// Difficulty is the requested tone of a generated mystery
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty normalizes a difficulty label
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(strings.ToLower(strings.TrimSpace(s))) {
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyMedium, "":
		// Medium is the default when the caller doesn't care
		return DifficultyMedium, nil
	case DifficultyHard:
		return DifficultyHard, nil
	default:
		return "", ErrInvalidDifficulty
	}
}

// ItemKind discriminates the shapes a generator emits for a scenario element
type ItemKind string

const (
	ItemText    ItemKind = "text"
	ItemMapping ItemKind = "mapping"
	ItemList    ItemKind = "list"
)

// Item is a scenario element (clue, red herring, suspect detail or
// explanation). Generators emit these either as plain prose, as a key/value
// mapping, or as a list; the tagged variant replaces per-render-site type
// switching with a single Flatten call.
type Item struct {
	Kind   ItemKind          `json:"kind"`
	Text   string            `json:"text,omitempty"`
	Keys   []string          `json:"keys,omitempty"`   // mapping key order as emitted
	Values map[string]string `json:"values,omitempty"` // mapping values by key
	Elems  []string          `json:"elems,omitempty"`  // list elements in order
}

// TextItem wraps plain prose as an Item
func TextItem(s string) Item {
	return Item{Kind: ItemText, Text: s}
}

// MappingItem builds a structured Item preserving key order
func MappingItem(keys []string, values map[string]string) Item {
	return Item{Kind: ItemMapping, Keys: keys, Values: values}
}

// ListItem builds a sequence Item
func ListItem(elems []string) Item {
	return Item{Kind: ItemList, Elems: elems}
}

// IsZero reports whether the item carries no content
func (it Item) IsZero() bool {
	return it.Text == "" && len(it.Keys) == 0 && len(it.Elems) == 0
}

// Flatten renders the item as a single line of text.
// Mappings become "key: value" pairs and lists become bare values, joined
// with a comma-and-space separator in emission order.
func (it Item) Flatten() string {
	switch it.Kind {
	case ItemMapping:
		pairs := make([]string, 0, len(it.Keys))
		for _, k := range it.Keys {
			pairs = append(pairs, fmt.Sprintf("%s: %s", k, it.Values[k]))
		}
		return strings.Join(pairs, ", ")
	case ItemList:
		return strings.Join(it.Elems, ", ")
	default:
		return it.Text
	}
}

// Victim is the victim of the generated crime. Backstory is empty when the
// generator emitted the victim as a bare name.
type Victim struct {
	Name      string `json:"name"`
	Backstory string `json:"backstory,omitempty"`
}

// Suspect pairs a suspect's full name with their generated detail
// (motive, alibi, or free prose)
type Suspect struct {
	Name   string `json:"name"`
	Detail Item   `json:"detail"`
}

// ClueKind distinguishes genuine clues from red herrings.
// Both render identically to the player.
type ClueKind string

const (
	ClueKindClue       ClueKind = "clue"
	ClueKindRedHerring ClueKind = "red_herring"
)

// LineupEntry is one investigable item in the combined clue lineup
type LineupEntry struct {
	Label string   `json:"label"` // "Clue 1", "Clue 2", ...
	Kind  ClueKind `json:"kind"`
	Item  Item     `json:"item"`
}

// Scenario is one generated mystery case. It is immutable once parsed;
// a session discards it on restart or level completion.
type Scenario struct {
	Setting     string    `json:"setting"`
	Description string    `json:"description,omitempty"`
	Victim      Victim    `json:"victim"`
	Suspects    []Suspect `json:"suspects"`
	Clues       []Item    `json:"clues"`
	RedHerrings []Item    `json:"red_herrings,omitempty"`
	Culprit     string    `json:"culprit"`
	Explanation Item      `json:"explanation,omitempty"`
}

// SuspectNames returns suspect full names in generation order
func (s *Scenario) SuspectNames() []string {
	names := make([]string, len(s.Suspects))
	for i, sp := range s.Suspects {
		names[i] = sp.Name
	}
	return names
}

// FindSuspect looks up a suspect by full name, case-insensitively
func (s *Scenario) FindSuspect(name string) (Suspect, bool) {
	name = strings.TrimSpace(name)
	for _, sp := range s.Suspects {
		if strings.EqualFold(sp.Name, name) {
			return sp, true
		}
	}
	return Suspect{}, false
}

// IsCulprit reports whether an accusation names the culprit.
// The comparison is an exact full-name match, case-insensitive and trimmed.
func (s *Scenario) IsCulprit(accusation string) bool {
	return strings.EqualFold(strings.TrimSpace(accusation), strings.TrimSpace(s.Culprit))
}

// Lineup returns clues and red herrings as one labeled sequence.
// Labels continue numbering across the boundary so the renderer never
// distinguishes the two kinds by offset arithmetic.
func (s *Scenario) Lineup() []LineupEntry {
	lineup := make([]LineupEntry, 0, len(s.Clues)+len(s.RedHerrings))
	for _, it := range s.Clues {
		lineup = append(lineup, LineupEntry{
			Label: fmt.Sprintf("Clue %d", len(lineup)+1),
			Kind:  ClueKindClue,
			Item:  it,
		})
	}
	for _, it := range s.RedHerrings {
		lineup = append(lineup, LineupEntry{
			Label: fmt.Sprintf("Clue %d", len(lineup)+1),
			Kind:  ClueKindRedHerring,
			Item:  it,
		})
	}
	return lineup
}
