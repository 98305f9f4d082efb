// Package scenario validates and normalizes raw generator output into the
// structured mystery entity the game plays against. Parsing is pure and
// deterministic: the same text always yields the same scenario or the same
// error, and a failure never leaves a partially populated result.
package scenario

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cluequest/cluequest-go/internal/model"
)

// rawScenario is the wire shape of a generated mystery. Duck-typed fields
// stay raw until normalized into tagged model.Item variants.
type rawScenario struct {
	Setting     string            `json:"setting"`
	Description string            `json:"description"`
	Victim      json.RawMessage   `json:"victim"`
	Suspects    json.RawMessage   `json:"suspects"`
	Clues       []json.RawMessage `json:"clues"`
	RedHerrings []json.RawMessage `json:"red_herrings"`
	Culprit     string            `json:"culprit"`
	Explanation json.RawMessage   `json:"explanation"`
}

// Parse validates raw generator output and normalizes it into a Scenario.
// Required fields are setting, victim, suspects (at least one), clues and
// culprit; description, red_herrings and explanation default to empty.
// The culprit must case-insensitively match a suspect name.
func Parse(raw string) (*model.Scenario, error) {
	text := extractJSON(raw)
	if text == "" {
		return nil, fmt.Errorf("%w: no JSON object in generator output", model.ErrMalformedScenario)
	}

	var rs rawScenario
	if err := json.Unmarshal([]byte(text), &rs); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrMalformedScenario, err)
	}

	if rs.Setting == "" {
		return nil, fmt.Errorf("%w: missing setting", model.ErrMalformedScenario)
	}
	if len(rs.Victim) == 0 {
		return nil, fmt.Errorf("%w: missing victim", model.ErrMalformedScenario)
	}
	if len(rs.Suspects) == 0 {
		return nil, fmt.Errorf("%w: missing suspects", model.ErrMalformedScenario)
	}
	if rs.Clues == nil {
		return nil, fmt.Errorf("%w: missing clues", model.ErrMalformedScenario)
	}
	if strings.TrimSpace(rs.Culprit) == "" {
		return nil, fmt.Errorf("%w: missing culprit", model.ErrMalformedScenario)
	}

	victim, err := parseVictim(rs.Victim)
	if err != nil {
		return nil, err
	}

	suspects, err := parseSuspects(rs.Suspects)
	if err != nil {
		return nil, err
	}
	if len(suspects) == 0 {
		return nil, fmt.Errorf("%w: suspects is empty", model.ErrMalformedScenario)
	}

	clues, err := parseItems(rs.Clues, "clues")
	if err != nil {
		return nil, err
	}
	redHerrings, err := parseItems(rs.RedHerrings, "red_herrings")
	if err != nil {
		return nil, err
	}

	explanation := model.TextItem("")
	if len(rs.Explanation) > 0 {
		explanation, err = parseItem(rs.Explanation, "explanation")
		if err != nil {
			return nil, err
		}
	}

	s := &model.Scenario{
		Setting:     rs.Setting,
		Description: rs.Description,
		Victim:      victim,
		Suspects:    suspects,
		Clues:       clues,
		RedHerrings: redHerrings,
		Culprit:     strings.TrimSpace(rs.Culprit),
		Explanation: explanation,
	}

	if _, ok := s.FindSuspect(s.Culprit); !ok {
		return nil, fmt.Errorf("%w: culprit %q not in suspects", model.ErrCulpritMismatch, s.Culprit)
	}

	return s, nil
}

// CountsMatch reports whether the scenario carries exactly the clue and red
// herring counts that were requested from the generator. A mismatch is
// playable drift, not an error; callers log it rather than reject.
func CountsMatch(s *model.Scenario, wantClues, wantRedHerrings int) bool {
	return len(s.Clues) == wantClues && len(s.RedHerrings) == wantRedHerrings
}

func parseVictim(raw json.RawMessage) (model.Victim, error) {
	// Bare name form
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		return model.Victim{Name: name}, nil
	}

	// Structured {name, backstory} form
	keys, values, err := decodeOrderedObject(raw)
	if err != nil {
		return model.Victim{}, fmt.Errorf("%w: victim: %v", model.ErrMalformedScenario, err)
	}
	var victim model.Victim
	for i, k := range keys {
		switch strings.ToLower(k) {
		case "name":
			victim.Name = stringifyScalar(values[i])
		case "backstory":
			victim.Backstory = stringifyScalar(values[i])
		}
	}
	if victim.Name == "" {
		return model.Victim{}, fmt.Errorf("%w: victim has no name", model.ErrMalformedScenario)
	}
	return victim, nil
}

func parseSuspects(raw json.RawMessage) ([]model.Suspect, error) {
	keys, values, err := decodeOrderedObject(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: suspects: %v", model.ErrMalformedScenario, err)
	}

	suspects := make([]model.Suspect, 0, len(keys))
	for i, name := range keys {
		detail, err := parseItem(values[i], "suspect "+name)
		if err != nil {
			return nil, err
		}
		suspects = append(suspects, model.Suspect{Name: name, Detail: detail})
	}
	return suspects, nil
}

func parseItems(raws []json.RawMessage, field string) ([]model.Item, error) {
	items := make([]model.Item, 0, len(raws))
	for _, raw := range raws {
		item, err := parseItem(raw, field)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// parseItem normalizes a duck-typed element into a tagged Item
func parseItem(raw json.RawMessage, field string) (model.Item, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return model.TextItem(""), nil
	}

	switch trimmed[0] {
	case '{':
		keys, values, err := decodeOrderedObject(trimmed)
		if err != nil {
			return model.Item{}, fmt.Errorf("%w: %s: %v", model.ErrMalformedScenario, field, err)
		}
		mapped := make(map[string]string, len(keys))
		for i, k := range keys {
			mapped[k] = stringifyScalar(values[i])
		}
		return model.MappingItem(keys, mapped), nil
	case '[':
		var elems []json.RawMessage
		if err := json.Unmarshal(trimmed, &elems); err != nil {
			return model.Item{}, fmt.Errorf("%w: %s: %v", model.ErrMalformedScenario, field, err)
		}
		flat := make([]string, len(elems))
		for i, e := range elems {
			flat[i] = stringifyScalar(e)
		}
		return model.ListItem(flat), nil
	default:
		return model.TextItem(stringifyScalar(trimmed)), nil
	}
}

// decodeOrderedObject decodes a JSON object preserving key order, which
// encoding/json's map decoding discards. Order matters because flattened
// output must reproduce the generator's emission order.
func decodeOrderedObject(raw json.RawMessage) ([]string, []json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, fmt.Errorf("expected object, got %v", tok)
	}

	var keys []string
	var values []json.RawMessage
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("expected object key, got %v", keyTok)
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, nil, err
		}

		keys = append(keys, key)
		values = append(values, value)
	}

	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}
	return keys, values, nil
}

// stringifyScalar renders a raw JSON value as display text: strings are
// unquoted, everything else keeps its literal JSON form.
func stringifyScalar(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(raw))
}
