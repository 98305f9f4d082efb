// Package generator builds mystery generation requests and hands them to
// the external text-generation collaborator. It owns the level-to-parameter
// curve; it does not validate what comes back — that is the parser's job.
package generator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cluequest/cluequest-go/internal/dependencies/textgen"
	"github.com/cluequest/cluequest-go/internal/model"
)

// suspectCount is fixed across levels; difficulty scales through the
// clue/red-herring ratio instead
const suspectCount = 4

// Params are the generation parameters derived from the level.
// Clues thin out and red herrings multiply as the player climbs.
type Params struct {
	NumClues       int
	NumRedHerrings int
}

// ParamsForLevel derives generation parameters for a level (level >= 1):
// clues start at 3 and drop one every 5 levels (never below 1), red
// herrings start at 2 and gain one every 5 levels.
func ParamsForLevel(level int) Params {
	numClues := 3 - level/5
	if numClues < 1 {
		numClues = 1
	}
	return Params{
		NumClues:       numClues,
		NumRedHerrings: 2 + level/5,
	}
}

// Service is the adapter in front of the text-generation collaborator
type Service struct {
	gen    textgen.Generator
	logger *slog.Logger
}

// New creates a new generator service
func New(gen textgen.Generator, logger *slog.Logger) *Service {
	return &Service{
		gen:    gen,
		logger: logger,
	}
}

// RequestScenario performs exactly one generation call for the given level
// and difficulty, returning the raw text for the parser. It never retries;
// a failed call leaves nothing behind and the player can simply try again.
func (s *Service) RequestScenario(ctx context.Context, level int, difficulty model.Difficulty) (string, Params, error) {
	params := ParamsForLevel(level)
	prompt := buildPrompt(level, difficulty, params)

	s.logger.Info("requesting scenario",
		slog.Int("level", level),
		slog.String("difficulty", string(difficulty)),
		slog.Int("num_clues", params.NumClues),
		slog.Int("num_red_herrings", params.NumRedHerrings),
	)

	raw, err := s.gen.Complete(ctx, prompt)
	if err != nil {
		return "", params, err
	}
	return raw, params, nil
}

// buildPrompt writes the generation instructions. The requested counts are
// instructions to the collaborator, not guarantees; the parser checks the
// response rather than trusting them.
func buildPrompt(level int, difficulty model.Difficulty, params Params) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are a mystery story generator. Create a random detective story for level %d with:\n", level)
	b.WriteString("- A setting (e.g., mansion, park, office).\n")
	b.WriteString("- A description of what crime happened.\n")
	b.WriteString("- A victim and their backstory.\n")
	fmt.Fprintf(&b, "- %d suspects, each with motives and alibis.\n", suspectCount)
	fmt.Fprintf(&b, "- %d key clues.\n", params.NumClues)
	fmt.Fprintf(&b, "- %d red herrings.\n", params.NumRedHerrings)
	b.WriteString("- One culprit.\n")
	b.WriteString("- An explanation of why the culprit committed the crime.\n")
	fmt.Fprintf(&b, "- Make it a %s difficulty.\n", difficulty)
	b.WriteString("Provide the output in JSON format:\n")
	b.WriteString(`{
    "setting": "",
    "description": "",
    "victim": "",
    "suspects": {
        "<Suspect 1 Full Name>": "",
        "<Suspect 2 Full Name>": "",
        "<Suspect 3 Full Name>": "",
        "<Suspect 4 Full Name>": ""
    },
    "clues": [],
    "red_herrings": [],
    "culprit": "",
    "explanation": ""
}
`)
	b.WriteString("Only output the JSON part.\n")
	b.WriteString("Only output the first and last name for the culprit, no prefixes such as Dr or Mr or Mrs or Ms.\n")
	b.WriteString("Don't explain why they are red herrings.\n")

	return b.String()
}
