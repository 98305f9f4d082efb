package game

import (
	"github.com/cluequest/cluequest-go/internal/model"
)

// RevealedClue is a lineup entry as shown to the player. Red herrings are
// indistinguishable from genuine clues here; the split only surfaces in
// the post-accusation explanation.
type RevealedClue struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// Interview is a suspect statement as shown to the player
type Interview struct {
	Name      string `json:"name"`
	Statement string `json:"statement"`
}

// Snapshot is the full render model for one session, everything a client
// needs to draw the current screen. Culprit and explanation are only
// filled in after the accusation resolves.
type Snapshot struct {
	Username string `json:"username"`
	Level    int    `json:"level"`
	Progress int    `json:"progress"`

	InGame     bool             `json:"in_game"`
	Generating bool             `json:"generating"`
	Stage      model.Stage      `json:"stage,omitempty"`
	Difficulty model.Difficulty `json:"difficulty,omitempty"`

	Setting     string        `json:"setting,omitempty"`
	Description string        `json:"description,omitempty"`
	Victim      *model.Victim `json:"victim,omitempty"`
	Suspects    []string      `json:"suspects,omitempty"`
	ClueLabels  []string      `json:"clue_labels,omitempty"`

	LastClue      *RevealedClue `json:"last_clue,omitempty"`
	LastInterview *Interview    `json:"last_interview,omitempty"`

	Result      model.GuessResult `json:"result"`
	Culprit     string            `json:"culprit,omitempty"`
	Explanation string            `json:"explanation,omitempty"`
}

// snapshotLocked builds the render model for a session; callers must hold
// the controller mutex.
func (c *Controller) snapshotLocked(gs *model.GameSession) *Snapshot {
	snap := &Snapshot{
		Username:   gs.Username,
		Level:      gs.Level(),
		Progress:   gs.Progress,
		InGame:     gs.InGame(),
		Generating: gs.Generating,
		Stage:      gs.Stage,
		Difficulty: gs.Difficulty,
		Result:     gs.Result,
	}

	if gs.Scenario == nil {
		return snap
	}

	sc := gs.Scenario
	victim := sc.Victim
	snap.Setting = sc.Setting
	snap.Description = sc.Description
	snap.Victim = &victim
	snap.Suspects = sc.SuspectNames()

	lineup := sc.Lineup()
	snap.ClueLabels = make([]string, len(lineup))
	for i, entry := range lineup {
		snap.ClueLabels[i] = entry.Label
	}

	if gs.LastClue != nil {
		snap.LastClue = &RevealedClue{
			Label: gs.LastClue.Label,
			Text:  gs.LastClue.Item.Flatten(),
		}
	}
	if gs.LastInterview != nil {
		snap.LastInterview = &Interview{
			Name:      gs.LastInterview.Name,
			Statement: gs.LastInterview.Detail.Flatten(),
		}
	}

	if gs.Stage == model.StageComplete {
		snap.Culprit = sc.Culprit
		snap.Explanation = sc.Explanation.Flatten()
	}

	return snap
}
