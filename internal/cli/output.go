package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case AuthResult:
		o.printAuthResult(v)
	case AccountResult:
		o.printAccountResult(v)
	case Snapshot:
		o.printSnapshot(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// AuthResult response type (matches API)
type AuthResult struct {
	Username     string    `json:"username"`
	SessionToken string    `json:"session_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// AccountResult response type
type AccountResult struct {
	Username string `json:"username"`
	Progress int    `json:"progress"`
	Level    int    `json:"level"`
}

// Victim response type
type Victim struct {
	Name      string `json:"name"`
	Backstory string `json:"backstory,omitempty"`
}

// RevealedClue response type
type RevealedClue struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// Interview response type
type Interview struct {
	Name      string `json:"name"`
	Statement string `json:"statement"`
}

// Snapshot response type
type Snapshot struct {
	Username      string        `json:"username"`
	Level         int           `json:"level"`
	Progress      int           `json:"progress"`
	InGame        bool          `json:"in_game"`
	Stage         string        `json:"stage,omitempty"`
	Difficulty    string        `json:"difficulty,omitempty"`
	Setting       string        `json:"setting,omitempty"`
	Description   string        `json:"description,omitempty"`
	Victim        *Victim       `json:"victim,omitempty"`
	Suspects      []string      `json:"suspects,omitempty"`
	ClueLabels    []string      `json:"clue_labels,omitempty"`
	LastClue      *RevealedClue `json:"last_clue,omitempty"`
	LastInterview *Interview    `json:"last_interview,omitempty"`
	Result        string        `json:"result"`
	Culprit       string        `json:"culprit,omitempty"`
	Explanation   string        `json:"explanation,omitempty"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printAuthResult(a AuthResult) {
	fmt.Printf("Logged in as %s\n", a.Username)
	fmt.Printf("Session expires: %s\n", a.ExpiresAt.Local().Format(time.RFC1123))
	fmt.Println("Token saved")
}

func (o *Output) printAccountResult(a AccountResult) {
	fmt.Printf("Detective: %s\n", a.Username)
	fmt.Printf("Cases solved: %d\n", a.Progress)
	fmt.Printf("Current level: %d\n", a.Level)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Server status: %s\n", h.Status)
}

func (o *Output) printSnapshot(s Snapshot) {
	fmt.Printf("Level %d", s.Level)
	if s.Difficulty != "" {
		fmt.Printf(" (%s)", s.Difficulty)
	}
	fmt.Printf(" - detective %s\n", s.Username)

	if !s.InGame {
		fmt.Println("No case in progress. Start one with: cluequest game begin")
		return
	}

	fmt.Printf("\n%s\n", s.Setting)
	if s.Description != "" {
		fmt.Println(s.Description)
	}
	if s.Victim != nil {
		fmt.Printf("Victim: %s", s.Victim.Name)
		if s.Victim.Backstory != "" {
			fmt.Printf(" - %s", s.Victim.Backstory)
		}
		fmt.Println()
	}

	fmt.Printf("\nStage: %s\n", s.Stage)
	if len(s.Suspects) > 0 {
		fmt.Printf("Suspects: %s\n", strings.Join(s.Suspects, ", "))
	}
	if len(s.ClueLabels) > 0 {
		fmt.Printf("Clues: %s\n", strings.Join(s.ClueLabels, ", "))
	}

	if s.LastClue != nil {
		fmt.Printf("\n%s: %s\n", s.LastClue.Label, s.LastClue.Text)
	}
	if s.LastInterview != nil {
		fmt.Printf("\n%s says: %s\n", s.LastInterview.Name, s.LastInterview.Statement)
	}

	if s.Stage == "complete" {
		switch s.Result {
		case "correct":
			fmt.Println("\nCase closed! You named the culprit.")
		case "incorrect":
			fmt.Println("\nWrong accusation. The culprit walks free.")
		}
		fmt.Printf("Culprit: %s\n", s.Culprit)
		if s.Explanation != "" {
			fmt.Printf("Explanation: %s\n", s.Explanation)
		}
		fmt.Println("Continue with: cluequest game restart")
	}
}
