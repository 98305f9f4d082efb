package request

// SignUpRequest is the request body for creating an account
type SignUpRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LogInRequest is the request body for logging in
type LogInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// BeginRequest is the request body for starting a level.
// Difficulty defaults to medium when omitted.
type BeginRequest struct {
	Difficulty string `json:"difficulty,omitempty"`
}

// StageRequest is the request body for moving between stages
type StageRequest struct {
	Stage string `json:"stage"`
}

// InterviewRequest is the request body for interviewing a suspect
type InterviewRequest struct {
	Suspect string `json:"suspect"`
}

// AccuseRequest is the request body for submitting an accusation
type AccuseRequest struct {
	Suspect string `json:"suspect"`
}
