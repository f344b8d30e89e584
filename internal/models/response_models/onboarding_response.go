package response_models

import "sallyo/internal/onboarding"

type StepResponse struct {
	Index    int                    `json:"index"`
	ID       onboarding.StepID      `json:"id"`
	Title    string                 `json:"title"`
	Subtitle string                 `json:"subtitle"`
	Optional bool                   `json:"optional"`
	Fields   []onboarding.FieldSpec `json:"fields"`
}

type SessionResponse struct {
	SessionID string             `json:"session_id"`
	Outcome   onboarding.Outcome `json:"outcome,omitempty"`
	onboarding.Snapshot
}

type PreferencesResponse struct {
	Key         string                     `json:"key"`
	Preferences onboarding.UserPreferences `json:"preferences"`
	SearchBrief string                     `json:"search_brief,omitempty"`
	UpdatedAt   int64                      `json:"updated_at"`
}
