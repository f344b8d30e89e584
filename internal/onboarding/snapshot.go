package onboarding

// Snapshot is a read-only view of a session for rendering.
type Snapshot struct {
	Step            int             `json:"current_step"`
	StepID          StepID          `json:"step_id"`
	Title           string          `json:"title"`
	Subtitle        string          `json:"subtitle"`
	Fields          []FieldSpec     `json:"fields"`
	TotalSteps      int             `json:"total_steps"`
	ProgressPercent int             `json:"progress_percent"`
	CanAdvance      bool            `json:"can_advance"`
	IsLastStep      bool            `json:"is_last_step"`
	Finished        bool            `json:"is_complete"`
	Preferences     UserPreferences `json:"preferences"`
}

func (s *Session) Snapshot() Snapshot {
	step := s.Step()
	return Snapshot{
		Step:            s.current,
		StepID:          step.ID,
		Title:           step.Title,
		Subtitle:        step.Subtitle,
		Fields:          StepFields(step),
		TotalSteps:      len(s.steps),
		ProgressPercent: s.ProgressPercent(),
		CanAdvance:      !s.finished && s.CanAdvance(),
		IsLastStep:      s.current == len(s.steps)-1,
		Finished:        s.finished,
		Preferences:     s.prefs.Clone(),
	}
}

func StepFields(step Step) []FieldSpec {
	specs := make([]FieldSpec, 0, len(step.Fields))
	for _, f := range step.Fields {
		specs = append(specs, fieldSpecs[f])
	}
	return specs
}
