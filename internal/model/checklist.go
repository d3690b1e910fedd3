package model

// StepAction is an opaque navigation hint attached to a checklist step. The
// UI layer decides how (or whether) to present it.
type StepAction struct {
	Label    string `json:"label"`
	ActionID string `json:"action_id"`
}

// ChecklistStep is one ordinal item in the seven-step readiness sequence.
type ChecklistStep struct {
	ID          string       `json:"id"`
	Label       string       `json:"label"`
	Status      StepStatus   `json:"status"`
	Description string       `json:"description"`
	Actions     []StepAction `json:"actions,omitempty"`
}

// ChecklistBlocked reports whether any step carries an error status.
func ChecklistBlocked(steps []ChecklistStep) bool {
	for _, step := range steps {
		if step.Status == StatusError {
			return true
		}
	}
	return false
}
