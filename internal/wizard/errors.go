package wizard

import "errors"

var (
	ErrUnknownField     = errors.New("unknown field")
	ErrFarmNotFound     = errors.New("farm not found")
	ErrCropNotFound     = errors.New("crop not found")
	ErrInvalidOption    = errors.New("option not in catalog")
	ErrAlreadySubmitted = errors.New("registration already submitted")
	ErrSubmissionFailed = errors.New("registration submission failed")
	// ErrSubmissionInProgress is returned while another caller holds the
	// submission claim, or when a claim was lost to a newer one.
	ErrSubmissionInProgress = errors.New("registration submission in progress")
)

const (
	ValidationTitle   = "Incomplete Information"
	ValidationMessage = "Please fill all required fields before proceeding."
)

// ValidationFailure is the user-facing signal of a blocked advance. It is not an
// error: the wizard recovers locally and stays on the same step.
type ValidationFailure struct {
	Step          Step     `json:"step"`
	Title         string   `json:"title"`
	Message       string   `json:"message"`
	MissingFields []string `json:"missing_fields"`
}
