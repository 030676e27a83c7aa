package models

import (
	"time"

	"registration-service/internal/wizard"
	"registration-service/utils"
)

// request
type FieldTargetRequest struct {
	Section   string `json:"section" binding:"required"`
	FarmIndex int    `json:"farm_index"`
	CropIndex int    `json:"crop_index"`
	Field     string `json:"field" binding:"required"`
}

func (r FieldTargetRequest) Target() wizard.Target {
	return wizard.Target{
		Section:   wizard.Section(r.Section),
		FarmIndex: r.FarmIndex,
		CropIndex: r.CropIndex,
		Field:     r.Field,
	}
}

type UpdateFieldRequest struct {
	FieldTargetRequest
	Value any `json:"value"`
}

type SelectOptionRequest struct {
	FieldTargetRequest
	Option string `json:"option" binding:"required"`
}

type AskAdvisorRequest struct {
	Question string `json:"question" binding:"required"`
}

// response
type SessionView struct {
	SessionID       string                  `json:"session_id"`
	CurrentStep     wizard.Step             `json:"current_step"`
	TotalSteps      int                     `json:"total_steps"`
	Status          wizard.Status           `json:"status"`
	Registration    wizard.Registration     `json:"registration"`
	StepValid       bool                    `json:"step_valid"`
	MissingFields   []string                `json:"missing_fields"`
	FormatHints     []utils.ValidationError `json:"format_hints"`
	SubmitAttempts  int                     `json:"submit_attempts"`
	LastSubmitError string                  `json:"last_submit_error,omitempty"`
	Submitting      bool                    `json:"submitting"`
	StartedAt       time.Time               `json:"started_at"`
	SubmittedAt     *time.Time              `json:"submitted_at,omitempty"`
}

type StartSessionResponse struct {
	Session   SessionView `json:"session"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
}

type TransitionResponse struct {
	Transition wizard.Transition `json:"transition"`
	Session    SessionView       `json:"session"`
}

type FarmResponse struct {
	Farm    wizard.FarmInfo `json:"farm"`
	Session SessionView     `json:"session"`
}

type CropResponse struct {
	Crop    wizard.CropInfo `json:"crop"`
	Session SessionView     `json:"session"`
}

type RemoveResponse struct {
	Removed bool        `json:"removed"`
	Session SessionView `json:"session"`
}

type AnswerSource string

const (
	AnswerFromRule    AnswerSource = "rule"
	AnswerFromGemini  AnswerSource = "gemini"
	AnswerFromDefault AnswerSource = "default"
)

type AdvisorAnswer struct {
	Question string       `json:"question"`
	Answer   string       `json:"answer"`
	Topic    string       `json:"topic,omitempty"`
	Source   AnswerSource `json:"source"`
}
