// Package wizard holds the farmer registration flow: four ordered steps over one
// in-memory aggregate, each step gating forward movement on its required fields.
//
// A Wizard is owned by a single session and is not safe for concurrent use.
// Callers that share one across goroutines (or processes) serialize access
// themselves; the service layer does this through the session store.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
)

type Step int

const (
	StepPersonal Step = iota + 1
	StepFarms
	StepLivestock
	StepAdditional
)

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusSubmitted  Status = "submitted"
)

// Signal tells the calling navigation context what to do after a transition.
type Signal string

const (
	SignalNone     Signal = "none"
	SignalExit     Signal = "exit"
	SignalComplete Signal = "complete"
)

// SubmissionLease is how long a submission claim blocks the session. A claim
// older than this is treated as abandoned and may be taken again.
const SubmissionLease = 2 * time.Minute

// maxIDDraws bounds how often the generator is asked again after a collision
// before a numeric suffix is used instead.
const maxIDDraws = 5

// Submitter receives the payload once the last step is advanced with valid data.
type Submitter interface {
	Submit(ctx context.Context, payload Payload) error
}

type SubmitterFunc func(ctx context.Context, payload Payload) error

func (f SubmitterFunc) Submit(ctx context.Context, payload Payload) error {
	return f(ctx, payload)
}

type Transition struct {
	From    Step               `json:"from"`
	To      Step               `json:"to"`
	Status  Status             `json:"status"`
	Signal  Signal             `json:"signal"`
	Blocked *ValidationFailure `json:"blocked,omitempty"`
	Payload *Payload           `json:"payload,omitempty"`
}

// State is the serializable form of a wizard.
type State struct {
	SessionID       string       `json:"session_id"`
	CurrentStep     Step         `json:"current_step"`
	Status          Status       `json:"status"`
	Registration    Registration `json:"registration"`
	StartedAt       time.Time    `json:"started_at"`
	SubmittedAt     *time.Time   `json:"submitted_at,omitempty"`
	SubmitAttempts  int          `json:"submit_attempts"`
	LastSubmitError string       `json:"last_submit_error,omitempty"`
	// SubmittingAt marks a claimed submission; it equals the registration date
	// of the payload handed out with the claim.
	SubmittingAt *time.Time `json:"submitting_at,omitempty"`
}

// SubmissionClaimed reports whether a submission claim is held at now.
func (s State) SubmissionClaimed(now time.Time) bool {
	return s.SubmittingAt != nil && now.Sub(*s.SubmittingAt) < SubmissionLease
}

type Wizard struct {
	st    State
	newID func() string
	now   func() time.Time
}

type Option func(*Wizard)

// WithIDGenerator replaces uuid.NewString for farm, crop and session ids.
func WithIDGenerator(gen func() string) Option {
	return func(w *Wizard) {
		if gen != nil {
			w.newID = gen
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(w *Wizard) {
		if now != nil {
			w.now = now
		}
	}
}

func WithSessionID(id string) Option {
	return func(w *Wizard) {
		w.st.SessionID = id
	}
}

// New starts a wizard at step 1 with an empty aggregate holding one empty farm.
func New(opts ...Option) *Wizard {
	w := &Wizard{
		newID: uuid.NewString,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.st.SessionID == "" {
		w.st.SessionID = w.newID()
	}
	w.st.CurrentStep = StepPersonal
	w.st.Status = StatusInProgress
	w.st.StartedAt = w.now().UTC()
	w.st.Registration = Registration{
		Farms:          []FarmInfo{},
		Livestock:      defaultLivestock(),
		AdditionalInfo: defaultAdditionalInfo(),
	}
	w.st.Registration.Farms = append(w.st.Registration.Farms, w.emptyFarm())
	return w
}

// FromState rebuilds a wizard from a stored State. The state is copied.
func FromState(st State, opts ...Option) *Wizard {
	w := &Wizard{
		newID: uuid.NewString,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.st = st
	w.st.Registration = st.Registration.Clone()
	w.st.SubmittedAt = cloneTime(st.SubmittedAt)
	w.st.SubmittingAt = cloneTime(st.SubmittingAt)
	return w
}

func (w *Wizard) State() State {
	st := w.st
	st.Registration = w.st.Registration.Clone()
	st.SubmittedAt = cloneTime(w.st.SubmittedAt)
	st.SubmittingAt = cloneTime(w.st.SubmittingAt)
	return st
}

func (w *Wizard) SessionID() string { return w.st.SessionID }
func (w *Wizard) CurrentStep() Step { return w.st.CurrentStep }
func (w *Wizard) Status() Status { return w.st.Status }
func (w *Wizard) Registration() Registration { return w.st.Registration.Clone() }

func (w *Wizard) submitted() bool {
	return w.st.Status == StatusSubmitted
}

// editable refuses changes once submitted and while a submission is claimed.
func (w *Wizard) editable() error {
	if w.submitted() {
		return ErrAlreadySubmitted
	}
	if w.st.SubmissionClaimed(w.now()) {
		return ErrSubmissionInProgress
	}
	return nil
}

// UpdateField writes one field. No value is rejected at this layer; text is
// stored trimmed. Errors only describe a target that does not exist or a wizard
// that no longer accepts changes.
func (w *Wizard) UpdateField(t Target, value any) error {
	if err := w.editable(); err != nil {
		return err
	}
	return w.st.Registration.applyField(t, value)
}

// Select applies a picker choice. Unlike UpdateField the option must belong to
// the catalog bound to the target field.
func (w *Wizard) Select(t Target, option string) error {
	if err := w.editable(); err != nil {
		return err
	}
	opts, ok := optionsFor(t.Section, t.Field)
	if !ok {
		return fmt.Errorf("%w: %s has no option list", ErrUnknownField, t)
	}
	if !slices.Contains(opts, option) {
		return fmt.Errorf("%w: %q for %s", ErrInvalidOption, option, t)
	}
	return w.st.Registration.applyField(t, option)
}

func (w *Wizard) AddFarm() (FarmInfo, error) {
	if err := w.editable(); err != nil {
		return FarmInfo{}, err
	}
	farm := w.emptyFarm()
	w.st.Registration.Farms = append(w.st.Registration.Farms, farm)
	return farm.clone(), nil
}

// RemoveFarm drops the farm with farmID. It refuses, returning false, while only
// one farm is left.
func (w *Wizard) RemoveFarm(farmID string) (bool, error) {
	if err := w.editable(); err != nil {
		return false, err
	}
	farms := w.st.Registration.Farms
	if len(farms) <= 1 {
		return false, nil
	}
	for i := range farms {
		if farms[i].ID == farmID {
			w.st.Registration.Farms = append(farms[:i:i], farms[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (w *Wizard) AddCrop(farmIndex int) (CropInfo, error) {
	if err := w.editable(); err != nil {
		return CropInfo{}, err
	}
	farm, err := w.st.Registration.farmAt(farmIndex)
	if err != nil {
		return CropInfo{}, err
	}
	crop := CropInfo{
		ID: w.uniqueID(func(id string) bool {
			for _, c := range farm.Crops {
				if c.ID == id {
					return true
				}
			}
			return false
		}),
		Purpose: PurposeCommercial,
	}
	farm.Crops = append(farm.Crops, crop)
	return crop, nil
}

func (w *Wizard) RemoveCrop(farmIndex int, cropID string) (bool, error) {
	if err := w.editable(); err != nil {
		return false, err
	}
	farm, err := w.st.Registration.farmAt(farmIndex)
	if err != nil {
		return false, err
	}
	for i := range farm.Crops {
		if farm.Crops[i].ID == cropID {
			farm.Crops = append(farm.Crops[:i:i], farm.Crops[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (w *Wizard) ValidateStep(step Step) bool {
	return ValidateStep(step, &w.st.Registration)
}

func (w *Wizard) MissingFields(step Step) []string {
	return MissingFields(step, &w.st.Registration)
}

// Advance moves one step forward when the current step is valid. On the last
// step it hands the payload to submitter instead; a failed submission leaves the
// wizard on the last step with the aggregate untouched so Advance can be retried.
//
// Advance is BeginAdvance, the Submit call and CompleteSubmission in one go.
// Callers that persist the wizard between the halves use those directly.
func (w *Wizard) Advance(ctx context.Context, submitter Submitter) (Transition, error) {
	t, payload, err := w.BeginAdvance()
	if err != nil || payload == nil {
		return t, err
	}

	var submitErr error
	if submitter == nil {
		submitErr = errors.New("no submitter configured")
	} else {
		submitErr = submitter.Submit(ctx, *payload)
	}
	return w.CompleteSubmission(*payload, submitErr)
}

// BeginAdvance validates the current step. Below the last step it moves
// forward and returns a nil payload. On the last step it claims the submission
// and returns the payload to submit; the claim holds off every other change
// until CompleteSubmission or until SubmissionLease has passed.
func (w *Wizard) BeginAdvance() (Transition, *Payload, error) {
	from := w.st.CurrentStep
	if err := w.editable(); err != nil {
		return w.transition(from), nil, err
	}

	if !w.ValidateStep(from) {
		t := w.transition(from)
		t.Blocked = &ValidationFailure{
			Step:          from,
			Title:         ValidationTitle,
			Message:       ValidationMessage,
			MissingFields: w.MissingFields(from),
		}
		return t, nil, nil
	}

	if from < StepAdditional {
		w.st.CurrentStep++
		return w.transition(from), nil, nil
	}

	payload := w.Payload()
	claimedAt := payload.RegistrationDate
	w.st.SubmittingAt = &claimedAt
	w.st.SubmitAttempts++
	return w.transition(from), &payload, nil
}

// CompleteSubmission records the outcome of submitting payload, which must be
// the one returned by the BeginAdvance holding the current claim.
func (w *Wizard) CompleteSubmission(payload Payload, submitErr error) (Transition, error) {
	from := w.st.CurrentStep
	if w.submitted() {
		return w.transition(from), ErrAlreadySubmitted
	}
	if w.st.SubmittingAt == nil || !w.st.SubmittingAt.Equal(payload.RegistrationDate) {
		return w.transition(from), fmt.Errorf("%w: claim was released or taken over", ErrSubmissionInProgress)
	}
	w.st.SubmittingAt = nil

	if submitErr != nil {
		w.st.LastSubmitError = submitErr.Error()
		if errors.Is(submitErr, ErrSubmissionFailed) {
			return w.transition(from), submitErr
		}
		return w.transition(from), fmt.Errorf("%w: %w", ErrSubmissionFailed, submitErr)
	}

	submittedAt := payload.RegistrationDate
	w.st.Status = StatusSubmitted
	w.st.SubmittedAt = &submittedAt
	w.st.LastSubmitError = ""

	t := w.transition(from)
	t.Signal = SignalComplete
	t.Payload = &payload
	return t, nil
}

// Retreat moves one step back without validation. At step 1 the step is kept and
// the transition asks the caller to exit the flow.
func (w *Wizard) Retreat() (Transition, error) {
	from := w.st.CurrentStep
	if err := w.editable(); err != nil {
		return w.transition(from), err
	}
	if from <= StepPersonal {
		t := w.transition(from)
		t.Signal = SignalExit
		return t, nil
	}
	w.st.CurrentStep--
	return w.transition(from), nil
}

// Payload snapshots the aggregate stamped with the current time.
func (w *Wizard) Payload() Payload {
	reg := w.st.Registration.Clone()
	return Payload{
		SessionID:        w.st.SessionID,
		PersonalInfo:     reg.PersonalInfo,
		Farms:            reg.Farms,
		Livestock:        reg.Livestock,
		AdditionalInfo:   reg.AdditionalInfo,
		RegistrationDate: w.now().UTC(),
	}
}

func (w *Wizard) transition(from Step) Transition {
	return Transition{
		From:   from,
		To:     w.st.CurrentStep,
		Status: w.st.Status,
		Signal: SignalNone,
	}
}

func (w *Wizard) emptyFarm() FarmInfo {
	farms := w.st.Registration.Farms
	return FarmInfo{
		ID: w.uniqueID(func(id string) bool {
			for _, f := range farms {
				if f.ID == id {
					return true
				}
			}
			return false
		}),
		Crops: []CropInfo{},
	}
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	at := *t
	return &at
}

func (w *Wizard) uniqueID(taken func(string) bool) string {
	base := w.newID()
	id := base
	for n := 1; taken(id); n++ {
		if n < maxIDDraws {
			base = w.newID()
			id = base
			continue
		}
		id = fmt.Sprintf("%s-%d", base, n)
	}
	return id
}
