package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"registration-service/internal/models"
	"registration-service/internal/repository"
	"registration-service/internal/wizard"
	"registration-service/utils"
)

const totalSteps = int(wizard.StepAdditional)

type IRegistrationService interface {
	Options() wizard.Catalog
	StartSession(ctx context.Context) (models.StartSessionResponse, error)
	GetSession(ctx context.Context, sessionID string) (models.SessionView, error)
	UpdateField(ctx context.Context, sessionID string, target wizard.Target, value any) (models.SessionView, error)
	Select(ctx context.Context, sessionID string, target wizard.Target, option string) (models.SessionView, error)
	AddFarm(ctx context.Context, sessionID string) (models.FarmResponse, error)
	RemoveFarm(ctx context.Context, sessionID, farmID string) (models.RemoveResponse, error)
	AddCrop(ctx context.Context, sessionID string, farmIndex int) (models.CropResponse, error)
	RemoveCrop(ctx context.Context, sessionID string, farmIndex int, cropID string) (models.RemoveResponse, error)
	// Advance returns the transition even when the error wraps
	// wizard.ErrSubmissionFailed; the session stays on the last step.
	Advance(ctx context.Context, sessionID string) (models.TransitionResponse, error)
	Retreat(ctx context.Context, sessionID string) (models.TransitionResponse, error)
	GetRegistration(ctx context.Context, registrationID string) (*wizard.Payload, error)
}

type RegistrationService struct {
	sessions      repository.WizardSessionRepository
	registrations repository.IRegistrationRepository
	submitter     wizard.Submitter
	tokens        *TokenService
	wizardOpts    []wizard.Option
}

func NewRegistrationService(
	sessions repository.WizardSessionRepository,
	registrations repository.IRegistrationRepository,
	submitter wizard.Submitter,
	tokens *TokenService,
	opts ...wizard.Option,
) IRegistrationService {
	return &RegistrationService{
		sessions:      sessions,
		registrations: registrations,
		submitter:     submitter,
		tokens:        tokens,
		wizardOpts:    opts,
	}
}

func (s *RegistrationService) Options() wizard.Catalog {
	return wizard.Options()
}

func (s *RegistrationService) StartSession(ctx context.Context) (models.StartSessionResponse, error) {
	w := wizard.New(s.wizardOpts...)
	st := w.State()
	if err := s.sessions.Create(ctx, st); err != nil {
		return models.StartSessionResponse{}, fmt.Errorf("failed to create session: %w", err)
	}

	token, expiresAt, err := s.tokens.GenerateSessionToken(st.SessionID)
	if err != nil {
		if delErr := s.sessions.Delete(ctx, st.SessionID); delErr != nil {
			slog.Error("failed to drop session after token error", "session_id", st.SessionID, "error", delErr)
		}
		return models.StartSessionResponse{}, err
	}

	slog.Info("registration session started", "session_id", st.SessionID)
	return models.StartSessionResponse{
		Session:   buildSessionView(st),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *RegistrationService) GetSession(ctx context.Context, sessionID string) (models.SessionView, error) {
	st, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return models.SessionView{}, err
	}
	return buildSessionView(st), nil
}

func (s *RegistrationService) UpdateField(ctx context.Context, sessionID string, target wizard.Target, value any) (models.SessionView, error) {
	st, err := s.sessions.Update(ctx, sessionID, func(w *wizard.Wizard) error {
		return w.UpdateField(target, value)
	})
	if err != nil {
		return models.SessionView{}, err
	}
	return buildSessionView(st), nil
}

func (s *RegistrationService) Select(ctx context.Context, sessionID string, target wizard.Target, option string) (models.SessionView, error) {
	st, err := s.sessions.Update(ctx, sessionID, func(w *wizard.Wizard) error {
		return w.Select(target, option)
	})
	if err != nil {
		return models.SessionView{}, err
	}
	return buildSessionView(st), nil
}

func (s *RegistrationService) AddFarm(ctx context.Context, sessionID string) (models.FarmResponse, error) {
	var farm wizard.FarmInfo
	st, err := s.sessions.Update(ctx, sessionID, func(w *wizard.Wizard) error {
		var err error
		farm, err = w.AddFarm()
		return err
	})
	if err != nil {
		return models.FarmResponse{}, err
	}
	return models.FarmResponse{Farm: farm, Session: buildSessionView(st)}, nil
}

func (s *RegistrationService) RemoveFarm(ctx context.Context, sessionID, farmID string) (models.RemoveResponse, error) {
	var removed bool
	st, err := s.sessions.Update(ctx, sessionID, func(w *wizard.Wizard) error {
		var err error
		removed, err = w.RemoveFarm(farmID)
		return err
	})
	if err != nil {
		return models.RemoveResponse{}, err
	}
	return models.RemoveResponse{Removed: removed, Session: buildSessionView(st)}, nil
}

func (s *RegistrationService) AddCrop(ctx context.Context, sessionID string, farmIndex int) (models.CropResponse, error) {
	var crop wizard.CropInfo
	st, err := s.sessions.Update(ctx, sessionID, func(w *wizard.Wizard) error {
		var err error
		crop, err = w.AddCrop(farmIndex)
		return err
	})
	if err != nil {
		return models.CropResponse{}, err
	}
	return models.CropResponse{Crop: crop, Session: buildSessionView(st)}, nil
}

func (s *RegistrationService) RemoveCrop(ctx context.Context, sessionID string, farmIndex int, cropID string) (models.RemoveResponse, error) {
	var removed bool
	st, err := s.sessions.Update(ctx, sessionID, func(w *wizard.Wizard) error {
		var err error
		removed, err = w.RemoveCrop(farmIndex, cropID)
		return err
	})
	if err != nil {
		return models.RemoveResponse{}, err
	}
	return models.RemoveResponse{Removed: removed, Session: buildSessionView(st)}, nil
}

// Advance claims the submission inside one session update, submits once
// outside it and records the outcome in a second update. A retried update
// never repeats the hand-off, and changes racing it see
// wizard.ErrSubmissionInProgress.
func (s *RegistrationService) Advance(ctx context.Context, sessionID string) (models.TransitionResponse, error) {
	var (
		transition wizard.Transition
		payload    *wizard.Payload
	)
	st, err := s.sessions.Update(ctx, sessionID, func(w *wizard.Wizard) error {
		var err error
		transition, payload, err = w.BeginAdvance()
		return err
	})
	if err != nil {
		return models.TransitionResponse{}, err
	}
	if payload == nil {
		return models.TransitionResponse{Transition: transition, Session: buildSessionView(st)}, nil
	}

	// the hand-off is not abandoned when the client goes away
	submitCtx := context.WithoutCancel(ctx)
	submitErr := s.submit(submitCtx, *payload)

	var failure error
	st, err = s.sessions.Update(submitCtx, sessionID, func(w *wizard.Wizard) error {
		t, err := w.CompleteSubmission(*payload, submitErr)
		transition, failure = t, nil
		if errors.Is(err, wizard.ErrSubmissionFailed) {
			// keep the attempt counter and last error on the session
			failure = err
			return nil
		}
		return err
	})
	if err != nil {
		slog.Error("failed to record submission outcome",
			"session_id", sessionID,
			"submitted", submitErr == nil,
			"error", err,
		)
		return models.TransitionResponse{}, err
	}

	resp := models.TransitionResponse{Transition: transition, Session: buildSessionView(st)}
	if failure != nil {
		slog.Error("registration submission failed",
			"session_id", sessionID,
			"attempt", st.SubmitAttempts,
			"error", failure,
		)
		return resp, failure
	}
	slog.Info("registration completed", "session_id", sessionID)
	return resp, nil
}

func (s *RegistrationService) submit(ctx context.Context, payload wizard.Payload) error {
	if s.submitter == nil {
		return errors.New("no submitter configured")
	}
	return s.submitter.Submit(ctx, payload)
}

func (s *RegistrationService) Retreat(ctx context.Context, sessionID string) (models.TransitionResponse, error) {
	var transition wizard.Transition
	st, err := s.sessions.Update(ctx, sessionID, func(w *wizard.Wizard) error {
		var err error
		transition, err = w.Retreat()
		return err
	})
	if err != nil {
		return models.TransitionResponse{}, err
	}
	return models.TransitionResponse{Transition: transition, Session: buildSessionView(st)}, nil
}

func (s *RegistrationService) GetRegistration(ctx context.Context, registrationID string) (*wizard.Payload, error) {
	return s.registrations.GetRegistration(ctx, registrationID)
}

func buildSessionView(st wizard.State) models.SessionView {
	missing := wizard.MissingFields(st.CurrentStep, &st.Registration)
	return models.SessionView{
		SessionID:       st.SessionID,
		CurrentStep:     st.CurrentStep,
		TotalSteps:      totalSteps,
		Status:          st.Status,
		Registration:    st.Registration,
		StepValid:       len(missing) == 0,
		MissingFields:   missing,
		FormatHints:     formatHints(st.Registration),
		SubmitAttempts:  st.SubmitAttempts,
		LastSubmitError: st.LastSubmitError,
		Submitting:      st.SubmissionClaimed(time.Now()),
		StartedAt:       st.StartedAt,
		SubmittedAt:     st.SubmittedAt,
	}
}

// formatHints flags filled-in values that look malformed. They never block a
// step; empty values are left to the required-field check.
func formatHints(reg wizard.Registration) []utils.ValidationError {
	hints := []utils.ValidationError{}
	check := func(field, value string, validate func(string) (bool, error)) {
		if value == "" {
			return
		}
		if ok, err := validate(value); !ok {
			hints = append(hints, utils.ValidationError{Field: field, Message: err.Error()})
		}
	}

	check("personal_info.phone_number", reg.PersonalInfo.PhoneNumber, utils.ValidatePhone)
	check("personal_info.email", reg.PersonalInfo.Email, utils.ValidateEmail)
	check("personal_info.pincode", reg.PersonalInfo.Pincode, utils.ValidatePincode)
	check("additional_info.ifsc_code", reg.AdditionalInfo.IFSCCode, utils.ValidateIFSC)
	return hints
}
