package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"registration-service/internal/database/minio"
	"registration-service/internal/event"
	"registration-service/internal/repository"
	"registration-service/internal/wizard"
	"registration-service/utils"
)

// SnapshotArchive stores raw payload snapshots; *minio.MinioClient satisfies it.
type SnapshotArchive interface {
	UploadBytes(ctx context.Context, bucketName, objectName string, data []byte, contentType string) error
}

// EventPublisher is satisfied by *event.RegistrationPublisher.
type EventPublisher interface {
	PublishEvent(ctx context.Context, evt event.RegistrationEvent) error
}

// SubmissionPipeline hands a finished registration to the rest of the system.
// Only the database write decides success; the archive copy and the event are
// best effort.
type SubmissionPipeline struct {
	repo      repository.IRegistrationRepository
	archive   SnapshotArchive
	publisher EventPublisher
}

// NewSubmissionPipeline wires the pipeline. archive and publisher may be nil.
func NewSubmissionPipeline(repo repository.IRegistrationRepository, archive SnapshotArchive, publisher EventPublisher) *SubmissionPipeline {
	return &SubmissionPipeline{
		repo:      repo,
		archive:   archive,
		publisher: publisher,
	}
}

var _ wizard.Submitter = (*SubmissionPipeline)(nil)

func (p *SubmissionPipeline) Submit(ctx context.Context, payload wizard.Payload) error {
	err := p.repo.CreateRegistration(ctx, payload)
	switch {
	case errors.Is(err, repository.ErrDuplicateRegistration):
		// an earlier attempt already stored it; finish the hand-off
		slog.Info("registration already stored", "registration_id", payload.SessionID)
	case err != nil:
		return fmt.Errorf("%w: %w", wizard.ErrSubmissionFailed, err)
	}

	if p.archive != nil {
		if err := p.archiveSnapshot(ctx, payload); err != nil {
			slog.Error("failed to archive registration snapshot",
				"registration_id", payload.SessionID,
				"error", err,
			)
		}
	}

	if p.publisher != nil {
		if err := p.publisher.PublishEvent(ctx, event.NewFarmerRegisteredEvent(payload)); err != nil {
			slog.Error("failed to publish registration event",
				"registration_id", payload.SessionID,
				"error", err,
			)
		}
	}

	slog.Info("registration submitted",
		"registration_id", payload.SessionID,
		"farms", len(payload.Farms),
	)
	return nil
}

func (p *SubmissionPipeline) archiveSnapshot(ctx context.Context, payload wizard.Payload) error {
	data, err := utils.SerializeModel(payload)
	if err != nil {
		return err
	}
	return p.archive.UploadBytes(ctx, minio.Storage.RegistrationSnapshots, snapshotObjectName(payload), data, "application/json")
}

func snapshotObjectName(payload wizard.Payload) string {
	return fmt.Sprintf("%s/%s.json", payload.RegistrationDate.UTC().Format("2006/01"), payload.SessionID)
}
