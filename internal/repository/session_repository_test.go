package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"registration-service/internal/wizard"
	"registration-service/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testTTL          = 2 * time.Hour
	testSubmittedTTL = 15 * time.Minute
)

func setupSessionRepo(t *testing.T) (*miniredis.Miniredis, *redis.Client, WizardSessionRepository) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client, NewWizardSessionRepository(client, testTTL, testSubmittedTTL)
}

func completeWizard(t *testing.T, w *wizard.Wizard) {
	t.Helper()
	ctx := context.Background()
	for field, value := range map[string]string{
		"full_name": "Ramesh Patil", "phone_number": "9876543210",
		"village": "Khed", "district": "Pune", "state": "Maharashtra",
	} {
		require.NoError(t, w.UpdateField(wizard.PersonalField(field), value))
	}
	_, err := w.Advance(ctx, nil)
	require.NoError(t, err)

	_, err = w.AddCrop(0)
	require.NoError(t, err)
	require.NoError(t, w.UpdateField(wizard.FarmField(0, "farm_name"), "North plot"))
	require.NoError(t, w.UpdateField(wizard.FarmField(0, "total_area"), "3"))
	require.NoError(t, w.Select(wizard.FarmField(0, "soil_type"), "Black Soil"))
	require.NoError(t, w.Select(wizard.CropField(0, 0, "crop_name"), "Wheat"))
	require.NoError(t, w.UpdateField(wizard.CropField(0, 0, "area_allocated"), "2"))
	for range 2 {
		_, err = w.Advance(ctx, nil)
		require.NoError(t, err)
	}

	require.NoError(t, w.Select(wizard.AdditionalField("experience"), "6-10 years"))
	require.NoError(t, w.UpdateField(wizard.AdditionalField("primary_income"), "Farming"))
	require.NoError(t, w.UpdateField(wizard.AdditionalField("bank_account"), "12345678901"))
	require.Equal(t, wizard.StepAdditional, w.CurrentStep())
}

// ============================================================================
// CREATE / GET / DELETE
// ============================================================================

func TestSessionRepository_CreateAndGet(t *testing.T) {
	mr, _, repo := setupSessionRepo(t)
	ctx := context.Background()

	w := wizard.New(wizard.WithSessionID("sess-1"))
	require.NoError(t, repo.Create(ctx, w.State()))

	got, err := repo.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "sess-1", got.SessionID)
	assert.Equal(t, wizard.StepPersonal, got.CurrentStep)
	assert.Len(t, got.Registration.Farms, 1)
	assert.Equal(t, "English", got.Registration.AdditionalInfo.PreferredLanguage)

	assert.Equal(t, testTTL, mr.TTL("registration:session:sess-1"))
}

func TestSessionRepository_CreateRefusesExistingSession(t *testing.T) {
	_, _, repo := setupSessionRepo(t)
	ctx := context.Background()

	st := wizard.New(wizard.WithSessionID("sess-1")).State()
	require.NoError(t, repo.Create(ctx, st))
	assert.ErrorIs(t, repo.Create(ctx, st), ErrSessionExists)
}

func TestSessionRepository_MissingAndExpiredSessions(t *testing.T) {
	mr, _, repo := setupSessionRepo(t)
	ctx := context.Background()

	_, err := repo.Get(ctx, "nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, repo.Create(ctx, wizard.New(wizard.WithSessionID("sess-1")).State()))
	mr.FastForward(testTTL + time.Second)

	_, err = repo.Get(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionRepository_Delete(t *testing.T) {
	_, _, repo := setupSessionRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, wizard.New(wizard.WithSessionID("sess-1")).State()))
	require.NoError(t, repo.Delete(ctx, "sess-1"))

	_, err := repo.Get(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

// ============================================================================
// UPDATE
// ============================================================================

func TestSessionRepository_UpdatePersistsMutation(t *testing.T) {
	_, _, repo := setupSessionRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, wizard.New(wizard.WithSessionID("sess-1")).State()))

	st, err := repo.Update(ctx, "sess-1", func(w *wizard.Wizard) error {
		return w.UpdateField(wizard.PersonalField("full_name"), "Ramesh Patil")
	})
	require.NoError(t, err)
	assert.Equal(t, "Ramesh Patil", st.Registration.PersonalInfo.FullName)

	got, err := repo.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "Ramesh Patil", got.Registration.PersonalInfo.FullName)
}

func TestSessionRepository_UpdateWritesNothingOnError(t *testing.T) {
	_, _, repo := setupSessionRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, wizard.New(wizard.WithSessionID("sess-1")).State()))

	boom := errors.New("boom")
	_, err := repo.Update(ctx, "sess-1", func(w *wizard.Wizard) error {
		require.NoError(t, w.UpdateField(wizard.PersonalField("full_name"), "half written"))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := repo.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, got.Registration.PersonalInfo.FullName)
}

func TestSessionRepository_UpdateMissingSession(t *testing.T) {
	_, _, repo := setupSessionRepo(t)

	_, err := repo.Update(context.Background(), "nope", func(w *wizard.Wizard) error { return nil })
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionRepository_SubmittedSessionGetsShortTTL(t *testing.T) {
	mr, _, repo := setupSessionRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, wizard.New(wizard.WithSessionID("sess-1")).State()))

	_, err := repo.Update(ctx, "sess-1", func(w *wizard.Wizard) error {
		completeWizard(t, w)
		_, err := w.Advance(ctx, wizard.SubmitterFunc(func(context.Context, wizard.Payload) error { return nil }))
		return err
	})
	require.NoError(t, err)

	got, err := repo.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, wizard.StatusSubmitted, got.Status)
	assert.Equal(t, testSubmittedTTL, mr.TTL("registration:session:sess-1"))
}

func TestSessionRepository_UpdateRetriesAfterConcurrentWrite(t *testing.T) {
	_, client, repo := setupSessionRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, wizard.New(wizard.WithSessionID("sess-1")).State()))

	calls := 0
	st, err := repo.Update(ctx, "sess-1", func(w *wizard.Wizard) error {
		calls++
		if calls == 1 {
			other := wizard.FromState(w.State())
			require.NoError(t, other.UpdateField(wizard.PersonalField("village"), "Khed"))
			data, err := utils.SerializeModel(other.State())
			require.NoError(t, err)
			require.NoError(t, client.Set(ctx, "registration:session:sess-1", data, testTTL).Err())
		}
		return w.UpdateField(wizard.PersonalField("district"), "Pune")
	})
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	assert.Equal(t, "Khed", st.Registration.PersonalInfo.Village)
	assert.Equal(t, "Pune", st.Registration.PersonalInfo.District)
}

func TestSessionRepository_UpdateGivesUpAfterRepeatedConflicts(t *testing.T) {
	_, client, repo := setupSessionRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, wizard.New(wizard.WithSessionID("sess-1")).State()))

	calls := 0
	_, err := repo.Update(ctx, "sess-1", func(w *wizard.Wizard) error {
		calls++
		other := wizard.FromState(w.State())
		require.NoError(t, other.UpdateField(wizard.PersonalField("village"), fmt.Sprintf("v%d", calls)))
		data, err := utils.SerializeModel(other.State())
		require.NoError(t, err)
		return client.Set(ctx, "registration:session:sess-1", data, testTTL).Err()
	})

	assert.ErrorIs(t, err, ErrSessionConflict)
	assert.Equal(t, maxUpdateRetries, calls)
}
