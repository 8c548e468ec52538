package invitees

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/invitees/models"
	"github.com/m04kA/SMC-SchedulingService/internal/testutil/memstore"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
	"github.com/m04kA/SMC-SchedulingService/pkg/tokengen"
)

func setup(t *testing.T) *Service {
	t.Helper()
	store := memstore.New()

	_, err := store.Events().Create(context.Background(), &domain.Event{
		TenantID: "acme", Slug: "vip", Timezone: "UTC",
		ScheduleType: domain.ScheduleRecurring, AccessMode: domain.AccessRestricted,
		DurationMin: 30, IntervalMin: 30, MaxParticipants: 1,
	})
	require.NoError(t, err)

	return NewService(store.Events(), store.Invitees(), logger.NewNop())
}

// sequence выдает токены по порядку
func sequence(tokens ...string) TokenGenerator {
	i := 0
	return func() (string, error) {
		token := tokens[i%len(tokens)]
		i++
		return token, nil
	}
}

func TestCreate_GeneratesToken(t *testing.T) {
	svc := setup(t)

	resp, err := svc.Create(context.Background(), "acme", "vip", &models.CreateInviteeRequest{Email: ptr.Ptr(" guest@example.com ")})
	require.NoError(t, err)

	assert.Len(t, resp.Token, tokengen.DefaultLength)
	assert.True(t, tokengen.IsValid(resp.Token))
	assert.Equal(t, "ACTIVE", resp.Status)
	assert.Equal(t, "guest@example.com", *resp.Email)
}

func TestCreate_RetriesOnCollision(t *testing.T) {
	svc := setup(t).WithTokenGenerator(sequence("AAAA2222", "AAAA2222", "BBBB3333"))
	ctx := context.Background()

	first, err := svc.Create(ctx, "acme", "vip", &models.CreateInviteeRequest{})
	require.NoError(t, err)
	assert.Equal(t, "AAAA2222", first.Token)

	second, err := svc.Create(ctx, "acme", "vip", &models.CreateInviteeRequest{})
	require.NoError(t, err)
	assert.Equal(t, "BBBB3333", second.Token)
}

func TestCreate_CollisionsExhausted(t *testing.T) {
	svc := setup(t).WithTokenGenerator(sequence("AAAA2222"))
	ctx := context.Background()

	_, err := svc.Create(ctx, "acme", "vip", &models.CreateInviteeRequest{})
	require.NoError(t, err)

	_, err = svc.Create(ctx, "acme", "vip", &models.CreateInviteeRequest{})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestCreate_GeneratorFailure(t *testing.T) {
	svc := setup(t).WithTokenGenerator(func() (string, error) { return "", errors.New("entropy") })

	_, err := svc.Create(context.Background(), "acme", "vip", &models.CreateInviteeRequest{})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestCreate_InvalidEmail(t *testing.T) {
	svc := setup(t)

	_, err := svc.Create(context.Background(), "acme", "vip", &models.CreateInviteeRequest{Email: ptr.Ptr("nope")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateStatusAndList(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "acme", "vip", &models.CreateInviteeRequest{})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, "acme", "vip", created.Token, &models.UpdateInviteeStatusRequest{Status: "revoked"})
	require.NoError(t, err)
	assert.Equal(t, "REVOKED", updated.Status)

	list, err := svc.List(ctx, "acme", "vip")
	require.NoError(t, err)
	require.Len(t, list.Invitees, 1)
	assert.Equal(t, "REVOKED", list.Invitees[0].Status)

	_, err = svc.UpdateStatus(ctx, "acme", "vip", created.Token, &models.UpdateInviteeStatusRequest{Status: "EXPIRED"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdateStatus(ctx, "acme", "vip", "ZZZZ9999", &models.UpdateInviteeStatusRequest{Status: "ACTIVE"})
	assert.ErrorIs(t, err, ErrInviteeNotFound)

	_, err = svc.List(ctx, "acme", "unknown")
	assert.ErrorIs(t, err, ErrEventNotFound)
}
