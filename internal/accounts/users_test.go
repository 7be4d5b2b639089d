package accounts

import (
	"context"
	"testing"

	"uptran-invest-go/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	m, _ := newTestManager(t)

	u := registerUser(t, m, "jane@example.com")
	assert.NotEmpty(t, u.Id)
	assert.True(t, u.Balance.IsZero())
	assert.False(t, u.IsApproved)
	assert.False(t, u.IsAdmin)
	assert.Equal(t, models.KycNotSubmitted, u.KycStatus)
	assert.Regexp(t, `^AC`, u.AccountNumber)
	assert.Equal(t, u.Id, m.CurrentUser().Id)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)
	original := registerUser(t, m, "jane@example.com")
	before := len(m.Users())

	_, err := m.Register(ctx, RegisterInput{Email: "jane@example.com", Password: "other", FirstName: "Imposter"})
	assert.ErrorIs(t, err, ErrDuplicateUser)
	assert.Len(t, m.Users(), before)

	stored, err := m.GetUserByEmail("jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, original.Id, stored.Id)
	assert.Equal(t, "secret", stored.Password)
	assert.Equal(t, "Jane", stored.FirstName)
}

func TestRegister_RequiresEmailAndPassword(t *testing.T) {
	m, _ := newTestManager(t)
	_, err := m.Register(context.Background(), RegisterInput{Email: "jane@example.com"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)
	u := registerUser(t, m, "jane@example.com")
	registerUser(t, m, "john@example.com")

	_, err := m.UpdateUser(ctx, "missing", UserUpdate{})
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = m.UpdateUser(ctx, u.Id, UserUpdate{Email: strPtr("john@example.com")})
	assert.ErrorIs(t, err, ErrDuplicateUser)

	negative := decimal.NewFromInt(-1)
	_, err = m.UpdateUser(ctx, u.Id, UserUpdate{Balance: &negative})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	bogus := models.KycStatus("pending")
	_, err = m.UpdateUser(ctx, u.Id, UserUpdate{KycStatus: &bogus})
	assert.ErrorIs(t, err, ErrInvalidKycStatus)

	updated, err := m.UpdateUser(ctx, u.Id, UserUpdate{Phone: strPtr("+31 6 1234"), Country: strPtr("NL")})
	require.NoError(t, err)
	assert.Equal(t, "+31 6 1234", updated.Phone)
	assert.Equal(t, "NL", updated.Country)
	assert.Equal(t, "Jane", updated.FirstName)
}

func TestUpdateUser_RefreshesSessionSnapshot(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)
	u := registerUser(t, m, "jane@example.com")

	_, err := m.UpdateUser(ctx, u.Id, UserUpdate{FirstName: strPtr("Janet")})
	require.NoError(t, err)
	assert.Equal(t, "Janet", m.CurrentUser().FirstName)
}

func TestUpdateKycStatus(t *testing.T) {
	ctx := context.Background()
	m, clock := newTestManager(t)
	u := registerUser(t, m, "jane@example.com")

	_, err := m.UpdateKycStatus(ctx, u.Id, "bogus", "")
	assert.ErrorIs(t, err, ErrInvalidKycStatus)

	_, err = m.UpdateKycStatus(ctx, "missing", models.KycApproved, "")
	assert.ErrorIs(t, err, ErrUserNotFound)

	rejected, err := m.UpdateKycStatus(ctx, u.Id, models.KycRejected, "blurry document")
	require.NoError(t, err)
	assert.Equal(t, models.KycRejected, rejected.KycStatus)
	assert.Equal(t, "blurry document", rejected.KycRejectionReason)
	assert.False(t, rejected.IsApproved)
	require.NotNil(t, rejected.KycUpdateDate)
	assert.Equal(t, clock.Now(), *rejected.KycUpdateDate)

	approved, err := m.UpdateKycStatus(ctx, u.Id, models.KycApproved, "")
	require.NoError(t, err)
	assert.Equal(t, models.KycApproved, approved.KycStatus)
	assert.True(t, approved.IsApproved)
}

func TestUsersWithPendingKyc(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)
	jane := registerUser(t, m, "jane@example.com")
	registerUser(t, m, "john@example.com")

	_, err := m.UpdateKycStatus(ctx, jane.Id, models.KycSubmitted, "")
	require.NoError(t, err)
	submitted := models.KycSubmitted
	_, err = m.UpdateUser(ctx, testAdmin.Id, UserUpdate{KycStatus: &submitted})
	require.NoError(t, err)

	pending := m.UsersWithPendingKyc()
	require.Len(t, pending, 1)
	assert.Equal(t, jane.Id, pending[0].Id)
}

func TestCurrentUser_ReturnsCopy(t *testing.T) {
	m, _ := newTestManager(t)
	registerUser(t, m, "jane@example.com")

	snapshot := m.CurrentUser()
	snapshot.FirstName = "Mallory"
	assert.Equal(t, "Jane", m.CurrentUser().FirstName)
}
