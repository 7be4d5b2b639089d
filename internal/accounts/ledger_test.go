package accounts

import (
	"context"
	"strings"
	"testing"
	"time"

	"uptran-invest-go/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddDeposit_Validation(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)
	u := registerUser(t, m, "jane@example.com")

	_, err := m.AddDeposit(ctx, "missing", DepositInput{Asset: "BTC", Amount: decimal.NewFromInt(10)})
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = m.AddDeposit(ctx, u.Id, DepositInput{Asset: "BTC", Amount: decimal.Zero})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = m.AddDeposit(ctx, u.Id, DepositInput{Amount: decimal.NewFromInt(10)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Empty(t, m.Deposits())
}

func TestDepositFlow(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)
	u := registerUser(t, m, "jane@example.com")

	d, err := m.AddDeposit(ctx, u.Id, DepositInput{Asset: "BTC", Amount: decimal.NewFromInt(250), Reference: "0xabc"})
	require.NoError(t, err)
	assert.Equal(t, models.DepositPending, d.Status)
	assert.Equal(t, "Jane Doe", d.UserName)
	assert.Equal(t, "jane@example.com", d.UserEmail)

	// Pending deposits do not move the balance
	got, err := m.GetUser(u.Id)
	require.NoError(t, err)
	assert.True(t, got.Balance.IsZero())

	approved, err := m.ApproveDeposit(ctx, d.Id)
	require.NoError(t, err)
	assert.Equal(t, models.DepositApproved, approved.Status)
	assert.NotNil(t, approved.ApprovedDate)

	got, err = m.GetUser(u.Id)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(250)))
	require.Len(t, got.Transactions, 1)
	assert.Equal(t, models.TransactionDeposit, got.Transactions[0].Type)
	assert.Equal(t, "Approved deposit via BTC", got.Transactions[0].Description)

	// Session snapshot follows the credited balance
	assert.True(t, m.CurrentUser().Balance.Equal(decimal.NewFromInt(250)))

	history := m.DepositHistory(u.Id)
	require.Len(t, history, 1)
	assert.Equal(t, models.DepositApproved, history[0].Status)

	_, err = m.ApproveDeposit(ctx, d.Id)
	assert.ErrorIs(t, err, ErrInvalidState)
	got, err = m.GetUser(u.Id)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(250)))

	_, err = m.ApproveDeposit(ctx, "missing")
	assert.ErrorIs(t, err, ErrDepositNotFound)
}

func TestDepositHistory_MostRecentFirst(t *testing.T) {
	ctx := context.Background()
	m, clock := newTestManager(t)
	jane := registerUser(t, m, "jane@example.com")
	john := registerUser(t, m, "john@example.com")

	first, err := m.AddDeposit(ctx, jane.Id, DepositInput{Asset: "BTC", Amount: decimal.NewFromInt(1)})
	require.NoError(t, err)
	clock.Advance(time.Minute)
	_, err = m.AddDeposit(ctx, john.Id, DepositInput{Asset: "ETH", Amount: decimal.NewFromInt(2)})
	require.NoError(t, err)
	clock.Advance(time.Minute)
	second, err := m.AddDeposit(ctx, jane.Id, DepositInput{Asset: "USDT", Amount: decimal.NewFromInt(3)})
	require.NoError(t, err)

	history := m.DepositHistory(jane.Id)
	require.Len(t, history, 2)
	assert.Equal(t, second.Id, history[0].Id)
	assert.Equal(t, first.Id, history[1].Id)

	all := m.Deposits()
	require.Len(t, all, 3)
	assert.Equal(t, first.Id, all[0].Id)
}

func TestAddWithdrawalRequest_Validation(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)
	pending := registerUser(t, m, "jane@example.com")
	approved := registerApprovedUser(t, m, "john@example.com")

	valid := WithdrawalInput{Amount: decimal.NewFromInt(10), Currency: "BTC", WalletAddress: "bc1q"}

	_, err := m.AddWithdrawalRequest(ctx, "missing", valid)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = m.AddWithdrawalRequest(ctx, pending.Id, valid)
	assert.ErrorIs(t, err, ErrNotApproved)

	zero := valid
	zero.Amount = decimal.Zero
	_, err = m.AddWithdrawalRequest(ctx, approved.Id, zero)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	noWallet := valid
	noWallet.WalletAddress = ""
	_, err = m.AddWithdrawalRequest(ctx, approved.Id, noWallet)
	assert.ErrorIs(t, err, ErrInvalidInput)

	longNote := valid
	longNote.Note = strings.Repeat("x", models.MaxWithdrawalNoteLength+1)
	_, err = m.AddWithdrawalRequest(ctx, approved.Id, longNote)
	assert.ErrorIs(t, err, ErrNoteTooLong)

	assert.Empty(t, m.WithdrawalRequests())

	maxNote := valid
	maxNote.Note = strings.Repeat("x", models.MaxWithdrawalNoteLength)
	_, err = m.AddWithdrawalRequest(ctx, approved.Id, maxNote)
	assert.NoError(t, err)
}

func TestApproveWithdrawalRequest_Settles(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)
	u := registerApprovedUser(t, m, "jane@example.com")
	fundUser(t, m, u.Id, 300)

	req, err := m.AddWithdrawalRequest(ctx, u.Id, WithdrawalInput{Amount: decimal.NewFromInt(120), Currency: "ETH", WalletAddress: "0xabc"})
	require.NoError(t, err)
	assert.Equal(t, models.WithdrawalPending, req.Status)

	// Requesting does not reserve funds
	got, err := m.GetUser(u.Id)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(300)))

	approved, err := m.ApproveWithdrawalRequest(ctx, req.Id)
	require.NoError(t, err)
	assert.Equal(t, models.WithdrawalApproved, approved.Status)
	assert.True(t, approved.Settled)

	got, err = m.GetUser(u.Id)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(180)))
	require.Len(t, got.Transactions, 2)
	assert.Equal(t, models.TransactionWithdraw, got.Transactions[1].Type)
	assert.Equal(t, "Approved withdrawal to ETH wallet", got.Transactions[1].Description)

	_, err = m.ApproveWithdrawalRequest(ctx, req.Id)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestApproveWithdrawalRequest_InsufficientBalance(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)
	u := registerApprovedUser(t, m, "jane@example.com")
	fundUser(t, m, u.Id, 50)

	req, err := m.AddWithdrawalRequest(ctx, u.Id, WithdrawalInput{Amount: decimal.NewFromInt(100), Currency: "BTC", WalletAddress: "bc1q"})
	require.NoError(t, err)

	approved, err := m.ApproveWithdrawalRequest(ctx, req.Id)
	require.NoError(t, err)
	assert.Equal(t, models.WithdrawalApproved, approved.Status)
	assert.False(t, approved.Settled)

	got, err := m.GetUser(u.Id)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(50)))
	assert.Len(t, got.Transactions, 1)
}

func TestRejectWithdrawalRequest(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)
	u := registerApprovedUser(t, m, "jane@example.com")
	fundUser(t, m, u.Id, 100)

	req, err := m.AddWithdrawalRequest(ctx, u.Id, WithdrawalInput{Amount: decimal.NewFromInt(40), Currency: "BTC", WalletAddress: "bc1q"})
	require.NoError(t, err)

	rejected, err := m.RejectWithdrawalRequest(ctx, req.Id)
	require.NoError(t, err)
	assert.Equal(t, models.WithdrawalRejected, rejected.Status)
	assert.NotNil(t, rejected.RejectedDate)

	got, err := m.GetUser(u.Id)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(100)))

	_, err = m.ApproveWithdrawalRequest(ctx, req.Id)
	assert.ErrorIs(t, err, ErrInvalidState)
	_, err = m.RejectWithdrawalRequest(ctx, "missing")
	assert.ErrorIs(t, err, ErrWithdrawalNotFound)
}

func TestWithdrawalRequestsForUser_MostRecentFirst(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)
	jane := registerApprovedUser(t, m, "jane@example.com")
	john := registerApprovedUser(t, m, "john@example.com")

	in := WithdrawalInput{Amount: decimal.NewFromInt(1), Currency: "BTC", WalletAddress: "bc1q"}
	first, err := m.AddWithdrawalRequest(ctx, jane.Id, in)
	require.NoError(t, err)
	_, err = m.AddWithdrawalRequest(ctx, john.Id, in)
	require.NoError(t, err)
	second, err := m.AddWithdrawalRequest(ctx, jane.Id, in)
	require.NoError(t, err)

	requests := m.WithdrawalRequestsForUser(jane.Id)
	require.Len(t, requests, 2)
	assert.Equal(t, second.Id, requests[0].Id)
	assert.Equal(t, first.Id, requests[1].Id)
	assert.Len(t, m.WithdrawalRequests(), 3)
}
