package accounts

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"uptran-invest-go/internal/database"
	"uptran-invest-go/internal/models"
	"uptran-invest-go/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAdmin = AdminSeed{
	Id:        "admin-test-001",
	FirstName: "Site",
	LastName:  "Admin",
	Email:     "admin@example.com",
	Password:  "admin-pass",
}

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// flakyStore fails every write while failWrites is set, and every delete while failDeletes is set
type flakyStore struct {
	store.KVStore
	failWrites  bool
	failDeletes bool
}

var errWriteFailed = errors.New("write failed")

func (f *flakyStore) Set(ctx context.Context, key string, value []byte) error {
	if f.failWrites {
		return errWriteFailed
	}
	return f.KVStore.Set(ctx, key, value)
}

func (f *flakyStore) SetMany(ctx context.Context, entries map[string][]byte) error {
	if f.failWrites {
		return errWriteFailed
	}
	return f.KVStore.SetMany(ctx, entries)
}

func (f *flakyStore) Delete(ctx context.Context, key string) error {
	if f.failDeletes {
		return errWriteFailed
	}
	return f.KVStore.Delete(ctx, key)
}

func newTestStore(t *testing.T) store.KVStore {
	t.Helper()
	kv, err := database.NewService(context.Background(), models.DatabaseConfig{
		Path:         ":memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		PingTimeout:  time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(kv.Close)
	return kv
}

func newTestManagerWithStore(t *testing.T, kv store.KVStore, clock *fakeClock) *Manager {
	t.Helper()
	admin := testAdmin
	m, err := NewManager(context.Background(), Config{
		Store: kv,
		Admin: &admin,
		Clock: clock.Now,
	})
	require.NoError(t, err)
	return m
}

func newTestManager(t *testing.T) (*Manager, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	return newTestManagerWithStore(t, newTestStore(t), clock), clock
}

func registerUser(t *testing.T, m *Manager, email string) *models.User {
	t.Helper()
	u, err := m.Register(context.Background(), RegisterInput{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     email,
		Password:  "secret",
	})
	require.NoError(t, err)
	return u
}

func registerApprovedUser(t *testing.T, m *Manager, email string) *models.User {
	t.Helper()
	u := registerUser(t, m, email)
	u, err := m.ApproveUser(context.Background(), u.Id)
	require.NoError(t, err)
	return u
}

// fundUser credits amount through the deposit approval flow
func fundUser(t *testing.T, m *Manager, userId string, amount int64) {
	t.Helper()
	ctx := context.Background()
	d, err := m.AddDeposit(ctx, userId, DepositInput{Asset: "USDT", Amount: decimal.NewFromInt(amount)})
	require.NoError(t, err)
	_, err = m.ApproveDeposit(ctx, d.Id)
	require.NoError(t, err)
}

func TestNewManager_NilStore(t *testing.T) {
	_, err := NewManager(context.Background(), Config{})
	assert.Error(t, err)
}

func TestNewManager_SeedsDefaults(t *testing.T) {
	m, _ := newTestManager(t)

	catalog := m.InvestmentAssets()
	assert.Len(t, catalog["Crypto Index Funds"], 2)
	assert.Len(t, catalog["ETF"], 2)
	assert.Equal(t, []string{"Crypto Index Funds", "ETF"}, m.Sections())

	address, ok := m.WalletAddress("BTC")
	assert.True(t, ok)
	assert.Equal(t, "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa", address)
	assert.Len(t, m.WalletAddresses(), 3)
}

func TestNewManager_DoesNotOverwriteStoredCatalog(t *testing.T) {
	ctx := context.Background()
	kv := newTestStore(t)
	require.NoError(t, store.SaveJSON(ctx, kv, store.KeyInvestmentAssets, models.Catalog{"Bonds": {}}))
	require.NoError(t, store.SaveJSON(ctx, kv, store.KeyWalletAddresses, models.WalletAddresses{"BTC": "bc1custom"}))

	m := newTestManagerWithStore(t, kv, newFakeClock())

	assert.Equal(t, []string{"Bonds"}, m.Sections())
	assert.Equal(t, models.WalletAddresses{"BTC": "bc1custom"}, m.WalletAddresses())
}

func TestAdminSeed_CreatesSingleAdmin(t *testing.T) {
	m, _ := newTestManager(t)

	admin, err := m.GetUser(testAdmin.Id)
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)
	assert.True(t, admin.IsApproved)
	assert.Equal(t, models.KycApproved, admin.KycStatus)
	assert.Equal(t, "ACADMIN001", admin.AccountNumber)
	assert.Nil(t, admin.LoginExpiry)
	assert.True(t, admin.Balance.IsZero())
}

func TestAdminSeed_IdempotentKeepsBalance(t *testing.T) {
	ctx := context.Background()
	kv := newTestStore(t)
	clock := newFakeClock()

	m1 := newTestManagerWithStore(t, kv, clock)
	fundUser(t, m1, testAdmin.Id, 500)

	m2 := newTestManagerWithStore(t, kv, clock)
	admin, err := m2.GetUser(testAdmin.Id)
	require.NoError(t, err)
	assert.True(t, admin.Balance.Equal(decimal.NewFromInt(500)))
	assert.Len(t, admin.Transactions, 1)

	// Changed credentials are re-asserted without touching history
	seed := testAdmin
	seed.Password = "rotated"
	m3, err := NewManager(ctx, Config{Store: kv, Admin: &seed, Clock: clock.Now})
	require.NoError(t, err)
	admin, err = m3.GetUser(testAdmin.Id)
	require.NoError(t, err)
	assert.Equal(t, "rotated", admin.Password)
	assert.True(t, admin.Balance.Equal(decimal.NewFromInt(500)))

	admins := 0
	for _, u := range m3.Users() {
		if u.IsAdmin {
			admins++
		}
	}
	assert.Equal(t, 1, admins)
}

func TestAdminSeed_DemotesOtherAdmins(t *testing.T) {
	ctx := context.Background()
	kv := newTestStore(t)
	rogue := []*models.User{{Id: "rogue", Email: "rogue@example.com", IsAdmin: true}}
	require.NoError(t, store.SaveJSON(ctx, kv, store.KeyUsers, rogue))

	m := newTestManagerWithStore(t, kv, newFakeClock())

	u, err := m.GetUser("rogue")
	require.NoError(t, err)
	assert.False(t, u.IsAdmin)
}

func TestAdminSeed_EmailTakenByAnotherUser(t *testing.T) {
	ctx := context.Background()
	kv := newTestStore(t)
	taken := []*models.User{{Id: "someone", Email: testAdmin.Email}}
	require.NoError(t, store.SaveJSON(ctx, kv, store.KeyUsers, taken))

	admin := testAdmin
	_, err := NewManager(ctx, Config{Store: kv, Admin: &admin})
	assert.ErrorIs(t, err, ErrDuplicateUser)
}

func TestRoundTrip_NewManagerSeesSameState(t *testing.T) {
	ctx := context.Background()
	kv := newTestStore(t)
	clock := newFakeClock()

	m1 := newTestManagerWithStore(t, kv, clock)
	u := registerApprovedUser(t, m1, "jane@example.com")
	fundUser(t, m1, u.Id, 1000)
	_, err := m1.AddInvestment(ctx, u.Id, InvestmentInput{PlanName: "Starter", Amount: decimal.NewFromInt(400), Roi: decimal.NewFromInt(10), Duration: 20})
	require.NoError(t, err)
	_, err = m1.AddWithdrawalRequest(ctx, u.Id, WithdrawalInput{Amount: decimal.NewFromInt(100), Currency: "BTC", WalletAddress: "bc1q"})
	require.NoError(t, err)
	_, err = m1.AddInvestmentAsset(ctx, "Bonds", AssetInput{Name: "Treasury", Roi: decimal.NewFromInt(4), MinAmount: decimal.NewFromInt(10), MaxAmount: decimal.NewFromInt(1000), Duration: 365})
	require.NoError(t, err)
	require.NoError(t, m1.UpdateWalletAddresses(ctx, map[string]string{"SOL": "So1ana"}))

	m2 := newTestManagerWithStore(t, kv, clock)

	assertSameJSON(t, m1.Users(), m2.Users())
	assertSameJSON(t, m1.Deposits(), m2.Deposits())
	assertSameJSON(t, m1.WithdrawalRequests(), m2.WithdrawalRequests())
	assertSameJSON(t, m1.InvestmentAssets(), m2.InvestmentAssets())
	assertSameJSON(t, m1.WalletAddresses(), m2.WalletAddresses())
	assertSameJSON(t, m1.CurrentUser(), m2.CurrentUser())
}

func TestPersistFailure_ReloadsState(t *testing.T) {
	ctx := context.Background()
	kv := &flakyStore{KVStore: newTestStore(t)}
	m := newTestManagerWithStore(t, kv, newFakeClock())
	u := registerApprovedUser(t, m, "jane@example.com")

	kv.failWrites = true
	_, err := m.AddDeposit(ctx, u.Id, DepositInput{Asset: "BTC", Amount: decimal.NewFromInt(10)})
	assert.ErrorIs(t, err, errWriteFailed)
	assert.Empty(t, m.Deposits())

	_, err = m.UpdateUser(ctx, u.Id, UserUpdate{Country: strPtr("NL")})
	assert.ErrorIs(t, err, errWriteFailed)
	got, err := m.GetUser(u.Id)
	require.NoError(t, err)
	assert.Empty(t, got.Country)
}

func TestGenerateAccountNumber(t *testing.T) {
	n := generateAccountNumber(newFakeClock().Now())
	assert.Regexp(t, `^AC[0-9A-Z]+[0-9A-F]{4}$`, n)
}

func assertSameJSON(t *testing.T, expected, actual any) {
	t.Helper()
	want, err := json.Marshal(expected)
	require.NoError(t, err)
	got, err := json.Marshal(actual)
	require.NoError(t, err)
	assert.JSONEq(t, string(want), string(got))
}

func strPtr(s string) *string { return &s }
