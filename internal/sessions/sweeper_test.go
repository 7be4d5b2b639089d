package sessions

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"uptran-invest-go/internal/models"
)

type fakeChecker struct {
	mu        sync.Mutex
	session   *models.User
	expired   bool
	err       error
	reloadErr error
	reloads   int
	calls     int
}

func (f *fakeChecker) ReloadSession(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reloads++
	return f.reloadErr
}

func (f *fakeChecker) CurrentUser() *models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.session.Clone()
}

func (f *fakeChecker) IsAuthenticated(_ context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return false, f.err
	}
	if f.session == nil {
		return false, nil
	}
	if f.expired {
		f.session = nil
		return false, nil
	}
	return true, nil
}

func (f *fakeChecker) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestNewSweeper_InvalidConfig(t *testing.T) {
	if _, err := NewSweeper(SweeperConfig{PollingInterval: time.Second}); err == nil {
		t.Errorf("Expected error for nil checker")
	}
	if _, err := NewSweeper(SweeperConfig{Checker: &fakeChecker{}}); err == nil {
		t.Errorf("Expected error for zero polling interval")
	}
}

func TestSweep_ExpiresSession(t *testing.T) {
	checker := &fakeChecker{session: &models.User{Id: "u1", Email: "jane@example.com"}}
	sweeper, err := NewSweeper(SweeperConfig{Checker: checker, PollingInterval: time.Hour})
	if err != nil {
		t.Fatalf("NewSweeper failed: %v", err)
	}

	ctx := context.Background()
	if sweeper.Sweep(ctx) {
		t.Errorf("Expected live session to survive the sweep")
	}

	checker.mu.Lock()
	checker.expired = true
	checker.mu.Unlock()

	if !sweeper.Sweep(ctx) {
		t.Errorf("Expected expired session to be reported")
	}
	if sweeper.Sweep(ctx) {
		t.Errorf("Expected no expiration without a session")
	}

	stats := sweeper.Stats()
	if stats.Sweeps != 3 || stats.Expirations != 1 || stats.LastUserId != "u1" {
		t.Errorf("Unexpected stats: %+v", stats)
	}
}

func TestSweep_CountsFailures(t *testing.T) {
	checker := &fakeChecker{session: &models.User{Id: "u1"}, err: errors.New("store unavailable")}
	sweeper, err := NewSweeper(SweeperConfig{Checker: checker, PollingInterval: time.Hour})
	if err != nil {
		t.Fatalf("NewSweeper failed: %v", err)
	}

	if sweeper.Sweep(context.Background()) {
		t.Errorf("Expected failed check not to count as expiration")
	}
	if stats := sweeper.Stats(); stats.Failures != 1 || stats.Expirations != 0 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
}

func TestSweep_ReloadFailureSkipsCheck(t *testing.T) {
	checker := &fakeChecker{session: &models.User{Id: "u1"}, reloadErr: errors.New("store unavailable")}
	sweeper, err := NewSweeper(SweeperConfig{Checker: checker, PollingInterval: time.Hour})
	if err != nil {
		t.Fatalf("NewSweeper failed: %v", err)
	}

	if sweeper.Sweep(context.Background()) {
		t.Errorf("Expected failed reload not to count as expiration")
	}
	if checker.callCount() != 0 {
		t.Errorf("Expected no session check after a failed reload, got %d", checker.callCount())
	}
	if stats := sweeper.Stats(); stats.Failures != 1 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
}

func TestSweep_ReloadsBeforeEveryCheck(t *testing.T) {
	checker := &fakeChecker{session: &models.User{Id: "u1"}}
	sweeper, err := NewSweeper(SweeperConfig{Checker: checker, PollingInterval: time.Hour})
	if err != nil {
		t.Fatalf("NewSweeper failed: %v", err)
	}

	sweeper.Sweep(context.Background())
	sweeper.Sweep(context.Background())

	checker.mu.Lock()
	defer checker.mu.Unlock()
	if checker.reloads != 2 || checker.calls != 2 {
		t.Errorf("Expected 2 reloads and 2 checks, got %d and %d", checker.reloads, checker.calls)
	}
}

func TestStop_WithoutStart(t *testing.T) {
	sweeper, err := NewSweeper(SweeperConfig{Checker: &fakeChecker{}, PollingInterval: time.Hour})
	if err != nil {
		t.Fatalf("NewSweeper failed: %v", err)
	}

	stopped := make(chan struct{})
	go func() {
		sweeper.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatalf("Stop on a sweeper that never started did not return")
	}

	sweeper.Start(context.Background())
	select {
	case <-sweeper.Done():
	default:
		t.Errorf("Expected Done to stay closed after Stop")
	}
}

func TestStartStop(t *testing.T) {
	checker := &fakeChecker{session: &models.User{Id: "u1"}}
	sweeper, err := NewSweeper(SweeperConfig{Checker: checker, PollingInterval: 5 * time.Millisecond})
	if err != nil {
		t.Fatalf("NewSweeper failed: %v", err)
	}

	sweeper.Start(context.Background())

	deadline := time.Now().Add(2 * time.Second)
	for checker.callCount() < 3 {
		if time.Now().After(deadline) {
			t.Fatalf("Sweeper did not poll, calls=%d", checker.callCount())
		}
		time.Sleep(time.Millisecond)
	}

	sweeper.Stop()
	sweeper.Stop()

	calls := checker.callCount()
	time.Sleep(20 * time.Millisecond)
	if checker.callCount() != calls {
		t.Errorf("Sweeper kept polling after Stop")
	}
}

func TestStart_StopsOnContextCancel(t *testing.T) {
	sweeper, err := NewSweeper(SweeperConfig{Checker: &fakeChecker{}, PollingInterval: time.Hour})
	if err != nil {
		t.Fatalf("NewSweeper failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	sweeper.Start(ctx)
	cancel()

	select {
	case <-sweeper.Done():
	case <-time.After(2 * time.Second):
		t.Fatalf("Sweeper did not exit after context cancellation")
	}
}
