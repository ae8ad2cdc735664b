package momentum_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	momentum "github.com/momentumhq/momentum"
	"github.com/momentumhq/momentum/id"
	"github.com/momentumhq/momentum/mood"
	"github.com/momentumhq/momentum/pomodoro"
	"github.com/momentumhq/momentum/reward"
	"github.com/momentumhq/momentum/store/memory"
	"github.com/momentumhq/momentum/task"
)

func newTestEngine(t *testing.T, opts ...momentum.Option) *momentum.Engine {
	t.Helper()
	e := momentum.New(memory.New(), opts...)
	if err := e.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() {
		if err := e.Stop(); err != nil {
			t.Errorf("Stop: %v", err)
		}
	})
	return e
}

func register(t *testing.T, e *momentum.Engine, email string) id.UserID {
	t.Helper()
	u, err := e.Register(context.Background(), email, "Test User", "correct horse battery")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	return u.ID
}

// ──────────────────────────────────────────────────
// Accounts
// ──────────────────────────────────────────────────

func TestRegisterValidation(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"empty email", "", "long enough password"},
		{"not an address", "nobody", "long enough password"},
		{"short password", "a@example.com", "short"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Register(ctx, tt.email, "X", tt.password)
			var vErr momentum.ValidationError
			if !errors.As(err, &vErr) {
				t.Errorf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	register(t, e, "dup@example.com")
	_, err := e.Register(ctx, "Dup@Example.com", "X", "long enough password")
	if !errors.Is(err, momentum.ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegisterCreatesZeroBalanceProfile(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	userID := register(t, e, "fresh@example.com")

	p, err := e.Store().GetRewardProfile(ctx, userID)
	if err != nil {
		t.Fatalf("profile should exist after registration: %v", err)
	}
	if p.Balance != 0 {
		t.Errorf("fresh balance = %d, want 0", p.Balance)
	}
}

func TestAuthenticate(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	register(t, e, "auth@example.com")

	if _, err := e.Authenticate(ctx, "auth@example.com", "correct horse battery"); err != nil {
		t.Errorf("valid credentials rejected: %v", err)
	}
	if _, err := e.Authenticate(ctx, "auth@example.com", "wrong"); !errors.Is(err, momentum.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	// unknown account must look identical to a bad password
	if _, err := e.Authenticate(ctx, "ghost@example.com", "whatever"); !errors.Is(err, momentum.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

// ──────────────────────────────────────────────────
// Tasks
// ──────────────────────────────────────────────────

func TestCompleteTaskCreditsOnce(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	userID := register(t, e, "tasks@example.com")

	tk, err := e.CreateTask(ctx, userID, "write report", "", 15, nil)
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	done, balance, err := e.CompleteTask(ctx, userID, tk.ID)
	if err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	if !done.IsDone() {
		t.Error("task should be done")
	}
	if balance != 15 {
		t.Errorf("balance after completion = %d, want 15", balance)
	}

	// completing again must not credit a second time
	if _, _, err := e.CompleteTask(ctx, userID, tk.ID); !errors.Is(err, momentum.ErrTaskAlreadyDone) {
		t.Fatalf("expected ErrTaskAlreadyDone, got %v", err)
	}
	got, err := e.Balance(ctx, userID)
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if got != 15 {
		t.Errorf("balance after repeat completion = %d, want 15", got)
	}
}

func TestCreateTaskDefaultReward(t *testing.T) {
	e := newTestEngine(t, momentum.WithTaskRewardDefault(7))
	ctx := context.Background()
	userID := register(t, e, "defaults@example.com")

	tk, err := e.CreateTask(ctx, userID, "no explicit reward", "", 0, nil)
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if tk.RewardPoints != 7 {
		t.Errorf("reward points = %d, want 7", tk.RewardPoints)
	}
}

func TestUpdateDoneTaskRejected(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	userID := register(t, e, "patch@example.com")

	tk, err := e.CreateTask(ctx, userID, "finish me", "", 5, nil)
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if _, _, err := e.CompleteTask(ctx, userID, tk.ID); err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}

	title := "rename"
	_, err = e.UpdateTask(ctx, userID, tk.ID, task.Patch{Title: &title})
	if !errors.Is(err, momentum.ErrTaskAlreadyDone) {
		t.Errorf("expected ErrTaskAlreadyDone, got %v", err)
	}
}

// ──────────────────────────────────────────────────
// Focus Sessions
// ──────────────────────────────────────────────────

func TestCompleteSessionCreditsFocusMinutes(t *testing.T) {
	e := newTestEngine(t, momentum.WithFocusRate(2))
	ctx := context.Background()
	userID := register(t, e, "focus@example.com")

	sess, err := e.StartSession(ctx, userID, id.ID{}, 25)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if !sess.IsOpen() {
		t.Error("new session should be running")
	}

	done, balance, err := e.CompleteSession(ctx, userID, sess.ID, 25)
	if err != nil {
		t.Fatalf("CompleteSession: %v", err)
	}
	if done.Status != pomodoro.StatusCompleted {
		t.Errorf("status = %s, want completed", done.Status)
	}
	if balance != 50 {
		t.Errorf("balance = %d, want 50 (25 minutes at rate 2)", balance)
	}

	if _, _, err := e.CompleteSession(ctx, userID, sess.ID, 25); !errors.Is(err, momentum.ErrSessionAlreadyEnded) {
		t.Errorf("expected ErrSessionAlreadyEnded, got %v", err)
	}
}

func TestCompleteSessionCapsFocusMinutes(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	userID := register(t, e, "cap@example.com")

	sess, err := e.StartSession(ctx, userID, id.ID{}, 25)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	done, _, err := e.CompleteSession(ctx, userID, sess.ID, 90)
	if err != nil {
		t.Fatalf("CompleteSession: %v", err)
	}
	if done.FocusMinutes != 25 {
		t.Errorf("focus minutes = %d, want capped at 25", done.FocusMinutes)
	}
}

func TestAbandonSessionNoCredit(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	userID := register(t, e, "abandon@example.com")

	sess, err := e.StartSession(ctx, userID, id.ID{}, 25)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if _, err := e.AbandonSession(ctx, userID, sess.ID, 10); err != nil {
		t.Fatalf("AbandonSession: %v", err)
	}

	balance, err := e.Balance(ctx, userID)
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if balance != 0 {
		t.Errorf("abandoned session credited points: balance = %d", balance)
	}
}

func TestStartSessionUnknownTask(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	userID := register(t, e, "link@example.com")

	_, err := e.StartSession(ctx, userID, id.NewTaskID(), 25)
	if !errors.Is(err, momentum.ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound, got %v", err)
	}
}

// ──────────────────────────────────────────────────
// Mood Log
// ──────────────────────────────────────────────────

func TestLogMood(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	userID := register(t, e, "mood@example.com")

	if _, err := e.LogMood(ctx, userID, mood.MoodFocused, "deep work morning"); err != nil {
		t.Fatalf("LogMood: %v", err)
	}
	if _, err := e.LogMood(ctx, userID, mood.Mood("ecstatic"), ""); !errors.Is(err, momentum.ErrUnknownMood) {
		t.Errorf("expected ErrUnknownMood, got %v", err)
	}

	entries, err := e.ListMoods(ctx, userID, mood.ListOpts{})
	if err != nil {
		t.Fatalf("ListMoods: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("entries = %d, want 1 (invalid mood must not be stored)", len(entries))
	}
}

// ──────────────────────────────────────────────────
// Reward Ledger
// ──────────────────────────────────────────────────

func TestCreditValidation(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	userID := register(t, e, "credit@example.com")

	for _, amount := range []int64{0, -10} {
		if _, err := e.Credit(ctx, userID, amount, ""); !errors.Is(err, momentum.ErrInvalidAmount) {
			t.Errorf("Credit(%d): expected ErrInvalidAmount, got %v", amount, err)
		}
	}

	balance, err := e.Credit(ctx, userID, 50, momentum.ReasonDailyBonus)
	if err != nil {
		t.Fatalf("Credit: %v", err)
	}
	if balance != 50 {
		t.Errorf("balance = %d, want 50", balance)
	}
}

func TestBalanceLazyInit(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	// an ID that never touched the ledger
	userID := id.NewUserID()

	balance, err := e.Balance(ctx, userID)
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if balance != 0 {
		t.Errorf("first access balance = %d, want 0", balance)
	}

	// the profile must now be persisted
	if _, err := e.Store().GetRewardProfile(ctx, userID); err != nil {
		t.Errorf("profile not persisted after first access: %v", err)
	}
}

func TestPurchaseUnknownItem(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	userID := register(t, e, "unknown@example.com")

	if _, err := e.Credit(ctx, userID, 100, ""); err != nil {
		t.Fatalf("Credit: %v", err)
	}

	_, err := e.Purchase(ctx, userID, "Time Machine")
	if !errors.Is(err, momentum.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}

	// nothing may have been mutated
	balance, err := e.Balance(ctx, userID)
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if balance != 100 {
		t.Errorf("balance = %d, want 100", balance)
	}
	history, err := e.PurchaseHistory(ctx, userID, reward.ListOpts{})
	if err != nil {
		t.Fatalf("PurchaseHistory: %v", err)
	}
	if len(history) != 0 {
		t.Errorf("history = %d entries, want 0", len(history))
	}
}

// The worked scenario: credit 50, buy a 20-point item, then fail to buy a
// 50-point item with only 30 left.
func TestPurchaseScenario(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	userID := register(t, e, "scenario@example.com")

	if balance, _ := e.Balance(ctx, userID); balance != 0 {
		t.Fatalf("starting balance = %d, want 0", balance)
	}

	if _, err := e.Credit(ctx, userID, 50, momentum.ReasonTaskCompleted); err != nil {
		t.Fatalf("Credit: %v", err)
	}

	receipt, err := e.Purchase(ctx, userID, "Snack Break")
	if err != nil {
		t.Fatalf("Purchase: %v", err)
	}
	if receipt.Balance != 30 {
		t.Errorf("balance after Snack Break = %d, want 30", receipt.Balance)
	}

	_, err = e.Purchase(ctx, userID, "Gaming Time (30m)")
	if !errors.Is(err, momentum.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}

	balance, err := e.Balance(ctx, userID)
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if balance != 30 {
		t.Errorf("balance after declined purchase = %d, want 30", balance)
	}

	history, err := e.PurchaseHistory(ctx, userID, reward.ListOpts{})
	if err != nil {
		t.Fatalf("PurchaseHistory: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("history = %d entries, want 1", len(history))
	}
	if history[0].ItemName != "Snack Break" || history[0].Cost != 20 {
		t.Errorf("history[0] = %s/%d, want Snack Break/20", history[0].ItemName, history[0].Cost)
	}
}

func TestConcurrentPurchasesSingleWinner(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	userID := register(t, e, "race@example.com")

	if _, err := e.Credit(ctx, userID, 50, ""); err != nil {
		t.Fatalf("Credit: %v", err)
	}

	const workers = 16
	var wg sync.WaitGroup
	results := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.Purchase(ctx, userID, "Gaming Time (30m)")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, declined int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, momentum.ErrInsufficientBalance):
			declined++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 || declined != workers-1 {
		t.Errorf("succeeded=%d declined=%d, want 1/%d", succeeded, declined, workers-1)
	}

	balance, err := e.Balance(ctx, userID)
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if balance != 0 {
		t.Errorf("final balance = %d, want 0", balance)
	}
	history, err := e.PurchaseHistory(ctx, userID, reward.ListOpts{})
	if err != nil {
		t.Fatalf("PurchaseHistory: %v", err)
	}
	if len(history) != 1 {
		t.Errorf("history = %d entries, want 1", len(history))
	}
}

// ──────────────────────────────────────────────────
// Plugin hooks
// ──────────────────────────────────────────────────

type recordingPlugin struct {
	mu       sync.Mutex
	made     int
	declined int
	credits  []int64
}

func (p *recordingPlugin) Name() string { return "recording" }

func (p *recordingPlugin) OnPurchaseMade(_ context.Context, _ *reward.Receipt) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.made++
	return nil
}

func (p *recordingPlugin) OnPurchaseDeclined(_ context.Context, _ id.UserID, _ string, _, _ int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.declined++
	return nil
}

func (p *recordingPlugin) OnPointsCredited(_ context.Context, _ id.UserID, amount, _ int64, _ string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.credits = append(p.credits, amount)
	return nil
}

func TestPurchaseHooks(t *testing.T) {
	rec := &recordingPlugin{}
	e := newTestEngine(t, momentum.WithPlugin(rec))
	ctx := context.Background()
	userID := register(t, e, "hooks@example.com")

	if _, err := e.Credit(ctx, userID, 30, ""); err != nil {
		t.Fatalf("Credit: %v", err)
	}
	if _, err := e.Purchase(ctx, userID, "Snack Break"); err != nil {
		t.Fatalf("Purchase: %v", err)
	}
	if _, err := e.Purchase(ctx, userID, "Gaming Time (30m)"); !errors.Is(err, momentum.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.made != 1 {
		t.Errorf("OnPurchaseMade calls = %d, want 1", rec.made)
	}
	if rec.declined != 1 {
		t.Errorf("OnPurchaseDeclined calls = %d, want 1", rec.declined)
	}
	if len(rec.credits) != 1 || rec.credits[0] != 30 {
		t.Errorf("credit hook amounts = %v, want [30]", rec.credits)
	}
}

// ──────────────────────────────────────────────────
// Analytics
// ──────────────────────────────────────────────────

func TestSummary(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	userID := register(t, e, "summary@example.com")

	tk, err := e.CreateTask(ctx, userID, "aggregate me", "", 20, nil)
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if _, _, err := e.CompleteTask(ctx, userID, tk.ID); err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	if _, err := e.LogMood(ctx, userID, mood.MoodHappy, ""); err != nil {
		t.Fatalf("LogMood: %v", err)
	}
	if _, err := e.Purchase(ctx, userID, "Snack Break"); err != nil {
		t.Fatalf("Purchase: %v", err)
	}

	sum, err := e.Summary(ctx, userID, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if sum.TasksCompleted != 1 {
		t.Errorf("tasks completed = %d, want 1", sum.TasksCompleted)
	}
	if sum.PointsEarned != 20 || sum.PointsSpent != 20 {
		t.Errorf("earned/spent = %d/%d, want 20/20", sum.PointsEarned, sum.PointsSpent)
	}
	if sum.MoodCounts["happy"] != 1 {
		t.Errorf("mood counts = %v, want happy:1", sum.MoodCounts)
	}
}
