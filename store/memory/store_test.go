package memory

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
	"github.com/momentumhq/momentum/task"
	"github.com/momentumhq/momentum/types"
	"github.com/momentumhq/momentum/user"
)

func newTestUser(t *testing.T, s *Store, email string) *user.User {
	t.Helper()
	u := &user.User{
		Entity: types.NewEntity(),
		ID:     id.NewUserID(),
		Email:  email,
		Name:   "Test User",
	}
	if err := s.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return u
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	s := New()
	newTestUser(t, s, "dup@example.com")

	u := &user.User{Entity: types.NewEntity(), ID: id.NewUserID(), Email: "DUP@example.com"}
	err := s.CreateUser(context.Background(), u)
	if !errors.Is(err, momentum.ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestGetUserByEmail(t *testing.T) {
	s := New()
	u := newTestUser(t, s, "find@example.com")

	got, err := s.GetUserByEmail(context.Background(), "find@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if got.ID.String() != u.ID.String() {
		t.Errorf("expected user %s, got %s", u.ID, got.ID)
	}

	if _, err := s.GetUserByEmail(context.Background(), "missing@example.com"); !errors.Is(err, momentum.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestMarkTaskDone(t *testing.T) {
	s := New()
	ctx := context.Background()
	u := newTestUser(t, s, "tasks@example.com")

	tk := &task.Task{
		Entity:       types.NewEntity(),
		ID:           id.NewTaskID(),
		UserID:       u.ID,
		Title:        "write report",
		Status:       task.StatusPending,
		RewardPoints: 10,
	}
	if err := s.CreateTask(ctx, tk); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	done, err := s.MarkTaskDone(ctx, u.ID, tk.ID)
	if err != nil {
		t.Fatalf("MarkTaskDone: %v", err)
	}
	if done.Status != task.StatusDone {
		t.Errorf("expected status done, got %s", done.Status)
	}
	if done.CompletedAt == nil {
		t.Error("expected CompletedAt to be set")
	}

	// second completion must be rejected so rewards credit at most once
	if _, err := s.MarkTaskDone(ctx, u.ID, tk.ID); !errors.Is(err, momentum.ErrTaskAlreadyDone) {
		t.Errorf("expected ErrTaskAlreadyDone, got %v", err)
	}
}

func TestMarkTaskDoneWrongUser(t *testing.T) {
	s := New()
	ctx := context.Background()
	owner := newTestUser(t, s, "owner@example.com")
	other := newTestUser(t, s, "other@example.com")

	tk := &task.Task{Entity: types.NewEntity(), ID: id.NewTaskID(), UserID: owner.ID, Title: "private", Status: task.StatusPending}
	if err := s.CreateTask(ctx, tk); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	if _, err := s.MarkTaskDone(ctx, other.ID, tk.ID); !errors.Is(err, momentum.ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound for foreign task, got %v", err)
	}
}

func TestListTasksFilter(t *testing.T) {
	s := New()
	ctx := context.Background()
	u := newTestUser(t, s, "list@example.com")

	for i, st := range []task.Status{task.StatusPending, task.StatusPending, task.StatusDone} {
		tk := &task.Task{Entity: types.NewEntity(), ID: id.NewTaskID(), UserID: u.ID, Title: "t", Status: st}
		tk.CreatedAt = time.Now().Add(time.Duration(i) * time.Millisecond)
		if err := s.CreateTask(ctx, tk); err != nil {
			t.Fatalf("CreateTask: %v", err)
		}
	}

	pending, err := s.ListTasks(ctx, u.ID, task.ListOpts{Status: task.StatusPending})
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(pending) != 2 {
		t.Errorf("expected 2 pending tasks, got %d", len(pending))
	}

	all, err := s.ListTasks(ctx, u.ID, task.ListOpts{})
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 tasks, got %d", len(all))
	}
}

func TestFinishSessionConflict(t *testing.T) {
	s := New()
	ctx := context.Background()
	u := newTestUser(t, s, "pomo@example.com")

	sess := &pomodoro.Session{
		Entity:         types.NewEntity(),
		ID:             id.NewSessionID(),
		UserID:         u.ID,
		PlannedMinutes: 25,
		Status:         pomodoro.StatusRunning,
		StartedAt:      time.Now().UTC(),
	}
	if err := s.CreateSession(ctx, sess); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	done, err := s.FinishSession(ctx, u.ID, sess.ID, pomodoro.StatusCompleted, 25)
	if err != nil {
		t.Fatalf("FinishSession: %v", err)
	}
	if done.Status != pomodoro.StatusCompleted || done.FocusMinutes != 25 {
		t.Errorf("unexpected finished session: %+v", done)
	}

	if _, err := s.FinishSession(ctx, u.ID, sess.ID, pomodoro.StatusAbandoned, 5); !errors.Is(err, momentum.ErrSessionAlreadyEnded) {
		t.Errorf("expected ErrSessionAlreadyEnded, got %v", err)
	}
}

func TestEnsureRewardProfileIdempotent(t *testing.T) {
	s := New()
	ctx := context.Background()
	userID := id.NewUserID()

	p1, err := s.EnsureRewardProfile(ctx, userID)
	if err != nil {
		t.Fatalf("EnsureRewardProfile: %v", err)
	}
	if p1.Balance != 0 {
		t.Errorf("new profile balance = %d, want 0", p1.Balance)
	}

	if _, err := s.CreditPoints(ctx, userID, 40); err != nil {
		t.Fatalf("CreditPoints: %v", err)
	}

	// a second ensure must not reset the balance
	p2, err := s.EnsureRewardProfile(ctx, userID)
	if err != nil {
		t.Fatalf("EnsureRewardProfile: %v", err)
	}
	if p2.Balance != 40 {
		t.Errorf("balance after re-ensure = %d, want 40", p2.Balance)
	}
}

func TestGetRewardProfileMissing(t *testing.T) {
	s := New()
	if _, err := s.GetRewardProfile(context.Background(), id.NewUserID()); !errors.Is(err, momentum.ErrProfileNotFound) {
		t.Errorf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestDebitForPurchase(t *testing.T) {
	s := New()
	ctx := context.Background()
	userID := id.NewUserID()

	if _, err := s.CreditPoints(ctx, userID, 50); err != nil {
		t.Fatalf("CreditPoints: %v", err)
	}

	balance, err := s.DebitForPurchase(ctx, userID, &reward.Purchase{
		ID:        id.NewPurchaseID(),
		UserID:    userID,
		ItemName:  "Snack Break",
		Cost:      20,
		Category:  reward.CategoryBreak,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("DebitForPurchase: %v", err)
	}
	if balance != 30 {
		t.Errorf("balance after debit = %d, want 30", balance)
	}

	// cost above balance must decline without mutating anything
	balance, err = s.DebitForPurchase(ctx, userID, &reward.Purchase{
		ID: id.NewPurchaseID(), UserID: userID, ItemName: "Gaming Time (30m)", Cost: 50, Timestamp: time.Now().UTC(),
	})
	if !errors.Is(err, momentum.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	if balance != 30 {
		t.Errorf("declined debit reported balance %d, want 30", balance)
	}

	history, err := s.ListPurchases(ctx, userID, reward.ListOpts{})
	if err != nil {
		t.Fatalf("ListPurchases: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("history length = %d, want 1", len(history))
	}
	if history[0].ItemName != "Snack Break" {
		t.Errorf("history[0] = %s, want Snack Break", history[0].ItemName)
	}
}

func TestDebitForPurchaseConcurrent(t *testing.T) {
	s := New()
	ctx := context.Background()
	userID := id.NewUserID()

	if _, err := s.CreditPoints(ctx, userID, 50); err != nil {
		t.Fatalf("CreditPoints: %v", err)
	}

	const workers = 16
	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.DebitForPurchase(ctx, userID, &reward.Purchase{
				ID: id.NewPurchaseID(), UserID: userID, ItemName: "Gaming Time (30m)", Cost: 50, Timestamp: time.Now().UTC(),
			})
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

	p, err := s.GetRewardProfile(ctx, userID)
	if err != nil {
		t.Fatalf("GetRewardProfile: %v", err)
	}
	if p.Balance != 0 {
		t.Errorf("final balance = %d, want 0", p.Balance)
	}
}

func TestMoodAppendAndList(t *testing.T) {
	s := New()
	ctx := context.Background()
	userID := id.NewUserID()

	for _, m := range []mood.Mood{mood.MoodHappy, mood.MoodTired, mood.MoodHappy} {
		err := s.AppendMood(ctx, &mood.Entry{
			ID: id.NewMoodID(), UserID: userID, Mood: m, LoggedAt: time.Now().UTC(),
		})
		if err != nil {
			t.Fatalf("AppendMood: %v", err)
		}
	}

	entries, err := s.ListMoods(ctx, userID, mood.ListOpts{})
	if err != nil {
		t.Fatalf("ListMoods: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("expected 3 entries, got %d", len(entries))
	}
}

func TestSummarize(t *testing.T) {
	s := New()
	ctx := context.Background()
	u := newTestUser(t, s, "summary@example.com")

	tk := &task.Task{Entity: types.NewEntity(), ID: id.NewTaskID(), UserID: u.ID, Title: "t", Status: task.StatusPending}
	if err := s.CreateTask(ctx, tk); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if _, err := s.MarkTaskDone(ctx, u.ID, tk.ID); err != nil {
		t.Fatalf("MarkTaskDone: %v", err)
	}

	sess := &pomodoro.Session{Entity: types.NewEntity(), ID: id.NewSessionID(), UserID: u.ID, PlannedMinutes: 25, Status: pomodoro.StatusRunning, StartedAt: time.Now().UTC()}
	if err := s.CreateSession(ctx, sess); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if _, err := s.FinishSession(ctx, u.ID, sess.ID, pomodoro.StatusCompleted, 25); err != nil {
		t.Fatalf("FinishSession: %v", err)
	}

	if err := s.AppendMood(ctx, &mood.Entry{ID: id.NewMoodID(), UserID: u.ID, Mood: mood.MoodFocused, LoggedAt: time.Now().UTC()}); err != nil {
		t.Fatalf("AppendMood: %v", err)
	}
	if _, err := s.CreditPoints(ctx, u.ID, 30); err != nil {
		t.Fatalf("CreditPoints: %v", err)
	}
	if _, err := s.DebitForPurchase(ctx, u.ID, &reward.Purchase{ID: id.NewPurchaseID(), UserID: u.ID, ItemName: "Snack Break", Cost: 20, Timestamp: time.Now().UTC()}); err != nil {
		t.Fatalf("DebitForPurchase: %v", err)
	}

	sum, err := s.Summarize(ctx, u.ID, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if sum.TasksCreated != 1 || sum.TasksCompleted != 1 {
		t.Errorf("tasks created/completed = %d/%d, want 1/1", sum.TasksCreated, sum.TasksCompleted)
	}
	if sum.SessionsCompleted != 1 || sum.FocusMinutes != 25 {
		t.Errorf("sessions/focus = %d/%d, want 1/25", sum.SessionsCompleted, sum.FocusMinutes)
	}
	if sum.MoodCounts["focused"] != 1 {
		t.Errorf("mood counts = %v, want focused:1", sum.MoodCounts)
	}
	if sum.PointsEarned != 30 || sum.PointsSpent != 20 {
		t.Errorf("earned/spent = %d/%d, want 30/20", sum.PointsEarned, sum.PointsSpent)
	}
}

func TestListActiveUsers(t *testing.T) {
	s := New()
	ctx := context.Background()
	active := newTestUser(t, s, "active@example.com")
	newTestUser(t, s, "idle@example.com")

	sess := &pomodoro.Session{Entity: types.NewEntity(), ID: id.NewSessionID(), UserID: active.ID, PlannedMinutes: 25, Status: pomodoro.StatusRunning, StartedAt: time.Now().UTC()}
	if err := s.CreateSession(ctx, sess); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if _, err := s.FinishSession(ctx, active.ID, sess.ID, pomodoro.StatusCompleted, 25); err != nil {
		t.Fatalf("FinishSession: %v", err)
	}

	ids, err := s.ListActiveUsers(ctx, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("ListActiveUsers: %v", err)
	}
	if len(ids) != 1 || ids[0].String() != active.ID.String() {
		t.Errorf("active users = %v, want [%s]", ids, active.ID)
	}
}

func TestClosedStore(t *testing.T) {
	s := New()
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := s.Ping(context.Background()); !errors.Is(err, momentum.ErrStoreClosed) {
		t.Errorf("expected ErrStoreClosed, got %v", err)
	}
}
