// Package memory provides an in-memory Store implementation used by tests
// and demos. A single mutex serializes all mutations, which trivially
// satisfies the per-user atomicity contract of the reward ledger.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	momentum "github.com/momentumhq/momentum"
	"github.com/momentumhq/momentum/analytics"
	"github.com/momentumhq/momentum/id"
	"github.com/momentumhq/momentum/mood"
	"github.com/momentumhq/momentum/pomodoro"
	"github.com/momentumhq/momentum/reward"
	"github.com/momentumhq/momentum/store"
	"github.com/momentumhq/momentum/task"
	"github.com/momentumhq/momentum/types"
	"github.com/momentumhq/momentum/user"
)

// compile-time interface check
var _ store.Store = (*Store)(nil)

type Store struct {
	mu sync.RWMutex

	users    map[string]*user.User
	tasks    map[string]*task.Task
	sessions map[string]*pomodoro.Session
	moods    []*mood.Entry

	profiles  map[string]*reward.Profile
	purchases map[string][]*reward.Purchase

	closed bool
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		users:     make(map[string]*user.User),
		tasks:     make(map[string]*task.Task),
		sessions:  make(map[string]*pomodoro.Session),
		profiles:  make(map[string]*reward.Profile),
		purchases: make(map[string][]*reward.Purchase),
	}
}

// ==================== Account Store ====================

func (s *Store) CreateUser(_ context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return momentum.ErrStoreClosed
	}
	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return momentum.ErrEmailTaken
		}
	}
	cp := *u
	s.users[u.ID.String()] = &cp
	return nil
}

func (s *Store) GetUser(_ context.Context, userID id.UserID) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if u, ok := s.users[userID.String()]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, momentum.ErrUserNotFound
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, momentum.ErrUserNotFound
}

func (s *Store) UpdateUser(_ context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.ID.String()]; !ok {
		return momentum.ErrUserNotFound
	}
	cp := *u
	cp.Touch()
	s.users[u.ID.String()] = &cp
	return nil
}

func (s *Store) ListActiveUsers(_ context.Context, since time.Time) ([]id.UserID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	var out []id.UserID
	for _, sess := range s.sessions {
		if sess.Status != pomodoro.StatusCompleted || sess.EndedAt == nil || sess.EndedAt.Before(since) {
			continue
		}
		key := sess.UserID.String()
		if !seen[key] {
			seen[key] = true
			out = append(out, sess.UserID)
		}
	}
	return out, nil
}

// ==================== Task Store ====================

func (s *Store) CreateTask(_ context.Context, t *task.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *t
	s.tasks[t.ID.String()] = &cp
	return nil
}

func (s *Store) GetTask(_ context.Context, userID id.UserID, taskID id.TaskID) (*task.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.getTaskLocked(userID, taskID)
}

// getTaskLocked requires at least a read lock.
func (s *Store) getTaskLocked(userID id.UserID, taskID id.TaskID) (*task.Task, error) {
	t, ok := s.tasks[taskID.String()]
	if !ok || t.UserID.String() != userID.String() {
		return nil, momentum.ErrTaskNotFound
	}
	cp := *t
	return &cp, nil
}

func (s *Store) ListTasks(_ context.Context, userID id.UserID, opts task.ListOpts) ([]*task.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*task.Task
	for _, t := range s.tasks {
		if t.UserID.String() != userID.String() {
			continue
		}
		if opts.Status != "" && t.Status != opts.Status {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return window(out, opts.Offset, opts.Limit), nil
}

func (s *Store) UpdateTask(_ context.Context, t *task.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.tasks[t.ID.String()]
	if !ok || existing.UserID.String() != t.UserID.String() {
		return momentum.ErrTaskNotFound
	}
	cp := *t
	cp.Touch()
	s.tasks[t.ID.String()] = &cp
	return nil
}

func (s *Store) DeleteTask(_ context.Context, userID id.UserID, taskID id.TaskID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[taskID.String()]
	if !ok || t.UserID.String() != userID.String() {
		return momentum.ErrTaskNotFound
	}
	delete(s.tasks, taskID.String())
	return nil
}

func (s *Store) MarkTaskDone(_ context.Context, userID id.UserID, taskID id.TaskID) (*task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[taskID.String()]
	if !ok || t.UserID.String() != userID.String() {
		return nil, momentum.ErrTaskNotFound
	}
	if t.Status == task.StatusDone {
		return nil, momentum.ErrTaskAlreadyDone
	}

	now := time.Now().UTC()
	t.Status = task.StatusDone
	t.CompletedAt = &now
	t.Touch()

	cp := *t
	return &cp, nil
}

// ==================== Focus Session Store ====================

func (s *Store) CreateSession(_ context.Context, sess *pomodoro.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *sess
	s.sessions[sess.ID.String()] = &cp
	return nil
}

func (s *Store) GetSession(_ context.Context, userID id.UserID, sessionID id.SessionID) (*pomodoro.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionID.String()]
	if !ok || sess.UserID.String() != userID.String() {
		return nil, momentum.ErrSessionNotFound
	}
	cp := *sess
	return &cp, nil
}

func (s *Store) ListSessions(_ context.Context, userID id.UserID, opts pomodoro.ListOpts) ([]*pomodoro.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*pomodoro.Session
	for _, sess := range s.sessions {
		if sess.UserID.String() != userID.String() {
			continue
		}
		if opts.Status != "" && sess.Status != opts.Status {
			continue
		}
		if !opts.Since.IsZero() && sess.StartedAt.Before(opts.Since) {
			continue
		}
		cp := *sess
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.Before(out[j].StartedAt) })
	return window(out, opts.Offset, opts.Limit), nil
}

func (s *Store) FinishSession(_ context.Context, userID id.UserID, sessionID id.SessionID, status pomodoro.Status, focusMinutes int) (*pomodoro.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID.String()]
	if !ok || sess.UserID.String() != userID.String() {
		return nil, momentum.ErrSessionNotFound
	}
	if sess.Status != pomodoro.StatusRunning {
		return nil, momentum.ErrSessionAlreadyEnded
	}

	now := time.Now().UTC()
	sess.Status = status
	sess.FocusMinutes = focusMinutes
	sess.EndedAt = &now
	sess.Touch()

	cp := *sess
	return &cp, nil
}

// ==================== Mood Log Store ====================

func (s *Store) AppendMood(_ context.Context, e *mood.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *e
	s.moods = append(s.moods, &cp)
	return nil
}

func (s *Store) ListMoods(_ context.Context, userID id.UserID, opts mood.ListOpts) ([]*mood.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*mood.Entry
	for _, e := range s.moods {
		if e.UserID.String() != userID.String() {
			continue
		}
		if !opts.Since.IsZero() && e.LoggedAt.Before(opts.Since) {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	return window(out, opts.Offset, opts.Limit), nil
}

// ==================== Reward Ledger Store ====================

func (s *Store) EnsureRewardProfile(_ context.Context, userID id.UserID) (*reward.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.ensureProfileLocked(userID)
	cp := *p
	return &cp, nil
}

// ensureProfileLocked requires the write lock.
func (s *Store) ensureProfileLocked(userID id.UserID) *reward.Profile {
	key := userID.String()
	if p, ok := s.profiles[key]; ok {
		return p
	}
	p := &reward.Profile{UserID: userID}
	p.Entity = types.NewEntity()
	s.profiles[key] = p
	return p
}

func (s *Store) GetRewardProfile(_ context.Context, userID id.UserID) (*reward.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, ok := s.profiles[userID.String()]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, momentum.ErrProfileNotFound
}

func (s *Store) CreditPoints(_ context.Context, userID id.UserID, amount int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.ensureProfileLocked(userID)
	p.Balance += amount
	p.TotalEarned += amount
	p.Touch()
	return p.Balance, nil
}

// DebitForPurchase performs the balance check, debit, and history append
// under the store lock, so concurrent purchases for one user serialize and
// at most one succeeds when only one is affordable.
func (s *Store) DebitForPurchase(_ context.Context, userID id.UserID, pur *reward.Purchase) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.ensureProfileLocked(userID)
	if p.Balance < pur.Cost {
		return p.Balance, momentum.ErrInsufficientBalance
	}

	p.Balance -= pur.Cost
	p.TotalSpent += pur.Cost
	p.Touch()

	cp := *pur
	s.purchases[userID.String()] = append(s.purchases[userID.String()], &cp)
	return p.Balance, nil
}

func (s *Store) ListPurchases(_ context.Context, userID id.UserID, opts reward.ListOpts) ([]*reward.Purchase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*reward.Purchase
	for _, p := range s.purchases[userID.String()] {
		if !opts.Since.IsZero() && p.Timestamp.Before(opts.Since) {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return window(out, opts.Offset, opts.Limit), nil
}

// ==================== Analytics Store ====================

func (s *Store) Summarize(_ context.Context, userID id.UserID, from, to time.Time) (*analytics.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sum := &analytics.Summary{
		From:       from,
		To:         to,
		MoodCounts: make(map[string]int64),
	}
	key := userID.String()

	for _, t := range s.tasks {
		if t.UserID.String() != key {
			continue
		}
		if inWindow(t.CreatedAt, from, to) {
			sum.TasksCreated++
		}
		if t.CompletedAt != nil && inWindow(*t.CompletedAt, from, to) {
			sum.TasksCompleted++
		}
	}

	for _, sess := range s.sessions {
		if sess.UserID.String() != key || sess.Status != pomodoro.StatusCompleted {
			continue
		}
		if sess.EndedAt != nil && inWindow(*sess.EndedAt, from, to) {
			sum.SessionsCompleted++
			sum.FocusMinutes += int64(sess.FocusMinutes)
		}
	}

	for _, e := range s.moods {
		if e.UserID.String() == key && inWindow(e.LoggedAt, from, to) {
			sum.MoodCounts[string(e.Mood)]++
		}
	}

	for _, p := range s.purchases[key] {
		if inWindow(p.Timestamp, from, to) {
			sum.PointsSpent += p.Cost
		}
	}
	// Credits are not journaled per event, so PointsEarned is the lifetime
	// running total from the profile. See analytics.Summary.
	if p, ok := s.profiles[key]; ok {
		sum.PointsEarned = p.TotalEarned
	}

	return sum, nil
}

// ==================== Core ====================

func (s *Store) Migrate(_ context.Context) error { return nil }

func (s *Store) Ping(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return momentum.ErrStoreClosed
	}
	return nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// ==================== Helpers ====================

func window[T any](items []T, offset, limit int) []T {
	start := offset
	if start > len(items) {
		start = len(items)
	}
	end := start + limit
	if limit == 0 || end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func inWindow(t, from, to time.Time) bool {
	if !from.IsZero() && t.Before(from) {
		return false
	}
	if !to.IsZero() && t.After(to) {
		return false
	}
	return true
}
