package mongo

import (
	"time"

	"github.com/momentumhq/momentum/id"
	"github.com/momentumhq/momentum/mood"
	"github.com/momentumhq/momentum/pomodoro"
	"github.com/momentumhq/momentum/reward"
	"github.com/momentumhq/momentum/task"
	"github.com/momentumhq/momentum/types"
	"github.com/momentumhq/momentum/user"
)

// ==================== Account models ====================

type userModel struct {
	ID           string    `bson:"_id"`
	Email        string    `bson:"email"`
	Name         string    `bson:"name"`
	PasswordHash []byte    `bson:"password_hash"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

func toUserModel(u *user.User) *userModel {
	return &userModel{
		ID:           u.ID.String(),
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func fromUserModel(m *userModel) (*user.User, error) {
	uid, err := id.ParseUserID(m.ID)
	if err != nil {
		return nil, err
	}
	return &user.User{
		Entity:       types.Entity{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		ID:           uid,
		Email:        m.Email,
		Name:         m.Name,
		PasswordHash: m.PasswordHash,
	}, nil
}

// ==================== Task models ====================

type taskModel struct {
	ID           string     `bson:"_id"`
	UserID       string     `bson:"user_id"`
	Title        string     `bson:"title"`
	Notes        string     `bson:"notes,omitempty"`
	Status       string     `bson:"status"`
	RewardPoints int64      `bson:"reward_points"`
	DueAt        *time.Time `bson:"due_at,omitempty"`
	CompletedAt  *time.Time `bson:"completed_at,omitempty"`
	CreatedAt    time.Time  `bson:"created_at"`
	UpdatedAt    time.Time  `bson:"updated_at"`
}

func toTaskModel(t *task.Task) *taskModel {
	return &taskModel{
		ID:           t.ID.String(),
		UserID:       t.UserID.String(),
		Title:        t.Title,
		Notes:        t.Notes,
		Status:       string(t.Status),
		RewardPoints: t.RewardPoints,
		DueAt:        t.DueAt,
		CompletedAt:  t.CompletedAt,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func fromTaskModel(m *taskModel) (*task.Task, error) {
	tid, err := id.ParseTaskID(m.ID)
	if err != nil {
		return nil, err
	}
	uid, err := id.ParseUserID(m.UserID)
	if err != nil {
		return nil, err
	}
	return &task.Task{
		Entity:       types.Entity{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		ID:           tid,
		UserID:       uid,
		Title:        m.Title,
		Notes:        m.Notes,
		Status:       task.Status(m.Status),
		RewardPoints: m.RewardPoints,
		DueAt:        m.DueAt,
		CompletedAt:  m.CompletedAt,
	}, nil
}

// ==================== Focus session models ====================

type sessionModel struct {
	ID             string     `bson:"_id"`
	UserID         string     `bson:"user_id"`
	TaskID         string     `bson:"task_id,omitempty"`
	PlannedMinutes int        `bson:"planned_minutes"`
	FocusMinutes   int        `bson:"focus_minutes"`
	Status         string     `bson:"status"`
	StartedAt      time.Time  `bson:"started_at"`
	EndedAt        *time.Time `bson:"ended_at,omitempty"`
	CreatedAt      time.Time  `bson:"created_at"`
	UpdatedAt      time.Time  `bson:"updated_at"`
}

func toSessionModel(s *pomodoro.Session) *sessionModel {
	m := &sessionModel{
		ID:             s.ID.String(),
		UserID:         s.UserID.String(),
		PlannedMinutes: s.PlannedMinutes,
		FocusMinutes:   s.FocusMinutes,
		Status:         string(s.Status),
		StartedAt:      s.StartedAt,
		EndedAt:        s.EndedAt,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
	if !s.TaskID.IsNil() {
		m.TaskID = s.TaskID.String()
	}
	return m
}

func fromSessionModel(m *sessionModel) (*pomodoro.Session, error) {
	sid, err := id.ParseSessionID(m.ID)
	if err != nil {
		return nil, err
	}
	uid, err := id.ParseUserID(m.UserID)
	if err != nil {
		return nil, err
	}
	s := &pomodoro.Session{
		Entity:         types.Entity{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		ID:             sid,
		UserID:         uid,
		PlannedMinutes: m.PlannedMinutes,
		FocusMinutes:   m.FocusMinutes,
		Status:         pomodoro.Status(m.Status),
		StartedAt:      m.StartedAt,
		EndedAt:        m.EndedAt,
	}
	if m.TaskID != "" {
		tid, err := id.ParseTaskID(m.TaskID)
		if err != nil {
			return nil, err
		}
		s.TaskID = tid
	}
	return s, nil
}

// ==================== Mood models ====================

type moodModel struct {
	ID       string    `bson:"_id"`
	UserID   string    `bson:"user_id"`
	Mood     string    `bson:"mood"`
	Note     string    `bson:"note,omitempty"`
	LoggedAt time.Time `bson:"logged_at"`
}

func toMoodModel(e *mood.Entry) *moodModel {
	return &moodModel{
		ID:       e.ID.String(),
		UserID:   e.UserID.String(),
		Mood:     string(e.Mood),
		Note:     e.Note,
		LoggedAt: e.LoggedAt,
	}
}

func fromMoodModel(m *moodModel) (*mood.Entry, error) {
	mid, err := id.ParseMoodID(m.ID)
	if err != nil {
		return nil, err
	}
	uid, err := id.ParseUserID(m.UserID)
	if err != nil {
		return nil, err
	}
	return &mood.Entry{
		ID:       mid,
		UserID:   uid,
		Mood:     mood.Mood(m.Mood),
		Note:     m.Note,
		LoggedAt: m.LoggedAt,
	}, nil
}

// ==================== Reward ledger models ====================

// profileModel embeds the purchase history so a purchase is a single
// conditional document update: the balance check, debit, and history
// append commit or fail together.
type profileModel struct {
	ID              string          `bson:"_id"` // user id
	Balance         int64           `bson:"balance"`
	TotalEarned     int64           `bson:"total_earned"`
	TotalSpent      int64           `bson:"total_spent"`
	PurchaseHistory []purchaseModel `bson:"purchase_history"`
	CreatedAt       time.Time       `bson:"created_at"`
	UpdatedAt       time.Time       `bson:"updated_at"`
}

type purchaseModel struct {
	ID        string    `bson:"id"`
	ItemName  string    `bson:"item_name"`
	Cost      int64     `bson:"cost"`
	Category  string    `bson:"category"`
	Timestamp time.Time `bson:"timestamp"`
}

func toPurchaseModel(p *reward.Purchase) *purchaseModel {
	return &purchaseModel{
		ID:        p.ID.String(),
		ItemName:  p.ItemName,
		Cost:      p.Cost,
		Category:  string(p.Category),
		Timestamp: p.Timestamp,
	}
}

func fromProfileModel(m *profileModel) (*reward.Profile, error) {
	uid, err := id.ParseUserID(m.ID)
	if err != nil {
		return nil, err
	}
	return &reward.Profile{
		Entity:      types.Entity{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		UserID:      uid,
		Balance:     m.Balance,
		TotalEarned: m.TotalEarned,
		TotalSpent:  m.TotalSpent,
	}, nil
}

func fromPurchaseModel(userID id.UserID, m *purchaseModel) (*reward.Purchase, error) {
	pid, err := id.ParsePurchaseID(m.ID)
	if err != nil {
		return nil, err
	}
	return &reward.Purchase{
		ID:        pid,
		UserID:    userID,
		ItemName:  m.ItemName,
		Cost:      m.Cost,
		Category:  reward.Category(m.Category),
		Timestamp: m.Timestamp,
	}, nil
}
