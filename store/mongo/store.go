// Package mongo implements the unified store on MongoDB.
//
// The reward profile document embeds its purchase history, so the ledger's
// check-debit-append sequence is one conditional FindOneAndUpdate and the
// database serializes concurrent purchases per user.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	momentum "github.com/momentumhq/momentum"
	"github.com/momentumhq/momentum/analytics"
	"github.com/momentumhq/momentum/id"
	"github.com/momentumhq/momentum/mood"
	"github.com/momentumhq/momentum/pomodoro"
	"github.com/momentumhq/momentum/reward"
	momentumstore "github.com/momentumhq/momentum/store"
	"github.com/momentumhq/momentum/task"
	"github.com/momentumhq/momentum/user"
)

// Collection name constants.
const (
	colUsers    = "momentum_users"
	colTasks    = "momentum_tasks"
	colSessions = "momentum_sessions"
	colMoods    = "momentum_moods"
	colProfiles = "momentum_reward_profiles"
)

// compile-time interface check
var _ momentumstore.Store = (*Store)(nil)

// Store implements store.Store on a MongoDB database.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// New wraps an already connected client.
func New(client *mongo.Client, database string) *Store {
	return &Store{client: client, db: client.Database(database)}
}

// Connect dials the given URI and returns a store over it.
func Connect(uri, database string) (*Store, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, storeErr("connect", err)
	}
	return New(client, database), nil
}

// DB returns the underlying database for direct access.
func (s *Store) DB() *mongo.Database { return s.db }

// Migrate creates indexes for all collections.
func (s *Store) Migrate(ctx context.Context) error {
	for col, models := range migrationIndexes() {
		if len(models) == 0 {
			continue
		}
		_, err := s.db.Collection(col).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("momentum/mongo: migrate %s indexes: %w: %w", col, momentum.ErrMigrationFailed, err)
		}
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, nil); err != nil {
		return storeErr("ping", err)
	}
	return nil
}

// Close disconnects the client.
func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// ==================== Account Store ====================

func (s *Store) CreateUser(ctx context.Context, u *user.User) error {
	_, err := s.db.Collection(colUsers).InsertOne(ctx, toUserModel(u))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return momentum.ErrEmailTaken
		}
		return storeErr("create user", err)
	}
	return nil
}

func (s *Store) GetUser(ctx context.Context, userID id.UserID) (*user.User, error) {
	var m userModel
	err := s.db.Collection(colUsers).FindOne(ctx, bson.M{"_id": userID.String()}).Decode(&m)
	if err != nil {
		if isNoDocuments(err) {
			return nil, momentum.ErrUserNotFound
		}
		return nil, storeErr("get user", err)
	}
	return fromUserModel(&m)
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	var m userModel
	err := s.db.Collection(colUsers).FindOne(ctx, bson.M{"email": email}).Decode(&m)
	if err != nil {
		if isNoDocuments(err) {
			return nil, momentum.ErrUserNotFound
		}
		return nil, storeErr("get user by email", err)
	}
	return fromUserModel(&m)
}

func (s *Store) UpdateUser(ctx context.Context, u *user.User) error {
	m := toUserModel(u)
	m.UpdatedAt = now()

	res, err := s.db.Collection(colUsers).ReplaceOne(ctx, bson.M{"_id": m.ID}, m)
	if err != nil {
		return storeErr("update user", err)
	}
	if res.MatchedCount == 0 {
		return momentum.ErrUserNotFound
	}
	return nil
}

func (s *Store) ListActiveUsers(ctx context.Context, since time.Time) ([]id.UserID, error) {
	res := s.db.Collection(colSessions).Distinct(ctx, "user_id", bson.M{
		"status":   string(pomodoro.StatusCompleted),
		"ended_at": bson.M{"$gte": since},
	})

	var raw []string
	if err := res.Decode(&raw); err != nil {
		return nil, storeErr("list active users", err)
	}

	out := make([]id.UserID, 0, len(raw))
	for _, v := range raw {
		uid, err := id.ParseUserID(v)
		if err != nil {
			return nil, err
		}
		out = append(out, uid)
	}
	return out, nil
}

// ==================== Task Store ====================

func (s *Store) CreateTask(ctx context.Context, t *task.Task) error {
	_, err := s.db.Collection(colTasks).InsertOne(ctx, toTaskModel(t))
	if err != nil {
		return storeErr("create task", err)
	}
	return nil
}

func (s *Store) GetTask(ctx context.Context, userID id.UserID, taskID id.TaskID) (*task.Task, error) {
	var m taskModel
	err := s.db.Collection(colTasks).
		FindOne(ctx, bson.M{"_id": taskID.String(), "user_id": userID.String()}).
		Decode(&m)
	if err != nil {
		if isNoDocuments(err) {
			return nil, momentum.ErrTaskNotFound
		}
		return nil, storeErr("get task", err)
	}
	return fromTaskModel(&m)
}

func (s *Store) ListTasks(ctx context.Context, userID id.UserID, opts task.ListOpts) ([]*task.Task, error) {
	filter := bson.M{"user_id": userID.String()}
	if opts.Status != "" {
		filter["status"] = string(opts.Status)
	}

	findOpts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	if opts.Limit > 0 {
		findOpts = findOpts.SetLimit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		findOpts = findOpts.SetSkip(int64(opts.Offset))
	}

	cursor, err := s.db.Collection(colTasks).Find(ctx, filter, findOpts)
	if err != nil {
		return nil, storeErr("list tasks", err)
	}
	defer cursor.Close(ctx)

	var models []taskModel
	if err := cursor.All(ctx, &models); err != nil {
		return nil, storeErr("list tasks decode", err)
	}

	result := make([]*task.Task, len(models))
	for i := range models {
		t, err := fromTaskModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = t
	}
	return result, nil
}

func (s *Store) UpdateTask(ctx context.Context, t *task.Task) error {
	m := toTaskModel(t)
	m.UpdatedAt = now()

	res, err := s.db.Collection(colTasks).
		ReplaceOne(ctx, bson.M{"_id": m.ID, "user_id": m.UserID}, m)
	if err != nil {
		return storeErr("update task", err)
	}
	if res.MatchedCount == 0 {
		return momentum.ErrTaskNotFound
	}
	return nil
}

func (s *Store) DeleteTask(ctx context.Context, userID id.UserID, taskID id.TaskID) error {
	res, err := s.db.Collection(colTasks).
		DeleteOne(ctx, bson.M{"_id": taskID.String(), "user_id": userID.String()})
	if err != nil {
		return storeErr("delete task", err)
	}
	if res.DeletedCount == 0 {
		return momentum.ErrTaskNotFound
	}
	return nil
}

func (s *Store) MarkTaskDone(ctx context.Context, userID id.UserID, taskID id.TaskID) (*task.Task, error) {
	t := now()
	var m taskModel
	err := s.db.Collection(colTasks).FindOneAndUpdate(ctx,
		bson.M{
			"_id":     taskID.String(),
			"user_id": userID.String(),
			"status":  string(task.StatusPending),
		},
		bson.M{"$set": bson.M{
			"status":       string(task.StatusDone),
			"completed_at": t,
			"updated_at":   t,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&m)
	if err != nil {
		if isNoDocuments(err) {
			// either missing or already done; look again to tell which
			if _, getErr := s.GetTask(ctx, userID, taskID); getErr == nil {
				return nil, momentum.ErrTaskAlreadyDone
			}
			return nil, momentum.ErrTaskNotFound
		}
		return nil, storeErr("mark task done", err)
	}
	return fromTaskModel(&m)
}

// ==================== Focus Session Store ====================

func (s *Store) CreateSession(ctx context.Context, sess *pomodoro.Session) error {
	_, err := s.db.Collection(colSessions).InsertOne(ctx, toSessionModel(sess))
	if err != nil {
		return storeErr("create session", err)
	}
	return nil
}

func (s *Store) GetSession(ctx context.Context, userID id.UserID, sessionID id.SessionID) (*pomodoro.Session, error) {
	var m sessionModel
	err := s.db.Collection(colSessions).
		FindOne(ctx, bson.M{"_id": sessionID.String(), "user_id": userID.String()}).
		Decode(&m)
	if err != nil {
		if isNoDocuments(err) {
			return nil, momentum.ErrSessionNotFound
		}
		return nil, storeErr("get session", err)
	}
	return fromSessionModel(&m)
}

func (s *Store) ListSessions(ctx context.Context, userID id.UserID, opts pomodoro.ListOpts) ([]*pomodoro.Session, error) {
	filter := bson.M{"user_id": userID.String()}
	if opts.Status != "" {
		filter["status"] = string(opts.Status)
	}
	if !opts.Since.IsZero() {
		filter["started_at"] = bson.M{"$gte": opts.Since}
	}

	findOpts := options.Find().SetSort(bson.D{{Key: "started_at", Value: 1}})
	if opts.Limit > 0 {
		findOpts = findOpts.SetLimit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		findOpts = findOpts.SetSkip(int64(opts.Offset))
	}

	cursor, err := s.db.Collection(colSessions).Find(ctx, filter, findOpts)
	if err != nil {
		return nil, storeErr("list sessions", err)
	}
	defer cursor.Close(ctx)

	var models []sessionModel
	if err := cursor.All(ctx, &models); err != nil {
		return nil, storeErr("list sessions decode", err)
	}

	result := make([]*pomodoro.Session, len(models))
	for i := range models {
		sess, err := fromSessionModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = sess
	}
	return result, nil
}

func (s *Store) FinishSession(ctx context.Context, userID id.UserID, sessionID id.SessionID, status pomodoro.Status, focusMinutes int) (*pomodoro.Session, error) {
	t := now()
	var m sessionModel
	err := s.db.Collection(colSessions).FindOneAndUpdate(ctx,
		bson.M{
			"_id":     sessionID.String(),
			"user_id": userID.String(),
			"status":  string(pomodoro.StatusRunning),
		},
		bson.M{"$set": bson.M{
			"status":        string(status),
			"focus_minutes": focusMinutes,
			"ended_at":      t,
			"updated_at":    t,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&m)
	if err != nil {
		if isNoDocuments(err) {
			if _, getErr := s.GetSession(ctx, userID, sessionID); getErr == nil {
				return nil, momentum.ErrSessionAlreadyEnded
			}
			return nil, momentum.ErrSessionNotFound
		}
		return nil, storeErr("finish session", err)
	}
	return fromSessionModel(&m)
}

// ==================== Mood Log Store ====================

func (s *Store) AppendMood(ctx context.Context, e *mood.Entry) error {
	_, err := s.db.Collection(colMoods).InsertOne(ctx, toMoodModel(e))
	if err != nil {
		return storeErr("append mood", err)
	}
	return nil
}

func (s *Store) ListMoods(ctx context.Context, userID id.UserID, opts mood.ListOpts) ([]*mood.Entry, error) {
	filter := bson.M{"user_id": userID.String()}
	if !opts.Since.IsZero() {
		filter["logged_at"] = bson.M{"$gte": opts.Since}
	}

	findOpts := options.Find().SetSort(bson.D{{Key: "logged_at", Value: 1}})
	if opts.Limit > 0 {
		findOpts = findOpts.SetLimit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		findOpts = findOpts.SetSkip(int64(opts.Offset))
	}

	cursor, err := s.db.Collection(colMoods).Find(ctx, filter, findOpts)
	if err != nil {
		return nil, storeErr("list moods", err)
	}
	defer cursor.Close(ctx)

	var models []moodModel
	if err := cursor.All(ctx, &models); err != nil {
		return nil, storeErr("list moods decode", err)
	}

	result := make([]*mood.Entry, len(models))
	for i := range models {
		e, err := fromMoodModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = e
	}
	return result, nil
}

// ==================== Reward Ledger Store ====================

func (s *Store) EnsureRewardProfile(ctx context.Context, userID id.UserID) (*reward.Profile, error) {
	t := now()
	var m profileModel
	err := s.db.Collection(colProfiles).FindOneAndUpdate(ctx,
		bson.M{"_id": userID.String()},
		bson.M{"$setOnInsert": bson.M{
			"balance":          int64(0),
			"total_earned":     int64(0),
			"total_spent":      int64(0),
			"purchase_history": bson.A{},
			"created_at":       t,
			"updated_at":       t,
		}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&m)
	if err != nil {
		return nil, storeErr("ensure reward profile", err)
	}
	return fromProfileModel(&m)
}

func (s *Store) GetRewardProfile(ctx context.Context, userID id.UserID) (*reward.Profile, error) {
	var m profileModel
	err := s.db.Collection(colProfiles).
		FindOne(ctx, bson.M{"_id": userID.String()}).
		Decode(&m)
	if err != nil {
		if isNoDocuments(err) {
			return nil, momentum.ErrProfileNotFound
		}
		return nil, storeErr("get reward profile", err)
	}
	return fromProfileModel(&m)
}

func (s *Store) CreditPoints(ctx context.Context, userID id.UserID, amount int64) (int64, error) {
	t := now()
	var m profileModel
	err := s.db.Collection(colProfiles).FindOneAndUpdate(ctx,
		bson.M{"_id": userID.String()},
		bson.M{
			"$inc":         bson.M{"balance": amount, "total_earned": amount},
			"$set":         bson.M{"updated_at": t},
			"$setOnInsert": bson.M{"total_spent": int64(0), "purchase_history": bson.A{}, "created_at": t},
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&m)
	if err != nil {
		return 0, storeErr("credit points", err)
	}
	return m.Balance, nil
}

func (s *Store) DebitForPurchase(ctx context.Context, userID id.UserID, p *reward.Purchase) (int64, error) {
	if _, err := s.EnsureRewardProfile(ctx, userID); err != nil {
		return 0, err
	}

	t := now()
	var m profileModel
	err := s.db.Collection(colProfiles).FindOneAndUpdate(ctx,
		bson.M{
			"_id":     userID.String(),
			"balance": bson.M{"$gte": p.Cost},
		},
		bson.M{
			"$inc":  bson.M{"balance": -p.Cost, "total_spent": p.Cost},
			"$push": bson.M{"purchase_history": toPurchaseModel(p)},
			"$set":  bson.M{"updated_at": t},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&m)
	if err != nil {
		if isNoDocuments(err) {
			// the profile exists, so the balance condition failed
			profile, getErr := s.GetRewardProfile(ctx, userID)
			if getErr != nil {
				return 0, getErr
			}
			return profile.Balance, momentum.ErrInsufficientBalance
		}
		return 0, storeErr("debit for purchase", err)
	}
	return m.Balance, nil
}

func (s *Store) ListPurchases(ctx context.Context, userID id.UserID, opts reward.ListOpts) ([]*reward.Purchase, error) {
	var m profileModel
	err := s.db.Collection(colProfiles).
		FindOne(ctx, bson.M{"_id": userID.String()}).
		Decode(&m)
	if err != nil {
		if isNoDocuments(err) {
			return nil, nil
		}
		return nil, storeErr("list purchases", err)
	}

	// $push appends, so history is already chronological
	var out []*reward.Purchase
	for i := range m.PurchaseHistory {
		pm := &m.PurchaseHistory[i]
		if !opts.Since.IsZero() && pm.Timestamp.Before(opts.Since) {
			continue
		}
		p, err := fromPurchaseModel(userID, pm)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	start := opts.Offset
	if start > len(out) {
		start = len(out)
	}
	end := len(out)
	if opts.Limit > 0 && start+opts.Limit < end {
		end = start + opts.Limit
	}
	return out[start:end], nil
}

// ==================== Analytics Store ====================

func (s *Store) Summarize(ctx context.Context, userID id.UserID, from, to time.Time) (*analytics.Summary, error) {
	sum := &analytics.Summary{
		From:       from,
		To:         to,
		MoodCounts: make(map[string]int64),
	}
	uid := userID.String()

	created, err := s.db.Collection(colTasks).
		CountDocuments(ctx, withWindow(bson.M{"user_id": uid}, "created_at", from, to))
	if err != nil {
		return nil, storeErr("summarize tasks created", err)
	}
	sum.TasksCreated = created

	completed, err := s.db.Collection(colTasks).
		CountDocuments(ctx, withWindow(bson.M{"user_id": uid, "status": string(task.StatusDone)}, "completed_at", from, to))
	if err != nil {
		return nil, storeErr("summarize tasks completed", err)
	}
	sum.TasksCompleted = completed

	pipeline := bson.A{
		bson.M{"$match": withWindow(bson.M{"user_id": uid, "status": string(pomodoro.StatusCompleted)}, "ended_at", from, to)},
		bson.M{"$group": bson.M{
			"_id":     nil,
			"count":   bson.M{"$sum": 1},
			"minutes": bson.M{"$sum": "$focus_minutes"},
		}},
	}
	cursor, err := s.db.Collection(colSessions).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, storeErr("summarize sessions", err)
	}
	var sessionAgg []struct {
		Count   int64 `bson:"count"`
		Minutes int64 `bson:"minutes"`
	}
	if err := cursor.All(ctx, &sessionAgg); err != nil {
		return nil, storeErr("summarize sessions decode", err)
	}
	if len(sessionAgg) > 0 {
		sum.SessionsCompleted = sessionAgg[0].Count
		sum.FocusMinutes = sessionAgg[0].Minutes
	}

	moodPipeline := bson.A{
		bson.M{"$match": withWindow(bson.M{"user_id": uid}, "logged_at", from, to)},
		bson.M{"$group": bson.M{"_id": "$mood", "count": bson.M{"$sum": 1}}},
	}
	moodCursor, err := s.db.Collection(colMoods).Aggregate(ctx, moodPipeline)
	if err != nil {
		return nil, storeErr("summarize moods", err)
	}
	var moodAgg []struct {
		Mood  string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := moodCursor.All(ctx, &moodAgg); err != nil {
		return nil, storeErr("summarize moods decode", err)
	}
	for _, row := range moodAgg {
		sum.MoodCounts[row.Mood] = row.Count
	}

	var profile profileModel
	err = s.db.Collection(colProfiles).FindOne(ctx, bson.M{"_id": uid}).Decode(&profile)
	if err != nil && !isNoDocuments(err) {
		return nil, storeErr("summarize rewards", err)
	}
	if err == nil {
		sum.PointsEarned = profile.TotalEarned
		for i := range profile.PurchaseHistory {
			p := &profile.PurchaseHistory[i]
			if inWindow(p.Timestamp, from, to) {
				sum.PointsSpent += p.Cost
			}
		}
	}

	return sum, nil
}

// ==================== Helpers ====================

// now returns the current UTC time.
func now() time.Time {
	return time.Now().UTC()
}

// storeErr wraps an unexpected driver error so callers can match
// momentum.ErrStoreUnavailable.
func storeErr(op string, err error) error {
	return fmt.Errorf("momentum/mongo: %s: %w: %w", op, momentum.ErrStoreUnavailable, err)
}

// isNoDocuments checks if an error wraps mongo.ErrNoDocuments.
func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

// withWindow adds a time-window condition on field to filter.
func withWindow(filter bson.M, field string, from, to time.Time) bson.M {
	cond := bson.M{}
	if !from.IsZero() {
		cond["$gte"] = from
	}
	if !to.IsZero() {
		cond["$lte"] = to
	}
	if len(cond) > 0 {
		filter[field] = cond
	}
	return filter
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

// migrationIndexes returns the index definitions for all collections.
func migrationIndexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		colUsers: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		colTasks: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: 1}}},
		},
		colSessions: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "started_at", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "ended_at", Value: -1}}},
		},
		colMoods: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "logged_at", Value: 1}}},
		},
		colProfiles: {},
	}
}
