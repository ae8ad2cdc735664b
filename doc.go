// Package momentum provides an embeddable personal-productivity engine for
// Go applications.
//
// Momentum is designed as a library, not a service. Import it directly into
// your Go application, or run the bundled HTTP server in cmd/momentumd. It
// provides:
//
//   - Task tracking with per-task reward points
//   - Pomodoro-style focus sessions that earn points for focused minutes
//   - An append-only mood log with a fixed vocabulary
//   - A gamified reward ledger: earned points buy catalog items, balances
//     never go negative, and every purchase is recorded atomically
//   - A pluggable hook system for audit trails and metrics
//
// # Quick Start
//
// Create an engine instance with your preferred store:
//
//	import (
//	    momentum "github.com/momentumhq/momentum"
//	    "github.com/momentumhq/momentum/store/memory"
//	)
//
//	e := momentum.New(memory.New())
//	if err := e.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer e.Stop()
//
// # Core Concepts
//
// Tasks are to-do items whose completion credits reward points:
//
//	t, _ := e.CreateTask(ctx, userID, "write report", "", 15, nil)
//	_, balance, _ := e.CompleteTask(ctx, userID, t.ID)
//
// Focus sessions credit points for focused minutes:
//
//	s, _ := e.StartSession(ctx, userID, taskID, 25)
//	_, balance, _ = e.CompleteSession(ctx, userID, s.ID, 25)
//
// Points buy items from the reward catalog. The balance check, debit, and
// history append are a single atomic operation, so a balance can never go
// negative even under concurrent purchases:
//
//	receipt, err := e.Purchase(ctx, userID, "Snack Break")
//	if errors.Is(err, momentum.ErrInsufficientBalance) {
//	    // declined; balance and history untouched
//	}
//
// # TypeID
//
// All entities use TypeID for globally unique, type-safe identifiers:
//
//	user_01h2xcejqtf2nbrexx3vqjhp41  // Account ID
//	task_01h2xcejqtf2nbrexx3vqjhp41  // Task ID
//	pur_01h455vb4pex5vsknk084sn02q   // Purchase ID
//
// TypeIDs are K-sortable, making them ideal for database indexes and
// providing natural time-ordering of entities.
package momentum
