package audithook

// Action constants for audit events.
const (
	// Account actions
	ActionUserRegistered = "account.registered"

	// Task actions
	ActionTaskCompleted = "task.completed"

	// Focus session actions
	ActionSessionCompleted = "session.completed"

	// Mood actions
	ActionMoodLogged = "mood.logged"

	// Ledger actions
	ActionPointsCredited   = "points.credited"
	ActionPurchaseMade     = "purchase.made"
	ActionPurchaseDeclined = "purchase.declined"
)

// Resource constants for audit events.
const (
	ResourceAccount  = "account"
	ResourceTask     = "task"
	ResourceSession  = "session"
	ResourceMood     = "mood"
	ResourceProfile  = "reward_profile"
	ResourcePurchase = "purchase"
)

// Category constants for audit events.
const (
	CategoryAccount      = "account"
	CategoryProductivity = "productivity"
	CategoryLedger       = "ledger"
)

// Severity levels for audit events.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityError    = "error"
	SeverityCritical = "critical"
)

// Outcome values for audit events.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)
