// Package reward defines the reward-point ledger domain: per-user point
// profiles, the purchasable item catalog, and purchase records.
package reward

import (
	"time"

	"github.com/momentumhq/momentum/id"
	"github.com/momentumhq/momentum/types"
)

// Profile holds a user's reward-point state. Exactly one profile exists per
// user; it is created lazily with a zero balance on first ledger access and
// is never deleted by the ledger itself.
type Profile struct {
	types.Entity
	UserID      id.UserID `json:"user_id"`
	Balance     int64     `json:"balance"`
	TotalEarned int64     `json:"total_earned"`
	TotalSpent  int64     `json:"total_spent"`
}

// Purchase is one debit against a profile in exchange for a catalog item.
// Purchases are append-only: insertion order is chronological order.
type Purchase struct {
	ID        id.PurchaseID `json:"id"`
	UserID    id.UserID     `json:"user_id"`
	ItemName  string        `json:"item_name"`
	Cost      int64         `json:"cost"`
	Category  Category      `json:"category"`
	Timestamp time.Time     `json:"timestamp"`
}

// Receipt confirms a successful purchase: the item bought and the balance
// that resulted from the debit.
type Receipt struct {
	Purchase Purchase `json:"purchase"`
	Balance  int64    `json:"balance"`
}

// Category labels a catalog item. Descriptive only; it carries no pricing
// or entitlement semantics.
type Category string

const (
	CategoryBreak         Category = "break"
	CategoryEntertainment Category = "entertainment"
	CategoryRest          Category = "rest"
	CategoryWellness      Category = "wellness"
)

// CatalogItem is one purchasable reward.
type CatalogItem struct {
	Name     string   `json:"name" yaml:"name"`
	Cost     int64    `json:"cost" yaml:"cost"`
	Category Category `json:"category" yaml:"category"`
}

// ListOpts filters purchase-history queries.
type ListOpts struct {
	Since  time.Time
	Limit  int
	Offset int
}
