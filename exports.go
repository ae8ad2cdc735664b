package momentum

import "github.com/momentumhq/momentum/types"

// Re-export common types for convenience so users don't have to import the
// types package.

// Entity is re-exported from the types package.
type Entity = types.Entity

// NewEntity is re-exported from the types package.
var NewEntity = types.NewEntity
