package momentum

import "github.com/momentumhq/momentum/id"

// ID is the primary identifier type for all Momentum entities.
type ID = id.ID

// Prefix identifies the entity type encoded in a TypeID.
type Prefix = id.Prefix
