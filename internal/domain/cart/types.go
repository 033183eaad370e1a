package cart

type Action string

const (
	ActionSetQuantity Action = "set_quantity"
	ActionRemove      Action = "remove"
)

func (a Action) String() string {
	return string(a)
}

func (a Action) IsValid() bool {
	switch a {
	case ActionSetQuantity, ActionRemove:
		return true
	default:
		return false
	}
}

// Mutation is a local change not yet confirmed by the backend. Quantity is only meaningful
// for ActionSetQuantity.
type Mutation struct {
	ProductID string
	Action    Action
	Quantity  int
}

func SetQuantity(productID string, n int) Mutation {
	return Mutation{ProductID: productID, Action: ActionSetQuantity, Quantity: n}
}

func Remove(productID string) Mutation {
	return Mutation{ProductID: productID, Action: ActionRemove}
}

type SyncState string

const (
	SyncIdle    SyncState = "idle"
	SyncSyncing SyncState = "syncing"
	SyncError   SyncState = "error"
)

func (s SyncState) String() string {
	return string(s)
}
