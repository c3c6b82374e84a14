package valueobjects

// Actor is the part a caller plays on one subscription.
type Actor string

const (
	ActorSubscriber Actor = "subscriber"
	ActorChef       Actor = "chef"
)
