package domain

import "time"

// ActivityAction identifies the kind of change recorded by an activity event.
type ActivityAction string

const (
	ActionCreated ActivityAction = "created"
	ActionUpdated ActivityAction = "updated"
	ActionDeleted ActivityAction = "deleted"
)

// ActivityEvent records a single change made to a resource. Events are
// persisted asynchronously as an audit trail.
type ActivityEvent struct {
	ResourceID string
	OwnerID    string
	Action     ActivityAction
	Title      string
	Timestamp  time.Time
}
