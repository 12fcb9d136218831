package conversation

import "github.com/matchstack-dev/matchstack/internal/domain"

// Delivery tracks an entry from submission to persistence.
type Delivery int

const (
	// Confirmed entries mirror a persisted message.
	Confirmed Delivery = iota
	// Pending entries were submitted and await the store.
	Pending
	// Failed entries could not be persisted and can be retried.
	Failed
)

func (d Delivery) String() string {
	switch d {
	case Confirmed:
		return "confirmed"
	case Pending:
		return "pending"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Entry is one row of the conversation as the viewer sees it.
//
// LocalID is stable for the life of the entry. For history it equals the
// persisted id; for outgoing messages it is the temporary id, kept after
// confirmation while Message.ID switches to the server id.
type Entry struct {
	LocalID  string
	Message  domain.Message
	Delivery Delivery
	Err      error
}

// Optimistic reports whether the entry is not yet backed by a persisted message.
func (e Entry) Optimistic() bool {
	return e.Delivery != Confirmed
}
