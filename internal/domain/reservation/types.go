package reservation

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusSeated    Status = "seated"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusSeated, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	default:
		return false
	}
}

// BlocksWrites reports whether a reservation in this status occupies its
// table for write-time conflict checks. Pending reservations block writes to
// prevent double-booking races, even though display treats them as soft holds.
func (s Status) BlocksWrites() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusSeated:
		return true
	default:
		return false
	}
}

// BlocksDisplay reports whether a reservation in this status counts as busy
// in read-only availability queries. Cancelled, completed and no-show
// reservations never block anything.
func (s Status) BlocksDisplay() bool {
	switch s {
	case StatusConfirmed, StatusSeated:
		return true
	default:
		return false
	}
}

// BlockingPolicy selects which status set counts as occupying a table.
type BlockingPolicy int

const (
	// DisplayBlocking is for read-only availability: confirmed and seated only.
	DisplayBlocking BlockingPolicy = iota
	// WriteBlocking adds pending, for conflict checks before a commit.
	WriteBlocking
)

func (p BlockingPolicy) blocks(s Status) bool {
	if p == WriteBlocking {
		return s.BlocksWrites()
	}
	return s.BlocksDisplay()
}
