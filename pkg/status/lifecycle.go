package status

import (
	"time"

	"github.com/naveenspark/hackboard/pkg/domain"
)

// Phase is the coarse, identity-independent stage of an event, used for the
// badge on list cards.
type Phase int

const (
	Upcoming Phase = iota
	Live
	Completed
)

func (p Phase) String() string {
	switch p {
	case Upcoming:
		return "Upcoming"
	case Live:
		return "Live Now"
	default:
		return "Completed"
	}
}

// Lifecycle returns the phase of h at now.
func Lifecycle(now time.Time, h domain.Hackathon) Phase {
	switch {
	case now.Before(h.StartDate.Time):
		return Upcoming
	case now.After(h.EndDate.Time):
		return Completed
	default:
		return Live
	}
}
