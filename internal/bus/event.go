package bus

import (
	"strings"
	"time"
)

// Kind identifies a domain event. The segment before the dot is the
// topic subscribers filter on.
type Kind string

const (
	KindContactsChanged Kind = "store.contacts"
	KindThreadChanged   Kind = "store.thread"
	KindReportQueued    Kind = "store.report"
	KindReportSubmitted Kind = "report.submitted"
	KindReportFailed    Kind = "report.failed"
)

// Topic returns the kind's topic segment.
func (k Kind) Topic() string {
	s := string(k)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return s[:i]
	}
	return s
}

// Event is one domain notification. RefID names the contact or report
// the event is about; consumers re-read the store for the rest.
type Event struct {
	Kind  Kind
	RefID string
	At    time.Time
}
