package valueobject

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// Appointment is an immutable meeting start: the instant the booking provider
// reported, and the same instant in the invitee's own time zone.
type Appointment struct {
	original time.Time
	local    time.Time
}

// NewAppointment parses an RFC 3339 instant and re-expresses it in the IANA zone.
func NewAppointment(startTime, timezone string) (Appointment, error) {
	original, err := time.Parse(time.RFC3339, strings.TrimSpace(startTime))
	if err != nil {
		return Appointment{}, fmt.Errorf("parsing start time %q: %w", startTime, err)
	}

	loc, err := time.LoadLocation(strings.TrimSpace(timezone))
	if err != nil {
		return Appointment{}, fmt.Errorf("loading timezone %q: %w", timezone, err)
	}

	return Appointment{original: original, local: original.In(loc)}, nil
}

// Original returns the instant as received.
func (a Appointment) Original() time.Time {
	return a.original
}

// Local returns the instant in the invitee's time zone.
func (a Appointment) Local() time.Time {
	return a.local
}

// Date returns the local date as YYYY-MM-DD.
func (a Appointment) Date() string {
	return a.local.Format(dateLayout)
}

// Clock returns the local time of day as HH:MM.
func (a Appointment) Clock() string {
	return a.local.Format(clockLayout)
}

// Timezone returns the IANA name of the invitee's zone.
func (a Appointment) Timezone() string {
	return a.local.Location().String()
}
