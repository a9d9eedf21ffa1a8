package entity

import (
	"fmt"
	"strings"
)

// BookingRequest is a validated "invitee created" webhook, reduced to the
// fields the intake flow needs.
type BookingRequest struct {
	Email         string
	Name          string
	Phone         string
	ScoringAnswer string
	Comment       string
	HostEmail     string
	StartTime     string // RFC 3339 with offset
	Timezone      string // IANA zone name
}

// Validate checks the fields without which no remote call may be made.
func (r *BookingRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return fmt.Errorf("email is empty")
	}
	if strings.TrimSpace(r.StartTime) == "" {
		return fmt.Errorf("date is empty")
	}
	if strings.TrimSpace(r.Timezone) == "" {
		return fmt.Errorf("timezone is empty")
	}
	return nil
}

// RescheduleRequest is a validated webhook that moves an existing order's
// appointment, identified by the tracking source it was created from.
type RescheduleRequest struct {
	TrackingURL string
	StartTime   string
	Timezone    string
}

// Validate checks that the order can be located and the new time converted.
func (r *RescheduleRequest) Validate() error {
	if strings.TrimSpace(r.TrackingURL) == "" {
		return fmt.Errorf("tracking url is empty")
	}
	if strings.TrimSpace(r.StartTime) == "" {
		return fmt.Errorf("date is empty")
	}
	if strings.TrimSpace(r.Timezone) == "" {
		return fmt.Errorf("timezone is empty")
	}
	return nil
}

// BookingResult reports what the intake flow did in the CRM.
type BookingResult struct {
	CustomerID      int
	CustomerCreated bool
	OrderID         int
	ManagerID       int
	AnalyticsSent   bool
}
