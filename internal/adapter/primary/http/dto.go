package http

import (
	"strings"

	"github.com/ruudy-sib/demobridge/internal/domain/entity"
)

// Positions of the booking form answers the intake flow reads.
const (
	answerPhone = iota
	answerScoring
	answerComment
)

// WebhookRequest is the envelope the booking provider posts.
type WebhookRequest struct {
	Event   string         `json:"event"`
	Payload InviteePayload `json:"payload"`
}

// InviteePayload is the invitee resource carried by the webhook.
type InviteePayload struct {
	Email               string              `json:"email"`
	Name                string              `json:"name"`
	FirstName           string              `json:"first_name"`
	Timezone            string              `json:"timezone"`
	QuestionsAndAnswers []QuestionAnswerDTO `json:"questions_and_answers"`
	ScheduledEvent      ScheduledEventDTO   `json:"scheduled_event"`
	Tracking            TrackingDTO         `json:"tracking"`
}

// QuestionAnswerDTO is one answered booking form question.
type QuestionAnswerDTO struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Position int    `json:"position"`
}

// ScheduledEventDTO is the booked meeting.
type ScheduledEventDTO struct {
	StartTime        string               `json:"start_time"`
	EventMemberships []EventMembershipDTO `json:"event_memberships"`
}

// EventMembershipDTO is a host of the booked meeting.
type EventMembershipDTO struct {
	User      string `json:"user"`
	UserEmail string `json:"user_email"`
	UserName  string `json:"user_name"`
}

// TrackingDTO holds the UTM parameters of the booking link.
type TrackingDTO struct {
	UTMSource string `json:"utm_source"`
}

// InviteeCreatedResponse is returned once the order exists in the CRM.
type InviteeCreatedResponse struct {
	Message    string `json:"message"`
	CustomerID int    `json:"customer_id"`
	OrderID    int    `json:"order_id"`
	ManagerID  int    `json:"manager_id,omitempty"`
}

// InviteeRescheduledResponse is returned once the order's appointment moved.
type InviteeRescheduledResponse struct {
	Message string `json:"message"`
	OrderID int    `json:"order_id"`
}

// ErrorResponse is the standard error payload.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// answer returns the trimmed answer at index i, or "" when the form had
// fewer answers.
func (p *InviteePayload) answer(i int) string {
	if i < 0 || i >= len(p.QuestionsAndAnswers) {
		return ""
	}
	return strings.TrimSpace(p.QuestionsAndAnswers[i].Answer)
}

func (p *InviteePayload) firstName() string {
	if name := strings.TrimSpace(p.FirstName); name != "" {
		return name
	}
	return strings.TrimSpace(p.Name)
}

func (p *InviteePayload) hostEmail() string {
	if len(p.ScheduledEvent.EventMemberships) == 0 {
		return ""
	}
	return strings.TrimSpace(p.ScheduledEvent.EventMemberships[0].UserEmail)
}

// toBookingRequest converts the payload to the create flow's input.
func (r *WebhookRequest) toBookingRequest() *entity.BookingRequest {
	p := &r.Payload
	return &entity.BookingRequest{
		Email:         strings.TrimSpace(p.Email),
		Name:          p.firstName(),
		Phone:         p.answer(answerPhone),
		ScoringAnswer: p.answer(answerScoring),
		Comment:       p.answer(answerComment),
		HostEmail:     p.hostEmail(),
		StartTime:     strings.TrimSpace(p.ScheduledEvent.StartTime),
		Timezone:      strings.TrimSpace(p.Timezone),
	}
}

// toRescheduleRequest converts the payload to the reschedule flow's input.
func (r *WebhookRequest) toRescheduleRequest() *entity.RescheduleRequest {
	p := &r.Payload
	return &entity.RescheduleRequest{
		TrackingURL: strings.TrimSpace(p.Tracking.UTMSource),
		StartTime:   strings.TrimSpace(p.ScheduledEvent.StartTime),
		Timezone:    strings.TrimSpace(p.Timezone),
	}
}
