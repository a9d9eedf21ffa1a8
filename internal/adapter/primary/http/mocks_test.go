package http

import (
	"context"

	"github.com/ruudy-sib/demobridge/internal/domain/entity"
	"github.com/ruudy-sib/demobridge/internal/requestid"
)

// mockIntakeService implements primary.IntakeService for testing.
type mockIntakeService struct {
	result *entity.BookingResult
	err    error

	requests   []*entity.BookingRequest
	requestIDs []string
}

func (m *mockIntakeService) HandleInviteeCreated(ctx context.Context, req *entity.BookingRequest) (*entity.BookingResult, error) {
	m.requests = append(m.requests, req)
	m.requestIDs = append(m.requestIDs, requestid.FromContext(ctx))
	return m.result, m.err
}

// mockRescheduleService implements primary.RescheduleService for testing.
type mockRescheduleService struct {
	order *entity.Order
	err   error

	requests []*entity.RescheduleRequest
}

func (m *mockRescheduleService) HandleInviteeRescheduled(_ context.Context, req *entity.RescheduleRequest) (*entity.Order, error) {
	m.requests = append(m.requests, req)
	return m.order, m.err
}

// mockHealthCheck implements secondary.HealthChecker for testing.
type mockHealthCheck struct {
	name string
	err  error
}

func (m mockHealthCheck) Name() string {
	return m.name
}

func (m mockHealthCheck) Check(_ context.Context) error {
	return m.err
}
