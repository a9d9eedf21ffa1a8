package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ruudy-sib/demobridge/internal/config"
	"github.com/ruudy-sib/demobridge/internal/domain"
	"github.com/ruudy-sib/demobridge/internal/domain/entity"
	"github.com/ruudy-sib/demobridge/internal/domain/valueobject"
	"github.com/ruudy-sib/demobridge/internal/port/secondary"
	"github.com/ruudy-sib/demobridge/internal/requestid"
)

// IntakeService turns a booked meeting into a CRM customer and order and
// reports the demo to analytics.
type IntakeService struct {
	crm         secondary.CRMClient
	analytics   secondary.AnalyticsClient
	managers    *ManagerDirectory
	publisher   secondary.EventPublisher
	business    config.Business
	phoneRegion string
	logger      *zap.Logger
}

// NewIntakeService creates an IntakeService with its dependencies injected.
func NewIntakeService(
	crm secondary.CRMClient,
	analytics secondary.AnalyticsClient,
	managers *ManagerDirectory,
	publisher secondary.EventPublisher,
	business config.Business,
	phoneRegion string,
	logger *zap.Logger,
) *IntakeService {
	return &IntakeService{
		crm:         crm,
		analytics:   analytics,
		managers:    managers,
		publisher:   publisher,
		business:    business,
		phoneRegion: phoneRegion,
		logger:      logger.Named("intake-service"),
	}
}

// HandleInviteeCreated validates the request, resolves the customer, creates
// the order and sends the analytics event. Nothing is retried. If analytics
// fails the order stays in the CRM and the returned result describes it.
func (s *IntakeService) HandleInviteeCreated(ctx context.Context, req *entity.BookingRequest) (*entity.BookingResult, error) {
	logger := s.logger.With(requestid.Field(ctx))

	if err := req.Validate(); err != nil {
		logger.Error("rejecting webhook", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}

	email, err := valueobject.NewEmail(req.Email)
	if err != nil {
		logger.Error("rejecting webhook", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}

	appointment, err := valueobject.NewAppointment(req.StartTime, req.Timezone)
	if err != nil {
		logger.Error("rejecting webhook", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}

	scoring, err := s.mapScoring(req.ScoringAnswer)
	if err != nil {
		logger.Error("rejecting webhook", zap.Error(err))
		return nil, err
	}

	phone := valueobject.NewPhone(req.Phone, s.phoneRegion)
	if !phone.IsEmpty() && !phone.Normalized() {
		logger.Warn("phone number kept as typed", zap.String("phone", phone.String()))
	}

	logger = logger.With(zap.String("email", email.String()))

	customerID, created, err := s.resolveCustomer(ctx, email, req, phone, logger)
	if err != nil {
		logger.Error("customer is empty", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrCustomerUnresolved, err)
	}
	logger = logger.With(zap.Int("customer_id", customerID))

	logger.Debug("appointment converted",
		zap.String("utc_date", appointment.Original().Format("2006-01-02 15:04:05 Z07:00")),
		zap.String("customer_date", appointment.Local().Format("2006-01-02 15:04:05 Z07:00")),
		zap.String("timezone", appointment.Timezone()),
	)

	order := s.buildOrder(customerID, email, req, phone, appointment, scoring)
	if managerID, ok := s.managers.Resolve(ctx, req.HostEmail); ok {
		order.ManagerID = managerID
	}

	orderID, err := s.crm.CreateOrder(ctx, order)
	if err != nil {
		logger.Error("can not create order", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrOrderNotCreated, err)
	}
	if orderID <= 0 {
		logger.Error("can not create order", zap.Int("order_id", orderID))
		return nil, fmt.Errorf("%w: crm returned no order id", domain.ErrOrderNotCreated)
	}

	result := &entity.BookingResult{
		CustomerID:      customerID,
		CustomerCreated: created,
		OrderID:         orderID,
		ManagerID:       order.ManagerID,
	}
	logger.Info("successfully created order",
		zap.Int("order_id", orderID),
		zap.Int("manager_id", order.ManagerID),
	)

	publishOrderEvent(ctx, s.publisher, entity.OrderEvent{
		Kind:       entity.OrderEventCreated,
		OrderID:    orderID,
		CustomerID: customerID,
		Date:       appointment.Date(),
		Time:       appointment.Clock(),
		Timezone:   appointment.Timezone(),
	}, logger)

	code, err := s.analytics.LogEvent(ctx, entity.AnalyticsEvent{
		UserID:    strconv.Itoa(customerID),
		EventType: s.business.EventName,
	})
	if err != nil {
		logger.Error("analytics api error", zap.Error(err))
		return result, fmt.Errorf("%w: %v", domain.ErrAnalyticsRejected, err)
	}
	if code != domain.AnalyticsSuccessCode {
		logger.Error("analytics api error", zap.Int("code", code))
		return result, fmt.Errorf("%w: response code %d", domain.ErrAnalyticsRejected, code)
	}

	result.AnalyticsSent = true
	logger.Info("successfully sent event to analytics", zap.String("event", s.business.EventName))

	return result, nil
}

// resolveCustomer looks the customer up by email and creates it on a miss.
// A failed lookup still falls through to creation.
func (s *IntakeService) resolveCustomer(
	ctx context.Context,
	email valueobject.Email,
	req *entity.BookingRequest,
	phone valueobject.Phone,
	logger *zap.Logger,
) (int, bool, error) {
	existing, err := s.crm.FindCustomerByEmail(ctx, email.String())
	if err != nil {
		logger.Warn("customer lookup failed, creating", zap.Error(err))
	}
	if existing != nil && existing.ID > 0 {
		logger.Debug("customer found", zap.Int("customer_id", existing.ID))
		return existing.ID, false, nil
	}

	id, err := s.crm.CreateCustomer(ctx, &entity.Customer{
		Email:     email.String(),
		FirstName: strings.TrimSpace(req.Name),
		Phone:     phone.String(),
	})
	if err != nil {
		return 0, false, fmt.Errorf("creating customer: %w", err)
	}
	if id <= 0 {
		return 0, false, fmt.Errorf("creating customer: crm returned no id")
	}

	logger.Info("customer created", zap.Int("customer_id", id))
	return id, true, nil
}

// mapScoring translates the raw answer through the configured dictionary.
// An empty answer means the question was skipped and maps to nothing.
func (s *IntakeService) mapScoring(answer string) (string, error) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", nil
	}
	value, ok := s.business.Scoring[answer]
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnmappedScoring, answer)
	}
	return value, nil
}

func (s *IntakeService) buildOrder(
	customerID int,
	email valueobject.Email,
	req *entity.BookingRequest,
	phone valueobject.Phone,
	appointment valueobject.Appointment,
	scoring string,
) *entity.Order {
	fields := s.business.CustomFields
	custom := map[string]interface{}{
		fields.Date: appointment.Date(),
		fields.Time: appointment.Clock(),
		fields.Flag: true,
	}
	if scoring != "" {
		custom[fields.Scoring] = scoring
	}

	return &entity.Order{
		Type:         s.business.OrderType,
		Method:       s.business.OrderMethod,
		CustomerID:   customerID,
		Email:        email.String(),
		Phone:        phone.String(),
		FirstName:    strings.TrimSpace(req.Name),
		Comment:      strings.TrimSpace(req.Comment),
		CustomFields: custom,
	}
}
