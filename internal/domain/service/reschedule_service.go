package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ruudy-sib/demobridge/internal/config"
	"github.com/ruudy-sib/demobridge/internal/domain"
	"github.com/ruudy-sib/demobridge/internal/domain/entity"
	"github.com/ruudy-sib/demobridge/internal/domain/valueobject"
	"github.com/ruudy-sib/demobridge/internal/port/secondary"
	"github.com/ruudy-sib/demobridge/internal/requestid"
)

// RescheduleService moves the appointment of an order that was created
// from a tracked landing page.
type RescheduleService struct {
	crm       secondary.CRMClient
	publisher secondary.EventPublisher
	business  config.Business
	logger    *zap.Logger
}

// NewRescheduleService creates a RescheduleService with its dependencies injected.
func NewRescheduleService(
	crm secondary.CRMClient,
	publisher secondary.EventPublisher,
	business config.Business,
	logger *zap.Logger,
) *RescheduleService {
	return &RescheduleService{
		crm:       crm,
		publisher: publisher,
		business:  business,
		logger:    logger.Named("reschedule-service"),
	}
}

// HandleInviteeRescheduled finds the order whose tracking custom field is
// "https://" + the request's tracking URL and rewrites its date and time.
// If several orders match, the first one the CRM returns is edited.
func (s *RescheduleService) HandleInviteeRescheduled(ctx context.Context, req *entity.RescheduleRequest) (*entity.Order, error) {
	logger := s.logger.With(requestid.Field(ctx))

	if err := req.Validate(); err != nil {
		logger.Error("rejecting webhook", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}

	appointment, err := valueobject.NewAppointment(req.StartTime, req.Timezone)
	if err != nil {
		logger.Error("rejecting webhook", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}

	trackingURL := domain.TrackingURLScheme + strings.TrimSpace(req.TrackingURL)
	logger = logger.With(zap.String("tracking_url", trackingURL))

	order, err := s.crm.FindOrderByCustomField(ctx, s.business.CustomFields.TrackingURL, trackingURL)
	if err != nil {
		logger.Error("order lookup failed", zap.Error(err))
		return nil, fmt.Errorf("finding order by tracking url: %w", err)
	}
	if order == nil {
		logger.Error("order is empty")
		return nil, fmt.Errorf("%w: %s", domain.ErrOrderNotFound, trackingURL)
	}
	logger = logger.With(zap.Int("order_id", order.ID))

	logger.Debug("appointment converted",
		zap.String("utc_date", appointment.Original().Format("2006-01-02 15:04:05 Z07:00")),
		zap.String("customer_date", appointment.Local().Format("2006-01-02 15:04:05 Z07:00")),
	)

	fields := s.business.CustomFields
	updated, err := s.crm.EditOrder(ctx, &entity.Order{
		ID: order.ID,
		CustomFields: map[string]interface{}{
			fields.Date: appointment.Date(),
			fields.Time: appointment.Clock(),
		},
	})
	if err != nil {
		logger.Error("can not update order", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrOrderNotUpdated, err)
	}
	if updated == nil {
		logger.Error("can not update order")
		return nil, fmt.Errorf("%w: crm returned no order", domain.ErrOrderNotUpdated)
	}

	logger.Info("successfully updated order",
		zap.String("date", appointment.Date()),
		zap.String("time", appointment.Clock()),
	)

	publishOrderEvent(ctx, s.publisher, entity.OrderEvent{
		Kind:       entity.OrderEventRescheduled,
		OrderID:    updated.ID,
		CustomerID: updated.CustomerID,
		Date:       appointment.Date(),
		Time:       appointment.Clock(),
		Timezone:   appointment.Timezone(),
	}, logger)

	return updated, nil
}
