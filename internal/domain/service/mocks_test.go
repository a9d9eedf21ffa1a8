package service

import (
	"context"
	"fmt"

	"github.com/ruudy-sib/demobridge/internal/config"
	"github.com/ruudy-sib/demobridge/internal/domain"
	"github.com/ruudy-sib/demobridge/internal/domain/entity"
)

// mockCRM implements secondary.CRMClient for testing.
type mockCRM struct {
	findCustomerFunc   func(ctx context.Context, email string) (*entity.Customer, error)
	createCustomerFunc func(ctx context.Context, customer *entity.Customer) (int, error)
	createOrderFunc    func(ctx context.Context, order *entity.Order) (int, error)
	findOrderFunc      func(ctx context.Context, code, value string) (*entity.Order, error)
	editOrderFunc      func(ctx context.Context, order *entity.Order) (*entity.Order, error)
	listUsersFunc      func(ctx context.Context, limit int) ([]entity.User, error)

	findCustomerCalls []string
	createdCustomers  []*entity.Customer
	createdOrders     []*entity.Order
	findOrderCalls    []findOrderCall
	editedOrders      []*entity.Order
	listUsersLimits   []int
}

type findOrderCall struct {
	Code  string
	Value string
}

func (m *mockCRM) FindCustomerByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	m.findCustomerCalls = append(m.findCustomerCalls, email)
	if m.findCustomerFunc != nil {
		return m.findCustomerFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockCRM) CreateCustomer(ctx context.Context, customer *entity.Customer) (int, error) {
	m.createdCustomers = append(m.createdCustomers, customer)
	if m.createCustomerFunc != nil {
		return m.createCustomerFunc(ctx, customer)
	}
	return 501, nil
}

func (m *mockCRM) CreateOrder(ctx context.Context, order *entity.Order) (int, error) {
	m.createdOrders = append(m.createdOrders, order)
	if m.createOrderFunc != nil {
		return m.createOrderFunc(ctx, order)
	}
	return 9001, nil
}

func (m *mockCRM) FindOrderByCustomField(ctx context.Context, code, value string) (*entity.Order, error) {
	m.findOrderCalls = append(m.findOrderCalls, findOrderCall{Code: code, Value: value})
	if m.findOrderFunc != nil {
		return m.findOrderFunc(ctx, code, value)
	}
	return nil, nil
}

func (m *mockCRM) EditOrder(ctx context.Context, order *entity.Order) (*entity.Order, error) {
	m.editedOrders = append(m.editedOrders, order)
	if m.editOrderFunc != nil {
		return m.editOrderFunc(ctx, order)
	}
	return order, nil
}

func (m *mockCRM) ListUsers(ctx context.Context, limit int) ([]entity.User, error) {
	m.listUsersLimits = append(m.listUsersLimits, limit)
	if m.listUsersFunc != nil {
		return m.listUsersFunc(ctx, limit)
	}
	return nil, nil
}

// totalCalls counts every call made against the CRM.
func (m *mockCRM) totalCalls() int {
	return len(m.findCustomerCalls) + len(m.createdCustomers) + len(m.createdOrders) +
		len(m.findOrderCalls) + len(m.editedOrders) + len(m.listUsersLimits)
}

// mockAnalytics implements secondary.AnalyticsClient for testing.
type mockAnalytics struct {
	logEventFunc func(ctx context.Context, event entity.AnalyticsEvent) (int, error)

	events []entity.AnalyticsEvent
}

func (m *mockAnalytics) LogEvent(ctx context.Context, event entity.AnalyticsEvent) (int, error) {
	m.events = append(m.events, event)
	if m.logEventFunc != nil {
		return m.logEventFunc(ctx, event)
	}
	return 200, nil
}

// mockStore implements secondary.KeyValueStore with an in-memory map.
type mockStore struct {
	data     map[string][]byte
	getErr   error
	putErr   error
	existErr error

	getCalls int
	putCalls int
}

func newMockStore() *mockStore {
	return &mockStore{data: make(map[string][]byte)}
}

func (m *mockStore) Get(_ context.Context, key string) ([]byte, error) {
	m.getCalls++
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrKeyNotFound, key)
	}
	return v, nil
}

func (m *mockStore) Put(_ context.Context, key string, value []byte) error {
	m.putCalls++
	if m.putErr != nil {
		return m.putErr
	}
	m.data[key] = value
	return nil
}

func (m *mockStore) Exists(_ context.Context, key string) (bool, error) {
	if m.existErr != nil {
		return false, m.existErr
	}
	_, ok := m.data[key]
	return ok, nil
}

// mockPublisher implements secondary.EventPublisher for testing.
type mockPublisher struct {
	publishErr error
	events     []entity.OrderEvent
}

func (m *mockPublisher) Publish(_ context.Context, event entity.OrderEvent) error {
	m.events = append(m.events, event)
	return m.publishErr
}

func (m *mockPublisher) Close() error {
	return nil
}

// mockBooking implements secondary.BookingClient for testing.
type mockBooking struct {
	currentUserFunc  func(ctx context.Context) (*entity.BookingUser, error)
	subscribeFunc    func(ctx context.Context, req entity.SubscriptionRequest) (*entity.Subscription, error)
	currentUserCalls int
	subscribeCalls   []entity.SubscriptionRequest
}

func (m *mockBooking) CurrentUser(ctx context.Context) (*entity.BookingUser, error) {
	m.currentUserCalls++
	if m.currentUserFunc != nil {
		return m.currentUserFunc(ctx)
	}
	return &entity.BookingUser{
		URI:          "https://api.calendly.com/users/AAA",
		Organization: "https://api.calendly.com/organizations/ORG",
	}, nil
}

func (m *mockBooking) CreateWebhookSubscription(ctx context.Context, req entity.SubscriptionRequest) (*entity.Subscription, error) {
	m.subscribeCalls = append(m.subscribeCalls, req)
	if m.subscribeFunc != nil {
		return m.subscribeFunc(ctx, req)
	}
	return &entity.Subscription{
		URI:         "https://api.calendly.com/webhook_subscriptions/SUB",
		CallbackURL: req.CallbackURL,
		State:       "active",
	}, nil
}

// testBusiness returns the CRM constants used across service tests.
func testBusiness() config.Business {
	b := config.DefaultBusiness()
	b.Site = "demo-site"
	b.OrderType = "eshop-individual"
	b.OrderMethod = "demo-request"
	b.Scoring = map[string]string{
		"Less than 10":  "small",
		"10 - 100":      "medium",
		"More than 100": "large",
	}
	return b
}

// testBookingRequest returns a standard valid booking fixture.
func testBookingRequest() *entity.BookingRequest {
	return &entity.BookingRequest{
		Email:         "jane@example.com",
		Name:          "Jane",
		Phone:         "+1 650 253 0000",
		ScoringAnswer: "10 - 100",
		Comment:       "Interested in the enterprise plan",
		HostEmail:     "manager@example.com",
		StartTime:     "2024-03-01T15:00:00Z",
		Timezone:      "America/New_York",
	}
}
