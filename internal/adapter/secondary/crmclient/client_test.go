package crmclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/ruudy-sib/demobridge/internal/adapter/secondary/remote"
	"github.com/ruudy-sib/demobridge/internal/config"
	"github.com/ruudy-sib/demobridge/internal/domain"
	"github.com/ruudy-sib/demobridge/internal/domain/entity"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := config.New()
	cfg.CRMBaseURL = server.URL
	cfg.CRMAPIKey = "crm-key"
	cfg.HTTPClientTimeout = 5 * time.Second
	cfg.Business.Site = "demo-site"

	client := NewClient(cfg, zap.NewNop())
	t.Cleanup(func() { client.Close() })
	return client
}

func TestClient_FindCustomerByEmail(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v5/customers" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("X-API-KEY") != "crm-key" {
			t.Errorf("expected api key header, got %q", r.Header.Get("X-API-KEY"))
		}
		if r.URL.Query().Get("filter[email]") != "jane@example.com" || r.URL.Query().Get("site") != "demo-site" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{"success":true,"customers":[
			{"id":3,"email":"jane@example.com.au"},
			{"id":4,"email":"jane@example.com","firstName":"Jane","phones":[{"number":"+16502530000"}]},
			{"id":5,"email":"jane@example.com"}
		]}`))
	})

	customer, err := client.FindCustomerByEmail(context.Background(), "jane@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if customer == nil || customer.ID != 4 {
		t.Fatalf("expected first exact match (id 4), got %+v", customer)
	}
	if customer.Phone != "+16502530000" || customer.FirstName != "Jane" {
		t.Fatalf("unexpected customer %+v", customer)
	}
}

func TestClient_FindCustomerByEmail_noMatch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"customers":[]}`))
	})

	customer, err := client.FindCustomerByEmail(context.Background(), "nobody@example.com")
	if err != nil || customer != nil {
		t.Fatalf("FindCustomerByEmail() = (%+v, %v), want (nil, nil)", customer, err)
	}
}

func TestClient_CreateCustomer(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v5/customers/create" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parsing form: %v", err)
		}
		if r.PostForm.Get("site") != "demo-site" {
			t.Errorf("expected site demo-site, got %q", r.PostForm.Get("site"))
		}
		var customer map[string]interface{}
		if err := json.Unmarshal([]byte(r.PostForm.Get("customer")), &customer); err != nil {
			t.Errorf("customer is not json: %v", err)
		}
		if customer["email"] != "jane@example.com" || customer["firstName"] != "Jane" {
			t.Errorf("unexpected customer %v", customer)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"success":true,"id":77}`))
	})

	id, err := client.CreateCustomer(context.Background(), &entity.Customer{
		Email:     "jane@example.com",
		FirstName: "Jane",
		Phone:     "+16502530000",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 77 {
		t.Fatalf("expected id 77, got %d", id)
	}
}

func TestClient_CreateOrder(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v5/orders/create" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		r.ParseForm()
		var order struct {
			OrderType    string                 `json:"orderType"`
			Customer     struct{ ID int }       `json:"customer"`
			ManagerID    int                    `json:"managerId"`
			CustomFields map[string]interface{} `json:"customFields"`
		}
		if err := json.Unmarshal([]byte(r.PostForm.Get("order")), &order); err != nil {
			t.Errorf("order is not json: %v", err)
		}
		if order.OrderType != "eshop-individual" || order.Customer.ID != 501 || order.ManagerID != 42 {
			t.Errorf("unexpected order %+v", order)
		}
		if order.CustomFields["demo_date"] != "2024-03-01" || order.CustomFields["demo_scheduled"] != true {
			t.Errorf("unexpected custom fields %v", order.CustomFields)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"success":true,"id":9001,"order":{"id":9001}}`))
	})

	id, err := client.CreateOrder(context.Background(), &entity.Order{
		Type:       "eshop-individual",
		CustomerID: 501,
		ManagerID:  42,
		CustomFields: map[string]interface{}{
			"demo_date":      "2024-03-01",
			"demo_scheduled": true,
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 9001 {
		t.Fatalf("expected id 9001, got %d", id)
	}
}

func TestClient_FindOrderByCustomField(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("filter[customFields][crm]"); got != "https://landing.example.com/lead/31" {
			t.Errorf("unexpected filter %q", got)
		}
		w.Write([]byte(`{"success":true,"orders":[
			{"id":31,"customer":{"id":8},"customFields":[]},
			{"id":32,"customer":{"id":9}}
		]}`))
	})

	order, err := client.FindOrderByCustomField(context.Background(), "crm", "https://landing.example.com/lead/31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order == nil || order.ID != 31 || order.CustomerID != 8 {
		t.Fatalf("expected first order (31), got %+v", order)
	}
	if order.CustomFields != nil {
		t.Fatalf("expected empty custom field list to decode as nil, got %v", order.CustomFields)
	}
}

func TestClient_EditOrder(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v5/orders/31/edit" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		r.ParseForm()
		if r.PostForm.Get("by") != "id" || r.PostForm.Get("site") != "demo-site" {
			t.Errorf("unexpected form %v", r.PostForm)
		}
		w.Write([]byte(`{"success":true,"id":31,"order":{"id":31,"customFields":{"demo_date":"2024-03-01","demo_time":"10:00"}}}`))
	})

	order, err := client.EditOrder(context.Background(), &entity.Order{
		ID:           31,
		CustomFields: map[string]interface{}{"demo_date": "2024-03-01", "demo_time": "10:00"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.ID != 31 || order.CustomField("demo_time") != "10:00" {
		t.Fatalf("unexpected order %+v", order)
	}
}

func TestClient_ListUsers(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("limit") != "100" {
			t.Errorf("expected limit=100, got %q", r.URL.RawQuery)
		}
		w.Write([]byte(`{"success":true,"users":[{"id":5,"email":"anna@example.com","active":true}]}`))
	})

	users, err := client.ListUsers(context.Background(), 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 1 || users[0].ID != 5 || users[0].Email != "anna@example.com" {
		t.Fatalf("unexpected users %+v", users)
	}
}

func TestClient_APIErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		wantMsg    string
		wantErrors []string
	}{
		{
			name:       "errors as object",
			status:     http.StatusBadRequest,
			body:       `{"success":false,"errorMsg":"Order is not valid","errors":{"site":"Site not found","customer":"Required"}}`,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Order is not valid",
			wantErrors: []string{"customer: Required", "site: Site not found"},
		},
		{
			name:       "errors as list",
			status:     http.StatusBadRequest,
			body:       `{"success":false,"errorMsg":"Errors in the input parameters","errors":["limit is invalid"]}`,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Errors in the input parameters",
			wantErrors: []string{"limit is invalid"},
		},
		{
			name:       "ok status without success",
			status:     http.StatusOK,
			body:       `{"success":false,"errorMsg":"Not found"}`,
			wantStatus: http.StatusOK,
			wantMsg:    "Not found",
		},
		{
			name:       "non json error page",
			status:     http.StatusBadGateway,
			body:       `<html>bad gateway</html>`,
			wantStatus: http.StatusBadGateway,
			wantMsg:    "Bad Gateway",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := client.ListUsers(context.Background(), 100)

			var apiErr *remote.APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *remote.APIError, got %v", err)
			}
			if !errors.Is(err, domain.ErrRemote) {
				t.Fatalf("expected error wrapping %v", domain.ErrRemote)
			}
			if apiErr.StatusCode != tt.wantStatus || apiErr.Message != tt.wantMsg {
				t.Fatalf("unexpected api error %+v", apiErr)
			}
			if len(apiErr.Errors) != len(tt.wantErrors) {
				t.Fatalf("errors = %v, want %v", apiErr.Errors, tt.wantErrors)
			}
			for i := range tt.wantErrors {
				if apiErr.Errors[i] != tt.wantErrors[i] {
					t.Fatalf("errors = %v, want %v", apiErr.Errors, tt.wantErrors)
				}
			}
		})
	}
}
