package crmclient

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/ruudy-sib/demobridge/internal/domain/entity"
)

// envelope is the part every CRM response shares.
type envelope struct {
	Success  bool            `json:"success"`
	ErrorMsg string          `json:"errorMsg"`
	Errors   json.RawMessage `json:"errors"`
}

// details flattens the errors field, which the CRM sends either as an
// object keyed by field or as a plain list.
func (e *envelope) details() []string {
	if len(e.Errors) == 0 {
		return nil
	}

	var byField map[string]string
	if err := json.Unmarshal(e.Errors, &byField); err == nil {
		out := make([]string, 0, len(byField))
		for field, msg := range byField {
			out = append(out, fmt.Sprintf("%s: %s", field, msg))
		}
		sort.Strings(out)
		return out
	}

	var list []string
	if err := json.Unmarshal(e.Errors, &list); err == nil {
		return list
	}

	return []string{string(e.Errors)}
}

type phoneDTO struct {
	Number string `json:"number"`
}

type customerDTO struct {
	ID        int        `json:"id,omitempty"`
	Email     string     `json:"email,omitempty"`
	FirstName string     `json:"firstName,omitempty"`
	Phones    []phoneDTO `json:"phones,omitempty"`
}

func customerFromEntity(c *entity.Customer) customerDTO {
	dto := customerDTO{Email: c.Email, FirstName: c.FirstName}
	if c.Phone != "" {
		dto.Phones = []phoneDTO{{Number: c.Phone}}
	}
	return dto
}

func (d customerDTO) toEntity() *entity.Customer {
	c := &entity.Customer{ID: d.ID, Email: d.Email, FirstName: d.FirstName}
	if len(d.Phones) > 0 {
		c.Phone = d.Phones[0].Number
	}
	return c
}

type customerRefDTO struct {
	ID int `json:"id"`
}

type orderDTO struct {
	ID              int             `json:"id,omitempty"`
	OrderType       string          `json:"orderType,omitempty"`
	OrderMethod     string          `json:"orderMethod,omitempty"`
	Customer        *customerRefDTO `json:"customer,omitempty"`
	Email           string          `json:"email,omitempty"`
	Phone           string          `json:"phone,omitempty"`
	FirstName       string          `json:"firstName,omitempty"`
	CustomerComment string          `json:"customerComment,omitempty"`
	ManagerID       int             `json:"managerId,omitempty"`
	CustomFields    json.RawMessage `json:"customFields,omitempty"`
}

func orderFromEntity(o *entity.Order) (orderDTO, error) {
	dto := orderDTO{
		OrderType:       o.Type,
		OrderMethod:     o.Method,
		Email:           o.Email,
		Phone:           o.Phone,
		FirstName:       o.FirstName,
		CustomerComment: o.Comment,
		ManagerID:       o.ManagerID,
	}
	if o.CustomerID > 0 {
		dto.Customer = &customerRefDTO{ID: o.CustomerID}
	}
	if len(o.CustomFields) > 0 {
		raw, err := json.Marshal(o.CustomFields)
		if err != nil {
			return orderDTO{}, fmt.Errorf("encoding custom fields: %w", err)
		}
		dto.CustomFields = raw
	}
	return dto, nil
}

// toEntity converts a CRM order. The CRM sends an empty list instead of an
// empty object when an order has no custom fields; both decode to nil.
func (d orderDTO) toEntity() *entity.Order {
	o := &entity.Order{
		ID:        d.ID,
		Type:      d.OrderType,
		Method:    d.OrderMethod,
		Email:     d.Email,
		Phone:     d.Phone,
		FirstName: d.FirstName,
		Comment:   d.CustomerComment,
		ManagerID: d.ManagerID,
	}
	if d.Customer != nil {
		o.CustomerID = d.Customer.ID
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(d.CustomFields, &fields); err == nil && len(fields) > 0 {
		o.CustomFields = fields
	}
	return o
}

type userDTO struct {
	ID     int    `json:"id"`
	Email  string `json:"email"`
	Active bool   `json:"active"`
}

type customersResponse struct {
	envelope
	Customers []customerDTO `json:"customers"`
}

type createResponse struct {
	envelope
	ID int `json:"id"`
}

type orderResponse struct {
	envelope
	ID    int       `json:"id"`
	Order *orderDTO `json:"order"`
}

type ordersResponse struct {
	envelope
	Orders []orderDTO `json:"orders"`
}

type usersResponse struct {
	envelope
	Users []userDTO `json:"users"`
}

// result is implemented by every response type through the embedded envelope.
type result interface {
	base() *envelope
}

func (e *envelope) base() *envelope { return e }
