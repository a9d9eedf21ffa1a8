package entity

// Order is the CRM order record as written by the intake flows.
type Order struct {
	ID           int
	Type         string
	Method       string
	CustomerID   int
	Email        string
	Phone        string
	FirstName    string
	Comment      string
	ManagerID    int // zero when unassigned
	CustomFields map[string]interface{}
}

// HasManager reports whether a manager is assigned.
func (o *Order) HasManager() bool {
	return o.ManagerID > 0
}

// CustomField returns the string form of a custom field, or "" when unset.
func (o *Order) CustomField(code string) string {
	if o.CustomFields == nil {
		return ""
	}
	v, ok := o.CustomFields[code]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// OrderEventKind names what happened to an order.
type OrderEventKind string

const (
	OrderEventCreated     OrderEventKind = "order.created"
	OrderEventRescheduled OrderEventKind = "order.rescheduled"
)

// OrderEvent is published after an order is written to the CRM.
type OrderEvent struct {
	Kind       OrderEventKind
	OrderID    int
	CustomerID int
	Date       string
	Time       string
	Timezone   string
}
