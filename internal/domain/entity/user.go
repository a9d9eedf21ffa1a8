package entity

// User is a CRM user; users are the managers orders can be assigned to.
type User struct {
	ID     int
	Email  string
	Active bool
}
