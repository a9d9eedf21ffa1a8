package entity

// Customer is the CRM customer record. Email is the identity key.
type Customer struct {
	ID        int
	Email     string
	FirstName string
	Phone     string
}
