package entity

// BookingUser identifies the authenticated booking provider account.
type BookingUser struct {
	URI          string
	Organization string
}

// SubscriptionRequest describes the webhook to register with the booking provider.
type SubscriptionRequest struct {
	CallbackURL  string
	Events       []string
	User         string
	Organization string
	Scope        string
}

// Subscription is a registered webhook subscription.
type Subscription struct {
	URI         string
	CallbackURL string
	State       string
}

// AnalyticsEvent is a single named event tied to a user id.
type AnalyticsEvent struct {
	UserID    string
	EventType string
}
