package domain

const (
	// ManagerMappingKey is the store key holding the manager email to CRM user id mapping.
	ManagerMappingKey = "managers"

	// SubscriptionLockKey is the store key holding the registered subscription URI.
	SubscriptionLockKey = "_webhook"

	// ManagerListLimit is the page size used when rebuilding the manager mapping.
	ManagerListLimit = 100

	// TrackingURLScheme prefixes the tracking source before matching the order custom field.
	TrackingURLScheme = "https://"

	// EventInviteeCreated is the booking provider event the bootstrap subscribes to.
	EventInviteeCreated = "invitee.created"

	// SubscriptionScopeOrganization registers the webhook for the whole organization.
	SubscriptionScopeOrganization = "organization"

	// AnalyticsSuccessCode is the only analytics response code treated as accepted.
	AnalyticsSuccessCode = 200

	// DateLayout and ClockLayout format the appointment custom fields.
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)
