package domain

import "errors"

var (
	// ErrInvalidPayload indicates a webhook payload failed validation.
	ErrInvalidPayload = errors.New("invalid payload")

	// ErrCustomerUnresolved indicates the customer could be neither found nor created.
	ErrCustomerUnresolved = errors.New("customer unresolved")

	// ErrUnmappedScoring indicates the scoring answer has no entry in the scoring dictionary.
	ErrUnmappedScoring = errors.New("unmapped scoring answer")

	// ErrOrderNotCreated indicates the CRM did not report a created order.
	ErrOrderNotCreated = errors.New("order not created")

	// ErrOrderNotFound indicates no order matched the tracking URL.
	ErrOrderNotFound = errors.New("order not found")

	// ErrOrderNotUpdated indicates the CRM did not return the edited order.
	ErrOrderNotUpdated = errors.New("order not updated")

	// ErrAnalyticsRejected indicates the analytics event was not accepted.
	ErrAnalyticsRejected = errors.New("analytics event rejected")

	// ErrAlreadySubscribed indicates the subscription lock is already present.
	ErrAlreadySubscribed = errors.New("already subscribed")

	// ErrSubscriptionFailed indicates the webhook subscription could not be registered.
	ErrSubscriptionFailed = errors.New("subscription failed")

	// ErrRemote indicates a remote service answered with a structured error.
	ErrRemote = errors.New("remote service error")

	// ErrTransport indicates a connection, timeout or protocol failure.
	ErrTransport = errors.New("transport error")

	// ErrKeyNotFound indicates the key-value store has no entry for the key.
	ErrKeyNotFound = errors.New("key not found")
)
