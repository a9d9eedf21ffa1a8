package primary

import "context"

// ManagerRefresher defines the primary port for rebuilding the manager
// mapping on a schedule.
type ManagerRefresher interface {
	// Refresh rebuilds the mapping from the CRM.
	Refresh(ctx context.Context) error
}
