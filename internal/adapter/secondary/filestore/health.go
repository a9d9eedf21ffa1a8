package filestore

import (
	"context"
	"fmt"
	"os"

	"github.com/ruudy-sib/demobridge/internal/port/secondary"
)

// HealthCheck implements secondary.HealthChecker for the file store.
type HealthCheck struct {
	dir string
}

// NewHealthCheck creates a health checker for the store directory.
func NewHealthCheck(dir string) secondary.HealthChecker {
	return &HealthCheck{dir: dir}
}

// Name returns the name of this health check.
func (h *HealthCheck) Name() string {
	return "file-store"
}

// Check verifies the store directory is present and writable.
func (h *HealthCheck) Check(_ context.Context) error {
	info, err := os.Stat(h.dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", h.dir)
	}

	probe, err := os.CreateTemp(h.dir, ".health-*")
	if err != nil {
		return fmt.Errorf("store directory not writable: %w", err)
	}
	name := probe.Name()
	probe.Close()
	return os.Remove(name)
}
