package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ruudy-sib/demobridge/internal/domain"
	"github.com/ruudy-sib/demobridge/internal/port/secondary"
	"github.com/ruudy-sib/demobridge/internal/requestid"
)

// ManagerDirectory resolves a meeting host's email to a CRM user id.
//
// The mapping is persisted under domain.ManagerMappingKey and never expires.
// A miss rebuilds it wholesale from a single page of CRM users. Concurrent
// rebuilds are not coordinated; the last writer wins.
type ManagerDirectory struct {
	crm    secondary.CRMClient
	store  secondary.KeyValueStore
	logger *zap.Logger
}

// NewManagerDirectory creates a ManagerDirectory with its dependencies injected.
func NewManagerDirectory(
	crm secondary.CRMClient,
	store secondary.KeyValueStore,
	logger *zap.Logger,
) *ManagerDirectory {
	return &ManagerDirectory{
		crm:    crm,
		store:  store,
		logger: logger.Named("manager-directory"),
	}
}

// Resolve returns the CRM user id for email. Failures are logged and reported
// as absent, since assigning a manager is optional.
func (d *ManagerDirectory) Resolve(ctx context.Context, email string) (int, bool) {
	email = strings.TrimSpace(email)
	if email == "" {
		return 0, false
	}

	logger := d.logger.With(requestid.Field(ctx), zap.String("manager_email", email))

	mapping, err := d.load(ctx)
	switch {
	case err == nil:
		if id, ok := mapping[email]; ok {
			return id, true
		}
	case errors.Is(err, domain.ErrKeyNotFound):
	default:
		logger.Warn("reading manager mapping failed, rebuilding", zap.Error(err))
	}

	mapping, err = d.rebuild(ctx, logger)
	if err != nil {
		logger.Warn("listing crm users failed, order will have no manager", zap.Error(err))
		return 0, false
	}

	id, ok := mapping[email]
	if !ok {
		logger.Info("manager not found in crm users")
	}
	return id, ok
}

// Refresh rebuilds the persisted mapping from the CRM ahead of any miss.
// A failed listing leaves the stored mapping as it was.
func (d *ManagerDirectory) Refresh(ctx context.Context) error {
	mapping, err := d.rebuild(ctx, d.logger.With(requestid.Field(ctx)))
	if err != nil {
		return fmt.Errorf("refreshing manager mapping: %w", err)
	}
	d.logger.Info("manager mapping refreshed", zap.Int("managers", len(mapping)))
	return nil
}

func (d *ManagerDirectory) load(ctx context.Context) (map[string]int, error) {
	raw, err := d.store.Get(ctx, domain.ManagerMappingKey)
	if err != nil {
		return nil, err
	}

	mapping := make(map[string]int)
	if err := json.Unmarshal(raw, &mapping); err != nil {
		return nil, fmt.Errorf("decoding manager mapping: %w", err)
	}
	return mapping, nil
}

func (d *ManagerDirectory) rebuild(ctx context.Context, logger *zap.Logger) (map[string]int, error) {
	users, err := d.crm.ListUsers(ctx, domain.ManagerListLimit)
	if err != nil {
		return nil, err
	}

	mapping := make(map[string]int, len(users))
	for _, u := range users {
		if u.Email == "" {
			continue
		}
		mapping[u.Email] = u.ID
	}

	data, err := json.Marshal(mapping)
	if err != nil {
		return nil, fmt.Errorf("encoding manager mapping: %w", err)
	}
	if err := d.store.Put(ctx, domain.ManagerMappingKey, data); err != nil {
		logger.Error("persisting manager mapping failed", zap.Error(err))
	} else {
		logger.Debug("manager mapping rebuilt", zap.Int("managers", len(mapping)))
	}

	return mapping, nil
}
