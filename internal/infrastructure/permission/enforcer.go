// Package permission decides which roles may call which operations. It
// answers "may a chef update menus at all"; ownership of a particular menu
// or subscription is checked by the use cases.
package permission

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"

	"github.com/tiffin-inc/tiffin/internal/shared/logger"
)

// Enforcer wraps a synced casbin enforcer backed by the casbin_rule table.
type Enforcer struct {
	casbin *casbin.SyncedEnforcer
	logger logger.Interface
}

func NewEnforcer(db *gorm.DB, modelPath string, log logger.Interface) (*Enforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("permission: open policy table: %w", err)
	}
	e, err := casbin.NewSyncedEnforcer(modelPath, adapter)
	if err != nil {
		return nil, fmt.Errorf("permission: load model %s: %w", modelPath, err)
	}
	if err := e.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("permission: load policies: %w", err)
	}
	return &Enforcer{casbin: e, logger: log}, nil
}

func (e *Enforcer) Enforce(role, resource, action string) (bool, error) {
	if role == "" {
		return false, nil
	}
	ok, err := e.casbin.Enforce(role, resource, action)
	if err != nil {
		return false, fmt.Errorf("permission: enforce %s %s/%s: %w", role, resource, action, err)
	}
	return ok, nil
}

// Grant stores a rule. Granting an existing rule is a no-op.
func (e *Enforcer) Grant(role, resource, action string) error {
	added, err := e.casbin.AddPolicy(role, resource, action)
	if err != nil {
		return fmt.Errorf("permission: grant %s %s/%s: %w", role, resource, action, err)
	}
	if added {
		e.logger.Infow("permission granted", "role", role, "resource", resource, "action", action)
	}
	return nil
}

func (e *Enforcer) Revoke(role, resource, action string) error {
	if _, err := e.casbin.RemovePolicy(role, resource, action); err != nil {
		return fmt.Errorf("permission: revoke %s %s/%s: %w", role, resource, action, err)
	}
	e.logger.Infow("permission revoked", "role", role, "resource", resource, "action", action)
	return nil
}

// Reload re-reads the policy table, picking up rules written by other
// processes.
func (e *Enforcer) Reload() error {
	if err := e.casbin.LoadPolicy(); err != nil {
		return fmt.Errorf("permission: reload policies: %w", err)
	}
	return nil
}
