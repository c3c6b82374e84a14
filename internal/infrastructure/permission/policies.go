package permission

import (
	"fmt"

	"github.com/tiffin-inc/tiffin/internal/shared/constants"
)

// Resources and actions checked by the HTTP layer.
const (
	ResourceMenu         = "menu"
	ResourceSubscription = "subscription"
	ResourceDelivery     = "delivery"

	ActionCreate        = "create"
	ActionUpdate        = "update"
	ActionDelete        = "delete"
	ActionRead          = "read"
	ActionQuote         = "quote"
	ActionRenew         = "renew"
	ActionUpdateStatus  = "update_status"
	ActionListIncoming  = "list_incoming"
	ActionMarkDelivered = "mark_delivered"
)

// DefaultPolicies grants each role its operations. Admins inherit chef and
// subscriber through role links, see DefaultRoleLinks.
func DefaultPolicies() [][]string {
	return [][]string{
		{constants.RoleChef, ResourceMenu, ActionCreate},
		{constants.RoleChef, ResourceMenu, ActionUpdate},
		{constants.RoleChef, ResourceMenu, ActionDelete},
		{constants.RoleChef, ResourceSubscription, ActionRead},
		{constants.RoleChef, ResourceSubscription, ActionQuote},
		{constants.RoleChef, ResourceSubscription, ActionUpdateStatus},
		{constants.RoleChef, ResourceSubscription, ActionListIncoming},
		{constants.RoleChef, ResourceDelivery, ActionMarkDelivered},
		{constants.RoleChef, ResourceDelivery, ActionRead},

		{constants.RoleSubscriber, ResourceSubscription, ActionCreate},
		{constants.RoleSubscriber, ResourceSubscription, ActionRead},
		{constants.RoleSubscriber, ResourceSubscription, ActionQuote},
		{constants.RoleSubscriber, ResourceSubscription, ActionRenew},
		{constants.RoleSubscriber, ResourceSubscription, ActionUpdateStatus},
		{constants.RoleSubscriber, ResourceDelivery, ActionRead},

		{constants.RoleDeliveryman, ResourceSubscription, ActionQuote},
	}
}

func DefaultRoleLinks() [][]string {
	return [][]string{
		{constants.RoleAdmin, constants.RoleChef},
		{constants.RoleAdmin, constants.RoleSubscriber},
	}
}

// InitDefaultPolicies stores the default rules and role links. Rules already
// present, including ones added by operators, are left alone.
func (e *Enforcer) InitDefaultPolicies() error {
	for _, p := range DefaultPolicies() {
		if err := e.Grant(p[0], p[1], p[2]); err != nil {
			return err
		}
	}
	for _, g := range DefaultRoleLinks() {
		if _, err := e.casbin.AddGroupingPolicy(g[0], g[1]); err != nil {
			return fmt.Errorf("permission: link %s to %s: %w", g[0], g[1], err)
		}
	}
	return nil
}
