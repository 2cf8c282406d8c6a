package permission

import (
	"fmt"

	"github.com/casbin/casbin/v2"

	"medlog/internal/shared/logger"
)

// InitStaffPermissions seeds the role policies for the staff backend.
// Admins manage sites, terminals and users; auditors only read medicine
// logs for the sites they were granted.
func InitStaffPermissions(enforcer *casbin.Enforcer, log logger.Interface) error {
	policies := [][]string{
		{"admin", "site", "create"},
		{"admin", "site", "read"},
		{"admin", "site", "update"},
		{"admin", "terminal", "create"},
		{"admin", "terminal", "read"},
		{"admin", "terminal", "update"},
		{"admin", "terminal", "pair"},
		{"admin", "terminal", "revoke"},
		{"admin", "user", "create"},
		{"admin", "user", "read"},
		{"admin", "user", "update"},
		{"admin", "logentry", "read"},
		{"admin", "audit", "read"},

		{"auditor", "logentry", "read"},
		{"auditor", "site", "read"},
	}

	for _, policy := range policies {
		_, err := enforcer.AddPolicy(policy)
		if err != nil {
			log.Errorw("failed to add permission policy",
				"error", err,
				"role", policy[0],
				"resource", policy[1],
				"action", policy[2])
			return fmt.Errorf("failed to add policy [%s, %s, %s]: %w",
				policy[0], policy[1], policy[2], err)
		}
	}

	if err := enforcer.SavePolicy(); err != nil {
		log.Error("failed to save staff permissions", "error", err)
		return fmt.Errorf("failed to save staff permissions: %w", err)
	}

	log.Info("staff permissions initialized successfully")
	return nil
}
