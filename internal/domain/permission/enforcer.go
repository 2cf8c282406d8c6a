package permission

// PermissionEnforcer checks whether a user may perform an action on a
// resource. Implementations are expected to be safe for concurrent use.
type PermissionEnforcer interface {
	Enforce(userID string, resource string, action string) (bool, error)
	AddRoleForUser(userID string, role string) error
	DeleteRoleForUser(userID string, role string) error
	GetRolesForUser(userID string) ([]string, error)
}
