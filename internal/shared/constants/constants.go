package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// HTTP Headers
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"
	HeaderUserAgent     = "User-Agent"

	// Context keys
	ContextKeyUserID     = "user_id"
	ContextKeyUserRole   = "user_role"
	ContextKeyTerminalID = "terminal_id"
	ContextKeySiteID     = "site_id"

	// TerminalCookieName is the cookie that carries the raw device credential.
	// The pairing handler writes it and the terminal session middleware reads it;
	// both sides must agree on this name.
	TerminalCookieName = "ml_terminal"

	// PairEntryPath is where unpaired kiosk devices are redirected.
	PairEntryPath = "/kiosk/pair"

	// User roles
	RoleAdmin   = "admin"
	RoleAuditor = "auditor"

	// Database table names
	TableSites            = "sites"
	TableTerminals        = "terminals"
	TableTerminalSessions = "terminal_sessions"
	TablePairingCodes     = "terminal_pairing_codes"
	TableUsers            = "users"
	TableLogEntries       = "medicine_log_entries"
	TableLogEntryItems    = "medicine_log_entry_items"
	TableAuditEvents      = "audit_events"
	TableAuditorSites     = "auditor_site_accesses"
)
