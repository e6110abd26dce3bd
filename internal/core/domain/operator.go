package domain

// OperatorRole is the access level of an internal staff identity.
type OperatorRole string

const (
	RoleAdmin    OperatorRole = "admin"
	RoleManager  OperatorRole = "manager"
	RoleOperator OperatorRole = "operator"
)

// IsPrivileged reports whether the role may fall back to another privileged
// operator during tracking attribution.
func (r OperatorRole) IsPrivileged() bool {
	return r == RoleAdmin || r == RoleManager
}

// Operator is an internal staff or system identity attributed to
// state-changing actions (closing a cash period, creating a package record).
type Operator struct {
	OperatorID   string       `json:"operatorID"`
	Email        string       `json:"email"`
	Name         string       `json:"name"`
	PasswordHash string       `json:"-"`
	Role         OperatorRole `json:"role"`
	IsActive     bool         `json:"isActive"`
	AuditFields
}

// PlaceholderOperatorEmail attributes a package write when no operator could
// be resolved at all.
const PlaceholderOperatorEmail = "system@workexpress.com"
