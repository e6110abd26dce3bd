package middleware

import "context"

// Keys used to store the authenticated operator's identity in the request
// context.
const (
	operatorIDKey    = contextKey("operatorID")
	operatorEmailKey = contextKey("operatorEmail")
	operatorRoleKey  = contextKey("operatorRole")
)

// GetOperatorIDFromCtx retrieves the authenticated operator id from the
// context. It returns the id and a boolean indicating if it was found.
func GetOperatorIDFromCtx(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(operatorIDKey).(string)
	return id, ok && id != ""
}

// GetOperatorEmailFromCtx retrieves the authenticated operator email from the
// context.
func GetOperatorEmailFromCtx(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(operatorEmailKey).(string)
	return email, ok && email != ""
}

// GetOperatorRoleFromCtx retrieves the authenticated operator role from the
// context.
func GetOperatorRoleFromCtx(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(operatorRoleKey).(string)
	return role, ok && role != ""
}
