package dto

import (
	"time"

	"github.com/workexpress/wx_backend/internal/core/domain"
)

// LoginRequest carries operator credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// OperatorResponse is the operator shape returned to clients.
type OperatorResponse struct {
	OperatorID string              `json:"operatorID"`
	Email      string              `json:"email"`
	Name       string              `json:"name"`
	Role       domain.OperatorRole `json:"role"`
}

// LoginResponse carries a freshly issued access token.
type LoginResponse struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expiresAt"`
	Operator  OperatorResponse `json:"operator"`
}

// ToOperatorResponse converts a domain.Operator to its response shape.
func ToOperatorResponse(op *domain.Operator) OperatorResponse {
	return OperatorResponse{
		OperatorID: op.OperatorID,
		Email:      op.Email,
		Name:       op.Name,
		Role:       op.Role,
	}
}
