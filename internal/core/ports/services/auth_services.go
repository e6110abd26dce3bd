package services

import (
	"context"

	"github.com/workexpress/wx_backend/internal/dto"
)

// AuthSvcFacade authenticates operators and issues access tokens.
type AuthSvcFacade interface {
	// Login verifies operator credentials and returns a signed JWT.
	// Returns apperrors.ErrUnauthorized for bad credentials or an inactive
	// operator.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}
