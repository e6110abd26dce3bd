package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/workexpress/wx_backend/internal/apperrors"
	portsrepo "github.com/workexpress/wx_backend/internal/core/ports/repositories"
	portssvc "github.com/workexpress/wx_backend/internal/core/ports/services"
	"github.com/workexpress/wx_backend/internal/dto"
	"github.com/workexpress/wx_backend/internal/utils"
)

type authService struct {
	BaseService
	operatorRepo portsrepo.OperatorReader
	jwtSecret    string
	jwtExpiry    time.Duration
	jwtIssuer    string
}

// NewAuthService creates the operator authentication service.
func NewAuthService(operatorRepo portsrepo.OperatorReader, jwtSecret string, jwtExpiry time.Duration, jwtIssuer string) portssvc.AuthSvcFacade {
	return &authService{
		operatorRepo: operatorRepo,
		jwtSecret:    jwtSecret,
		jwtExpiry:    jwtExpiry,
		jwtIssuer:    jwtIssuer,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	operator, err := s.operatorRepo.FindOperatorByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Same error as a bad password so callers cannot probe emails.
			return nil, fmt.Errorf("invalid credentials: %w", apperrors.ErrUnauthorized)
		}
		s.LogError(ctx, err, "Operator lookup failed during login",
			slog.String("email", req.Email))
		return nil, err
	}

	if !utils.CheckPasswordHash(req.Password, operator.PasswordHash) {
		return nil, fmt.Errorf("invalid credentials: %w", apperrors.ErrUnauthorized)
	}
	if !operator.IsActive {
		return nil, fmt.Errorf("operator is inactive: %w", apperrors.ErrUnauthorized)
	}

	token, err := utils.GenerateOperatorJWT(operator.OperatorID, operator.Email, string(operator.Role), s.jwtSecret, s.jwtExpiry, s.jwtIssuer)
	if err != nil {
		s.LogError(ctx, err, "Token generation failed",
			slog.String("operator_id", operator.OperatorID))
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.LogInfo(ctx, "Operator logged in",
		slog.String("operator_id", operator.OperatorID),
		slog.String("role", string(operator.Role)))

	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(s.jwtExpiry),
		Operator:  dto.ToOperatorResponse(operator),
	}, nil
}
