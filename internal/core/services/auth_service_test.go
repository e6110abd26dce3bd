package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/workexpress/wx_backend/internal/apperrors"
	"github.com/workexpress/wx_backend/internal/core/domain"
	portssvc "github.com/workexpress/wx_backend/internal/core/ports/services"
	"github.com/workexpress/wx_backend/internal/core/services"
	"github.com/workexpress/wx_backend/internal/dto"
	"github.com/workexpress/wx_backend/internal/utils"
)

type AuthServiceTestSuite struct {
	suite.Suite
	mockOperators *MockOperatorReader
	service       portssvc.AuthSvcFacade
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.mockOperators = new(MockOperatorReader)
	suite.service = services.NewAuthService(suite.mockOperators, testJWTSecret, time.Hour, "workexpress")
}

func (suite *AuthServiceTestSuite) activeOperator(password string) *domain.Operator {
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)
	return &domain.Operator{
		OperatorID:   uuid.NewString(),
		Email:        "ops@workexpress.com",
		Name:         "Ops",
		PasswordHash: hash,
		Role:         domain.RoleOperator,
		IsActive:     true,
	}
}

func (suite *AuthServiceTestSuite) TestLogin_Success() {
	ctx := context.Background()
	operator := suite.activeOperator("correct horse")

	suite.mockOperators.On("FindOperatorByEmail", ctx, operator.Email).Return(operator, nil).Once()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{Email: operator.Email, Password: "correct horse"})

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.Equal(operator.OperatorID, resp.Operator.OperatorID)
	suite.True(resp.ExpiresAt.After(time.Now()))

	claims, err := utils.ParseOperatorJWT(resp.Token, testJWTSecret)
	suite.Require().NoError(err)
	suite.Equal(operator.OperatorID, claims.Subject)
	suite.Equal(operator.Email, claims.Email)
	suite.Equal(string(operator.Role), claims.Role)
}

func (suite *AuthServiceTestSuite) TestLogin_WrongPassword() {
	ctx := context.Background()
	operator := suite.activeOperator("correct horse")

	suite.mockOperators.On("FindOperatorByEmail", ctx, operator.Email).Return(operator, nil).Once()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{Email: operator.Email, Password: "battery staple"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.Nil(resp)
}

func (suite *AuthServiceTestSuite) TestLogin_UnknownEmailLooksLikeBadPassword() {
	ctx := context.Background()
	suite.mockOperators.On("FindOperatorByEmail", ctx, "nobody@workexpress.com").Return(nil, apperrors.ErrNotFound).Once()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{Email: "nobody@workexpress.com", Password: "whatever"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.NotErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(resp)
}

func (suite *AuthServiceTestSuite) TestLogin_InactiveOperator() {
	ctx := context.Background()
	operator := suite.activeOperator("correct horse")
	operator.IsActive = false

	suite.mockOperators.On("FindOperatorByEmail", ctx, operator.Email).Return(operator, nil).Once()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{Email: operator.Email, Password: "correct horse"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.Nil(resp)
}

func (suite *AuthServiceTestSuite) TestLogin_RepositoryErrorPassesThrough() {
	ctx := context.Background()
	suite.mockOperators.On("FindOperatorByEmail", ctx, "ops@workexpress.com").Return(nil, assert.AnError).Once()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{Email: "ops@workexpress.com", Password: "x"})

	suite.Require().Error(err)
	suite.ErrorIs(err, assert.AnError)
	suite.Nil(resp)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
