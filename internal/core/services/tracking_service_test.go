package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/workexpress/wx_backend/internal/apperrors"
	"github.com/workexpress/wx_backend/internal/core/domain"
	portsrepo "github.com/workexpress/wx_backend/internal/core/ports/repositories"
	portssvc "github.com/workexpress/wx_backend/internal/core/ports/services"
	"github.com/workexpress/wx_backend/internal/core/services"
	"github.com/workexpress/wx_backend/internal/dto"
	"github.com/workexpress/wx_backend/internal/utils"
)

const testJWTSecret = "test-secret"

// --- Mock PackageRepository ---
type MockPackageRepository struct {
	mock.Mock
}

func (m *MockPackageRepository) FindPackageByTracking(ctx context.Context, trackingNumber string) (*domain.Package, error) {
	args := m.Called(ctx, trackingNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Package), args.Error(1)
}

func (m *MockPackageRepository) SavePackage(ctx context.Context, pkg domain.Package) error {
	args := m.Called(ctx, pkg)
	return args.Error(0)
}

var _ portsrepo.PackageRepositoryFacade = (*MockPackageRepository)(nil)

// --- Mock OperatorReader ---
type MockOperatorReader struct {
	mock.Mock
}

func (m *MockOperatorReader) FindOperatorByID(ctx context.Context, operatorID string) (*domain.Operator, error) {
	args := m.Called(ctx, operatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Operator), args.Error(1)
}

func (m *MockOperatorReader) FindOperatorByEmail(ctx context.Context, email string) (*domain.Operator, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Operator), args.Error(1)
}

func (m *MockOperatorReader) FindNewestActiveOperator(ctx context.Context, roles ...domain.OperatorRole) (*domain.Operator, error) {
	callArgs := make([]interface{}, 0, len(roles)+1)
	callArgs = append(callArgs, ctx)
	for _, r := range roles {
		callArgs = append(callArgs, r)
	}
	args := m.Called(callArgs...)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Operator), args.Error(1)
}

var _ portsrepo.OperatorReader = (*MockOperatorReader)(nil)

// --- Mock CargoService ---
type MockCargoService struct {
	mock.Mock
}

func (m *MockCargoService) GetPackages(ctx context.Context) ([]domain.CarrierShipmentRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CarrierShipmentRow), args.Error(1)
}

func (m *MockCargoService) FindByTracking(ctx context.Context, trackingNumber string) (*domain.CarrierShipmentRow, error) {
	args := m.Called(ctx, trackingNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CarrierShipmentRow), args.Error(1)
}

func (m *MockCargoService) GetShipmentDetails(ctx context.Context, trackingNumber string) (*domain.ExternalShipmentRecord, error) {
	args := m.Called(ctx, trackingNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExternalShipmentRecord), args.Error(1)
}

var _ portssvc.CargoSvcFacade = (*MockCargoService)(nil)

// --- Test Suite ---
type TrackingServiceTestSuite struct {
	suite.Suite
	mockPackages  *MockPackageRepository
	mockOperators *MockOperatorReader
	mockCargo     *MockCargoService
	service       portssvc.TrackingSvcFacade
}

func (suite *TrackingServiceTestSuite) SetupTest() {
	suite.mockPackages = new(MockPackageRepository)
	suite.mockOperators = new(MockOperatorReader)
	suite.mockCargo = new(MockCargoService)
	suite.service = services.NewTrackingService(
		suite.mockPackages,
		suite.mockOperators,
		suite.mockCargo,
		testJWTSecret,
		services.WithTrackingClock(func() time.Time {
			return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
		}),
	)
}

func testOperator() *domain.Operator {
	return &domain.Operator{
		OperatorID: uuid.NewString(),
		Email:      "ops@workexpress.com",
		Role:       domain.RoleOperator,
		IsActive:   true,
	}
}

func externalRecord(tracking string) *domain.ExternalShipmentRecord {
	return &domain.ExternalShipmentRecord{
		Tracking:    tracking,
		Status:      "1",
		StatusName:  "In transit",
		TotalWeight: "12.5",
		VolWeight:   "10.0",
		CargoLength: "30",
		CargoWidth:  "20",
		CargoHeight: "15",
		Unit:        "in",
	}
}

func (suite *TrackingServiceTestSuite) TestLocalHitNeverCallsCarrier() {
	ctx := context.Background()
	pkg := &domain.Package{
		PackageID:      uuid.NewString(),
		TrackingNumber: "WX123",
		Status:         domain.PackageDelivered,
	}

	suite.mockPackages.On("FindPackageByTracking", ctx, "WX123").Return(pkg, nil).Once()

	result, err := suite.service.GetExternalTracking(ctx, "WX123", dto.RequestIdentity{})

	suite.Require().NoError(err)
	suite.Equal(dto.TrackingSourceLocal, result.Source)
	suite.Require().NotNil(result.Package)
	suite.Equal("ENTREGADO", result.Package.StatusName)
	suite.Nil(result.External)

	suite.mockCargo.AssertNotCalled(suite.T(), "GetShipmentDetails", mock.Anything, mock.Anything)
	suite.mockPackages.AssertNotCalled(suite.T(), "SavePackage", mock.Anything, mock.Anything)
}

func (suite *TrackingServiceTestSuite) TestCarrierHitPersistsAttributedPackage() {
	ctx := context.Background()
	operator := testOperator()
	record := externalRecord("WX456")

	suite.mockPackages.On("FindPackageByTracking", ctx, "WX456").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockOperators.On("FindOperatorByID", ctx, operator.OperatorID).Return(operator, nil).Once()
	suite.mockCargo.On("GetShipmentDetails", ctx, "WX456").Return(record, nil).Once()
	suite.mockPackages.On("SavePackage", ctx, mock.MatchedBy(func(p domain.Package) bool {
		return p.TrackingNumber == "WX456" &&
			p.Status == domain.PackageInTransit &&
			p.Weight == 12.5 &&
			p.Dimensions.Length == 30 &&
			p.CreatedBy == operator.OperatorID
	})).Return(nil).Once()

	result, err := suite.service.GetExternalTracking(ctx, "WX456", dto.RequestIdentity{OperatorID: operator.OperatorID})

	suite.Require().NoError(err)
	suite.Equal(dto.TrackingSourceCarrier, result.Source)
	suite.Equal(record, result.External)
	suite.mockPackages.AssertExpectations(suite.T())
}

func (suite *TrackingServiceTestSuite) TestSaveFailureStillReturnsExternalRecord() {
	ctx := context.Background()
	operator := testOperator()
	record := externalRecord("WX777")

	suite.mockPackages.On("FindPackageByTracking", ctx, "WX777").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockOperators.On("FindOperatorByID", ctx, operator.OperatorID).Return(operator, nil).Once()
	suite.mockCargo.On("GetShipmentDetails", ctx, "WX777").Return(record, nil).Once()
	suite.mockPackages.On("SavePackage", ctx, mock.AnythingOfType("domain.Package")).Return(assert.AnError).Once()

	result, err := suite.service.GetExternalTracking(ctx, "WX777", dto.RequestIdentity{OperatorID: operator.OperatorID})

	suite.Require().NoError(err)
	suite.Equal(dto.TrackingSourceCarrier, result.Source)
	suite.Equal(record, result.External)
}

func (suite *TrackingServiceTestSuite) TestDuplicateSaveIsAbsorbed() {
	ctx := context.Background()
	operator := testOperator()
	record := externalRecord("WX888")

	suite.mockPackages.On("FindPackageByTracking", ctx, "WX888").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockOperators.On("FindOperatorByID", ctx, operator.OperatorID).Return(operator, nil).Once()
	suite.mockCargo.On("GetShipmentDetails", ctx, "WX888").Return(record, nil).Once()
	suite.mockPackages.On("SavePackage", ctx, mock.AnythingOfType("domain.Package")).Return(apperrors.ErrDuplicate).Once()

	result, err := suite.service.GetExternalTracking(ctx, "WX888", dto.RequestIdentity{OperatorID: operator.OperatorID})

	suite.Require().NoError(err)
	suite.Equal(dto.TrackingSourceCarrier, result.Source)
}

func (suite *TrackingServiceTestSuite) TestCarrierMismatchIsNotFound() {
	ctx := context.Background()
	operator := testOperator()

	suite.mockPackages.On("FindPackageByTracking", ctx, "WX999").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockOperators.On("FindOperatorByID", ctx, operator.OperatorID).Return(operator, nil).Once()
	// The carrier's detail search is fuzzy too; a record for a different
	// tracking number must not be persisted or returned.
	suite.mockCargo.On("GetShipmentDetails", ctx, "WX999").Return(externalRecord("WX999-B"), nil).Once()

	result, err := suite.service.GetExternalTracking(ctx, "WX999", dto.RequestIdentity{OperatorID: operator.OperatorID})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(result)
	suite.mockPackages.AssertNotCalled(suite.T(), "SavePackage", mock.Anything, mock.Anything)
}

func (suite *TrackingServiceTestSuite) TestOperatorResolvedFromRawToken() {
	ctx := context.Background()
	operator := testOperator()
	record := externalRecord("WX100")

	token, err := utils.GenerateOperatorJWT(operator.OperatorID, operator.Email, string(operator.Role), testJWTSecret, time.Hour, "workexpress")
	suite.Require().NoError(err)

	suite.mockPackages.On("FindPackageByTracking", ctx, "WX100").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockOperators.On("FindOperatorByID", ctx, operator.OperatorID).Return(operator, nil).Once()
	suite.mockCargo.On("GetShipmentDetails", ctx, "WX100").Return(record, nil).Once()
	suite.mockPackages.On("SavePackage", ctx, mock.MatchedBy(func(p domain.Package) bool {
		return p.CreatedBy == operator.OperatorID
	})).Return(nil).Once()

	result, err := suite.service.GetExternalTracking(ctx, "WX100", dto.RequestIdentity{RawToken: token})

	suite.Require().NoError(err)
	suite.Equal(dto.TrackingSourceCarrier, result.Source)
	suite.mockOperators.AssertExpectations(suite.T())
}

func (suite *TrackingServiceTestSuite) TestPrivilegedIdentityFallsBackToPrivilegedOperator() {
	ctx := context.Background()
	fallback := testOperator()
	fallback.Role = domain.RoleManager
	record := externalRecord("WX200")

	suite.mockPackages.On("FindPackageByTracking", ctx, "WX200").Return(nil, apperrors.ErrNotFound).Once()
	// The authenticated id and email are unknown to the registry.
	suite.mockOperators.On("FindOperatorByID", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockOperators.On("FindOperatorByEmail", ctx, "ghost@workexpress.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockOperators.On("FindNewestActiveOperator", ctx, domain.RoleAdmin, domain.RoleManager).Return(fallback, nil).Once()
	suite.mockCargo.On("GetShipmentDetails", ctx, "WX200").Return(record, nil).Once()
	suite.mockPackages.On("SavePackage", ctx, mock.MatchedBy(func(p domain.Package) bool {
		return p.CreatedBy == fallback.OperatorID
	})).Return(nil).Once()

	identity := dto.RequestIdentity{OperatorID: "ghost", Email: "ghost@workexpress.com", Role: "admin"}
	result, err := suite.service.GetExternalTracking(ctx, "WX200", identity)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.mockOperators.AssertExpectations(suite.T())
}

func (suite *TrackingServiceTestSuite) TestNoResolvableOperatorUsesPlaceholder() {
	ctx := context.Background()
	record := externalRecord("WX300")

	suite.mockPackages.On("FindPackageByTracking", ctx, "WX300").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockOperators.On("FindNewestActiveOperator", ctx).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockCargo.On("GetShipmentDetails", ctx, "WX300").Return(record, nil).Once()
	suite.mockPackages.On("SavePackage", ctx, mock.MatchedBy(func(p domain.Package) bool {
		return p.CreatedBy == ""
	})).Return(nil).Once()

	result, err := suite.service.GetExternalTracking(ctx, "WX300", dto.RequestIdentity{})

	suite.Require().NoError(err)
	suite.NotNil(result)
}

func (suite *TrackingServiceTestSuite) TestEmptyTrackingIsValidationError() {
	result, err := suite.service.GetExternalTracking(context.Background(), "", dto.RequestIdentity{})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(result)
}

func TestTrackingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TrackingServiceTestSuite))
}
