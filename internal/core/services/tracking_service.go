package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/workexpress/wx_backend/internal/apperrors"
	"github.com/workexpress/wx_backend/internal/core/domain"
	portsrepo "github.com/workexpress/wx_backend/internal/core/ports/repositories"
	portssvc "github.com/workexpress/wx_backend/internal/core/ports/services"
	"github.com/workexpress/wx_backend/internal/dto"
	"github.com/workexpress/wx_backend/internal/utils"
)

// trackingService reconciles tracking numbers: local storage first, carrier
// fallback, persist-on-first-hit.
type trackingService struct {
	BaseService
	packageRepo  portsrepo.PackageRepositoryFacade
	operatorRepo portsrepo.OperatorReader
	cargo        portssvc.CargoSvcFacade
	jwtSecret    string
	now          func() time.Time
}

// TrackingOption is a functional option for configuring the service.
type TrackingOption func(*trackingService)

// WithTrackingClock overrides the time source.
func WithTrackingClock(now func() time.Time) TrackingOption {
	return func(s *trackingService) {
		s.now = now
	}
}

// NewTrackingService creates the tracking reconciliation service.
func NewTrackingService(
	packageRepo portsrepo.PackageRepositoryFacade,
	operatorRepo portsrepo.OperatorReader,
	cargo portssvc.CargoSvcFacade,
	jwtSecret string,
	options ...TrackingOption,
) portssvc.TrackingSvcFacade {
	svc := &trackingService{
		packageRepo:  packageRepo,
		operatorRepo: operatorRepo,
		cargo:        cargo,
		jwtSecret:    jwtSecret,
		now:          time.Now,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure trackingService implements the facade.
var _ portssvc.TrackingSvcFacade = (*trackingService)(nil)

func (s *trackingService) GetExternalTracking(ctx context.Context, trackingNumber string, identity dto.RequestIdentity) (*dto.ExternalTrackingResult, error) {
	if trackingNumber == "" {
		return nil, fmt.Errorf("tracking number is required: %w", apperrors.ErrValidation)
	}

	// Local storage wins: a known package never triggers a carrier call.
	pkg, err := s.packageRepo.FindPackageByTracking(ctx, trackingNumber)
	if err == nil {
		s.LogDebug(ctx, "Tracking resolved locally",
			slog.String("tracking", trackingNumber))
		return &dto.ExternalTrackingResult{
			Source:  dto.TrackingSourceLocal,
			Package: dto.ToPackageView(pkg),
		}, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Local package lookup failed",
			slog.String("tracking", trackingNumber))
		return nil, err
	}

	operator := s.resolveOperator(ctx, identity)

	record, err := s.cargo.GetShipmentDetails(ctx, trackingNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("tracking %s not found at carrier: %w", trackingNumber, apperrors.ErrNotFound)
		}
		return nil, err
	}
	if record == nil || record.Tracking != trackingNumber {
		return nil, fmt.Errorf("tracking %s not found at carrier: %w", trackingNumber, apperrors.ErrNotFound)
	}

	s.persistExternalRecord(ctx, trackingNumber, record, operator)

	// External data is authoritative for the response even when the local
	// save failed.
	return &dto.ExternalTrackingResult{
		Source:   dto.TrackingSourceCarrier,
		External: record,
	}, nil
}

// persistExternalRecord maps a carrier record into a local package and saves
// it attributed to the resolved operator. Failures are logged only.
func (s *trackingService) persistExternalRecord(ctx context.Context, trackingNumber string, record *domain.ExternalShipmentRecord, operator *domain.Operator) {
	statusValue := record.Status
	if statusValue == "" {
		statusValue = record.StatusName
	}

	now := s.now()
	pkg := domain.Package{
		PackageID:        uuid.NewString(),
		TrackingNumber:   trackingNumber,
		Status:           domain.ParsePackageStatus(statusValue),
		Weight:           utils.ParseFloatOrZero(record.TotalWeight),
		VolumetricWeight: utils.ParseFloatOrZero(record.VolWeight),
		Dimensions: domain.Dimensions{
			Length: utils.ParseFloatOrZero(record.CargoLength),
			Width:  utils.ParseFloatOrZero(record.CargoWidth),
			Height: utils.ParseFloatOrZero(record.CargoHeight),
			Unit:   record.Unit,
		},
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     operator.OperatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: operator.OperatorID,
		},
	}

	if err := s.packageRepo.SavePackage(ctx, pkg); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// A concurrent reconciliation won the insert; the record exists,
			// which is all we wanted.
			s.LogDebug(ctx, "Package already persisted by concurrent lookup",
				slog.String("tracking", trackingNumber))
			return
		}
		s.LogError(ctx, err, "Failed to persist reconciled package",
			slog.String("tracking", trackingNumber),
			slog.String("operator_id", operator.OperatorID))
		return
	}

	s.LogInfo(ctx, "Package persisted from carrier record",
		slog.String("tracking", trackingNumber),
		slog.String("operator_id", operator.OperatorID),
		slog.String("operator_email", operator.Email))
}

// resolveOperator picks the operator a package write is attributed to. The
// chain never fails: authenticated identity, manual token decode, privileged
// fallback, any active operator, and finally the system placeholder.
func (s *trackingService) resolveOperator(ctx context.Context, identity dto.RequestIdentity) *domain.Operator {
	if identity.OperatorID == "" && identity.Email == "" && identity.RawToken != "" {
		// The auth guard normally populates the identity; decoding the raw
		// token here is the belt-and-suspenders path.
		if claims, err := utils.ParseOperatorJWT(identity.RawToken, s.jwtSecret); err == nil {
			identity.OperatorID = claims.Subject
			identity.Email = claims.Email
			identity.Role = claims.Role
		} else {
			s.LogDebug(ctx, "Manual token decode failed during operator resolution",
				slog.String("error", err.Error()))
		}
	}

	if identity.OperatorID != "" {
		if op, err := s.operatorRepo.FindOperatorByID(ctx, identity.OperatorID); err == nil {
			return op
		}
	}
	if identity.Email != "" {
		if op, err := s.operatorRepo.FindOperatorByEmail(ctx, identity.Email); err == nil {
			return op
		}
	}

	// The authenticated identity is unknown to the operator registry; fall
	// back to attribution by role, then to any active operator.
	if domain.OperatorRole(identity.Role).IsPrivileged() {
		if op, err := s.operatorRepo.FindNewestActiveOperator(ctx, domain.RoleAdmin, domain.RoleManager); err == nil {
			s.LogWarn(ctx, "Attributing write to fallback privileged operator",
				slog.String("operator_id", op.OperatorID))
			return op
		}
	}
	if op, err := s.operatorRepo.FindNewestActiveOperator(ctx); err == nil {
		s.LogWarn(ctx, "Attributing write to fallback active operator",
			slog.String("operator_id", op.OperatorID))
		return op
	}

	s.LogWarn(ctx, "No operator could be resolved, using system placeholder")
	return &domain.Operator{Email: domain.PlaceholderOperatorEmail}
}
