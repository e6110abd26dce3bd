package services

import (
	"fmt"
	"time"

	portsclients "github.com/workexpress/wx_backend/internal/core/ports/clients"
	portsrepo "github.com/workexpress/wx_backend/internal/core/ports/repositories"
	portssvc "github.com/workexpress/wx_backend/internal/core/ports/services"
	"github.com/workexpress/wx_backend/internal/platform/config"
)

// NewServiceContainer wires every service from configuration, repositories
// and the carrier client. The notifier may be nil when mail is disabled.
func NewServiceContainer(
	cfg *config.Config,
	repos *portsrepo.RepositoryProvider,
	carrier portsclients.CarrierClient,
	notifier portssvc.ClosureNotifier,
) (*portssvc.ServiceContainer, error) {
	schedule, err := scheduleFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	closureOptions := []CashClosureOption{WithSchedule(schedule)}
	if notifier != nil {
		closureOptions = append(closureOptions, WithClosureNotifier(notifier))
	}

	cashClosureSvc := NewCashClosureService(
		repos.CashClosureRepo,
		repos.TransactionRepo,
		repos.PaymentMethodRepo,
		closureOptions...,
	)

	cargoSvc := NewCargoService(carrier, WithScanDelay(cfg.CarrierScanDelay))
	trackingSvc := NewTrackingService(repos.PackageRepo, repos.OperatorRepo, cargoSvc, cfg.JWTSecret)
	authSvc := NewAuthService(repos.OperatorRepo, cfg.JWTSecret, cfg.JWTExpiryDuration, cfg.JWTIssuer)

	return &portssvc.ServiceContainer{
		CashClosure: cashClosureSvc,
		Cargo:       cargoSvc,
		Tracking:    trackingSvc,
		Auth:        authSvc,
	}, nil
}

func scheduleFromConfig(cfg *config.Config) (Schedule, error) {
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return Schedule{}, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}
	openHour, openMinute, err := config.ParseClock(cfg.CashClosureOpenTime)
	if err != nil {
		return Schedule{}, fmt.Errorf("invalid open time: %w", err)
	}
	closeHour, closeMinute, err := config.ParseClock(cfg.CashClosureCloseTime)
	if err != nil {
		return Schedule{}, fmt.Errorf("invalid close time: %w", err)
	}

	return Schedule{
		Location:    location,
		OpenHour:    openHour,
		OpenMinute:  openMinute,
		CloseHour:   closeHour,
		CloseMinute: closeMinute,
	}, nil
}
