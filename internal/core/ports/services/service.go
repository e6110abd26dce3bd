package services

// ServiceContainer bundles every service facade for route registration.
type ServiceContainer struct {
	CashClosure CashClosureSvcFacade
	Cargo       CargoSvcFacade
	Tracking    TrackingSvcFacade
	Auth        AuthSvcFacade
}
