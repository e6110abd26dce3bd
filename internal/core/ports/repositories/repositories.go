package repositories

// RepositoryProvider bundles every repository the service layer needs.
// Cash-period data lives in the relational store; packages and operators live
// in the document store. The split mirrors the historical persistence
// migration and is intentionally kept behind separate interfaces.
type RepositoryProvider struct {
	CashClosureRepo   CashClosureRepositoryFacade
	TransactionRepo   TransactionReader
	PaymentMethodRepo PaymentMethodReader
	PackageRepo       PackageRepositoryFacade
	OperatorRepo      OperatorReader
}
