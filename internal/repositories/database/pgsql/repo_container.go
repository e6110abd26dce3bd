package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/workexpress/wx_backend/internal/core/ports/repositories"
)

// RelationalRepositories bundles the repositories backed by postgres. The
// document-store repositories are attached separately by the caller.
type RelationalRepositories struct {
	CashClosureRepo   portsrepo.CashClosureRepositoryFacade
	TransactionRepo   portsrepo.TransactionReader
	PaymentMethodRepo portsrepo.PaymentMethodReader
}

func NewRelationalRepositories(dbPool *pgxpool.Pool) RelationalRepositories {
	return RelationalRepositories{
		CashClosureRepo:   newPgxCashClosureRepository(dbPool),
		TransactionRepo:   newPgxTransactionRepository(dbPool),
		PaymentMethodRepo: newPgxPaymentMethodRepository(dbPool),
	}
}
