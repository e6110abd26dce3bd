package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/workexpress/wx_backend/internal/core/domain"
	portsrepo "github.com/workexpress/wx_backend/internal/core/ports/repositories"
	"github.com/workexpress/wx_backend/internal/models"
	"github.com/workexpress/wx_backend/internal/utils/mapping"
)

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new read-only repository for ledger
// rows.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionReader {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.TransactionReader = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, payment_method_id, amount, direction, cash_closure_id, created_at`

func scanTransaction(row pgx.CollectableRow) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.PaymentMethodID,
		&m.Amount,
		&m.Direction,
		&m.CashClosureID,
		&m.CreatedAt,
	)
	return m, err
}

// FindTransactionsByCashClosureID retrieves every transaction of a cash
// period, oldest first.
func (r *PgxTransactionRepository) FindTransactionsByCashClosureID(ctx context.Context, cashClosureID string) ([]domain.Transaction, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM transactions
		WHERE cash_closure_id = $1
		ORDER BY created_at ASC;
	`, transactionColumns)

	rows, err := r.Pool.Query(ctx, query, cashClosureID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for cash closure %s: %w", cashClosureID, err)
	}
	defer rows.Close()

	modelTxns, err := pgx.CollectRows(rows, scanTransaction)
	if err != nil {
		return nil, fmt.Errorf("failed to scan transactions: %w", err)
	}

	return mapping.ToDomainTransactionSlice(modelTxns), nil
}

// ListTransactionsByCashClosureID retrieves a page of a cash period's
// transactions plus the total row count.
func (r *PgxTransactionRepository) ListTransactionsByCashClosureID(ctx context.Context, cashClosureID string, limit int, offset int) ([]domain.Transaction, int64, error) {
	var total int64
	countQuery := `SELECT COUNT(*) FROM transactions WHERE cash_closure_id = $1;`
	if err := r.Pool.QueryRow(ctx, countQuery, cashClosureID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions for cash closure %s: %w", cashClosureID, err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM transactions
		WHERE cash_closure_id = $1
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3;
	`, transactionColumns)

	rows, err := r.Pool.Query(ctx, query, cashClosureID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query transactions for cash closure %s: %w", cashClosureID, err)
	}
	defer rows.Close()

	modelTxns, err := pgx.CollectRows(rows, scanTransaction)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan transactions: %w", err)
	}

	return mapping.ToDomainTransactionSlice(modelTxns), total, nil
}
