package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/workexpress/wx_backend/internal/apperrors"
	"github.com/workexpress/wx_backend/internal/core/domain"
	portsrepo "github.com/workexpress/wx_backend/internal/core/ports/repositories"
	"github.com/workexpress/wx_backend/internal/models"
	"github.com/workexpress/wx_backend/internal/utils/mapping"
)

type PgxCashClosureRepository struct {
	BaseRepository
}

// newPgxCashClosureRepository creates a new repository for cash-period data.
func newPgxCashClosureRepository(pool *pgxpool.Pool) portsrepo.CashClosureRepositoryFacade {
	return &PgxCashClosureRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.CashClosureRepositoryFacade = (*PgxCashClosureRepository)(nil)

const cashClosureColumns = `cash_closure_id, status, created_at, closed_at, closed_by, total_amount, total_credit, total_debit`

func scanCashClosure(row pgx.Row) (models.CashClosure, error) {
	var m models.CashClosure
	err := row.Scan(
		&m.CashClosureID,
		&m.Status,
		&m.CreatedAt,
		&m.ClosedAt,
		&m.ClosedBy,
		&m.TotalAmount,
		&m.TotalCredit,
		&m.TotalDebit,
	)
	return m, err
}

// SaveCashClosure persists a new cash period. The partial unique index on
// status='open' turns a concurrent double-open into ErrDuplicate.
func (r *PgxCashClosureRepository) SaveCashClosure(ctx context.Context, closure domain.CashClosure) error {
	m := mapping.ToModelCashClosure(closure)

	query := `
		INSERT INTO cash_closures (cash_closure_id, status, created_at, closed_at, closed_by, total_amount, total_credit, total_debit)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`

	_, err := r.Pool.Exec(ctx, query,
		m.CashClosureID,
		m.Status,
		m.CreatedAt,
		m.ClosedAt,
		m.ClosedBy,
		m.TotalAmount,
		m.TotalCredit,
		m.TotalDebit,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("cash closure already open: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save cash closure %s: %w", m.CashClosureID, err)
	}
	return nil
}

// UpdateCashClosure seals a cash period with its final totals.
func (r *PgxCashClosureRepository) UpdateCashClosure(ctx context.Context, closure domain.CashClosure) error {
	m := mapping.ToModelCashClosure(closure)

	query := `
		UPDATE cash_closures
		SET status = $2, closed_at = $3, closed_by = $4, total_amount = $5, total_credit = $6, total_debit = $7
		WHERE cash_closure_id = $1;
	`

	tag, err := r.Pool.Exec(ctx, query,
		m.CashClosureID,
		m.Status,
		m.ClosedAt,
		m.ClosedBy,
		m.TotalAmount,
		m.TotalCredit,
		m.TotalDebit,
	)
	if err != nil {
		return fmt.Errorf("failed to update cash closure %s: %w", m.CashClosureID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindOpenCashClosure retrieves the single open cash period, if any.
func (r *PgxCashClosureRepository) FindOpenCashClosure(ctx context.Context) (*domain.CashClosure, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM cash_closures
		WHERE status = 'open';
	`, cashClosureColumns)

	m, err := scanCashClosure(r.Pool.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find open cash closure: %w", err)
	}

	closure := mapping.ToDomainCashClosure(m)
	return &closure, nil
}

// FindCashClosureByID retrieves a cash period by id.
func (r *PgxCashClosureRepository) FindCashClosureByID(ctx context.Context, cashClosureID string) (*domain.CashClosure, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM cash_closures
		WHERE cash_closure_id = $1;
	`, cashClosureColumns)

	m, err := scanCashClosure(r.Pool.QueryRow(ctx, query, cashClosureID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find cash closure %s: %w", cashClosureID, err)
	}

	closure := mapping.ToDomainCashClosure(m)
	return &closure, nil
}

// FindLatestCashClosure retrieves the most recently created cash period.
func (r *PgxCashClosureRepository) FindLatestCashClosure(ctx context.Context) (*domain.CashClosure, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM cash_closures
		ORDER BY created_at DESC
		LIMIT 1;
	`, cashClosureColumns)

	m, err := scanCashClosure(r.Pool.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find latest cash closure: %w", err)
	}

	closure := mapping.ToDomainCashClosure(m)
	return &closure, nil
}

// ListCashClosures retrieves a filtered page of cash periods plus the total
// count for the filter.
func (r *PgxCashClosureRepository) ListCashClosures(ctx context.Context, filter portsrepo.ListCashClosuresFilter) ([]domain.CashClosure, int64, error) {
	var conditions []string
	var args []interface{}

	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		conditions = append(conditions, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM cash_closures %s;`, where)
	var total int64
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count cash closures: %w", err)
	}

	args = append(args, filter.Limit)
	limitPos := len(args)
	args = append(args, filter.Offset)
	offsetPos := len(args)

	query := fmt.Sprintf(`
		SELECT %s
		FROM cash_closures
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d;
	`, cashClosureColumns, where, limitPos, offsetPos)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query cash closures: %w", err)
	}
	defer rows.Close()

	modelClosures, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.CashClosure, error) {
		return scanCashClosure(row)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan cash closures: %w", err)
	}

	return mapping.ToDomainCashClosureSlice(modelClosures), total, nil
}
