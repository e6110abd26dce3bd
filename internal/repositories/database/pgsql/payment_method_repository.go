package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/workexpress/wx_backend/internal/core/domain"
	portsrepo "github.com/workexpress/wx_backend/internal/core/ports/repositories"
	"github.com/workexpress/wx_backend/internal/models"
	"github.com/workexpress/wx_backend/internal/utils/mapping"
)

type PgxPaymentMethodRepository struct {
	BaseRepository
}

// newPgxPaymentMethodRepository creates a new repository for payment-method
// reference data.
func newPgxPaymentMethodRepository(pool *pgxpool.Pool) portsrepo.PaymentMethodReader {
	return &PgxPaymentMethodRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.PaymentMethodReader = (*PgxPaymentMethodRepository)(nil)

// FindPaymentMethodsByIDs retrieves payment methods keyed by id. Unknown ids
// are simply absent from the result map.
func (r *PgxPaymentMethodRepository) FindPaymentMethodsByIDs(ctx context.Context, paymentMethodIDs []string) (map[string]domain.PaymentMethod, error) {
	out := make(map[string]domain.PaymentMethod, len(paymentMethodIDs))
	if len(paymentMethodIDs) == 0 {
		return out, nil
	}

	query := `
		SELECT payment_method_id, name
		FROM payment_methods
		WHERE payment_method_id = ANY($1);
	`

	rows, err := r.Pool.Query(ctx, query, paymentMethodIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query payment methods: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.PaymentMethod
		if err := rows.Scan(&m.PaymentMethodID, &m.Name); err != nil {
			return nil, fmt.Errorf("failed to scan payment method: %w", err)
		}
		out[m.PaymentMethodID] = mapping.ToDomainPaymentMethod(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read payment methods: %w", err)
	}

	return out, nil
}
