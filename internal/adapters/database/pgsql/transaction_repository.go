package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/currconv/currency_conversion_app/internal/apperrors"
	"github.com/currconv/currency_conversion_app/internal/core/ports"
	"github.com/currconv/currency_conversion_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxTransactionRepository implements ports.TransactionRepository using pgxpool.
type PgxTransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new repository for transaction rows.
func NewTransactionRepository(pool *pgxpool.Pool) *PgxTransactionRepository {
	return &PgxTransactionRepository{pool: pool}
}

// SaveTransaction inserts a finalized transaction. Rows are insert-only;
// there is no update path for monetary fields.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn models.Transaction) error {
	query := `
		INSERT INTO transactions (transaction_id, customer_id, input_amount, input_currency, output_amount, output_currency, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.pool.Exec(ctx, query,
		txn.TransactionID,
		txn.CustomerID,
		txn.InputAmount,
		txn.InputCurrency,
		txn.OutputAmount,
		txn.OutputCurrency,
		txn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save transaction %s: %w", txn.TransactionID, err)
	}
	return nil
}

// ListTransactionsByCustomer retrieves a customer's transactions, newest first.
func (r *PgxTransactionRepository) ListTransactionsByCustomer(ctx context.Context, customerID string) ([]models.Transaction, error) {
	query := `
		SELECT transaction_id, customer_id, input_amount, input_currency, output_amount, output_currency, created_at
		FROM transactions
		WHERE customer_id = $1
		ORDER BY created_at DESC;
	`
	rows, err := r.pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for customer %s: %w", customerID, err)
	}
	defer rows.Close()

	var txns []models.Transaction
	for rows.Next() {
		var txn models.Transaction
		if err := rows.Scan(
			&txn.TransactionID,
			&txn.CustomerID,
			&txn.InputAmount,
			&txn.InputCurrency,
			&txn.OutputAmount,
			&txn.OutputCurrency,
			&txn.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading transaction rows: %w", err)
	}
	return txns, nil
}

// FindTransactionByID retrieves a single transaction by its identifier.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*models.Transaction, error) {
	query := `
		SELECT transaction_id, customer_id, input_amount, input_currency, output_amount, output_currency, created_at
		FROM transactions
		WHERE transaction_id = $1;
	`
	var txn models.Transaction
	err := r.pool.QueryRow(ctx, query, transactionID).Scan(
		&txn.TransactionID,
		&txn.CustomerID,
		&txn.InputAmount,
		&txn.InputCurrency,
		&txn.OutputAmount,
		&txn.OutputCurrency,
		&txn.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	return &txn, nil
}

var _ ports.TransactionRepository = (*PgxTransactionRepository)(nil)
