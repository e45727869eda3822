package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/microloan_ledger/internal/apperrors"
	"github.com/SscSPs/microloan_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/microloan_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/microloan_ledger/internal/models"
	"github.com/SscSPs/microloan_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const walletTxnColumns = `transaction_id, wallet_id, direction, amount, description, loan_id, correlation_id, created_at, created_by`

type PgxWalletRepository struct {
	BaseRepository
}

func newPgxWalletRepository(pool *pgxpool.Pool) portsrepo.WalletRepositoryFacade {
	return &PgxWalletRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.WalletRepositoryFacade = (*PgxWalletRepository)(nil)

// GetOrCreateWallet lazily inserts the pooled wallet row.
func (r *PgxWalletRepository) GetOrCreateWallet(ctx context.Context) (*domain.Wallet, error) {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO wallets (wallet_id, balance, version, updated_at)
		VALUES ($1, 0, 0, $2)
		ON CONFLICT (wallet_id) DO NOTHING;`,
		domain.MainWalletID, time.Now().UTC(),
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to create wallet", err)
	}

	var m models.Wallet
	err = r.Pool.QueryRow(ctx,
		`SELECT wallet_id, balance, version, updated_at FROM wallets WHERE wallet_id = $1;`,
		domain.MainWalletID,
	).Scan(&m.WalletID, &m.Balance, &m.Version, &m.UpdatedAt)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to read wallet", err)
	}
	w := mapping.ToDomainWallet(m)
	return &w, nil
}

func (r *PgxWalletRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.WalletTransaction, error) {
	query := `SELECT ` + walletTxnColumns + ` FROM wallet_transactions WHERE transaction_id = $1;`
	m, err := scanWalletTxn(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: wallet transaction %s", apperrors.ErrNotFound, transactionID)
		}
		return nil, apperrors.NewAppError(500, "failed to find wallet transaction "+transactionID, err)
	}
	t := mapping.ToDomainWalletTransaction(m)
	return &t, nil
}

// ListTransactions pages newest first using (created_at, transaction_id) as the keyset.
func (r *PgxWalletRepository) ListTransactions(ctx context.Context, filter domain.WalletTransactionFilter) ([]domain.WalletTransaction, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + walletTxnColumns + ` FROM wallet_transactions WHERE wallet_id = $1`)
	args := []any{domain.MainWalletID}

	if filter.Direction != "" {
		args = append(args, string(filter.Direction))
		sb.WriteString(` AND direction = $` + strconv.Itoa(len(args)))
	}
	if c := filter.Before; c != nil {
		args = append(args, c.CreatedAt, c.TransactionID)
		sb.WriteString(fmt.Sprintf(` AND (created_at, transaction_id) < ($%d, $%d)`, len(args)-1, len(args)))
	}
	sb.WriteString(` ORDER BY created_at DESC, transaction_id DESC`)
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		sb.WriteString(` LIMIT $` + strconv.Itoa(len(args)))
	}

	rows, err := r.Pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query wallet transactions", err)
	}
	defer rows.Close()

	modelTxns, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.WalletTransaction, error) {
		return scanWalletTxn(row)
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan wallet transactions", err)
	}

	out := make([]domain.WalletTransaction, len(modelTxns))
	for i, m := range modelTxns {
		out[i] = mapping.ToDomainWalletTransaction(m)
	}
	return out, nil
}

func (r *PgxWalletRepository) AppendTransaction(ctx context.Context, expectedVersion int64, newBalance decimal.Decimal, txn domain.WalletTransaction) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		if err := r.bumpWallet(ctx, tx, expectedVersion, newBalance, txn.CreatedAt); err != nil {
			return err
		}

		m := mapping.ToModelWalletTransaction(txn)
		_, err := tx.Exec(ctx, `INSERT INTO wallet_transactions (`+walletTxnColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`,
			m.TransactionID, m.WalletID, m.Direction, m.Amount, m.Description, m.LoanID, m.CorrelationID, m.CreatedAt, m.CreatedBy,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to insert wallet transaction "+m.TransactionID, err)
		}
		return nil
	})
}

func (r *PgxWalletRepository) RemoveTransaction(ctx context.Context, expectedVersion int64, newBalance decimal.Decimal, transactionID string) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		if err := r.bumpWallet(ctx, tx, expectedVersion, newBalance, time.Now().UTC()); err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, `DELETE FROM wallet_transactions WHERE transaction_id = $1;`, transactionID)
		if err != nil {
			return apperrors.NewAppError(500, "failed to delete wallet transaction "+transactionID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: wallet transaction %s", apperrors.ErrNotFound, transactionID)
		}
		return nil
	})
}

// bumpWallet writes the new balance if the stored version still matches.
func (r *PgxWalletRepository) bumpWallet(ctx context.Context, tx pgx.Tx, expectedVersion int64, newBalance decimal.Decimal, at time.Time) error {
	tag, err := tx.Exec(ctx, `
		UPDATE wallets
		SET balance = $1, version = version + 1, updated_at = $2
		WHERE wallet_id = $3 AND version = $4;`,
		newBalance, at, domain.MainWalletID, expectedVersion,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update wallet balance", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: wallet version %d is stale", apperrors.ErrConflict, expectedVersion)
	}
	return nil
}

func scanWalletTxn(row pgx.Row) (models.WalletTransaction, error) {
	var m models.WalletTransaction
	err := row.Scan(&m.TransactionID, &m.WalletID, &m.Direction, &m.Amount, &m.Description, &m.LoanID, &m.CorrelationID, &m.CreatedAt, &m.CreatedBy)
	return m, err
}
