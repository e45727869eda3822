package pgsql

import (
	"context"

	"github.com/SscSPs/microloan_ledger/internal/apperrors"
	"github.com/SscSPs/microloan_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/microloan_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/microloan_ledger/internal/models"
	"github.com/SscSPs/microloan_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxIncomeRepository struct {
	BaseRepository
}

func newPgxIncomeRepository(pool *pgxpool.Pool) portsrepo.IncomeRepositoryFacade {
	return &PgxIncomeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.IncomeRepositoryFacade = (*PgxIncomeRepository)(nil)

func (r *PgxIncomeRepository) SaveIncome(ctx context.Context, record domain.ExtraIncomeRecord) error {
	m := mapping.ToModelExtraIncome(record)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO extra_income (income_id, amount, source, loan_id, description, correlation_id, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`,
		m.IncomeID, m.Amount, m.Source, m.LoanID, m.Description, m.CorrelationID, m.CreatedAt, m.CreatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert income record "+m.IncomeID, err)
	}
	return nil
}

func (r *PgxIncomeRepository) ListIncome(ctx context.Context, loanID string) ([]domain.ExtraIncomeRecord, error) {
	query := `
		SELECT income_id, amount, source, loan_id, description, correlation_id, created_at, created_by
		FROM extra_income
		WHERE ($1 = '' OR loan_id = $1)
		ORDER BY created_at DESC, income_id DESC;`
	rows, err := r.Pool.Query(ctx, query, loanID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query income records", err)
	}
	defer rows.Close()

	modelRecords, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ExtraIncome, error) {
		var m models.ExtraIncome
		err := row.Scan(&m.IncomeID, &m.Amount, &m.Source, &m.LoanID, &m.Description, &m.CorrelationID, &m.CreatedAt, &m.CreatedBy)
		return m, err
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan income records", err)
	}

	out := make([]domain.ExtraIncomeRecord, len(modelRecords))
	for i, m := range modelRecords {
		out[i] = mapping.ToDomainExtraIncome(m)
	}
	return out, nil
}
