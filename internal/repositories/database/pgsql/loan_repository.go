package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/microloan_ledger/internal/apperrors"
	"github.com/SscSPs/microloan_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/microloan_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/microloan_ledger/internal/models"
	"github.com/SscSPs/microloan_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const loanColumns = `
	loan_id, product, name, father_name, phone, address, national_id, employment_type,
	monthly_income, guarantor_name, guarantor_phone, guarantor_address, loan_purpose,
	principal, annual_rate, tenure, payment_interval, installment_amount, total_interest,
	total_payable, total_paid, remaining_amount, status,
	created_at, created_by, last_updated_at, last_updated_by`

const entryColumns = `
	loan_id, entry_index, due_date, amount, principal, interest, status, paid_date, overdue_interest`

// constraintFields maps unique constraints to the field reported in a DuplicateError.
var constraintFields = map[string]string{
	"loans_pkey":                   "loan_id",
	"uq_loans_product_phone":       "phone",
	"uq_loans_product_national_id": "national_id",
}

type PgxLoanRepository struct {
	BaseRepository
}

func newPgxLoanRepository(pool *pgxpool.Pool) portsrepo.LoanRepositoryFacade {
	return &PgxLoanRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LoanRepositoryFacade = (*PgxLoanRepository)(nil)

// SaveLoan inserts the loan row and its schedule in one transaction.
func (r *PgxLoanRepository) SaveLoan(ctx context.Context, loan domain.LoanAccount) error {
	m := mapping.ToModelLoan(loan)

	return r.inTx(ctx, func(tx pgx.Tx) error {
		query := `INSERT INTO loans (` + loanColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
			        $18, $19, $20, $21, $22, $23, $24, $25, $26, $27);`
		_, err := tx.Exec(ctx, query,
			m.LoanID, m.Product, m.Name, m.FatherName, m.Phone, m.Address, m.NationalID, m.EmploymentType,
			m.MonthlyIncome, m.GuarantorName, m.GuarantorPhone, m.GuarantorAddress, m.LoanPurpose,
			m.Principal, m.AnnualRate, m.Tenure, m.PaymentInterval, m.InstallmentAmount, m.TotalInterest,
			m.TotalPayable, m.TotalPaid, m.RemainingAmount, m.Status,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
		if err != nil {
			return duplicateOr(err, loan, "failed to insert loan "+m.LoanID)
		}

		batch := &pgx.Batch{}
		entryQuery := `INSERT INTO schedule_entries (` + entryColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`
		for _, e := range mapping.ToModelScheduleEntries(loan) {
			batch.Queue(entryQuery,
				e.LoanID, e.EntryIndex, e.DueDate, e.Amount, e.Principal, e.Interest, e.Status, e.PaidDate, e.OverdueInterest,
			)
		}
		br := tx.SendBatch(ctx, batch)
		if err := br.Close(); err != nil {
			return apperrors.NewAppError(500, "failed to insert schedule for loan "+m.LoanID, err)
		}

		return nil
	})
}

func duplicateOr(err error, loan domain.LoanAccount, msg string) error {
	constraint, ok := uniqueViolation(err)
	if !ok {
		return apperrors.NewAppError(500, msg, err)
	}
	field := constraintFields[constraint]
	value := loan.LoanID
	switch field {
	case "phone":
		value = loan.Borrower.Phone
	case "national_id":
		value = loan.Borrower.NationalID
	case "":
		field = constraint
	}
	return &apperrors.DuplicateError{Field: field, Value: value}
}

// FindLoanByID retrieves a loan with its schedule ordered by index.
func (r *PgxLoanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.LoanAccount, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE loan_id = $1;`
	m, err := scanLoan(r.Pool.QueryRow(ctx, query, loanID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: loan %s", apperrors.ErrNotFound, loanID)
		}
		return nil, apperrors.NewAppError(500, "failed to find loan "+loanID, err)
	}

	entries, err := r.loadEntries(ctx, []string{loanID})
	if err != nil {
		return nil, err
	}
	loan := mapping.ToDomainLoan(m, entries[loanID])
	return &loan, nil
}

// ListLoans retrieves loans newest first, each with its schedule.
func (r *PgxLoanRepository) ListLoans(ctx context.Context, filter domain.LoanFilter) ([]domain.LoanAccount, error) {
	query := `SELECT ` + loanColumns + ` FROM loans
		WHERE ($1 = '' OR status = $1) AND ($2 = '' OR product = $2)
		ORDER BY created_at DESC, loan_id DESC;`
	rows, err := r.Pool.Query(ctx, query, string(filter.Status), string(filter.Product))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query loans", err)
	}
	defer rows.Close()

	modelLoans, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Loan, error) {
		return scanLoan(row)
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan loans", err)
	}
	if len(modelLoans) == 0 {
		return []domain.LoanAccount{}, nil
	}

	ids := make([]string, len(modelLoans))
	for i, m := range modelLoans {
		ids[i] = m.LoanID
	}
	entries, err := r.loadEntries(ctx, ids)
	if err != nil {
		return nil, err
	}

	loans := make([]domain.LoanAccount, len(modelLoans))
	for i, m := range modelLoans {
		loans[i] = mapping.ToDomainLoan(m, entries[m.LoanID])
	}
	return loans, nil
}

func (r *PgxLoanRepository) loadEntries(ctx context.Context, loanIDs []string) (map[string][]models.ScheduleEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM schedule_entries
		WHERE loan_id = ANY($1)
		ORDER BY loan_id, entry_index;`
	rows, err := r.Pool.Query(ctx, query, loanIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query schedule entries", err)
	}
	defer rows.Close()

	out := make(map[string][]models.ScheduleEntry, len(loanIDs))
	for rows.Next() {
		var e models.ScheduleEntry
		if err := rows.Scan(
			&e.LoanID, &e.EntryIndex, &e.DueDate, &e.Amount, &e.Principal, &e.Interest,
			&e.Status, &e.PaidDate, &e.OverdueInterest,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan schedule entry", err)
		}
		out[e.LoanID] = append(out[e.LoanID], e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate schedule entries", err)
	}
	return out, nil
}

func (r *PgxLoanRepository) CountLoansByProduct(ctx context.Context, product domain.ProductVariant) (int, error) {
	var n int
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM loans WHERE product = $1;`, string(product)).Scan(&n)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to count loans", err)
	}
	return n, nil
}

// UpdateLoanDetails overwrites the borrower columns only.
func (r *PgxLoanRepository) UpdateLoanDetails(ctx context.Context, loan domain.LoanAccount) error {
	m := mapping.ToModelLoan(loan)
	query := `
		UPDATE loans SET
			name = $2, father_name = $3, phone = $4, address = $5, national_id = $6,
			employment_type = $7, monthly_income = $8, guarantor_name = $9, guarantor_phone = $10,
			guarantor_address = $11, loan_purpose = $12, last_updated_at = $13, last_updated_by = $14
		WHERE loan_id = $1;`
	tag, err := r.Pool.Exec(ctx, query,
		m.LoanID, m.Name, m.FatherName, m.Phone, m.Address, m.NationalID,
		m.EmploymentType, m.MonthlyIncome, m.GuarantorName, m.GuarantorPhone,
		m.GuarantorAddress, m.LoanPurpose, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return duplicateOr(err, loan, "failed to update loan "+m.LoanID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: loan %s", apperrors.ErrNotFound, loan.LoanID)
	}
	return nil
}

// DeleteLoan removes the loan; schedule rows go with it via ON DELETE CASCADE.
func (r *PgxLoanRepository) DeleteLoan(ctx context.Context, loanID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM loans WHERE loan_id = $1;`, loanID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete loan "+loanID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: loan %s", apperrors.ErrNotFound, loanID)
	}
	return nil
}

// ApplyLoanPayment settles entries, updates totals and records the payment
// in one transaction. An entry that is no longer pending aborts everything.
func (r *PgxLoanRepository) ApplyLoanPayment(ctx context.Context, loan domain.LoanAccount, settled []int, payment domain.PaymentRecord) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		entryQuery := `
			UPDATE schedule_entries
			SET status = $3, paid_date = $4, overdue_interest = $5
			WHERE loan_id = $1 AND entry_index = $2 AND status = 'pending';`
		for _, idx := range settled {
			if idx < 0 || idx >= len(loan.Schedule) {
				return fmt.Errorf("%w: index %d", apperrors.ErrIndexOutOfRange, idx)
			}
			e := loan.Schedule[idx]
			batch.Queue(entryQuery, loan.LoanID, idx, string(e.Status), e.PaidDate, e.OverdueInterest)
		}
		br := tx.SendBatch(ctx, batch)
		for _, idx := range settled {
			tag, err := br.Exec()
			if err != nil {
				br.Close()
				return apperrors.NewAppError(500, "failed to settle schedule entry", err)
			}
			if tag.RowsAffected() == 0 {
				br.Close()
				return fmt.Errorf("%w: installment %d was paid concurrently", apperrors.ErrEntryAlreadySettled, idx+1)
			}
		}
		if err := br.Close(); err != nil {
			return apperrors.NewAppError(500, "failed to settle schedule entries", err)
		}

		m := mapping.ToModelLoan(loan)
		_, err := tx.Exec(ctx, `
			UPDATE loans
			SET total_paid = $2, remaining_amount = $3, status = $4, last_updated_at = $5, last_updated_by = $6
			WHERE loan_id = $1;`,
			m.LoanID, m.TotalPaid, m.RemainingAmount, m.Status, m.LastUpdatedAt, m.LastUpdatedBy,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to update loan totals "+m.LoanID, err)
		}

		p := mapping.ToModelPayment(payment)
		_, err = tx.Exec(ctx, `
			INSERT INTO payments (
				payment_id, loan_id, mode, entry_indices, amount, counted_toward_paid,
				interest_collected, overdue_interest, correlation_id, created_at, created_by
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`,
			p.PaymentID, p.LoanID, p.Mode, p.EntryIndices, p.Amount, p.CountedTowardPaid,
			p.InterestCollected, p.OverdueInterest, p.CorrelationID, p.CreatedAt, p.CreatedBy,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to insert payment "+p.PaymentID, err)
		}

		return nil
	})
}

func (r *PgxLoanRepository) ListPaymentsByLoan(ctx context.Context, loanID string) ([]domain.PaymentRecord, error) {
	query := `
		SELECT payment_id, loan_id, mode, entry_indices, amount, counted_toward_paid,
		       interest_collected, overdue_interest, correlation_id, created_at, created_by
		FROM payments
		WHERE loan_id = $1
		ORDER BY created_at, payment_id;`
	rows, err := r.Pool.Query(ctx, query, loanID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payments", err)
	}
	defer rows.Close()

	modelPayments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Payment, error) {
		var p models.Payment
		err := row.Scan(
			&p.PaymentID, &p.LoanID, &p.Mode, &p.EntryIndices, &p.Amount, &p.CountedTowardPaid,
			&p.InterestCollected, &p.OverdueInterest, &p.CorrelationID, &p.CreatedAt, &p.CreatedBy,
		)
		return p, err
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan payments", err)
	}

	out := make([]domain.PaymentRecord, len(modelPayments))
	for i, p := range modelPayments {
		out[i] = mapping.ToDomainPayment(p)
	}
	return out, nil
}

func scanLoan(row pgx.Row) (models.Loan, error) {
	var m models.Loan
	err := row.Scan(
		&m.LoanID, &m.Product, &m.Name, &m.FatherName, &m.Phone, &m.Address, &m.NationalID, &m.EmploymentType,
		&m.MonthlyIncome, &m.GuarantorName, &m.GuarantorPhone, &m.GuarantorAddress, &m.LoanPurpose,
		&m.Principal, &m.AnnualRate, &m.Tenure, &m.PaymentInterval, &m.InstallmentAmount, &m.TotalInterest,
		&m.TotalPayable, &m.TotalPaid, &m.RemainingAmount, &m.Status,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}
