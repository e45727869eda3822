package mapping

import (
	"github.com/SscSPs/microloan_ledger/internal/core/domain"
	"github.com/SscSPs/microloan_ledger/internal/models"
)

// ToModelLoan converts a domain LoanAccount to a model Loan (schedule excluded)
func ToModelLoan(d domain.LoanAccount) models.Loan {
	return models.Loan{
		LoanID:            d.LoanID,
		Product:           string(d.Parameters.Product),
		Name:              d.Borrower.Name,
		FatherName:        d.Borrower.FatherName,
		Phone:             d.Borrower.Phone,
		Address:           d.Borrower.Address,
		NationalID:        nullableString(d.Borrower.NationalID),
		EmploymentType:    string(d.Borrower.EmploymentType),
		MonthlyIncome:     d.Borrower.MonthlyIncome,
		GuarantorName:     d.Borrower.GuarantorName,
		GuarantorPhone:    d.Borrower.GuarantorPhone,
		GuarantorAddress:  d.Borrower.GuarantorAddress,
		LoanPurpose:       d.Borrower.LoanPurpose,
		Principal:         d.Parameters.Principal,
		AnnualRate:        d.Parameters.AnnualRate,
		Tenure:            d.Parameters.Tenure,
		PaymentInterval:   string(d.Parameters.Interval),
		InstallmentAmount: d.InstallmentAmount,
		TotalInterest:     d.TotalInterest,
		TotalPayable:      d.TotalPayable,
		TotalPaid:         d.TotalPaid,
		RemainingAmount:   d.RemainingAmount,
		Status:            string(d.Status),
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

// ToDomainLoan converts a model Loan and its schedule rows to a domain LoanAccount
func ToDomainLoan(m models.Loan, entries []models.ScheduleEntry) domain.LoanAccount {
	loan := domain.LoanAccount{
		LoanID: m.LoanID,
		Borrower: domain.Borrower{
			Name:             m.Name,
			FatherName:       m.FatherName,
			Phone:            m.Phone,
			Address:          m.Address,
			NationalID:       stringValue(m.NationalID),
			EmploymentType:   domain.EmploymentType(m.EmploymentType),
			MonthlyIncome:    m.MonthlyIncome,
			GuarantorName:    m.GuarantorName,
			GuarantorPhone:   m.GuarantorPhone,
			GuarantorAddress: m.GuarantorAddress,
			LoanPurpose:      m.LoanPurpose,
		},
		Parameters: domain.LoanParameters{
			Product:           domain.ProductVariant(m.Product),
			Principal:         m.Principal,
			AnnualRate:        m.AnnualRate,
			Tenure:            m.Tenure,
			Interval:          domain.PaymentInterval(m.PaymentInterval),
			InstallmentAmount: m.InstallmentAmount,
		},
		InstallmentAmount: m.InstallmentAmount,
		TotalInterest:     m.TotalInterest,
		TotalPayable:      m.TotalPayable,
		TotalPaid:         m.TotalPaid,
		RemainingAmount:   m.RemainingAmount,
		Status:            domain.LoanStatus(m.Status),
		Schedule:          make([]domain.ScheduleEntry, len(entries)),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
	for i, e := range entries {
		loan.Schedule[i] = ToDomainScheduleEntry(e)
	}
	return loan
}

// ToModelScheduleEntries converts a loan's schedule to rows
func ToModelScheduleEntries(d domain.LoanAccount) []models.ScheduleEntry {
	ms := make([]models.ScheduleEntry, len(d.Schedule))
	for i, e := range d.Schedule {
		ms[i] = models.ScheduleEntry{
			LoanID:          d.LoanID,
			EntryIndex:      e.Index,
			DueDate:         e.DueDate,
			Amount:          e.Amount,
			Principal:       e.Principal,
			Interest:        e.Interest,
			Status:          string(e.Status),
			PaidDate:        e.PaidDate,
			OverdueInterest: e.OverdueInterest,
		}
	}
	return ms
}

// ToDomainScheduleEntry converts a schedule row
func ToDomainScheduleEntry(m models.ScheduleEntry) domain.ScheduleEntry {
	return domain.ScheduleEntry{
		Index:           m.EntryIndex,
		DueDate:         m.DueDate,
		Amount:          m.Amount,
		Principal:       m.Principal,
		Interest:        m.Interest,
		Status:          domain.EntryStatus(m.Status),
		PaidDate:        m.PaidDate,
		OverdueInterest: m.OverdueInterest,
	}
}

// ToModelPayment converts a payment record
func ToModelPayment(d domain.PaymentRecord) models.Payment {
	indices := make([]int32, len(d.EntryIndices))
	for i, idx := range d.EntryIndices {
		indices[i] = int32(idx)
	}
	return models.Payment{
		PaymentID:         d.PaymentID,
		LoanID:            d.LoanID,
		Mode:              string(d.Mode),
		EntryIndices:      indices,
		Amount:            d.Amount,
		CountedTowardPaid: d.CountedTowardPaid,
		InterestCollected: d.InterestCollected,
		OverdueInterest:   d.OverdueInterest,
		CorrelationID:     d.CorrelationID,
		CreatedAt:         d.CreatedAt,
		CreatedBy:         d.CreatedBy,
	}
}

// ToDomainPayment converts a payment row
func ToDomainPayment(m models.Payment) domain.PaymentRecord {
	indices := make([]int, len(m.EntryIndices))
	for i, idx := range m.EntryIndices {
		indices[i] = int(idx)
	}
	return domain.PaymentRecord{
		PaymentID:         m.PaymentID,
		LoanID:            m.LoanID,
		Mode:              domain.PaymentMode(m.Mode),
		EntryIndices:      indices,
		Amount:            m.Amount,
		CountedTowardPaid: m.CountedTowardPaid,
		InterestCollected: m.InterestCollected,
		OverdueInterest:   m.OverdueInterest,
		CorrelationID:     m.CorrelationID,
		CreatedAt:         m.CreatedAt,
		CreatedBy:         m.CreatedBy,
	}
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
