package services_test

import (
	"time"

	"github.com/SscSPs/microloan_ledger/internal/dto"
	"github.com/shopspring/decimal"
)

var t0 = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

const testUser = "user-1"

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func intPtr(i int) *int { return &i }

// validLoanRequest returns a complete creation payload for product.
func validLoanRequest(product, phone string) dto.CreateLoanRequest {
	return dto.CreateLoanRequest{
		Product:          product,
		Name:             "Asha Devi",
		FatherName:       "Ram Lal",
		Phone:            phone,
		Address:          "12 Market Road",
		EmploymentType:   "business",
		MonthlyIncome:    decPtr("25000"),
		GuarantorName:    "Mohan Lal",
		GuarantorPhone:   "9811111111",
		GuarantorAddress: "14 Market Road",
		LoanPurpose:      "Shop inventory",
	}
}

func variableLoanRequest(phone string) dto.CreateLoanRequest {
	req := validLoanRequest("VARIABLE", phone)
	req.Principal = decPtr("10000")
	req.AnnualRate = decPtr("12")
	req.Tenure = intPtr(12)
	return req
}
