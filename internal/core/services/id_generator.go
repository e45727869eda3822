package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/microloan_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/microloan_ledger/internal/core/ports/repositories"
)

// maxIDProbes is how many successive sequence numbers are tried when the
// count-derived identifier is already taken (for example after a deletion).
const maxIDProbes = 5

// FormatLoanID renders the customer identifier for the n-th account of a product.
func FormatLoanID(product domain.ProductVariant, n int) string {
	return fmt.Sprintf("%s-CUST-%06d", product.IDPrefix(), n)
}

// loanIDSequence yields candidate identifiers starting at count+1.
type loanIDSequence struct {
	product domain.ProductVariant
	next    int
	probes  int
}

func newLoanIDSequence(ctx context.Context, repo portsrepo.LoanReader, product domain.ProductVariant) (*loanIDSequence, error) {
	count, err := repo.CountLoansByProduct(ctx, product)
	if err != nil {
		return nil, err
	}
	return &loanIDSequence{product: product, next: count + 1}, nil
}

// Next returns the next candidate and false once the probe budget is spent.
func (s *loanIDSequence) Next() (string, bool) {
	if s.probes >= maxIDProbes {
		return "", false
	}
	id := FormatLoanID(s.product, s.next)
	s.next++
	s.probes++
	return id, true
}
