package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}

// SettlementEpsilon is the largest remaining balance still treated as fully repaid.
var SettlementEpsilon = decimal.NewFromFloat(0.01)

// MoneyPlaces is the number of decimal places money amounts are stored with.
const MoneyPlaces int32 = 2
