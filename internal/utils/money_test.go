package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "934.00", FormatAmount(decimal.NewFromInt(934)))
	assert.Equal(t, "28.02", FormatAmount(decimal.RequireFromString("28.015")))
	assert.Equal(t, "0.00", FormatAmount(decimal.Zero))
}
