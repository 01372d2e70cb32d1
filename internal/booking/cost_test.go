package booking

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateCost(t *testing.T) {
	rate := func(s string) *decimal.Decimal {
		d := decimal.RequireFromString(s)
		return &d
	}

	tests := []struct {
		name  string
		rate  *decimal.Decimal
		hours int
		want  string
	}{
		{name: "whole rate", rate: rate("50.00"), hours: 3, want: "150.00"},
		{name: "fractional rate", rate: rate("75.50"), hours: 2, want: "151.00"},
		{name: "rounds to cents", rate: rate("33.333"), hours: 3, want: "100.00"},
		{name: "single hour", rate: rate("120"), hours: 1, want: "120.00"},
		{name: "zero rate", rate: rate("0"), hours: 4, want: "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateCost(tt.rate, tt.hours)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestCalculateCostNilRate(t *testing.T) {
	assert.Nil(t, CalculateCost(nil, 3))
}
