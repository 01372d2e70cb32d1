package booking

import "github.com/shopspring/decimal"

// CalculateCost derives the total session price from the professional's
// hourly rate. A nil rate means the professional has not published one; the
// booking is then persisted unpriced and settled out of band.
func CalculateCost(hourlyRate *decimal.Decimal, durationHours int) *decimal.Decimal {
	if hourlyRate == nil {
		return nil
	}
	total := hourlyRate.Mul(decimal.NewFromInt(int64(durationHours))).Round(2)
	return &total
}
