package payroll

import "github.com/shopspring/decimal"

// PayBreakdown is the result of a pay computation. All figures are exact
// decimals; callers round for presentation only, never before storing.
type PayBreakdown struct {
	RegularPay  decimal.Decimal
	OvertimePay decimal.Decimal
	NetPay      decimal.Decimal
}

// Compute turns hours and a rate into pay amounts:
//
//	regularPay  = regularHours * hourlyRate
//	overtimePay = overtimeHours * (hourlyRate * overtimeMultiplier)
//	netPay      = regularPay + overtimePay + bonuses - deductions
func Compute(hourlyRate, regularHours, overtimeHours, bonuses, deductions, overtimeMultiplier decimal.Decimal) PayBreakdown {
	regularPay := regularHours.Mul(hourlyRate)
	overtimeRate := hourlyRate.Mul(overtimeMultiplier)
	overtimePay := overtimeHours.Mul(overtimeRate)
	netPay := regularPay.Add(overtimePay).Add(bonuses).Sub(deductions)

	return PayBreakdown{
		RegularPay:  regularPay,
		OvertimePay: overtimePay,
		NetPay:      netPay,
	}
}

// SplitHours divides a period total into regular and overtime hours
// against the company's weekly threshold. The threshold is applied as a
// flat figure over the whole period, not per calendar week.
func SplitHours(totalHours, weeklyHoursThreshold decimal.Decimal) (regularHours, overtimeHours decimal.Decimal) {
	regularHours = decimal.Min(totalHours, weeklyHoursThreshold)
	overtimeHours = decimal.Max(decimal.Zero, totalHours.Sub(weeklyHoursThreshold))
	return regularHours, overtimeHours
}
