package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCompute(t *testing.T) {
	t.Run("regular and overtime pay", func(t *testing.T) {
		got := Compute(dec("12.50"), dec("35"), dec("5"), decimal.Zero, decimal.Zero, dec("1.5"))

		assert.True(t, dec("437.50").Equal(got.RegularPay), "regular pay = %s", got.RegularPay)
		assert.True(t, dec("93.75").Equal(got.OvertimePay), "overtime pay = %s", got.OvertimePay)
		assert.True(t, dec("531.25").Equal(got.NetPay), "net pay = %s", got.NetPay)
	})

	t.Run("bonuses and deductions", func(t *testing.T) {
		got := Compute(dec("12.50"), dec("35"), dec("5"), dec("20"), decimal.Zero, dec("1.5"))
		assert.True(t, dec("551.25").Equal(got.NetPay), "net pay = %s", got.NetPay)

		got = Compute(dec("12.50"), dec("35"), dec("5"), dec("20"), dec("51.25"), dec("1.5"))
		assert.True(t, dec("500").Equal(got.NetPay), "net pay = %s", got.NetPay)
	})

	t.Run("deductions can push net pay negative", func(t *testing.T) {
		got := Compute(dec("10"), dec("1"), decimal.Zero, decimal.Zero, dec("50"), dec("1.5"))
		assert.True(t, dec("-40").Equal(got.NetPay), "net pay = %s", got.NetPay)
	})

	t.Run("fractional hours stay exact", func(t *testing.T) {
		// 7.5h at 13.33 would drift under binary floats
		got := Compute(dec("13.33"), dec("7.5"), decimal.Zero, decimal.Zero, decimal.Zero, dec("1.5"))
		assert.True(t, dec("99.975").Equal(got.RegularPay), "regular pay = %s", got.RegularPay)
	})

	t.Run("zero hours", func(t *testing.T) {
		got := Compute(dec("12.50"), decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero, dec("1.5"))
		assert.True(t, got.NetPay.IsZero())
	})
}

func TestSplitHours(t *testing.T) {
	cases := []struct {
		name         string
		total        string
		threshold    string
		wantRegular  string
		wantOvertime string
	}{
		{"over threshold", "45", "40", "40", "5"},
		{"under threshold", "30", "40", "30", "0"},
		{"exactly threshold", "40", "40", "40", "0"},
		{"zero hours", "0", "40", "0", "0"},
		{"fractional split", "42.25", "40", "40", "2.25"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			regular, overtime := SplitHours(dec(c.total), dec(c.threshold))
			assert.True(t, dec(c.wantRegular).Equal(regular), "regular = %s", regular)
			assert.True(t, dec(c.wantOvertime).Equal(overtime), "overtime = %s", overtime)
		})
	}
}

func TestSplitThenComputeRoundTrip(t *testing.T) {
	// 45h at 12.50 with a 40h threshold and 1.5x multiplier
	regular, overtime := SplitHours(dec("45"), dec("40"))
	got := Compute(dec("12.50"), regular, overtime, decimal.Zero, decimal.Zero, dec("1.5"))

	assert.True(t, dec("500").Equal(got.RegularPay), "regular pay = %s", got.RegularPay)
	assert.True(t, dec("93.75").Equal(got.OvertimePay), "overtime pay = %s", got.OvertimePay)
	assert.True(t, dec("593.75").Equal(got.NetPay), "net pay = %s", got.NetPay)
}
