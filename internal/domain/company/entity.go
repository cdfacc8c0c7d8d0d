package company

import (
	"time"

	"github.com/shopspring/decimal"
)

// Company carries the payroll configuration the core consumes. The core
// reads overtime_multiplier and weekly_hours_threshold; it never mutates
// them.
type Company struct {
	ID                   string
	Name                 string
	Email                string
	Timezone             string
	OvertimeMultiplier   decimal.Decimal
	WeeklyHoursThreshold decimal.Decimal
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
