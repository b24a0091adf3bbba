package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TopProductsLimit is the number of best sellers included in a daily report.
const TopProductsLimit = 5

type DailyReport struct {
	Date        time.Time
	OrderCount  int64
	TotalAmount decimal.Decimal
	TopProducts []TopProduct
}

type TopProduct struct {
	ProductID int64
	Name      string
	Quantity  int64
	Total     decimal.Decimal
}

// DayWindow returns the half-open UTC window [start, end) covering the calendar day of date.
func DayWindow(date time.Time) (time.Time, time.Time) {
	y, m, d := date.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}
