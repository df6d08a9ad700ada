// Package finance rolls service records up into revenue, cost and profit
// figures for the dashboard.
package finance

import (
	"strings"
	"time"

	"instala_control/internal/domain/entities"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Summary is the financial picture of one month.
type Summary struct {
	Month           time.Month         `json:"month"`
	Year            int                `json:"year"`
	MonthlyServices []entities.Service `json:"monthly_services"`
	Revenue         decimal.Decimal    `json:"revenue"`
	ExpensesTotal   decimal.Decimal    `json:"expenses_total"`
	Profit          decimal.Decimal    `json:"profit"`
	Margin          decimal.Decimal    `json:"margin"`
}

// Totals is the same rollup without a month filter.
type Totals struct {
	Revenue       decimal.Decimal `json:"revenue"`
	ExpensesTotal decimal.Decimal `json:"expenses_total"`
	Profit        decimal.Decimal `json:"profit"`
	Margin        decimal.Decimal `json:"margin"`
	Count         int             `json:"count"`
}

// MonthPoint is one bar of the yearly chart.
type MonthPoint struct {
	Month   time.Month      `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
	Profit  decimal.Decimal `json:"profit"`
}

// ChartRow is one bar of the latest-services chart.
type ChartRow struct {
	Name    string          `json:"name"`
	Revenue decimal.Decimal `json:"revenue"`
	Cost    decimal.Decimal `json:"cost"`
}

// Margin returns profit/revenue as a percentage, or zero when there is no revenue.
func Margin(revenue, profit decimal.Decimal) decimal.Decimal {
	if !revenue.IsPositive() {
		return decimal.Zero
	}
	return profit.Div(revenue).Mul(hundred)
}

// Summarize keeps the services dated in month/year and totals them.
func Summarize(services []entities.Service, month time.Month, year int) Summary {
	s := Summary{
		Month:           month,
		Year:            year,
		MonthlyServices: make([]entities.Service, 0),
		Revenue:         decimal.Zero,
		ExpensesTotal:   decimal.Zero,
	}
	for _, svc := range services {
		d, ok := parseDate(svc.Date)
		if !ok || d.Year() != year || d.Month() != month {
			continue
		}
		s.MonthlyServices = append(s.MonthlyServices, svc)
		s.Revenue = s.Revenue.Add(svc.Price)
		s.ExpensesTotal = s.ExpensesTotal.Add(svc.Cost)
	}
	s.Profit = s.Revenue.Sub(s.ExpensesTotal)
	s.Margin = Margin(s.Revenue, s.Profit)
	return s
}

// Overall totals every service regardless of date.
func Overall(services []entities.Service) Totals {
	t := Totals{Revenue: decimal.Zero, ExpensesTotal: decimal.Zero}
	for _, svc := range services {
		t.Revenue = t.Revenue.Add(svc.Price)
		t.ExpensesTotal = t.ExpensesTotal.Add(svc.Cost)
		t.Count++
	}
	t.Profit = t.Revenue.Sub(t.ExpensesTotal)
	t.Margin = Margin(t.Revenue, t.Profit)
	return t
}

// YearSeries accumulates revenue and profit per month of year. The month
// filter of Summarize does not apply here.
func YearSeries(services []entities.Service, year int) [12]MonthPoint {
	var series [12]MonthPoint
	for i := range series {
		series[i] = MonthPoint{Month: time.Month(i + 1), Revenue: decimal.Zero, Profit: decimal.Zero}
	}
	for _, svc := range services {
		d, ok := parseDate(svc.Date)
		if !ok || d.Year() != year {
			continue
		}
		p := &series[d.Month()-1]
		p.Revenue = p.Revenue.Add(svc.Price)
		p.Profit = p.Profit.Add(svc.Price.Sub(svc.Cost))
	}
	return series
}

// Latest builds chart rows for the first n services, labelled with the
// client's first name. Callers pass services already sorted newest first.
func Latest(services []entities.Service, n int) []ChartRow {
	if n < 0 {
		n = 0
	}
	if n > len(services) {
		n = len(services)
	}
	rows := make([]ChartRow, 0, n)
	for _, svc := range services[:n] {
		name := svc.Client
		if fields := strings.Fields(svc.Client); len(fields) > 0 {
			name = fields[0]
		}
		rows = append(rows, ChartRow{Name: name, Revenue: svc.Price, Cost: svc.Cost})
	}
	return rows
}

func parseDate(s string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
