package response

import "github.com/shopspring/decimal"

// Money renders amounts with two decimal places.
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
