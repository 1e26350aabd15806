package service

import (
	"fmt"
	"time"
)

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
}

// formatAmount renders "€120.50" for known currencies, "120.50 KES" otherwise.
func formatAmount(amount float64, currency string) string {
	if sym, ok := currencySymbols[currency]; ok {
		return fmt.Sprintf("%s%.2f", sym, amount)
	}
	if currency == "" {
		return fmt.Sprintf("%.2f", amount)
	}
	return fmt.Sprintf("%.2f %s", amount, currency)
}

func formatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// formatDateRange renders "Mar 3 – Mar 6, 2026", spelling out both years when
// the stay crosses a year boundary.
func formatDateRange(checkIn, checkOut time.Time) string {
	if checkIn.Year() != checkOut.Year() {
		return fmt.Sprintf("%s – %s", formatDate(checkIn), formatDate(checkOut))
	}
	return fmt.Sprintf("%s – %s", checkIn.Format("Jan 2"), formatDate(checkOut))
}

func formatNights(n int) string {
	if n == 1 {
		return "1 night"
	}
	return fmt.Sprintf("%d nights", n)
}
