package repository

import (
	"strings"

	"StockBoard/internal/domain/models"
)

// IsValidPeriod returns true if p is a supported statement period.
func IsValidPeriod(p models.Period) bool {
	switch p {
	case models.PeriodQuarterly, models.PeriodAnnual:
		return true
	default:
		return false
	}
}

// DefaultPeriod returns the default statement period.
func DefaultPeriod() models.Period { return models.PeriodQuarterly }

// NormalizePeriod converts a raw string to a valid period (or default).
func NormalizePeriod(s string) models.Period {
	p := models.Period(strings.ToLower(strings.TrimSpace(s)))
	if IsValidPeriod(p) {
		return p
	}
	return DefaultPeriod()
}
