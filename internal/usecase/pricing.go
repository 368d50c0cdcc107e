package usecase

import "fmt"

type PriceType string

const (
	PriceTypeHourly  PriceType = "hourly"
	PriceTypeDaily   PriceType = "daily"
	PriceTypeMonthly PriceType = "monthly"
)

const (
	// Tarif harian dihitung 8 jam nominal, bulanan 30 hari
	dailyNominalHours = 8
	monthlyDays       = 30
)

// CalculateTotalPrice menghitung total harga booking dari tarif per jam.
// Duration adalah jumlah unit utuh sesuai price type (jam/hari/bulan).
func CalculateTotalPrice(pricePerHour int, priceType PriceType, duration int) (int, error) {
	if duration < 1 {
		return 0, fmt.Errorf("invalid duration %d", duration)
	}

	switch priceType {
	case PriceTypeHourly:
		return pricePerHour * duration, nil
	case PriceTypeDaily:
		return pricePerHour * dailyNominalHours * duration, nil
	case PriceTypeMonthly:
		return pricePerHour * dailyNominalHours * monthlyDays * duration, nil
	default:
		return 0, fmt.Errorf("invalid price type %q", priceType)
	}
}
