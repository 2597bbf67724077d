package booking

import (
	"math"
	"time"
)

// DateLayout is the wire format for stay dates.
const DateLayout = "2006-01-02"

// Nights returns the number of whole days between check-in and check-out.
// Callers guarantee checkOut > checkIn, so the result is at least 1.
func Nights(checkIn, checkOut time.Time) int {
	return int(checkOut.Sub(checkIn).Hours() / 24)
}

// ComputeTotal prices a stay: price per night times nights, rounded to cents.
func ComputeTotal(pricePerNight float64, nights int) float64 {
	total := pricePerNight * float64(nights)
	return math.Round(total*100) / 100
}

// NormalizeDate truncates a timestamp to its UTC calendar day.
func NormalizeDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
