package vector3

import (
	"math"
	"testing"
)

func TestJ2000Epoch(t *testing.T) {
	jd := JulianDate(CalendarDate{Year: 2000, Month: 1, Day: 1, Hour: 12})
	if math.Abs(jd-J2000) > 1e-9 {
		t.Errorf("JD(2000-01-01 12:00 UTC) = %v, want %v", jd, J2000)
	}
}

func TestJulianDateRoundTrip(t *testing.T) {
	tests := []CalendarDate{
		{Year: 2000, Month: 1, Day: 1, Hour: 12, Minute: 0, Second: 0},
		{Year: 1977, Month: 9, Day: 5, Hour: 12, Minute: 56, Second: 0},
		{Year: 1985, Month: 7, Day: 15, Hour: 0, Minute: 0, Second: 0},
		{Year: 1, Month: 1, Day: 1, Hour: 0, Minute: 0, Second: 0},
		{Year: -500, Month: 6, Day: 15, Hour: 18, Minute: 30, Second: 45},
		{Year: 2026, Month: 12, Day: 31, Hour: 23, Minute: 59, Second: 59},
	}
	for _, tt := range tests {
		jd := JulianDate(tt)
		got := CalendarFromJulianDate(jd)
		if got != tt {
			t.Errorf("round trip: in=%+v jd=%v out=%+v", tt, jd, got)
		}
	}
}

func TestCenturiesSinceJ2000(t *testing.T) {
	if got := CenturiesSinceJ2000(J2000); got != 0 {
		t.Errorf("centuries at J2000 = %v, want 0", got)
	}
	jd := J2000 + DaysPerCentury
	if got := CenturiesSinceJ2000(jd); math.Abs(got-1) > 1e-12 {
		t.Errorf("centuries = %v, want 1", got)
	}
}
