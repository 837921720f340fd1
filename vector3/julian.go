package vector3

import "math"

// J2000 is the Julian Date of 2000-01-01 12:00 UTC.
const J2000 = 2451545.0

// DaysPerCentury is the number of days in a Julian century.
const DaysPerCentury = 36525.0

// CalendarDate is a proleptic-Gregorian UTC calendar date and time-of-day,
// to one-second resolution. Year follows astronomical numbering: 1 BC is
// Year 0, 2 BC is Year -1, and so on.
type CalendarDate struct {
	Year        int
	Month       int // 1-12
	Day         int
	Hour        int
	Minute      int
	Second      int
}

// JulianDate converts a proleptic-Gregorian UTC calendar date to a Julian
// Date, using the Fliegel & Van Flandern integer-day algorithm plus a day
// fraction. Defined for both BC (Year <= 0) and AD dates.
func JulianDate(d CalendarDate) float64 {
	y, m := d.Year, d.Month
	a := (14 - m) / 12
	y2 := y + 4800 - a
	m2 := m + 12*a - 3

	jdn := d.Day + (153*m2+2)/5 + 365*y2 + y2/4 - y2/100 + y2/400 - 32045

	dayFraction := (float64(d.Hour)-12)/24.0 + float64(d.Minute)/1440.0 + float64(d.Second)/86400.0
	return float64(jdn) + dayFraction
}

// CalendarFromJulianDate converts a Julian Date back to a proleptic-Gregorian
// UTC calendar date, rounding to the nearest second. It is the exact inverse
// of JulianDate to within one second for any round-trip.
func CalendarFromJulianDate(jd float64) CalendarDate {
	// Shift so that the integer part aligns on a day boundary at 00:00.
	shifted := jd + 0.5
	jdn := int64(math.Floor(shifted))
	dayFraction := shifted - float64(jdn)

	totalSeconds := int64(math.Round(dayFraction * 86400.0))
	if totalSeconds >= 86400 {
		totalSeconds -= 86400
		jdn++
	}

	a := jdn + 32044
	b := (4*a + 3) / 146097
	c := a - (146097*b)/4
	d2 := (4*c + 3) / 1461
	e := c - (1461*d2)/4
	m2 := (5*e + 2) / 153

	day := int(e - (153*m2+2)/5 + 1)
	month := int(m2 + 3 - 12*(m2/10))
	year := int(100*b + d2 - 4800 + m2/10)

	hour := int(totalSeconds / 3600)
	minute := int((totalSeconds % 3600) / 60)
	second := int(totalSeconds % 60)

	return CalendarDate{Year: year, Month: month, Day: day, Hour: hour, Minute: minute, Second: second}
}

// CenturiesSinceJ2000 returns the number of Julian centuries elapsed between
// J2000 and jd, i.e. T = (jd - 2451545.0) / 36525.
func CenturiesSinceJ2000(jd float64) float64 {
	return (jd - J2000) / DaysPerCentury
}
