package leave

import "time"

// NextBirthday returns the first occurrence of the birth date's month and
// day on or after today. A February 29 birth date falls on February 28 in
// non-leap years.
func NextBirthday(birthDate, today time.Time) time.Time {
	today = truncateToDay(today)

	for year := today.Year(); ; year++ {
		day := birthDate.Day()
		if birthDate.Month() == time.February && day == 29 && !isLeapYear(year) {
			day = 28
		}

		candidate := time.Date(year, birthDate.Month(), day, 0, 0, 0, 0, today.Location())
		if !candidate.Before(today) {
			return candidate
		}
	}
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
