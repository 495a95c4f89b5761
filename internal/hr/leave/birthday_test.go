package leave

import (
	"testing"
	"time"
)

func TestNextBirthday(t *testing.T) {
	tests := []struct {
		name      string
		birthDate time.Time
		today     time.Time
		want      time.Time
	}{
		{
			name:      "later this year",
			birthDate: date(1990, 6, 5),
			today:     date(2025, 3, 1),
			want:      date(2025, 6, 5),
		},
		{
			name:      "already passed this year",
			birthDate: date(1990, 6, 5),
			today:     date(2025, 7, 1),
			want:      date(2026, 6, 5),
		},
		{
			name:      "birthday is today",
			birthDate: date(1990, 6, 5),
			today:     date(2025, 6, 5),
			want:      date(2025, 6, 5),
		},
		{
			name:      "feb 29 in leap year",
			birthDate: date(2000, 2, 29),
			today:     date(2024, 1, 10),
			want:      date(2024, 2, 29),
		},
		{
			name:      "feb 29 in non-leap year",
			birthDate: date(2000, 2, 29),
			today:     date(2025, 1, 10),
			want:      date(2025, 2, 28),
		},
		{
			name:      "feb 29 passed in non-leap year",
			birthDate: date(2000, 2, 29),
			today:     date(2025, 3, 1),
			want:      date(2026, 2, 28),
		},
		{
			name:      "dec birthday in january",
			birthDate: date(1985, 12, 31),
			today:     date(2025, 1, 2),
			want:      date(2025, 12, 31),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextBirthday(tt.birthDate, tt.today)
			if !got.Equal(tt.want) {
				t.Errorf("NextBirthday(%v, %v) = %v, want %v", tt.birthDate, tt.today, got, tt.want)
			}
		})
	}
}

func TestIsLeapYear(t *testing.T) {
	tests := []struct {
		year int
		want bool
	}{
		{2024, true},
		{2025, false},
		{2000, true},
		{1900, false},
		{2100, false},
	}

	for _, tt := range tests {
		if got := isLeapYear(tt.year); got != tt.want {
			t.Errorf("isLeapYear(%d) = %v, want %v", tt.year, got, tt.want)
		}
	}
}
