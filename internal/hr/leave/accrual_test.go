package leave

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthsBetween(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"same day", date(2024, 1, 15), date(2024, 1, 15), 0},
		{"day before rollover", date(2024, 1, 15), date(2024, 2, 14), 0},
		{"exact rollover day", date(2024, 1, 15), date(2024, 2, 15), 1},
		{"one year", date(2023, 1, 15), date(2024, 1, 15), 12},
		{"one year and partial month", date(2023, 1, 15), date(2024, 1, 20), 12},
		{"end before start", date(2024, 3, 1), date(2024, 1, 1), 0},
		{"hired on 31st rollover", date(2024, 1, 31), date(2024, 3, 30), 1},
		{"year boundary", date(2023, 11, 10), date(2024, 2, 10), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MonthsBetween(tt.start, tt.end)
			if got != tt.want {
				t.Errorf("MonthsBetween(%v, %v) = %d, want %d", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestMonthsBetween_Monotonic(t *testing.T) {
	start := date(2023, 1, 15)
	prev := 0
	for d := 0; d < 800; d++ {
		end := start.AddDate(0, 0, d)
		got := MonthsBetween(start, end)
		if got < prev {
			t.Fatalf("MonthsBetween decreased at %v: %d -> %d", end, prev, got)
		}
		prev = got
	}
}

func TestInclusiveDays(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"single day", date(2024, 3, 10), date(2024, 3, 10), 1},
		{"work week", date(2024, 3, 11), date(2024, 3, 15), 5},
		{"across month boundary", date(2024, 1, 30), date(2024, 2, 2), 4},
		{"end before start", date(2024, 3, 15), date(2024, 3, 10), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InclusiveDays(tt.start, tt.end)
			if got != tt.want {
				t.Errorf("InclusiveDays(%v, %v) = %d, want %d", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestAccruedDays(t *testing.T) {
	hired := date(2023, 1, 15)

	tests := []struct {
		name    string
		hiredAt *time.Time
		used    float64
		asOf    time.Time
		want    float64
	}{
		{"full year unused", &hired, 0, date(2024, 1, 20), 28.0},
		{"eleven months", &hired, 0, date(2024, 1, 14), 25.6},
		{"half year with usage", &hired, 5, date(2023, 7, 20), 9.0},
		{"usage exceeds accrual", &hired, 30, date(2024, 1, 20), 0},
		{"hired today", &hired, 0, date(2023, 1, 15), 0},
		{"no hire date", nil, 0, date(2024, 6, 1), 28.0},
		{"no hire date with usage", nil, 3, date(2024, 6, 1), 25.0},
		{"no hire date overspent", nil, 30, date(2024, 6, 1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AccruedDays(tt.hiredAt, tt.used, tt.asOf)
			if got != tt.want {
				t.Errorf("AccruedDays(%v, %v, %v) = %v, want %v", tt.hiredAt, tt.used, tt.asOf, got, tt.want)
			}
		})
	}
}

func TestAccruedDays_NeverNegative(t *testing.T) {
	hired := date(2024, 1, 1)
	for used := 0.0; used <= 60; used += 7.5 {
		got := AccruedDays(&hired, used, date(2024, 12, 31))
		if got < 0 {
			t.Errorf("AccruedDays with used=%v = %v, want >= 0", used, got)
		}
	}
}

func TestForecastBalance(t *testing.T) {
	tests := []struct {
		name string
		in   ForecastInput
		want float64
	}{
		{
			name: "accrues over three months",
			in: ForecastInput{
				Today:          date(2024, 1, 1),
				Target:         date(2024, 4, 1),
				CurrentBalance: 10,
			},
			want: 17.0,
		},
		{
			name: "approved leave subtracted",
			in: ForecastInput{
				Today:              date(2024, 1, 1),
				Target:             date(2024, 4, 1),
				CurrentBalance:     10,
				ApprovedFutureDays: 5,
			},
			want: 12.0,
		},
		{
			name: "planned days push balance negative",
			in: ForecastInput{
				Today:          date(2024, 6, 1),
				Target:         date(2024, 6, 15),
				CurrentBalance: 0,
				PlannedDays:    10,
			},
			want: -10.0,
		},
		{
			name: "target before today adds nothing",
			in: ForecastInput{
				Today:          date(2024, 6, 1),
				Target:         date(2024, 5, 1),
				CurrentBalance: 4.5,
			},
			want: 4.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ForecastBalance(tt.in)
			if got != tt.want {
				t.Errorf("ForecastBalance(%+v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
