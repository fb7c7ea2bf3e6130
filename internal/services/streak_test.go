package services

import (
	"testing"
	"time"
)

func TestNextStreak(t *testing.T) {
	now := time.Date(2025, time.March, 10, 14, 30, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	threeDaysAgo := now.AddDate(0, 0, -3)

	tests := []struct {
		name         string
		lastLogin    *time.Time
		current      int
		wantStreak   int
		wantShouldUp bool
	}{
		{"first ever login", nil, 0, 1, true},
		{"consecutive day extends", &yesterday, 4, 5, true},
		{"gap of three days resets", &threeDaysAgo, 9, 1, true},
		{"same day is idempotent", &now, 4, 4, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, shouldUpdate := NextStreak(tt.lastLogin, tt.current, now)
			if got != tt.wantStreak || shouldUpdate != tt.wantShouldUp {
				t.Errorf("NextStreak(%v, %d) = (%d, %v), want (%d, %v)",
					tt.lastLogin, tt.current, got, shouldUpdate, tt.wantStreak, tt.wantShouldUp)
			}
		})
	}
}

func TestNextStreakDateOnlyComparison(t *testing.T) {
	// Login à 23h59 hier puis 00h01 aujourd'hui : c'est bien un jour
	// consécutif même si moins de 24h se sont écoulées
	lateLastNight := time.Date(2025, time.March, 9, 23, 59, 0, 0, time.UTC)
	earlyToday := time.Date(2025, time.March, 10, 0, 1, 0, 0, time.UTC)

	got, shouldUpdate := NextStreak(&lateLastNight, 2, earlyToday)
	if got != 3 || !shouldUpdate {
		t.Errorf("NextStreak across midnight = (%d, %v), want (3, true)", got, shouldUpdate)
	}
}

func TestNextStreakSameDayDifferentHours(t *testing.T) {
	morning := time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2025, time.March, 10, 22, 0, 0, 0, time.UTC)

	got, shouldUpdate := NextStreak(&morning, 7, evening)
	if got != 7 || shouldUpdate {
		t.Errorf("second login same day = (%d, %v), want (7, false)", got, shouldUpdate)
	}
}
