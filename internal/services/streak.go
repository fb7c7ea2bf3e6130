package services

import (
	"time"
)

// NextStreak calcule le streak de connexion quotidienne après un login.
// Seule la composante date (UTC) participe aux comparaisons :
//   - dernier login hier        -> streak + 1
//   - premier login ou trou ≥2j -> reset à 1
//   - déjà connecté aujourd'hui -> pas de mise à jour (shouldUpdate=false)
//
// Quand shouldUpdate est vrai, l'appelant persiste le nouveau streak et
// last_login = maintenant.
func NextStreak(lastLogin *time.Time, current int, now time.Time) (int, bool) {
	today := truncateToDay(now)

	if lastLogin != nil {
		last := truncateToDay(*lastLogin)
		if !last.Before(today) {
			// Plusieurs logins le même jour : idempotent
			return current, false
		}
		if last.Equal(today.AddDate(0, 0, -1)) {
			return current + 1, true
		}
	}

	return 1, true
}

func truncateToDay(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
