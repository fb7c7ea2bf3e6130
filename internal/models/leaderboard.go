package model

// LeaderboardEntry : somme des points de tous les utilisateurs
// partageant la même valeur de dimension (ville ou école)
type LeaderboardEntry struct {
	Name        string `json:"name"`
	TotalPoints int    `json:"totalPoints"`
}

type Leaderboard struct {
	Cities  []LeaderboardEntry `json:"cities"`
	Schools []LeaderboardEntry `json:"schools"`
}
