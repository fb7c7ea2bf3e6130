package services

// Seuils de badges, évalués indépendamment (pas de paliers exclusifs) :
// un badge est acquis dès que les points atteignent son seuil
var badgeThresholds = []struct {
	Name      string
	Threshold int
}{
	{"Eco-Initiate", 100},
	{"Green Guardian", 250},
	{"Planet Hero", 500},
}

// BadgesFor calcule l'ensemble des badges pour un total de points donné,
// dans l'ordre des seuils. C'est la seule source légitime du champ badges :
// toute mutation de points doit être suivie d'un écrasement complet du
// champ avec le résultat de cette fonction (jamais de merge, une baisse
// de points doit pouvoir retirer un badge).
func BadgesFor(points int) []string {
	badges := []string{}
	for _, b := range badgeThresholds {
		if points >= b.Threshold {
			badges = append(badges, b.Name)
		}
	}
	return badges
}
