package handler

import (
	"net/http"

	model "github.com/veerakarthick235/Eco-Champs/internal/models"
	"github.com/veerakarthick235/Eco-Champs/internal/services"
	"github.com/veerakarthick235/Eco-Champs/internal/utils"
)

// GetLeaderboard retourne le top 10 des villes et des écoles par points
// cumulés. Les deux classements sont calculés à la volée.
func GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cities, err := services.TopByDimension(ctx, "city", services.DefaultLeaderboardLimit)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not compute city leaderboard", err)
		return
	}

	schools, err := services.TopByDimension(ctx, "school", services.DefaultLeaderboardLimit)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not compute school leaderboard", err)
		return
	}

	utils.Success(w, model.Leaderboard{
		Cities:  cities,
		Schools: schools,
	})
}
