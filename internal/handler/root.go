package handler

import (
	"net/http"

	"github.com/veerakarthick235/Eco-Champs/internal/database"
	"github.com/veerakarthick235/Eco-Champs/internal/utils"
)

// RootHandler affiche toutes les routes disponibles de l'API
func RootHandler(w http.ResponseWriter, r *http.Request) {
	routes := map[string]interface{}{
		"name":    "Eco-Champs API",
		"version": "1.0.0",
		"status":  "running",
		"routes": map[string]interface{}{
			"auth": []map[string]string{
				{"method": "POST", "path": "/auth/register", "description": "Inscription étudiant ou enseignant"},
				{"method": "POST", "path": "/auth/login", "description": "Connexion (met à jour le streak quotidien)"},
				{"method": "POST", "path": "/auth/logout", "description": "Déconnexion utilisateur"},
				{"method": "GET", "path": "/users/me", "description": "Profil de l'utilisateur connecté"},
			},
			"challenges": []map[string]string{
				{"method": "GET", "path": "/challenges", "description": "Tous les challenges avec le statut de soumission"},
				{"method": "GET", "path": "/challenges/{id}", "description": "Un challenge par ID"},
				{"method": "POST", "path": "/challenges", "description": "Créer un challenge (enseignants)"},
				{"method": "POST", "path": "/challenges/{id}/submissions", "description": "Soumettre une preuve photo"},
			},
			"submissions": []map[string]string{
				{"method": "GET", "path": "/submissions/pending", "description": "Soumissions en attente (enseignants)"},
				{"method": "POST", "path": "/submissions/{id}/approve", "description": "Approuver une soumission (enseignants)"},
				{"method": "POST", "path": "/submissions/{id}/reject", "description": "Rejeter une soumission (enseignants)"},
			},
			"quiz": []map[string]string{
				{"method": "POST", "path": "/quiz/generate", "description": "Générer un quiz sur un sujet environnemental"},
				{"method": "POST", "path": "/quiz/submit", "description": "Soumettre les réponses du quiz"},
			},
			"leaderboard": []map[string]string{
				{"method": "GET", "path": "/leaderboard", "description": "Top 10 des villes et des écoles"},
			},
			"health": []map[string]string{
				{"method": "GET", "path": "/health", "description": "Health check de l'API"},
			},
		},
		"documentation": map[string]string{
			"description": "API REST pour Eco-Champs - Plateforme de défis écologiques pour les écoles",
		},
	}

	utils.Success(w, routes)
}

// HealthCheck vérifie que l'API et la base répondent
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := database.DB.Ping(r.Context()); err != nil {
		utils.Error(w, http.StatusServiceUnavailable, "database unreachable", err)
		return
	}

	utils.Success(w, map[string]string{"status": "ok"})
}
