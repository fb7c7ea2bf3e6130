package api

import (
	"net/http"

	"github.com/fatih/color"
	"github.com/gorilla/mux"
	"github.com/veerakarthick235/Eco-Champs/internal/handler"
	"github.com/veerakarthick235/Eco-Champs/internal/middleware"
	"github.com/veerakarthick235/Eco-Champs/internal/utils"
)

func SetupRouter() http.Handler {
	r := mux.NewRouter()

	authenticatedRoutes := r.PathPrefix("/").Subrouter()
	authenticatedRoutes.Use(middleware.AuthMiddleware)
	authenticatedRoutes.Use(middleware.LoggerMiddleware)

	teacherRoutes := r.PathPrefix("/").Subrouter()
	teacherRoutes.Use(middleware.AuthMiddleware)
	teacherRoutes.Use(middleware.RequireTeacher)
	teacherRoutes.Use(middleware.LoggerMiddleware)

	// Root - API documentation
	r.HandleFunc("/", handler.RootHandler).Methods(http.MethodGet)

	// Auth
	r.HandleFunc("/auth/register", handler.Register).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", handler.Login).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/auth/logout", handler.Logout).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/users/me", handler.GetCurrentUser).Methods(http.MethodGet)

	// Challenges
	authenticatedRoutes.HandleFunc("/challenges", handler.GetChallenges).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/challenges/{id}", handler.GetChallengeById).Methods(http.MethodGet)
	teacherRoutes.HandleFunc("/challenges", handler.CreateChallenge).Methods(http.MethodPost)

	// Submissions
	authenticatedRoutes.HandleFunc("/challenges/{id}/submissions", handler.SubmitProof).Methods(http.MethodPost)
	teacherRoutes.HandleFunc("/submissions/pending", handler.GetPendingSubmissions).Methods(http.MethodGet)
	teacherRoutes.HandleFunc("/submissions/{id}/approve", handler.ApproveSubmission).Methods(http.MethodPost)
	teacherRoutes.HandleFunc("/submissions/{id}/reject", handler.RejectSubmission).Methods(http.MethodPost)

	// Quiz
	authenticatedRoutes.HandleFunc("/quiz/generate", handler.GenerateQuiz).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/quiz/submit", handler.SubmitQuiz).Methods(http.MethodPost)

	// Leaderboard
	authenticatedRoutes.HandleFunc("/leaderboard", handler.GetLeaderboard).Methods(http.MethodGet)

	// Health check
	r.HandleFunc("/health", handler.HealthCheck).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.LogError("404 Not Found: %s %s", r.Method, r.URL.Path)
		color.Yellow("[404] %s %s (route non trouvée)", r.Method, r.URL.Path)
		http.Error(w, "Route not found", http.StatusNotFound)
	})

	return r
}
