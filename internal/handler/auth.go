package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"
	"github.com/veerakarthick235/Eco-Champs/internal/database"
	"github.com/veerakarthick235/Eco-Champs/internal/logger"
	"github.com/veerakarthick235/Eco-Champs/internal/middleware"
	model "github.com/veerakarthick235/Eco-Champs/internal/models"
	"github.com/veerakarthick235/Eco-Champs/internal/scanner"
	"github.com/veerakarthick235/Eco-Champs/internal/services"
	"github.com/veerakarthick235/Eco-Champs/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
	School   string `json:"school"`
	City     string `json:"city"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register crée un compte étudiant ou enseignant.
// points=0, badges=∅, streak=0 à la création.
func Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.Username == "" || req.Name == "" || req.Password == "" || req.School == "" || req.City == "" {
		utils.EngineError(w, model.ErrValidation, "username, name, password, school and city are required")
		return
	}
	if req.Role != model.RoleStudent && req.Role != model.RoleTeacher {
		utils.EngineError(w, model.ErrValidation, "role must be student or teacher")
		return
	}

	ctx := context.Background()

	var exists bool
	err := database.DB.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`,
		req.Username,
	).Scan(&exists)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not check username", err)
		return
	}
	if exists {
		utils.ErrorSimple(w, http.StatusConflict, "username already exists")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not hash password", err)
		return
	}

	var user model.UserAccount
	err = database.DB.QueryRow(ctx,
		`INSERT INTO users(username, name, password_hash, role, school, city, points, badges, streak, last_login, created_at)
		 VALUES($1, $2, $3, $4, $5, $6, 0, $7, 0, NULL, NOW())
		 RETURNING id, username, name, role, school, city, points, streak, created_at`,
		req.Username, req.Name, string(hashed), req.Role, req.School, req.City, pq.Array([]string{}),
	).Scan(&user.ID, &user.Username, &user.Name, &user.Role, &user.School, &user.City,
		&user.Points, &user.Streak, &user.CreatedAt)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create user", err)
		return
	}
	user.Badges = []string{}

	logger.Success("New %s registered: %s (%s, %s)", user.Role, user.Username, user.School, user.City)
	utils.Success(w, user)
}

// Login vérifie les identifiants, met à jour le streak quotidien et
// ouvre une session
func Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ctx := context.Background()

	row := database.DB.QueryRow(ctx,
		`SELECT id, username, name, role, school, city, points, badges, streak, last_login, created_at
		 FROM users WHERE username = $1`,
		req.Username,
	)
	user, err := scanner.ScanUserAccount(row)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	var hashedPassword string
	if err := database.DB.QueryRow(ctx,
		`SELECT password_hash FROM users WHERE id = $1`,
		user.ID,
	).Scan(&hashedPassword); err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(req.Password)); err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	// Mise à jour du streak : seule la composante date compte, un
	// deuxième login le même jour ne change rien
	now := time.Now()
	if newStreak, shouldUpdate := services.NextStreak(user.LastLogin, user.Streak, now); shouldUpdate {
		_, err := database.DB.Exec(ctx,
			`UPDATE users SET streak = $1, last_login = $2 WHERE id = $3`,
			newStreak, now, user.ID,
		)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not update streak", err)
			return
		}
		user.Streak = newStreak
		user.LastLogin = &now
	}

	token, err := utils.CreateSession(ctx, user.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create session", err)
		return
	}

	utils.Success(w, map[string]interface{}{
		"user":   user,
		"token":  token,
		"streak": user.Streak,
	})
}

// Logout invalide la session courante
func Logout(w http.ResponseWriter, r *http.Request) {
	token, err := middleware.GetTokenFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "missing token")
		return
	}

	if err := utils.InvalidateSession(context.Background(), token); err != nil {
		utils.ErrorSimple(w, http.StatusNotFound, "session not found or already logged out")
		return
	}

	utils.Success(w, map[string]bool{"success": true})
}

// GetCurrentUser retourne le profil à jour de l'utilisateur connecté
// (points, badges et streak rechargés depuis la base)
func GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	sessionUser, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	row := database.DB.QueryRow(r.Context(),
		`SELECT id, username, name, role, school, city, points, badges, streak, last_login, created_at
		 FROM users WHERE id = $1`,
		sessionUser.ID,
	)
	user, err := scanner.ScanUserAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.ErrorSimple(w, http.StatusNotFound, "user not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "could not load user", err)
		return
	}

	utils.Success(w, user)
}
