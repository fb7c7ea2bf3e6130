package model

import "errors"

// Erreurs du moteur de gamification, mappées vers des statuts HTTP par les handlers
var (
	// ErrNotFound : la soumission / le challenge / l'utilisateur référencé n'existe pas
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidState : transition tentée sur une soumission déjà approuvée ou rejetée
	ErrInvalidState = errors.New("invalid submission state")

	// ErrExternalService : le service de génération de quiz a échoué ou renvoyé des données inutilisables
	ErrExternalService = errors.New("external service unavailable")

	// ErrValidation : entrée malformée, rejetée avant toute mutation
	ErrValidation = errors.New("validation failed")
)
