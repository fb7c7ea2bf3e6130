package scanner

import (
	"database/sql"

	model "github.com/veerakarthick235/Eco-Champs/internal/models"
	"github.com/veerakarthick235/Eco-Champs/internal/utils"
)

// ScanUserAccount scanne une ligne SQL vers un UserAccount
// Colonnes attendues : id, username, name, role, school, city, points,
// badges, streak, last_login, created_at
func ScanUserAccount(scanner interface {
	Scan(dest ...interface{}) error
}) (*model.UserAccount, error) {
	var u model.UserAccount
	var lastLogin sql.NullTime

	err := scanner.Scan(
		&u.ID, &u.Username, &u.Name, &u.Role, &u.School, &u.City,
		&u.Points, &u.Badges, &u.Streak, &lastLogin, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	u.LastLogin = utils.NullTimeToPointer(lastLogin)
	if u.Badges == nil {
		u.Badges = []string{}
	}

	return &u, nil
}

// ScanChallenge scanne une ligne SQL vers un Challenge
// Colonnes attendues : id, title, description, points, created_by, created_at
func ScanChallenge(scanner interface {
	Scan(dest ...interface{}) error
}) (*model.Challenge, error) {
	var c model.Challenge

	err := scanner.Scan(
		&c.ID, &c.Title, &c.Description, &c.Points, &c.CreatedBy, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

// ScanSubmission scanne une ligne SQL vers une Submission
// Colonnes attendues : id, user_id, challenge_id, image_url, status,
// submitted_at, reviewed_at, reviewed_by
func ScanSubmission(scanner interface {
	Scan(dest ...interface{}) error
}) (*model.Submission, error) {
	var s model.Submission
	var reviewedAt sql.NullTime
	var reviewedBy sql.NullString

	err := scanner.Scan(
		&s.ID, &s.UserID, &s.ChallengeID, &s.ImageURL, &s.Status,
		&s.SubmittedAt, &reviewedAt, &reviewedBy,
	)
	if err != nil {
		return nil, err
	}

	s.ReviewedAt = utils.NullTimeToPointer(reviewedAt)
	s.ReviewedBy = utils.NullStringToPointer(reviewedBy)

	return &s, nil
}

// ScanPendingSubmission scanne une soumission jointe aux infos
// utilisateur et challenge (tableau de validation enseignant)
func ScanPendingSubmission(scanner interface {
	Scan(dest ...interface{}) error
}) (*model.PendingSubmission, error) {
	var p model.PendingSubmission
	var reviewedAt sql.NullTime
	var reviewedBy sql.NullString

	err := scanner.Scan(
		&p.ID, &p.UserID, &p.ChallengeID, &p.ImageURL, &p.Status,
		&p.SubmittedAt, &reviewedAt, &reviewedBy,
		&p.UserName, &p.UserSchool, &p.ChallengeTitle, &p.ChallengePoints,
	)
	if err != nil {
		return nil, err
	}

	p.ReviewedAt = utils.NullTimeToPointer(reviewedAt)
	p.ReviewedBy = utils.NullStringToPointer(reviewedBy)

	return &p, nil
}
