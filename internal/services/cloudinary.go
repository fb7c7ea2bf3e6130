package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/veerakarthick235/Eco-Champs/internal/config"
)

// CloudinaryService handles all Cloudinary operations
type CloudinaryService struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryService creates a new Cloudinary service instance
func NewCloudinaryService(cfg *config.Config) (*CloudinaryService, error) {
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		return nil, fmt.Errorf("cloudinary configuration is missing")
	}

	cld, err := cloudinary.NewFromParams(
		cfg.CloudinaryCloudName,
		cfg.CloudinaryAPIKey,
		cfg.CloudinaryAPISecret,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	return &CloudinaryService{
		cld: cld,
	}, nil
}

// UploadProofImage uploads a challenge proof photo to Cloudinary and
// returns the secure URL stored on the submission
func (s *CloudinaryService) UploadProofImage(ctx context.Context, file multipart.File, userID, challengeID string) (string, error) {
	// Public ID : un proof par (user, challenge), re-soumission écrase
	publicID := fmt.Sprintf("proofs/%s_%s", userID, challengeID)
	overwrite := true

	uploadResult, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:       publicID,
		Folder:         "ecochamps/proofs",
		Overwrite:      &overwrite,
		ResourceType:   "image",
		Format:         "jpg",
		Transformation: "c_limit,h_1080,w_1080", // Limiter la taille des photos de preuve
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload proof image: %w", err)
	}

	return uploadResult.SecureURL, nil
}
