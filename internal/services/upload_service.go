package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// UploadService handles car image uploads to Cloudinary
type UploadService struct {
	cld *cloudinary.Cloudinary
}

// NewUploadService creates a new UploadService instance
func NewUploadService(cloudName, apiKey, apiSecret string) (*UploadService, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &UploadService{cld: cld}, nil
}

// UploadFile uploads a file to Cloudinary and returns its URL
func (s *UploadService) UploadFile(ctx context.Context, fileHeader *multipart.FileHeader) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	uploadResult, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:   "ecodrive-cars",
		PublicID: fmt.Sprintf("%s_%d", fileHeader.Filename, time.Now().UnixNano()),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to Cloudinary: %w", err)
	}

	return uploadResult.SecureURL, nil
}
