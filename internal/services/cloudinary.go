package services

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/yasyhadav121/codecrack/internal/config"
)

// Cloudinary signed direct upload. The server never handles video bytes: it
// issues a signature bundle, the browser uploads straight to Cloudinary,
// and the resulting metadata comes back through the save endpoint.

type UploadSignature struct {
	Signature string `json:"signature"`
	Timestamp int64  `json:"timestamp"`
	PublicID  string `json:"public_id"`
	APIKey    string `json:"api_key"`
	CloudName string `json:"cloud_name"`
	UploadURL string `json:"upload_url"`
}

// signUploadParams produces the Cloudinary API signature: SHA-1 of the
// alphabetically ordered param string with the API secret appended.
func signUploadParams(publicID string, timestamp int64) string {
	toSign := fmt.Sprintf("public_id=%s&timestamp=%d%s",
		publicID, timestamp, config.AppConfig.CloudinaryAPISecret)
	sum := sha1.Sum([]byte(toSign))
	return hex.EncodeToString(sum[:])
}

// NewUploadSignature builds the signature bundle for one problem's
// editorial video upload.
func NewUploadSignature(problemID string) UploadSignature {
	cfg := config.AppConfig
	timestamp := time.Now().Unix()
	publicID := fmt.Sprintf("codecrack-solutions/%s_%d", problemID, timestamp)

	return UploadSignature{
		Signature: signUploadParams(publicID, timestamp),
		Timestamp: timestamp,
		PublicID:  publicID,
		APIKey:    cfg.CloudinaryAPIKey,
		CloudName: cfg.CloudinaryCloudName,
		UploadURL: fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/video/upload", cfg.CloudinaryCloudName),
	}
}

// ThumbnailURL derives a first-frame JPEG thumbnail from a video public id.
func ThumbnailURL(publicID string) string {
	return fmt.Sprintf("https://res.cloudinary.com/%s/video/upload/so_0/%s.jpg",
		config.AppConfig.CloudinaryCloudName, publicID)
}
