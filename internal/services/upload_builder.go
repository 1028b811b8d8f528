package services

import (
	"github.com/whatbetter/whatapi/internal/models"
)

// UploadRequestBuilder defines the interface for turning an album into the upload form
type UploadRequestBuilder interface {
	// Build returns the form fields and files for req. It performs no I/O.
	Build(req models.UploadRequest) (*models.UploadPayload, error)
}
