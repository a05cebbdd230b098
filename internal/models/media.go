package models

import (
	"io"
	"time"
)

type MediaType string

const (
	MediaLogo       MediaType = "logo"
	MediaSfeerbeeld MediaType = "sfeerbeeld"
)

func (t MediaType) Valid() bool {
	return t == MediaLogo || t == MediaSfeerbeeld
}

type MediaAsset struct {
	ID         string    `json:"id"`
	EmployerID string    `json:"employer_id"`
	Type       MediaType `json:"type"`
	URL        string    `json:"url"`
	PublicID   string    `json:"public_id"`
	Bytes      int64     `json:"bytes"`
	Format     string    `json:"format"`
	AltText    string    `json:"alt_text,omitempty"`
	IsDeleted  bool      `json:"is_deleted"`
	CreatedAt  time.Time `json:"created_at"`
}

// UploadResult is what object storage reports back for a stored file.
type UploadResult struct {
	SecureURL string
	PublicID  string
	Bytes     int64
	Format    string
}

// MediaUpload is a file received from the dashboard, not yet stored.
type MediaUpload struct {
	Type        MediaType
	Filename    string
	ContentType string
	Size        int64
	Body        io.ReadSeeker
	AltText     string
}
