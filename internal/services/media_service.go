package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/honeynil/employer-dashboard/internal/infrastructure/storage"
	"github.com/honeynil/employer-dashboard/internal/models"
	"github.com/honeynil/employer-dashboard/internal/repository"
	pkgerrors "github.com/honeynil/employer-dashboard/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	entityMedia      = "media"
	maxAltTextLength = 250
)

var rasterFormats = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

type MediaService interface {
	Upload(ctx context.Context, employerID, userID string, upload models.MediaUpload) (*models.MediaAsset, error)
	List(ctx context.Context, employerID string, mediaType models.MediaType) ([]models.MediaAsset, error)
	UpdateAltText(ctx context.Context, employerID, mediaID, altText string) (*models.MediaAsset, error)
	Delete(ctx context.Context, employerID, userID, mediaID string) error
}

type mediaService struct {
	mediaRepo    repository.MediaRepository
	employerRepo repository.EmployerRepository
	storage      storage.ObjectStorage
	effects      *Effects
	maxBytes     int64
	galleryLimit int
}

func NewMediaService(
	mediaRepo repository.MediaRepository,
	employerRepo repository.EmployerRepository,
	objectStorage storage.ObjectStorage,
	effects *Effects,
	maxBytes int64,
	galleryLimit int,
) *mediaService {
	return &mediaService{
		mediaRepo:    mediaRepo,
		employerRepo: employerRepo,
		storage:      objectStorage,
		effects:      effects,
		maxBytes:     maxBytes,
		galleryLimit: galleryLimit,
	}
}

// Upload stores a logo or sfeerbeeld. A new logo replaces the previous one,
// which is soft-deleted.
func (s *mediaService) Upload(ctx context.Context, employerID, userID string, upload models.MediaUpload) (*models.MediaAsset, error) {
	ctx, span := otel.Tracer("media-service").Start(ctx, "Upload")
	defer span.End()
	span.SetAttributes(attribute.String("employer_id", employerID), attribute.String("type", string(upload.Type)))

	if !upload.Type.Valid() {
		return nil, pkgerrors.ErrInvalidMediaType
	}
	if upload.Body == nil || upload.Size <= 0 {
		return nil, pkgerrors.NewValidationError("file")
	}
	if upload.Size > s.maxBytes {
		span.SetStatus(codes.Error, "file too large")
		return nil, fmt.Errorf("%w: %d bytes, limit %d", pkgerrors.ErrFileTooLarge, upload.Size, s.maxBytes)
	}
	if len(upload.AltText) > maxAltTextLength {
		return nil, pkgerrors.NewValidationError("alt_text")
	}

	contentType, format, err := detectFormat(upload)
	if err != nil {
		span.SetStatus(codes.Error, "unsupported file type")
		return nil, err
	}

	if upload.Type == models.MediaSfeerbeeld {
		count, err := s.mediaRepo.CountActive(ctx, employerID, models.MediaSfeerbeeld)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		if count >= s.galleryLimit {
			return nil, pkgerrors.ErrGalleryLimitReached
		}
	}

	key := fmt.Sprintf("employers/%s/%s/%s.%s", employerID, upload.Type, uuid.NewString(), format)
	stored, err := s.storage.Upload(ctx, key, contentType, upload.Body, upload.Size)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	asset := &models.MediaAsset{
		EmployerID: employerID,
		Type:       upload.Type,
		URL:        stored.SecureURL,
		PublicID:   stored.PublicID,
		Bytes:      stored.Bytes,
		Format:     stored.Format,
		AltText:    strings.TrimSpace(upload.AltText),
	}
	if err := s.mediaRepo.Create(ctx, asset); err != nil {
		span.RecordError(err)
		s.discard(ctx, stored.PublicID)
		return nil, err
	}

	if upload.Type == models.MediaLogo {
		replaced, err := s.mediaRepo.SoftDeleteOthers(ctx, employerID, models.MediaLogo, asset.ID)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		if replaced > 0 {
			slog.Info("previous logo replaced", "employer_id", employerID, "count", replaced)
		}
		if err := s.employerRepo.SetLogoURL(ctx, employerID, asset.URL); err != nil {
			span.RecordError(err)
			return nil, err
		}
	}

	s.effects.record(ctx, eventSpec{
		eventType: models.EventMediaUploaded, employerID: employerID, userID: userID,
		entityType: entityMedia, entityID: asset.ID,
		metadata: map[string]any{"type": asset.Type, "bytes": asset.Bytes},
	})
	s.effects.sync(ctx, models.EventMediaUploaded, entityMedia, asset.ID, employerID)
	return asset, nil
}

func (s *mediaService) List(ctx context.Context, employerID string, mediaType models.MediaType) ([]models.MediaAsset, error) {
	ctx, span := otel.Tracer("media-service").Start(ctx, "List")
	defer span.End()

	if mediaType != "" && !mediaType.Valid() {
		return nil, pkgerrors.ErrInvalidMediaType
	}
	return s.mediaRepo.ListByEmployer(ctx, employerID, mediaType)
}

func (s *mediaService) UpdateAltText(ctx context.Context, employerID, mediaID, altText string) (*models.MediaAsset, error) {
	ctx, span := otel.Tracer("media-service").Start(ctx, "UpdateAltText")
	defer span.End()

	altText = strings.TrimSpace(altText)
	if len(altText) > maxAltTextLength {
		return nil, pkgerrors.NewValidationError("alt_text")
	}

	asset, err := s.loadOwned(ctx, employerID, mediaID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if err := s.mediaRepo.UpdateAltText(ctx, mediaID, altText); err != nil {
		span.RecordError(err)
		return nil, err
	}
	asset.AltText = altText
	return asset, nil
}

// Delete is a soft delete; the stored object is kept.
func (s *mediaService) Delete(ctx context.Context, employerID, userID, mediaID string) error {
	ctx, span := otel.Tracer("media-service").Start(ctx, "Delete")
	defer span.End()

	asset, err := s.loadOwned(ctx, employerID, mediaID)
	if err != nil {
		span.RecordError(err)
		return err
	}
	if err := s.mediaRepo.SoftDelete(ctx, mediaID); err != nil {
		span.RecordError(err)
		return err
	}
	if asset.Type == models.MediaLogo {
		if err := s.employerRepo.SetLogoURL(ctx, employerID, ""); err != nil {
			span.RecordError(err)
			return err
		}
	}

	s.effects.record(ctx, eventSpec{
		eventType: models.EventMediaDeleted, employerID: employerID, userID: userID,
		entityType: entityMedia, entityID: mediaID,
	})
	s.effects.sync(ctx, models.EventMediaDeleted, entityMedia, mediaID, employerID)
	return nil
}

func (s *mediaService) loadOwned(ctx context.Context, employerID, mediaID string) (*models.MediaAsset, error) {
	asset, err := s.mediaRepo.GetByID(ctx, mediaID)
	if err != nil {
		return nil, err
	}
	if asset.EmployerID != employerID {
		return nil, pkgerrors.ErrForbidden
	}
	return asset, nil
}

func (s *mediaService) discard(ctx context.Context, key string) {
	if err := s.storage.Delete(context.WithoutCancel(ctx), key); err != nil {
		slog.Warn("failed to remove orphaned upload", "key", key, "error", err)
	}
}

// detectFormat accepts JPEG, PNG and WebP for every type and SVG for logos.
// Raster uploads must also sniff as the declared type.
func detectFormat(upload models.MediaUpload) (string, string, error) {
	contentType, _, err := mime.ParseMediaType(upload.ContentType)
	if err != nil {
		return "", "", pkgerrors.ErrUnsupportedFileType
	}
	contentType = strings.ToLower(contentType)

	if contentType == "image/svg+xml" {
		if upload.Type != models.MediaLogo {
			return "", "", pkgerrors.ErrUnsupportedFileType
		}
		return contentType, "svg", nil
	}

	format, ok := rasterFormats[contentType]
	if !ok {
		return "", "", pkgerrors.ErrUnsupportedFileType
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(upload.Body, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", "", fmt.Errorf("failed to read upload: %w", err)
	}
	if _, err := upload.Body.Seek(0, io.SeekStart); err != nil {
		return "", "", fmt.Errorf("failed to rewind upload: %w", err)
	}
	if http.DetectContentType(head[:n]) != contentType {
		return "", "", pkgerrors.ErrUnsupportedFileType
	}
	return contentType, format, nil
}
