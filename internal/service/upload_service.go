package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"aihub/internal/middleware"
	"aihub/internal/models"
	"aihub/internal/observability"
	"aihub/internal/storage"

	"go.opentelemetry.io/otel/attribute"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// Upload types accepted by UploadService.
const (
	UploadNews  = "news"
	UploadVideo = "video"
	UploadImage = "image"
)

// UploadInput carries the multipart form of an upload. Numeric fields are
// kept as submitted so they can be validated here.
type UploadInput struct {
	File        io.Reader
	FileName    string
	ContentType string
	Size        int64

	Type         string
	Title        string
	Description  string
	Category     string
	AuthorID     string
	Tags         string
	VideoURL     string
	ThumbnailURL string
	Duration     string
	Width        string
	Height       string
}

// UploadResult is the created row; its concrete type depends on the upload type.
type UploadResult struct {
	Type string
	Item any
}

// UploadService stores uploaded files and creates the matching content row.
type UploadService struct {
	content  *ContentService
	store    storage.Store
	maxBytes int64
	now      func() time.Time
}

// DefaultUploadMaxBytes applies when no positive limit is configured.
const DefaultUploadMaxBytes = 50 * 1024 * 1024

// NewUploadService creates an upload service accepting files up to maxBytes.
func NewUploadService(content *ContentService, store storage.Store, maxBytes int64) *UploadService {
	if maxBytes <= 0 {
		maxBytes = DefaultUploadMaxBytes
	}
	return &UploadService{content: content, store: store, maxBytes: maxBytes, now: time.Now}
}

// Upload validates the form, writes the file and creates the row. The type is
// checked before anything is written, and the file is removed again when the
// row cannot be created.
func (s *UploadService) Upload(ctx context.Context, in UploadInput) (res *UploadResult, err error) {
	kind := strings.ToLower(strings.TrimSpace(in.Type))
	defer func() {
		result := "ok"
		if err != nil {
			result = "error"
		}
		observability.Uploads.WithLabelValues(uploadLabel(kind), result).Inc()
	}()

	if in.File == nil {
		return nil, models.NewValidationError("No file uploaded")
	}
	if err := requireFields(
		field{"type", in.Type},
		field{"title", in.Title},
		field{"category", in.Category},
		field{"authorId", in.AuthorID},
	); err != nil {
		return nil, err
	}
	switch kind {
	case UploadNews, UploadVideo, UploadImage:
	default:
		return nil, models.NewValidationError("Invalid type")
	}
	if in.Size > s.maxBytes {
		return nil, models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxBytes/(1024*1024)))
	}

	duration, err := optionalInt("duration", in.Duration)
	if err != nil {
		return nil, err
	}
	width, err := optionalInt("width", in.Width)
	if err != nil {
		return nil, err
	}
	height, err := optionalInt("height", in.Height)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(in.File, s.maxBytes+1))
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if len(data) == 0 {
		return nil, models.NewValidationError("No file uploaded")
	}
	if int64(len(data)) > s.maxBytes {
		return nil, models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxBytes/(1024*1024)))
	}

	contentType := in.ContentType
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	ctx, finish := observability.StartSpan(ctx, "upload.store",
		attribute.String("upload.type", kind),
		attribute.Int("upload.size", len(data)),
	)
	key := storage.NewKey(kind, in.FileName, s.now())
	url, err := s.store.Save(ctx, key, bytes.NewReader(data), int64(len(data)), contentType)
	finish(err)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	observability.UploadedBytes.WithLabelValues(kind).Add(float64(len(data)))

	item, err := s.createRow(ctx, kind, in, url, data, duration, width, height)
	if err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			middleware.Logger.ErrorContext(ctx, "failed to remove upload after row creation failed",
				"key", key, "error", delErr)
		}
		return nil, err
	}
	return &UploadResult{Type: kind, Item: item}, nil
}

func (s *UploadService) createRow(ctx context.Context, kind string, in UploadInput, url string, data []byte, duration, width, height *int) (any, error) {
	tags := SplitTags(in.Tags)

	switch kind {
	case UploadNews:
		return s.content.CreateNews(ctx, CreateNewsInput{
			Title:       in.Title,
			Description: in.Description,
			Category:    in.Category,
			ImageURL:    url,
			Tags:        tags,
			AuthorID:    in.AuthorID,
		})
	case UploadVideo:
		videoURL := strings.TrimSpace(in.VideoURL)
		if videoURL == "" {
			videoURL = url
		}
		thumb := strings.TrimSpace(in.ThumbnailURL)
		if thumb == "" {
			thumb = url
		}
		d := 0
		if duration != nil {
			d = *duration
		}
		return s.content.CreateVideo(ctx, CreateVideoInput{
			Title:        in.Title,
			Description:  in.Description,
			VideoURL:     videoURL,
			ThumbnailURL: thumb,
			Duration:     d,
			Category:     in.Category,
			Tags:         tags,
			AuthorID:     in.AuthorID,
		})
	default:
		if width == nil || height == nil {
			if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
				if width == nil {
					width = &cfg.Width
				}
				if height == nil {
					height = &cfg.Height
				}
			}
		}
		size := int64(len(data))
		return s.content.CreateImage(ctx, CreateImageInput{
			Title:        in.Title,
			Description:  in.Description,
			ImageURL:     url,
			ThumbnailURL: url,
			Category:     in.Category,
			Tags:         tags,
			Width:        width,
			Height:       height,
			FileSize:     &size,
			AuthorID:     in.AuthorID,
		})
	}
}

func optionalInt(name, raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, models.NewValidationError(name + " must be a whole number")
	}
	return &v, nil
}

// uploadLabel bounds metric cardinality to the known upload types.
func uploadLabel(kind string) string {
	switch kind {
	case UploadNews, UploadVideo, UploadImage:
		return kind
	}
	return "invalid"
}
