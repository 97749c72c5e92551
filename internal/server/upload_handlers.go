package server

import (
	"aihub/internal/models"
	"aihub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Upload stores a multipart file and creates the news, video or image row
// it belongs to. The response is the created row.
func (s *Server) Upload(c *fiber.Ctx) error {
	in := service.UploadInput{
		Type:         c.FormValue("type"),
		Title:        c.FormValue("title"),
		Description:  c.FormValue("description"),
		Category:     c.FormValue("category"),
		AuthorID:     c.FormValue("authorId"),
		Tags:         c.FormValue("tags"),
		VideoURL:     c.FormValue("videoUrl"),
		ThumbnailURL: c.FormValue("thumbnailUrl"),
		Duration:     c.FormValue("duration"),
		Width:        c.FormValue("width"),
		Height:       c.FormValue("height"),
	}

	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return respondError(c, models.NewInternalError(err), "Upload failed")
		}
		defer func() { _ = f.Close() }()

		in.File = f
		in.FileName = fh.Filename
		in.ContentType = fh.Header.Get(fiber.HeaderContentType)
		in.Size = fh.Size
	}

	res, err := s.uploadService.Upload(c.UserContext(), in)
	if err != nil {
		return respondError(c, err, "Upload failed")
	}
	return c.Status(fiber.StatusCreated).JSON(res.Item)
}
