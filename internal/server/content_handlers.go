package server

import (
	"aihub/internal/service"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultNewsLimit      = 10
	defaultVideoLimit     = 20
	defaultImageLimit     = 20
	defaultCommunityLimit = 10
)

// GetNews lists news with category, search and pagination filters.
func (s *Server) GetNews(c *fiber.Ctx) error {
	res, err := s.contentService.ListNews(c.UserContext(), listQuery(c, defaultNewsLimit))
	if err != nil {
		return respondError(c, err, "Failed to fetch news")
	}
	return c.JSON(fiber.Map{"news": res.Items, "pagination": res.Pagination})
}

// CreateNews publishes a news article.
func (s *Server) CreateNews(c *fiber.Ctx) error {
	var req service.CreateNewsInput
	if !parseBody(c, &req) {
		return nil
	}
	news, err := s.contentService.CreateNews(c.UserContext(), req)
	if err != nil {
		return respondError(c, err, "Failed to create news")
	}
	return c.Status(fiber.StatusCreated).JSON(news)
}

// GetVideos lists videos.
func (s *Server) GetVideos(c *fiber.Ctx) error {
	res, err := s.contentService.ListVideos(c.UserContext(), listQuery(c, defaultVideoLimit))
	if err != nil {
		return respondError(c, err, "Failed to fetch videos")
	}
	return c.JSON(fiber.Map{"videos": res.Items, "pagination": res.Pagination})
}

// CreateVideo adds a video by URL.
func (s *Server) CreateVideo(c *fiber.Ctx) error {
	var req service.CreateVideoInput
	if !parseBody(c, &req) {
		return nil
	}
	video, err := s.contentService.CreateVideo(c.UserContext(), req)
	if err != nil {
		return respondError(c, err, "Failed to create video")
	}
	return c.Status(fiber.StatusCreated).JSON(video)
}

// GetImages lists images.
func (s *Server) GetImages(c *fiber.Ctx) error {
	res, err := s.contentService.ListImages(c.UserContext(), listQuery(c, defaultImageLimit))
	if err != nil {
		return respondError(c, err, "Failed to fetch images")
	}
	return c.JSON(fiber.Map{"images": res.Items, "pagination": res.Pagination})
}

// CreateImage adds an image by URL.
func (s *Server) CreateImage(c *fiber.Ctx) error {
	var req service.CreateImageInput
	if !parseBody(c, &req) {
		return nil
	}
	image, err := s.contentService.CreateImage(c.UserContext(), req)
	if err != nil {
		return respondError(c, err, "Failed to create image")
	}
	return c.Status(fiber.StatusCreated).JSON(image)
}

// GetPosts lists community posts, pinned first.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	res, err := s.contentService.ListPosts(c.UserContext(), listQuery(c, defaultCommunityLimit))
	if err != nil {
		return respondError(c, err, "Failed to fetch posts")
	}
	return c.JSON(fiber.Map{"posts": res.Items, "pagination": res.Pagination})
}

// CreatePost publishes a community post.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req service.CreatePostInput
	if !parseBody(c, &req) {
		return nil
	}
	post, err := s.contentService.CreatePost(c.UserContext(), req)
	if err != nil {
		return respondError(c, err, "Failed to create post")
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}
