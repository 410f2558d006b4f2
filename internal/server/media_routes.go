package server

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"

	"github.com/classlog/classlog/internal/auth"
	"github.com/classlog/classlog/internal/model"
	"github.com/classlog/classlog/internal/repository"
)

// Allowed upload extensions per media type. The check is by extension and
// declared content type; the service does not sniff file contents.
var (
	photoExtensions = map[string]bool{
		".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
	}
	videoExtensions = map[string]bool{
		".mp4": true, ".mov": true, ".avi": true, ".mkv": true, ".webm": true,
	}
)

func (s *Server) handleListMedia(c *fiber.Ctx) error {
	filter := repository.MediaFilter{
		ActivityID: int64(c.QueryInt("activity_id", 0)),
		Offset:     c.QueryInt("offset", 0),
		Limit:      c.QueryInt("limit", 50),
	}

	if raw := c.Query("media_type"); raw != "" {
		mediaType := model.MediaType(raw)
		if !mediaType.IsValid() {
			return errors.New("invalid media_type filter", errors.CategoryBadInput).
				WithCode(errors.CodeBadRequest).
				WithTextCode("INVALID_MEDIA_TYPE")
		}
		filter.MediaType = mediaType
	}

	records, err := s.repos.Media().List(c.Context(), filter)
	if err != nil {
		return err
	}

	return c.JSON(records)
}

// handleGetMedia returns the record and bumps its view counter. The bump is
// a single statement so concurrent reads never lose increments.
func (s *Server) handleGetMedia(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	record, err := s.repos.Media().GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	if err := s.repos.Media().IncrementViews(c.Context(), id); err != nil {
		return err
	}
	record.ViewsCount++

	return c.JSON(record)
}

func (s *Server) handleUploadMedia(c *fiber.Ctx) error {
	identity := currentIdentity(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return errors.New("missing file field", errors.CategoryBadInput).
			WithCode(errors.CodeBadRequest).
			WithTextCode("MISSING_FILE")
	}

	activityID, err := activityIDFromForm(c)
	if err != nil {
		return err
	}

	mediaType := model.MediaType(c.FormValue("media_type"))
	if !mediaType.IsValid() {
		return errors.New("media_type must be photo or video", errors.CategoryBadInput).
			WithCode(errors.CodeBadRequest).
			WithTextCode("INVALID_MEDIA_TYPE")
	}

	if fileHeader.Size > s.cfg.MaxUploadSize {
		return errors.New("file exceeds the upload size limit", errors.CategoryBadInput).
			WithCode(errors.CodeBadRequest).
			WithTextCode("FILE_TOO_LARGE").
			WithMetadata(map[string]any{
				"max_bytes": s.cfg.MaxUploadSize,
				"size":      fileHeader.Size,
			})
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !extensionAllowed(mediaType, ext) {
		return errors.New("file type not allowed for this media type", errors.CategoryBadInput).
			WithCode(errors.CodeBadRequest).
			WithTextCode("UNSUPPORTED_FILE_TYPE").
			WithMetadata(map[string]any{"extension": ext})
	}

	// Upload targets must exist before any disk write happens.
	if _, err := s.repos.Activities().GetByID(c.Context(), activityID); err != nil {
		return err
	}

	src, err := fileHeader.Open()
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to open uploaded file")
	}
	defer src.Close()

	relativePath, storedName, size, err := s.files.Save(mediaType, fileHeader.Filename, src)
	if err != nil {
		return err
	}

	record := &model.MediaItem{
		Filename:         storedName,
		OriginalFilename: fileHeader.Filename,
		FilePath:         relativePath,
		FileSize:         size,
		MediaType:        mediaType,
		Title:            c.FormValue("title"),
		Description:      c.FormValue("description"),
		ActivityID:       activityID,
		UploaderID:       identity.ID,
	}

	created, err := s.repos.Media().Create(c.Context(), record)
	if err != nil {
		// The record failed, keep disk and database consistent.
		if rmErr := s.files.Remove(relativePath); rmErr != nil {
			s.logger.Warn("failed to remove orphaned upload", "path", relativePath, "error", rmErr)
		}
		return err
	}

	s.logger.Info("stored media upload",
		"id", created.ID,
		"uploader", identity.Username,
		"type", created.MediaType,
		"bytes", created.FileSize,
	)

	return c.Status(fiber.StatusCreated).JSON(created)
}

// handleDeleteMedia removes the database row first and the file after; a
// leftover file is recoverable garbage, a dangling row is a broken link.
func (s *Server) handleDeleteMedia(c *fiber.Ctx) error {
	identity := currentIdentity(c)

	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	record, err := s.repos.Media().GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	if err := auth.AuthorizeMutation(identity, record); err != nil {
		return err
	}

	if err := s.repos.Media().Delete(c.Context(), id); err != nil {
		return err
	}

	if err := s.files.Remove(record.FilePath); err != nil {
		s.logger.Warn("failed to remove media file", "path", record.FilePath, "error", err)
	}

	return c.JSON(fiber.Map{"message": "media deleted"})
}

func (s *Server) handleMediaStats(c *fiber.Ctx) error {
	stats, err := s.repos.Media().Stats(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(stats)
}

func extensionAllowed(mediaType model.MediaType, ext string) bool {
	if mediaType == model.MediaTypeVideo {
		return videoExtensions[ext]
	}
	return photoExtensions[ext]
}

func activityIDFromForm(c *fiber.Ctx) (int64, error) {
	raw := c.FormValue("activity_id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid activity_id field", errors.CategoryBadInput).
			WithCode(errors.CodeBadRequest).
			WithTextCode("INVALID_ID")
	}
	return id, nil
}
