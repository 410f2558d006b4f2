package server

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"

	"github.com/classlog/classlog/internal/auth"
	"github.com/classlog/classlog/internal/model"
)

type commentRequest struct {
	Content     string `json:"content" form:"content"`
	MediaItemID int64  `json:"media_item_id" form:"media_item_id"`
	ParentID    *int64 `json:"parent_id" form:"parent_id"`
}

func (r commentRequest) Validate() *errors.Error {
	return errors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Content, validation.Required, validation.Length(1, 2000)),
			validation.Field(&r.MediaItemID, validation.Required, validation.Min(int64(1))),
		)
	}, "Invalid comment payload")
}

func (s *Server) handleListComments(c *fiber.Ctx) error {
	mediaID, err := paramID(c, "mediaID")
	if err != nil {
		return err
	}

	if _, err := s.repos.Media().GetByID(c.Context(), mediaID); err != nil {
		return err
	}

	offset := c.QueryInt("offset", 0)
	limit := c.QueryInt("limit", 50)

	records, err := s.repos.Comments().ListRootsForMedia(c.Context(), mediaID, offset, limit)
	if err != nil {
		return err
	}

	return c.JSON(records)
}

func (s *Server) handleGetComment(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	record, err := s.repos.Comments().GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(record)
}

// handleCreateComment stores the comment and notifies the media uploader
// and, for replies, the parent comment's author. Nobody is notified about
// their own comment.
func (s *Server) handleCreateComment(c *fiber.Ctx) error {
	identity := currentIdentity(c)

	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "could not parse comment payload").
			WithCode(errors.CodeBadRequest)
	}

	if err := req.Validate(); err != nil {
		return err
	}

	mediaItem, err := s.repos.Media().GetByID(c.Context(), req.MediaItemID)
	if err != nil {
		return err
	}

	var parent *model.Comment
	if req.ParentID != nil {
		parent, err = s.repos.Comments().GetByID(c.Context(), *req.ParentID)
		if err != nil {
			return err
		}
		if parent.MediaItemID != mediaItem.ID {
			return errors.New("parent comment belongs to a different media item", errors.CategoryBadInput).
				WithCode(errors.CodeBadRequest).
				WithTextCode("PARENT_MISMATCH")
		}
	}

	record := &model.Comment{
		Content:     req.Content,
		MediaItemID: mediaItem.ID,
		AuthorID:    identity.ID,
		ParentID:    req.ParentID,
	}

	created, err := s.repos.Comments().Create(c.Context(), record)
	if err != nil {
		return err
	}

	s.notifyCommentRecipients(c, identity, created, mediaItem, parent)

	return c.Status(fiber.StatusCreated).JSON(created)
}

// notifyCommentRecipients best-effort fan-out. A failed notification is
// logged and dropped, never surfaced to the commenter.
func (s *Server) notifyCommentRecipients(c *fiber.Ctx, identity auth.Identity, comment *model.Comment, mediaItem *model.MediaItem, parent *model.Comment) {
	recipients := map[int64]string{}

	if mediaItem.UploaderID != identity.ID {
		recipients[mediaItem.UploaderID] = "New comment"
	}
	if parent != nil && parent.AuthorID != identity.ID {
		recipients[parent.AuthorID] = "New reply"
	}

	for userID, title := range recipients {
		notification := &model.Notification{
			Title:            title,
			Message:          fmt.Sprintf("%s commented: %s", identity.Username, truncate(comment.Content, 100)),
			UserID:           userID,
			RelatedCommentID: &comment.ID,
		}
		if _, err := s.repos.Notifications().Create(c.Context(), notification); err != nil {
			s.logger.Warn("failed to create comment notification", "user_id", userID, "error", err)
		}
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// handleDeleteComment enforces the mutation policy then removes the comment
// and its direct replies in one transaction.
func (s *Server) handleDeleteComment(c *fiber.Ctx) error {
	identity := currentIdentity(c)

	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	record, err := s.repos.Comments().GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	if err := auth.AuthorizeMutation(identity, record); err != nil {
		return err
	}

	if err := s.repos.Comments().DeleteWithReplies(c.Context(), id); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "comment deleted"})
}
