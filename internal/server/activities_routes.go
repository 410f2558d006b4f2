package server

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"

	"github.com/classlog/classlog/internal/auth"
	"github.com/classlog/classlog/internal/model"
)

type activityRequest struct {
	Title        string     `json:"title" form:"title"`
	Description  string     `json:"description" form:"description"`
	ActivityDate *time.Time `json:"activity_date" form:"activity_date"`
	Location     string     `json:"location" form:"location"`
}

func (r activityRequest) Validate() *errors.Error {
	return errors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
		)
	}, "Invalid activity payload")
}

type updateActivityRequest struct {
	Title        *string    `json:"title" form:"title"`
	Description  *string    `json:"description" form:"description"`
	ActivityDate *time.Time `json:"activity_date" form:"activity_date"`
	Location     *string    `json:"location" form:"location"`
}

func (r updateActivityRequest) Validate() *errors.Error {
	return errors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Title, validation.Length(1, 200)),
		)
	}, "Invalid activity payload")
}

func (s *Server) handleListActivities(c *fiber.Ctx) error {
	offset := c.QueryInt("offset", 0)
	limit := c.QueryInt("limit", 50)

	records, err := s.repos.Activities().List(c.Context(), offset, limit)
	if err != nil {
		return err
	}

	return c.JSON(records)
}

func (s *Server) handleGetActivity(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	record, err := s.repos.Activities().GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(record)
}

func (s *Server) handleCreateActivity(c *fiber.Ctx) error {
	identity := currentIdentity(c)

	var req activityRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "could not parse activity payload").
			WithCode(errors.CodeBadRequest)
	}

	if err := req.Validate(); err != nil {
		return err
	}

	record := &model.Activity{
		Title:        req.Title,
		Description:  req.Description,
		ActivityDate: req.ActivityDate,
		Location:     req.Location,
		CreatorID:    identity.ID,
	}

	created, err := s.repos.Activities().Create(c.Context(), record)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// handleUpdateActivity loads the record first so the ownership check runs
// against current state, then applies a partial update: only fields present
// in the payload change.
func (s *Server) handleUpdateActivity(c *fiber.Ctx) error {
	identity := currentIdentity(c)

	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	record, err := s.repos.Activities().GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	if err := auth.AuthorizeMutation(identity, record); err != nil {
		return err
	}

	var req updateActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "could not parse activity payload").
			WithCode(errors.CodeBadRequest)
	}

	if err := req.Validate(); err != nil {
		return err
	}

	if req.Title != nil {
		record.Title = *req.Title
	}
	if req.Description != nil {
		record.Description = *req.Description
	}
	if req.ActivityDate != nil {
		record.ActivityDate = req.ActivityDate
	}
	if req.Location != nil {
		record.Location = *req.Location
	}

	updated, err := s.repos.Activities().Update(c.Context(), record)
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

func (s *Server) handleDeleteActivity(c *fiber.Ctx) error {
	identity := currentIdentity(c)

	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	record, err := s.repos.Activities().GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	if err := auth.AuthorizeMutation(identity, record); err != nil {
		return err
	}

	if err := s.repos.Activities().Delete(c.Context(), id); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "activity deleted"})
}

func (s *Server) handleActivityStats(c *fiber.Ctx) error {
	stats, err := s.repos.Activities().Stats(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(stats)
}

// paramID parses a positive numeric path parameter.
func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid "+name+" parameter", errors.CategoryBadInput).
			WithCode(errors.CodeBadRequest).
			WithTextCode("INVALID_ID")
	}
	return int64(id), nil
}
