package server

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

type updateProfileRequest struct {
	Email     *string `json:"email" form:"email"`
	FullName  *string `json:"full_name" form:"full_name"`
	AvatarURL *string `json:"avatar_url" form:"avatar_url"`
	Bio       *string `json:"bio" form:"bio"`
	Phone     *string `json:"phone" form:"phone"`
	QQ        *string `json:"qq" form:"qq"`
	WeChat    *string `json:"wechat" form:"wechat"`
	Dormitory *string `json:"dormitory" form:"dormitory"`
	Hometown  *string `json:"hometown" form:"hometown"`
}

func (r updateProfileRequest) Validate() *errors.Error {
	return errors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Email, is.Email),
			validation.Field(&r.FullName, validation.Length(1, 100)),
			validation.Field(&r.Phone, validation.By(func(value any) error {
				if phone, ok := value.(*string); ok && phone != nil {
					return validPhoneNumber(*phone)
				}
				return nil
			})),
		)
	}, "Invalid profile payload")
}

func (s *Server) handleListUsers(c *fiber.Ctx) error {
	offset := c.QueryInt("offset", 0)
	limit := c.QueryInt("limit", 50)

	users, err := s.repos.Users().List(c.Context(), offset, limit)
	if err != nil {
		return err
	}

	return c.JSON(users)
}

func (s *Server) handleGetUser(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	user, err := s.repos.Users().GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(user)
}

// handleUpdateProfile applies a partial update to the caller's own record.
// Only the fields present in the payload change; role, username, password,
// and the active flag are never touched here.
func (s *Server) handleUpdateProfile(c *fiber.Ctx) error {
	identity := currentIdentity(c)

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "could not parse profile payload").
			WithCode(errors.CodeBadRequest)
	}

	if err := req.Validate(); err != nil {
		return err
	}

	user, err := s.repos.Users().GetByID(c.Context(), identity.ID)
	if err != nil {
		return err
	}

	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.AvatarURL != nil {
		user.AvatarURL = *req.AvatarURL
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.QQ != nil {
		user.QQ = *req.QQ
	}
	if req.WeChat != nil {
		user.WeChat = *req.WeChat
	}
	if req.Dormitory != nil {
		user.Dormitory = *req.Dormitory
	}
	if req.Hometown != nil {
		user.Hometown = *req.Hometown
	}

	updated, err := s.repos.Users().Update(c.Context(), user)
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

func (s *Server) handleUserStats(c *fiber.Ctx) error {
	stats, err := s.repos.Users().Stats(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(stats)
}
