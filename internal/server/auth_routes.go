package server

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/nyaruka/phonenumbers"

	"github.com/classlog/classlog/internal/auth"
	"github.com/classlog/classlog/internal/model"
)

type registerRequest struct {
	Username  string  `json:"username" form:"username"`
	Email     string  `json:"email" form:"email"`
	Password  string  `json:"password" form:"password"`
	FullName  string  `json:"full_name" form:"full_name"`
	StudentID *string `json:"student_id" form:"student_id"`
	Phone     string  `json:"phone" form:"phone"`
}

// Validate runs the registration rules. The password length check happens
// here, before any hashing work.
func (r registerRequest) Validate() *errors.Error {
	return errors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Username, validation.Required, validation.Length(3, 50)),
			validation.Field(&r.Email, validation.Required, is.Email),
			validation.Field(&r.Password, validation.Required, validation.Length(6, 128)),
			validation.Field(&r.FullName, validation.Required, validation.Length(1, 100)),
			validation.Field(&r.Phone, validation.By(validPhoneNumber)),
		)
	}, "Invalid registration payload")
}

// validPhoneNumber accepts empty values; anything present must parse as a
// real number. Bare national numbers are tried against the CN region since
// that is where the deployment's users are.
func validPhoneNumber(value any) error {
	raw, _ := value.(string)
	if raw == "" {
		return nil
	}

	parsed, err := phonenumbers.Parse(raw, "CN")
	if err != nil {
		return err
	}
	if !phonenumbers.IsValidNumber(parsed) {
		return fmt.Errorf("must be a valid phone number")
	}
	return nil
}

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

func (r loginRequest) Validate() *errors.Error {
	return errors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Username, validation.Required),
			validation.Field(&r.Password, validation.Required),
		)
	}, "Invalid login payload")
}

type loginResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        *model.User `json:"user"`
}

// handleRegister creates an account. Public registration always produces a
// student; elevated roles are granted by an admin editing the record later.
func (s *Server) handleRegister(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "could not parse registration payload").
			WithCode(errors.CodeBadRequest)
	}

	if err := req.Validate(); err != nil {
		return err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return err
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		FullName:     req.FullName,
		StudentID:    req.StudentID,
		Phone:        req.Phone,
		Role:         model.RoleStudent,
		IsActive:     true,
	}

	created, err := s.repos.Users().Register(c.Context(), user)
	if err != nil {
		return err
	}

	s.logger.Info("registered user", "username", created.Username, "id", created.ID)

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (s *Server) handleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "could not parse login payload").
			WithCode(errors.CodeBadRequest)
	}

	if err := req.Validate(); err != nil {
		return err
	}

	token, identity, err := s.resolver.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	user, err := s.repos.Users().GetByID(c.Context(), identity.ID)
	if err != nil {
		return err
	}

	return c.JSON(loginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user,
	})
}

// handleMe returns the authenticated user's full record.
func (s *Server) handleMe(c *fiber.Ctx) error {
	identity := currentIdentity(c)

	user, err := s.repos.Users().GetByID(c.Context(), identity.ID)
	if err != nil {
		return err
	}

	return c.JSON(user)
}

// handleLogout acknowledges the request unconditionally: tokens are
// stateless and simply expire, the client discards its copy. No token is
// required, so a client with an already-expired session can still log out.
func (s *Server) handleLogout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "logged out"})
}
