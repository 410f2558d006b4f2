package server

import (
	"github.com/gofiber/fiber/v2"

	"github.com/classlog/classlog/internal/repository"
)

func (s *Server) handleListNotifications(c *fiber.Ctx) error {
	identity := currentIdentity(c)

	filter := repository.NotificationFilter{
		UnreadOnly: c.QueryBool("unread_only", false),
		Offset:     c.QueryInt("offset", 0),
		Limit:      c.QueryInt("limit", 50),
	}

	records, err := s.repos.Notifications().ListByUser(c.Context(), identity.ID, filter)
	if err != nil {
		return err
	}

	return c.JSON(records)
}

func (s *Server) handleMarkNotificationRead(c *fiber.Ctx) error {
	identity := currentIdentity(c)

	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := s.repos.Notifications().MarkRead(c.Context(), identity.ID, id); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "notification marked as read"})
}

func (s *Server) handleMarkAllNotificationsRead(c *fiber.Ctx) error {
	identity := currentIdentity(c)

	updated, err := s.repos.Notifications().MarkAllRead(c.Context(), identity.ID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"marked_read": updated})
}

func (s *Server) handleDeleteNotification(c *fiber.Ctx) error {
	identity := currentIdentity(c)

	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := s.repos.Notifications().Delete(c.Context(), identity.ID, id); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "notification deleted"})
}

func (s *Server) handleNotificationStats(c *fiber.Ctx) error {
	identity := currentIdentity(c)

	stats, err := s.repos.Notifications().Stats(c.Context(), identity.ID)
	if err != nil {
		return err
	}

	return c.JSON(stats)
}
