package handlers

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/echannel-lk/agent-backend/database"
	"github.com/echannel-lk/agent-backend/models"
)

// GetNotifications lists the agent's notifications, newest first.
func GetNotifications(c *fiber.Ctx) error {
	rows, err := database.GetDB().Query(context.Background(),
		`SELECT id, agent_id, title, message, read, created_at
		 FROM notifications WHERE agent_id = $1
		 ORDER BY created_at DESC LIMIT 50`, agentID(c))
	if err != nil {
		return fail(c, 500, "Failed to load notifications")
	}
	defer rows.Close()

	notifications := make([]models.Notification, 0)
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.AgentID, &n.Title, &n.Message, &n.Read, &n.CreatedAt); err != nil {
			return fail(c, 500, "Failed to read notifications")
		}
		notifications = append(notifications, n)
	}

	return ok(c, notifications)
}

// MarkNotificationRead marks one notification as read.
func MarkNotificationRead(c *fiber.Ctx) error {
	tag, err := database.GetDB().Exec(context.Background(),
		"UPDATE notifications SET read = TRUE WHERE id = $1 AND agent_id = $2",
		c.Params("id"), agentID(c))
	if err != nil {
		return fail(c, 500, "Failed to update notification")
	}
	if tag.RowsAffected() == 0 {
		return fail(c, 404, "Notification not found")
	}
	return okMessage(c, "Notification marked as read", nil)
}

// MarkAllNotificationsRead clears the agent's unread badge.
func MarkAllNotificationsRead(c *fiber.Ctx) error {
	_, err := database.GetDB().Exec(context.Background(),
		"UPDATE notifications SET read = TRUE WHERE agent_id = $1", agentID(c))
	if err != nil {
		return fail(c, 500, "Failed to update notifications")
	}
	return okMessage(c, "All notifications marked as read", nil)
}

// createNotification stores an agent notification. Failures are logged and
// swallowed: a lost notification never fails the operation it describes.
func createNotification(agentID int, title, message string) {
	db := database.GetDB()
	if db == nil {
		return
	}
	_, err := db.Exec(context.Background(),
		"INSERT INTO notifications (agent_id, title, message) VALUES ($1, $2, $3)",
		agentID, title, message)
	if err != nil {
		log.Printf("Failed to create notification: %v", err)
	}
}
