package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/echannel-lk/agent-backend/channeling"
)

// GetPayments lists payments with optional status/method filters.
func GetPayments(c *fiber.Ctx) error {
	payments, err := upstream.ListPayments(c.Context(), channeling.PaymentFilters{
		Status: c.Query("status"),
		Method: c.Query("method"),
	})
	if err != nil {
		return fail(c, 502, err.Error())
	}
	return ok(c, payments)
}

// GetPaymentStats returns the aggregate payment figures.
func GetPaymentStats(c *fiber.Ctx) error {
	stats, err := upstream.PaymentStats(c.Context())
	if err != nil {
		return fail(c, 502, err.Error())
	}
	return ok(c, stats)
}
