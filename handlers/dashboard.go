package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/echannel-lk/agent-backend/channeling"
	"github.com/echannel-lk/agent-backend/models"
)

// GetDashboardStats computes the KPI cards from upstream data. The change
// figures compare the current calendar month with the previous one.
func GetDashboardStats(c *fiber.Ctx) error {
	appts, err := upstream.ListAppointments(c.Context(), channeling.AppointmentFilters{})
	if err != nil {
		return fail(c, 502, err.Error())
	}

	stats := models.DashboardStats{TotalAppointments: len(appts)}

	now := time.Now()
	thisMonth := now.Format("2006-01")
	lastMonth := now.AddDate(0, -1, 0).Format("2006-01")

	var apptsThisMonth, apptsLastMonth int
	var revenueThisMonth, revenueLastMonth float64
	doctors := map[string]bool{}

	for _, a := range appts {
		if a.Status == models.AppointmentStatusPending {
			stats.PendingConfirmations++
		}
		doctors[a.DoctorName] = true

		month := a.CreatedAt.Format("2006-01")
		paid := a.PaymentStatus == models.PaymentStatusPaid
		if paid {
			stats.Revenue += a.Amount
		}
		switch month {
		case thisMonth:
			apptsThisMonth++
			if paid {
				revenueThisMonth += a.Amount
			}
		case lastMonth:
			apptsLastMonth++
			if paid {
				revenueLastMonth += a.Amount
			}
		}
	}

	stats.ActiveDoctors = len(doctors)
	stats.AppointmentsChange = percentChange(float64(apptsLastMonth), float64(apptsThisMonth))
	stats.RevenueChange = percentChange(revenueLastMonth, revenueThisMonth)

	return ok(c, stats)
}

func percentChange(previous, current float64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return (current - previous) / previous * 100
}
