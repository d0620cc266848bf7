package query

import (
	"strings"

	"github.com/dmitrijs2005/jobkeeper/internal/models"
)

// Stats are the dashboard counters. They are always computed over a whole
// collection, never over a filtered view.
type Stats struct {
	Total      int
	Interviews int
	Offers     int
	Pending    int
}

// Aggregate counts apps. Interviews matches every status containing
// "Interview", which today is Interview Scheduled and Interview Done.
func Aggregate(apps []models.Application) Stats {
	s := Stats{Total: len(apps)}
	for _, a := range apps {
		if strings.Contains(string(a.Status), "Interview") {
			s.Interviews++
		}
		switch a.Status {
		case models.StatusOfferReceived:
			s.Offers++
		case models.StatusApplied:
			s.Pending++
		}
	}
	return s
}
