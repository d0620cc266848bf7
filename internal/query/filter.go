// Package query derives read-only views from a snapshot of application
// records. Nothing here mutates its input.
package query

import (
	"strings"

	"github.com/dmitrijs2005/jobkeeper/internal/models"
)

// AllStatuses disables the status criterion.
const AllStatuses models.Status = ""

// Match is a record that passed a filter, with its position in the
// unfiltered snapshot.
type Match struct {
	Index       int
	Application models.Application
}

// Filter keeps records whose company name or job title contains search
// (case-insensitive) and whose status equals status. An empty search or
// AllStatuses skips that criterion. Input order is preserved.
func Filter(apps []models.Application, search string, status models.Status) []models.Application {
	matches := Matches(apps, search, status)
	out := make([]models.Application, len(matches))
	for i, m := range matches {
		out[i] = m.Application
	}
	return out
}

// Matches is Filter that also reports where each record sits in apps.
func Matches(apps []models.Application, search string, status models.Status) []Match {
	needle := strings.ToLower(search)
	out := make([]Match, 0, len(apps))
	for i, a := range apps {
		if needle != "" &&
			!strings.Contains(strings.ToLower(a.CompanyName), needle) &&
			!strings.Contains(strings.ToLower(a.JobTitle), needle) {
			continue
		}
		if status != AllStatuses && a.Status != status {
			continue
		}
		out = append(out, Match{Index: i, Application: a})
	}
	return out
}

// ParseStatusFilter accepts "" or "all" for AllStatuses and otherwise any
// status name, case-insensitively.
func ParseStatusFilter(s string) (models.Status, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") {
		return AllStatuses, nil
	}
	return models.ParseStatus(s)
}
