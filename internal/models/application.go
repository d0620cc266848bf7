// Package models defines the records kept by jobkeeper: job applications,
// their status vocabulary, and user credentials.
package models

import (
	"fmt"
	"strings"

	"cloud.google.com/go/civil"

	"github.com/dmitrijs2005/jobkeeper/internal/common"
)

// Status is the stage an application is in. Only the values listed in
// Statuses are valid.
type Status string

const (
	StatusApplied            Status = "Applied"
	StatusInterviewScheduled Status = "Interview Scheduled"
	StatusInterviewDone      Status = "Interview Done"
	StatusOfferReceived      Status = "Offer Received"
	StatusRejected           Status = "Rejected"
	StatusWithdrawn          Status = "Withdrawn"
)

// Statuses is the closed status vocabulary in display order.
var Statuses = []Status{
	StatusApplied,
	StatusInterviewScheduled,
	StatusInterviewDone,
	StatusOfferReceived,
	StatusRejected,
	StatusWithdrawn,
}

// IsValid reports whether s belongs to the vocabulary. The match is exact.
func (s Status) IsValid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

func (s Status) String() string { return string(s) }

// ParseStatus returns the vocabulary entry equal to s, ignoring case and
// surrounding blanks. Anything else yields ErrInvalidStatus.
func ParseStatus(s string) (Status, error) {
	s = strings.TrimSpace(s)
	for _, v := range Statuses {
		if strings.EqualFold(s, string(v)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", common.ErrInvalidStatus, s)
}

// Application is one tracked job application. It has no identity of its own:
// it is addressed by its position within the owner's collection.
type Application struct {
	CompanyName string     `json:"company_name"`
	JobTitle    string     `json:"job_title"`
	Status      Status     `json:"status"`
	AppliedDate civil.Date `json:"applied_date"`
	Package     string     `json:"package"`
}

// Validate checks the mandatory fields and the status vocabulary.
func (a Application) Validate() error {
	if strings.TrimSpace(a.CompanyName) == "" {
		return fmt.Errorf("%w: company name", common.ErrMissingRequiredField)
	}
	if strings.TrimSpace(a.JobTitle) == "" {
		return fmt.Errorf("%w: job title", common.ErrMissingRequiredField)
	}
	if !a.Status.IsValid() {
		return fmt.Errorf("%w: %q", common.ErrInvalidStatus, a.Status)
	}
	if !a.AppliedDate.IsValid() {
		return fmt.Errorf("%w: applied date", common.ErrMissingRequiredField)
	}
	return nil
}

// ValidateAll validates every record and reports the first failure with its
// 1-based position.
func ValidateAll(apps []Application) error {
	for i, a := range apps {
		if err := a.Validate(); err != nil {
			return fmt.Errorf("record %d: %w", i+1, err)
		}
	}
	return nil
}

// Clone returns a copy of apps that never aliases the input. A nil input
// yields an empty, non-nil slice.
func Clone(apps []Application) []Application {
	out := make([]Application, len(apps))
	copy(out, apps)
	return out
}
