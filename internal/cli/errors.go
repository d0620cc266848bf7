package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/jobkeeper/internal/common"
)

var (
	errPasswordMismatch = errors.New("passwords do not match")
	errNoSuchRecord     = errors.New("no such record")
	errInvalidNumber    = errors.New("not a record number")
)

// describe turns an error into a message for the user. Known sentinels get
// a fixed wording; anything else is shown as is.
func describe(err error) string {
	switch {
	case errors.Is(err, common.ErrIncompleteInput):
		return "please fill in all fields"
	case errors.Is(err, common.ErrWeakPassword):
		return "password must be at least 4 characters"
	case errors.Is(err, common.ErrDuplicateUsername):
		return "username already exists"
	case errors.Is(err, common.ErrInvalidCredentials):
		return "invalid username or password"
	case errors.Is(err, common.ErrNotAuthenticated):
		return "please log in first"
	case errors.Is(err, common.ErrMissingRequiredField):
		return "company name, job title and applied date are required (" + err.Error() + ")"
	case errors.Is(err, context.DeadlineExceeded):
		return "storage did not respond in time"
	}
	return err.Error()
}
