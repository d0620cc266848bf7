package cli

import (
	"context"
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/dmitrijs2005/jobkeeper/internal/common"
	"github.com/dmitrijs2005/jobkeeper/internal/models"
)

// Add prompts for a new application and stores it.
func (a *App) Add(ctx context.Context) error {
	if !a.session.Authenticated() {
		return common.ErrNotAuthenticated
	}

	app, err := a.readApplication(models.Application{
		Status:      models.StatusApplied,
		AppliedDate: civil.DateOf(a.now()),
	})
	if err != nil {
		return err
	}

	ctx, cancel := a.storageCtx(ctx)
	defer cancel()

	if err := a.session.Add(ctx, app); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Application added!")
	return nil
}

// clearMarker blanks an optional field in the edit form.
const clearMarker = "-"

// readApplication prompts for every field. Empty answers keep the values of
// cur, so the same form serves add and edit.
func (a *App) readApplication(cur models.Application) (models.Application, error) {
	var (
		next = cur
		err  error
		s    string
	)

	if s, err = getSimpleText(a.reader, promptWithCurrent("Company name", cur.CompanyName), a.out); err != nil {
		return next, err
	}
	next.CompanyName = withDefault(s, cur.CompanyName)

	if s, err = getSimpleText(a.reader, promptWithCurrent("Job title", cur.JobTitle), a.out); err != nil {
		return next, err
	}
	next.JobTitle = withDefault(s, cur.JobTitle)

	if next.Status, err = GetStatus(a.reader, cur.Status, a.out); err != nil {
		return next, err
	}

	if next.AppliedDate, err = GetDate(a.reader, "Applied date (YYYY-MM-DD)", cur.AppliedDate, a.out); err != nil {
		return next, err
	}

	prompt := "Package/salary"
	if cur.Package != "" {
		prompt = fmt.Sprintf("%s [%s, %s to clear]", prompt, cur.Package, clearMarker)
	}
	if s, err = getSimpleText(a.reader, prompt, a.out); err != nil {
		return next, err
	}
	if s == clearMarker {
		next.Package = ""
	} else {
		next.Package = withDefault(s, cur.Package)
	}

	return next, nil
}

func promptWithCurrent(prompt, cur string) string {
	if cur == "" {
		return prompt
	}
	return fmt.Sprintf("%s [%s]", prompt, cur)
}
