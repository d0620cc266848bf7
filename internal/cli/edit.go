package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/jobkeeper/internal/models"
)

// Edit changes one application, chosen by its number in the list.
func (a *App) Edit(ctx context.Context, args []string) error {
	recs, idx, err := a.pickRecord(args, "Number of the application to edit")
	if err != nil {
		return err
	}

	updated, err := a.readApplication(recs[idx])
	if err != nil {
		return err
	}
	recs[idx] = updated

	ctx, cancel := a.storageCtx(ctx)
	defer cancel()

	if err := a.session.ApplyEdits(ctx, recs); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Changes saved!")
	return nil
}

// Delete removes one application after confirmation.
func (a *App) Delete(ctx context.Context, args []string) error {
	recs, idx, err := a.pickRecord(args, "Number of the application to delete")
	if err != nil {
		return err
	}

	app := recs[idx]
	ok, err := GetConfirmation(a.reader, fmt.Sprintf("Delete %s - %s?", app.CompanyName, app.JobTitle), a.out)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}

	recs = append(recs[:idx], recs[idx+1:]...)

	ctx, cancel := a.storageCtx(ctx)
	defer cancel()

	if err := a.session.ApplyEdits(ctx, recs); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Application deleted.")
	return nil
}

// pickRecord returns a copy of the snapshot and the 0-based index of the
// record the user chose, either from args or from a prompt.
func (a *App) pickRecord(args []string, prompt string) ([]models.Application, int, error) {
	recs, err := a.session.Records()
	if err != nil {
		return nil, 0, err
	}

	var s string
	if len(args) > 0 {
		s = args[0]
	} else {
		if s, err = getSimpleText(a.reader, prompt, a.out); err != nil {
			return nil, 0, err
		}
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %q", errInvalidNumber, s)
	}
	if n < 1 || n > len(recs) {
		return nil, 0, fmt.Errorf("%w: %d", errNoSuchRecord, n)
	}
	return recs, n - 1, nil
}
