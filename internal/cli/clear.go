package cli

import (
	"context"
	"fmt"
)

// Clear deletes every application of the current user. It arms the session
// first and only confirms after an explicit "yes".
func (a *App) Clear(ctx context.Context) error {
	if err := a.session.RequestClear(); err != nil {
		return err
	}

	st, err := a.session.Stats()
	if err != nil {
		return err
	}

	ok, err := GetConfirmation(a.reader,
		fmt.Sprintf("Are you sure you want to delete ALL %d application(s)?", st.Total), a.out)
	if err != nil || !ok {
		_ = a.session.CancelClear()
		if err == nil {
			fmt.Fprintln(a.out, "Cancelled.")
		}
		return err
	}

	ctx, cancel := a.storageCtx(ctx)
	defer cancel()

	if err := a.session.ConfirmClear(ctx); err != nil {
		_ = a.session.CancelClear()
		return err
	}
	fmt.Fprintln(a.out, "All applications deleted.")
	return nil
}

// Refresh reloads the applications from storage.
func (a *App) Refresh(ctx context.Context) error {
	ctx, cancel := a.storageCtx(ctx)
	defer cancel()

	if err := a.session.Refresh(ctx); err != nil {
		return err
	}
	st, err := a.session.Stats()
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Reloaded %d application(s).\n", st.Total)
	return nil
}
