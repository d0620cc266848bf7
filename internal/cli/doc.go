// Package cli provides the interactive jobkeeper command-line client.
//
// It wires configuration, storage and the account services into a simple
// read–eval–print loop. Anonymous users can register and log in; once
// logged in they can add, list, search, edit and delete job applications,
// see their counters, reload from storage and clear everything after an
// explicit confirmation.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits
// or input ends.
package cli
