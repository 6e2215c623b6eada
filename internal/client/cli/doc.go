// Package cli implements the interactive flixcli terminal client: a
// small REPL over the auth, catalog, favorites, and profile services.
// All state consistency logic lives in the services; this package only
// reads input, dispatches commands, and prints results.
package cli
