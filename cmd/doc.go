// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cmd holds the cobra commands.

	hydrate            serve (same as "hydrate serve")
	hydrate migrate    apply migrations and exit
	hydrate seed       insert the default roster into an empty store
	hydrate version

Configuration flags are persistent on the root command and resolved by
cliparse before any subcommand runs. Serve owns the store: it is opened and
migrated once, handed to the router, and closed after the HTTP server has
drained on SIGINT or SIGTERM.
*/
package cmd
