// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Hydrate server.

Hydrate is a small multi-user water intake tracker: pick who you are, log
the water you drink, watch everyone's progress toward their daily goal and
browse your history as a bar chart.

# Starting the Server

With no subcommand the binary serves HTTP:

	DATABASE_URL=hydrate.db go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..."

Operational subcommands:

	go run . migrate   # apply database migrations and exit
	go run . seed      # insert the default roster when the store is empty
	go run . version

# Configuration

  - DATABASE_URL (-d): connection string (sqlite file path or postgres URL)
  - DATABASE_TYPE (-t): sqlite (default), postgres or memory
  - PORT (-p): server port (default: 3318)
  - TZ_NAME (--timezone): zone that defines "today" (default: Local)
  - RATE_LIMIT (--rate-limit): per-IP API rate such as 100-M, or "off"
  - LOG_LEVEL, LOG_FORMAT: slog level and text or json output
  - CONFIG_FILE (-c): optional YAML file with the same settings

A missing DATABASE_URL is logged but does not stop the server; every
query then fails until the server is restarted with a database.

# Architecture

  - cmd: cobra commands, store lifecycle, graceful shutdown
  - cliparse: flags, environment, .env and YAML configuration
  - db: driver selection and goose migrations
  - store: persistence interface with SQL and in-memory implementations
  - intake: day windows, progress, slider and chart calculations
  - handlers: the /api/ endpoints
  - pages: server-rendered landing, dashboard and user pages
  - middleware: logging, recovery, JSON helpers, CORS, metrics, rate limits
  - router: route wiring
  - models: request/response and domain types

See package documentation for each component.
*/
package main
