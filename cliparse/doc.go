// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

The cobra root command binds the same flags with BindFlags and calls
Resolve before running a subcommand.

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: sqlite path or PostgreSQL connection string
  - DatabaseType: sqlite (default), postgres or memory
  - Timezone: IANA zone that defines "today" (default: Local)
  - RefreshInterval: Dashboard polling interval (default: 30s)
  - RateLimit: Per-IP API rate, e.g. "100-M" (default), "off" disables
  - LogLevel / LogFormat: slog level and text/json handler

# CLI Flags

	-p, --port             Server port
	-d, --database-url     Database URL
	-t, --database-type    sqlite, postgres or memory
	    --timezone         Zone for day boundaries
	    --refresh-interval Dashboard refresh interval
	    --rate-limit       Per-IP API rate
	    --log-level        debug, info, warn, error
	    --log-format       text or json
	-c, --config           YAML config file

# Environment Variables

Flags fall back to environment variables. A .env file in the working
directory is loaded first and never overrides variables already set:

	PORT             → -p
	DATABASE_URL     → -d
	DATABASE_TYPE    → -t
	TZ_NAME          → --timezone
	REFRESH_INTERVAL → --refresh-interval (bare numbers are seconds)
	RATE_LIMIT       → --rate-limit
	LOG_LEVEL        → --log-level
	LOG_FORMAT       → --log-format
	CONFIG_FILE      → -c

# Config File

Anything still unset is read from the YAML file:

	port: 3318
	database_type: postgres
	database_url: postgres://hydrate@localhost/hydrate?sslmode=disable
	timezone: Asia/Kolkata
	refresh_interval: 30s

Precedence: flags, then environment, then file, then defaults.

# Validation

ParseFlags returns an error for an unknown database type, an unknown
timezone, a non-positive refresh interval or an unknown log level.
A missing DATABASE_URL is only logged: the server still starts and
every query fails until a database is configured.
*/
package cliparse
