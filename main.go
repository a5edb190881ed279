// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	// Embedded zone database for hosts without /usr/share/zoneinfo
	_ "time/tzdata"

	"github.com/danielhkuo/hydrate/cmd"
)

func main() {
	cmd.Execute()
}
