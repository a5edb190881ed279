// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package intake holds the date and progress arithmetic shared by the API and
the pages.

# Days

A day runs from local midnight to the next local midnight in the configured
zone:

	start, end := intake.DayWindow(time.Now(), loc)   // [start, end)

# Progress

	intake.Progress(1500, 3000) // 50
	intake.Progress(4500, 3000) // 100, never more

# Slider

The add-water slider snaps to 50 ml and reaches goal+1000. Only a positive
move is logged:

	amount, ok := intake.Pending(slider, today)
	if !ok {
		return // lowering the slider cannot remove water
	}

# Charts

ChartRange returns the last seven days or month-to-date; Buckets turns logs
into one zero-filled point per calendar day labelled "Jan 2".
*/
package intake
