// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package pages renders the three browser pages from embedded templates.

	GET /                 → Landing: seed, then pick a name
	GET /dashboard        → Dashboard: everyone's progress today
	GET /user/{id}        → UserDetail: slider, goal, history chart
	GET /user/{id}/chart  → Chart: day points as JSON
	GET /static/...       → Static: app.js and app.css

The server renders the first view of each page. static/app.js then keeps
the page live: the chosen user lives in localStorage["currentUser"], the
dashboard re-polls /api/today-intake on the configured refresh interval,
and the detail page posts slider deltas and goal edits to the JSON API.

The dashboard sends a visitor with no chosen user back to the landing page.
*/
package pages
