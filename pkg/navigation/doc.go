// Package navigation decides whether an inbound HTTP request is a real page
// navigation that should start a new analytics session.
//
// Modern browsers send Fetch Metadata headers (Sec-Fetch-Mode, Sec-Fetch-Dest)
// that page script cannot forge. When they are present they fully decide the
// outcome: only a top-level document navigation that is not a prefetch or
// prerender counts.
//
// Older browsers, bots and proxies that strip those headers fall back to a
// denylist of partial-page markers sent by front-end frameworks (Turbo frames,
// htmx, Unpoly and the classic X-Requested-With: XMLHttpRequest). Anything not
// on the denylist is treated as navigation: an extra session is cheaper than a
// lost one.
//
// The denylist is extensible:
//
//	c := navigation.New(navigation.WithMarker("X-Inertia", ""))
//	if c.IsNavigation(r.Header) { ... }
package navigation
