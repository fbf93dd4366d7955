// Package server exposes the card pipeline over HTTP.
//
// Routes:
//
//	GET  /health/live
//	GET  /api/card/{owner}/{repo}      card JSON, optional ?ref=
//	GET  /api/card/{owner}/{repo}/*    card JSON for an explicit .md path
//	GET  /card/{owner}/{repo}          themed HTML page, optional ?ref= and ?theme=
//	GET  /card/{owner}/{repo}/*        themed HTML page for an explicit .md path
//	POST /api/render                   Markdown body in, sanitized HTML out
//
// Errors are JSON objects of the form {"error": "CODE"}.
package server
