// Package server exposes the lyric analyzer over HTTP.
//
// Routes:
//
//	GET  /         service banner
//	POST /analyze  analyze {"lyrics": "..."}, rate limited per client IP
//	GET  /health   component health, 503 when the transcriber self-test fails
//
// Every request passes through panic recovery, request IDs, request
// logging and CORS.
package server
