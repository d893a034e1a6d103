package api

// Package api is the HTTP client for the video-generation server: the
// multipart generate call and the JSON progress endpoint.
