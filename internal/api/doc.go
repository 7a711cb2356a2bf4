// Package api contains the HTTP handlers for the REST surface: account
// registration and login, card set management, and study statistics.
// Handlers decode and validate requests, call services, and translate
// errors to sanitized JSON responses.
package api
