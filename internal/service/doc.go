// Package service provides application-level services for managing card
// sets and study statistics. Services validate input, enforce ownership,
// and coordinate store operations, wrapping unexpected failures in
// operation-tagged error types the API layer can translate to status codes.
package service
