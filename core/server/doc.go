// Package server holds the HTTP server configuration.
//
// While the main application entry point handles the server startup, this package
// defines the configuration structure and its validation helpers.
//
// # Configuration
//
// The Config struct defines the HTTP port and the API key protecting the
// request/reply endpoints.
package server
