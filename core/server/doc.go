// Package server holds the HTTP server configuration.
//
// The serve command handles the actual server startup; this package
// only defines the configuration structure embedded by core/config:
// the listen port and the optional API key guarding the routes.
package server
