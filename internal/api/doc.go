// Package api implements the HTTP handlers for the quiz service: session
// lifecycle, the countdown websocket and the certificate history.
package api
