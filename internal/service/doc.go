// Package service provides the application-level quiz service: session
// lifecycle, countdown timers, scoring and certificate issuance.
package service
