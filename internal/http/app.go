// Package http wires the admin panel's domain modules into one gin server.
package http

import (
	"context"

	"labportal_backend/internal/events"
	"labportal_backend/platform/config"
	"labportal_backend/platform/logger"
)

// RouterConfig is the slice of configuration the router needs: the listen
// settings plus the JWT secrets for the auth middleware.
type RouterConfig interface {
	config.HTTPConfig
	config.JWTConfig
}

// HealthChecker backs the readiness endpoint, usually with a DB ping.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// App bundles everything the router needs. main.go builds it once all
// modules are initialized.
type App struct {
	Config   RouterConfig
	Logger   *logger.Logger
	Health   HealthChecker
	EventBus events.Bus
	// Modules lists the HTTP-facing domain modules in mount order.
	Modules []Module
}
