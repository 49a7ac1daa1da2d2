// Package http wires the admin panel's domain modules into one gin server.
package http

import (
	"labportal_backend/platform/config"
	"labportal_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Module is a domain module (auth, catalog, suppliers, clients, quotes)
// that mounts its own routes. The router stays ignorant of individual
// endpoints; it only hands each module a RouterContext.
type Module interface {
	// Name identifies the module in startup logs.
	Name() string
	RegisterRoutes(ctx *RouterContext)
}

// RouterContext carries the shared route groups and middleware a module
// needs when mounting itself.
type RouterContext struct {
	Engine *gin.Engine
	// V1 is the public /api/v1 group; Protected is the same group behind
	// the JWT middleware.
	V1        *gin.RouterGroup
	Protected *gin.RouterGroup
	Config    config.JWTConfig
	// AuthMiddleware validates the access token for protected routes.
	AuthMiddleware gin.HandlerFunc
	// AuthRateLimiter throttles the credential endpoints harder than the
	// rest of the API.
	AuthRateLimiter *httpkit.AuthRateLimiter
}
