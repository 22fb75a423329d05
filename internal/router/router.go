package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/lateshow/lateshow-api/internal/handler" // import the handlers that implement business logic
)

// RegisterRoutes registers every route of the API on the provided Echo
// instance.  The surface is small: two plain-text liveness endpoints, read
// endpoints for episodes and guests, guest create/patch, and appearance
// creation.  There are no delete routes anywhere; records other than
// guests are immutable once created.
func RegisterRoutes(e *echo.Echo, h *handler.APIHandler) {
	// The root path serves the API banner; /healthz is the conventional
	// target for load balancers and monitoring systems.
	e.GET("/", handler.Home)
	e.GET("/healthz", handler.Health)

	// Episode read endpoints.  The list is flat; the detail nests the
	// episode's appearances.
	e.GET("/episodes", h.ListEpisodes)
	e.GET("/episodes/:id", h.GetEpisode)

	// Guest endpoints.  Guests are the only entity supporting updates,
	// via an enumerated PATCH body.
	e.GET("/guests", h.ListGuests)
	e.POST("/guests", h.CreateGuest)
	e.GET("/guests/:id", h.GetGuest)
	e.PATCH("/guests/:id", h.PatchGuest)

	// Appearance creation links a guest to an episode.
	e.POST("/appearances", h.CreateAppearance)
}
