package handlers

import (
	"busyatra/internal/http/middleware"
	"busyatra/internal/repositories"
	"busyatra/internal/services"

	"github.com/gin-gonic/gin"
)

// API holds the services behind the HTTP routes.
type API struct {
	StoreDriver string

	Search     services.SearchService
	Bookings   services.BookingService
	Selections *services.SelectionService
	Checkout   *services.CheckoutService

	History     repositories.SearchHistoryRepo
	Preferences repositories.PreferencesRepo
	Drafts      repositories.PassengerDraftRepo

	router *gin.Engine
}

// SetRouter records the engine for the /routes listing.
func (a *API) SetRouter(r *gin.Engine) { a.router = r }

// bookings returns the booking service tagged with the request id.
func (a *API) bookings(c *gin.Context) services.BookingService {
	s := a.Bookings
	s.RequestID = middleware.GetRequestID(c)
	return s
}
