package handlers

import (
	"net/http"
	"time"

	"busyatra/internal/domain/models"
	"busyatra/internal/http/middleware"
	"busyatra/internal/services"
	"busyatra/internal/utils"

	"github.com/gin-gonic/gin"
)

// POST /api/bookings
func (a *API) CreateBooking(c *gin.Context) {
	var req services.CheckoutRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	b, err := a.Checkout.Checkout(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEventf(middleware.GetRequestID(c), "booking", "checkout", "id=%s bus=%s seats=%d", b.ID, b.BusID, len(b.Seats))
	c.JSON(http.StatusCreated, b)
}

// GET /api/bookings?q=&status=&sort=
func (a *API) ListBookings(c *gin.Context) {
	list, err := a.bookings(c).Query(c.Request.Context(), models.BookingFilter{
		Query:  c.Query("q"),
		Status: models.BookingStatus(c.Query("status")),
		Sort:   c.Query("sort"),
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": list, "count": len(list)})
}

// GET /api/bookings/stats
func (a *API) BookingStats(c *gin.Context) {
	st := a.bookings(c).Stats(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"stats":              st,
		"totalSpentLabel":    utils.FormatRupees(st.TotalSpent),
		"averageAmountLabel": utils.FormatRupees(st.AverageAmount),
	})
}

// GET /api/bookings/:id
func (a *API) GetBooking(c *gin.Context) {
	svc := a.bookings(c)
	b, err := svc.Find(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"booking":      b,
		"duration":     utils.Duration(b.DepartureTime, b.ArrivalTime),
		"amountLabel":  utils.FormatRupees(b.TotalAmount),
		"cancellation": services.QuoteCancellation(b, a.now(), svc.Location),
	})
}

// GET /api/bookings/:id/cancellation
func (a *API) CancellationQuote(c *gin.Context) {
	svc := a.bookings(c)
	b, err := svc.Find(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, services.QuoteCancellation(b, a.now(), svc.Location))
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

// POST /api/bookings/:id/cancel
func (a *API) CancelBooking(c *gin.Context) {
	var req cancelRequest
	if c.Request.ContentLength > 0 && !BindJSONOrError(c, &req) {
		return
	}
	b, quote, err := a.bookings(c).CancelWithRefund(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b, "refund": quote})
}

func (a *API) now() time.Time {
	if a.Bookings.Now != nil {
		return a.Bookings.Now()
	}
	return time.Now()
}
