package handlers

import (
	"net/http"

	"busyatra/internal/domain/models"
	"busyatra/internal/seating"
	"busyatra/internal/utils"

	"github.com/gin-gonic/gin"
)

type busView struct {
	models.Bus
	Duration       string `json:"duration"`
	DepartureLabel string `json:"departureLabel"`
	ArrivalLabel   string `json:"arrivalLabel"`
	PriceLabel     string `json:"priceLabel"`
}

func newBusView(b models.Bus) busView {
	return busView{
		Bus:            b,
		Duration:       utils.Duration(b.DepartureTime, b.ArrivalTime),
		DepartureLabel: utils.FormatClock12(b.DepartureTime),
		ArrivalLabel:   utils.FormatClock12(b.ArrivalTime),
		PriceLabel:     utils.FormatRupees(b.Price),
	}
}

// GET /api/buses?from=&to=&date=&passengers=&busType=&departureTime=&priceRange=&rating=&sort=
func (a *API) SearchBuses(c *gin.Context) {
	criteria := models.SearchCriteria{
		From:          c.Query("from"),
		To:            c.Query("to"),
		Date:          c.Query("date"),
		Passengers:    queryInt(c, "passengers", 1),
		BusType:       c.Query("busType"),
		DepartureTime: c.Query("departureTime"),
		PriceRange:    c.Query("priceRange"),
		MinRating:     c.Query("rating"),
	}
	buses, err := a.Search.Search(c.Request.Context(), criteria, c.Query("sort"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	out := make([]busView, 0, len(buses))
	for _, b := range buses {
		out = append(out, newBusView(b))
	}
	c.JSON(http.StatusOK, gin.H{"buses": out, "count": len(out)})
}

// GET /api/buses/:id?date=
func (a *API) GetBus(c *gin.Context) {
	bus, err := a.Search.Bus(c.Request.Context(), c.Param("id"), c.Query("date"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"bus":  newBusView(bus),
		"rows": seating.Grid(bus.SeatLayout),
	})
}
