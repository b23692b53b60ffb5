package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type openSelectionRequest struct {
	BusID      string `json:"busId"`
	Date       string `json:"date"`
	Passengers int    `json:"passengers"`
}

// POST /api/selections
func (a *API) OpenSelection(c *gin.Context) {
	var req openSelectionRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	sel, err := a.Selections.Open(c.Request.Context(), req.BusID, req.Date, req.Passengers)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sel)
}

// GET /api/selections/:id
func (a *API) GetSelection(c *gin.Context) {
	sel, err := a.Selections.Get(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, sel)
}

// POST /api/selections/:id/seats/:index/toggle
func (a *API) ToggleSeat(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "seat index must be a number", err)
		return
	}
	sel, err := a.Selections.Toggle(c.Param("id"), index)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, sel)
}

// DELETE /api/selections/:id
func (a *API) CloseSelection(c *gin.Context) {
	a.Selections.Close(c.Param("id"))
	c.Status(http.StatusNoContent)
}
