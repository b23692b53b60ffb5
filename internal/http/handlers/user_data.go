package handlers

import (
	"net/http"

	"busyatra/internal/domain"
	"busyatra/internal/domain/models"
	"busyatra/internal/http/middleware"
	"busyatra/internal/services"
	"busyatra/internal/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/search-history
func (a *API) ListSearchHistory(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"searches": a.History.List(c.Request.Context())})
}

// POST /api/search-history
func (a *API) SaveSearch(c *gin.Context) {
	var entry models.SearchHistoryEntry
	if !BindJSONOrError(c, &entry) {
		return
	}
	entry.From, entry.To = utils.NormalizeSpace(entry.From), utils.NormalizeSpace(entry.To)
	if entry.From == "" || entry.To == "" {
		RespondDomainError(c, domain.ValidationError{Field: "route", Msg: "from and to required"})
		return
	}
	if entry.Passengers <= 0 {
		entry.Passengers = 1
	}
	if entry.Timestamp == 0 {
		entry.Timestamp = a.now().UnixMilli()
	}
	if err := a.History.Save(c.Request.Context(), entry); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// GET /api/preferences
func (a *API) GetPreferences(c *gin.Context) {
	c.JSON(http.StatusOK, a.Preferences.Get(c.Request.Context()))
}

// PUT /api/preferences merges the fields present in the body.
func (a *API) UpdatePreferences(c *gin.Context) {
	var upd models.PreferencesUpdate
	if !BindJSONOrError(c, &upd) {
		return
	}
	if upd.Theme != nil && *upd.Theme != models.ThemeLight && *upd.Theme != models.ThemeDark {
		RespondDomainError(c, domain.ValidationError{Field: "theme", Msg: "must be light or dark"})
		return
	}
	prefs, err := a.Preferences.Save(c.Request.Context(), upd)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}

// GET /api/passenger-draft
func (a *API) GetPassengerDraft(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"passengers": a.Drafts.Get(c.Request.Context())})
}

type draftRequest struct {
	Passengers []models.PassengerInfo `json:"passengers"`
}

// PUT /api/passenger-draft replaces the whole draft. Entries may be partial.
func (a *API) SavePassengerDraft(c *gin.Context) {
	var req draftRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if len(req.Passengers) > services.MaxPassengers {
		RespondDomainError(c, domain.ValidationError{Field: "passengers", Msg: "at most 6 passengers"})
		return
	}
	if err := a.Drafts.Save(c.Request.Context(), req.Passengers); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"passengers": req.Passengers})
}

// DELETE /api/data clears every stored collection.
func (a *API) ClearData(c *gin.Context) {
	err := services.ClearAll(c.Request.Context(), a.Bookings.Bookings, a.History, a.Preferences, a.Drafts)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "data", "clear", "all collections removed")
	c.Status(http.StatusNoContent)
}
