// Package handler exposes HTTP handlers for the lateshow API.  This file
// defines the episode read endpoints.  Episodes are created out of band
// (seed data); the API only lists and shows them.
package handler

import (
    "errors"   // errors provides Is comparisons against repository sentinels
    "net/http" // HTTP status codes

    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/lateshow/lateshow-api/internal/repository" // repository layer
)

// ListEpisodes handles GET /episodes and returns every episode as a flat
// JSON array ordered by insertion.  Appearances are never nested here.
func (h *APIHandler) ListEpisodes(c echo.Context) error {
    episodes, err := h.EpisodeRepo.ListAll(c.Request().Context()) // fetch all episodes
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"}) // respond with internal server error
    }
    out := make([]EpisodeView, 0, len(episodes)) // empty table serializes as [] rather than null
    for i := range episodes {
        out = append(out, episodeView(&episodes[i]))
    }
    return c.JSON(http.StatusOK, out) // return the flat list
}

// GetEpisode handles GET /episodes/:id and returns the episode scalars plus
// its appearances, each reduced to id, guest name and role.  A missing row
// yields the fixed 404 body {"error": "Show not found"}.
func (h *APIHandler) GetEpisode(c echo.Context) error {
    id, ok := pathID(c) // parse the episode ID from the URL
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"}) // invalid ID error response
    }
    ctx := c.Request().Context()
    episode, err := h.EpisodeRepo.GetByID(ctx, id) // look the episode up
    if err != nil {
        if errors.Is(err, repository.ErrEpisodeNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "Show not found"}) // fixed not-found message
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    rows, err := h.AppearanceRepo.ListByEpisode(ctx, id) // fetch appearances joined with guest names
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    entries := make([]AppearanceEntry, 0, len(rows)) // no-appearance episodes serialize as []
    for _, row := range rows {
        entries = append(entries, AppearanceEntry{ID: row.ID, GuestName: row.GuestName, Role: row.Role})
    }
    detail := EpisodeDetail{
        ID:          episode.ID,
        Date:        nullStr(episode.Date),
        Number:      nullStr(episode.Number),
        Appearances: entries,
    }
    return c.JSON(http.StatusOK, detail) // return the detail view
}
