package handler // handler defines http handlers

import (
    "database/sql" // sql provides the NullString/NullInt32 helpers mapped into views
    "strconv"      // strconv converts path parameters to numeric types

    "github.com/labstack/echo/v4" // echo defines request context types

    "github.com/lateshow/lateshow-api/internal/repository" // repository holds the data access layer
)

// APIHandler bundles the repositories behind every endpoint of the API.
// Handlers are stateless: all per-request data lives in the echo.Context
// and every database dependency is injected here at startup.
type APIHandler struct {
    EpisodeRepo    *repository.EpisodeRepo    // EpisodeRepo provides episode persistence
    GuestRepo      *repository.GuestRepo      // GuestRepo provides guest persistence
    AppearanceRepo *repository.AppearanceRepo // AppearanceRepo provides appearance persistence
}

// NewAPIHandler constructs a new APIHandler and panics if any dependency is nil
func NewAPIHandler(episodeRepo *repository.EpisodeRepo, guestRepo *repository.GuestRepo, appearanceRepo *repository.AppearanceRepo) *APIHandler {
    if episodeRepo == nil || guestRepo == nil || appearanceRepo == nil { // check for nil dependencies
        panic("nil repository passed to NewAPIHandler") // panic when a repository is missing
    }
    return &APIHandler{
        EpisodeRepo:    episodeRepo,    // assign episode repository
        GuestRepo:      guestRepo,      // assign guest repository
        AppearanceRepo: appearanceRepo, // assign appearance repository
    }
}

// pathID parses the :id path parameter into a uint64.  Any integer is
// accepted, including 0: an id with no row behind it yields the entity's
// not-found response from the lookup, same as every other absent id.
func pathID(c echo.Context) (uint64, bool) {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return 0, false
    }
    return id, true
}

// nullStr converts a sql.NullString into a *string so that absent values
// serialize as JSON null rather than "".
func nullStr(ns sql.NullString) *string {
    if !ns.Valid {
        return nil
    }
    v := ns.String
    return &v
}

// nullInt converts a sql.NullInt32 into a *int32 for the same reason.
func nullInt(ni sql.NullInt32) *int32 {
    if !ni.Valid {
        return nil
    }
    v := ni.Int32
    return &v
}
