// Package handler exposes HTTP handlers for the lateshow API.  This file
// defines appearance creation, the one write that touches relationships.
// The handler validates the rating before persistence, verifies both
// foreign keys inside the same transaction as the insert, and rolls the
// transaction back on any failure so the store never observes a partial
// appearance.
package handler

import (
    "context"      // context gives the async publisher a lifetime past the request
    "database/sql" // sql provides NullInt32 for the optional rating
    "errors"       // errors provides Is comparisons against repository sentinels
    "fmt"          // fmt formats the per-field missing messages
    "log"          // log records unexpected persistence failures
    "net/http"     // HTTP status codes
    "time"         // time stamps the published event

    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/lateshow/lateshow-api/internal/queue"                   // queue defines the published event payload
    "github.com/lateshow/lateshow-api/internal/repository"              // repository layer
    queue_publisher "github.com/lateshow/lateshow-api/internal/service" // publishes domain events to the broker
)

// CreateAppearance handles POST /appearances.  Required fields are role,
// guest_id and episode_id; rating is optional and validated against the
// 1..5 range when present.  On success it responds 201 with the appearance
// scalars plus one level of nested guest and episode, neither of which
// carries an appearances collection.
func (h *APIHandler) CreateAppearance(c echo.Context) error {
    var body struct { // pointers distinguish absent fields from zero values
        Role      *string `json:"role"`       // capacity the guest appeared in
        Rating    *int32  `json:"rating"`     // optional 1..5 score
        GuestID   *uint64 `json:"guest_id"`   // referenced guest row
        EpisodeID *uint64 `json:"episode_id"` // referenced episode row
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"errors": []string{"invalid request body"}})
    }

    // Fail fast on the rating constraint.  A supplied rating is checked
    // before required-field presence: a client that sent an out-of-range
    // rating gets told about the bad value, not about other keys it left
    // out.  No transaction is started either way.
    if err := repository.ValidateRating(body.Rating); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"errors": []string{err.Error()}})
    }

    // Collect every missing required field so the client sees them all at once.
    var missing []string
    if body.Role == nil {
        missing = append(missing, "role")
    }
    if body.GuestID == nil {
        missing = append(missing, "guest_id")
    }
    if body.EpisodeID == nil {
        missing = append(missing, "episode_id")
    }
    if len(missing) > 0 {
        msgs := make([]string, 0, len(missing))
        for _, f := range missing {
            msgs = append(msgs, fmt.Sprintf("Missing field: %s", f))
        }
        return c.JSON(http.StatusBadRequest, echo.Map{"errors": msgs})
    }

    ctx := c.Request().Context()
    tx, err := h.AppearanceRepo.DB().BeginTx(ctx, nil)
    if err != nil {
        log.Printf("create appearance begin tx: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"errors": []string{"An error occurred while creating Appearance"}})
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback() // roll back anything uncommitted on the way out
        }
    }()

    // Resolve both foreign keys inside the transaction so the insert sees
    // the same rows the checks did.
    guest, err := h.GuestRepo.GetByIDTx(ctx, tx, *body.GuestID)
    if err != nil && !errors.Is(err, repository.ErrGuestNotFound) {
        log.Printf("create appearance guest lookup: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"errors": []string{"An error occurred while creating Appearance"}})
    }
    episode, epErr := h.EpisodeRepo.GetByIDTx(ctx, tx, *body.EpisodeID)
    if epErr != nil && !errors.Is(epErr, repository.ErrEpisodeNotFound) {
        log.Printf("create appearance episode lookup: %v", epErr)
        return c.JSON(http.StatusInternalServerError, echo.Map{"errors": []string{"An error occurred while creating Appearance"}})
    }
    if guest == nil || episode == nil { // either reference failed to resolve
        return c.JSON(http.StatusBadRequest, echo.Map{"errors": []string{"Invalid 'guest_id' or 'episode_id'"}})
    }

    appearance := &repository.Appearance{
        Role:      *body.Role,
        GuestID:   guest.ID,
        EpisodeID: episode.ID,
    }
    if body.Rating != nil {
        appearance.Rating = sql.NullInt32{Int32: *body.Rating, Valid: true}
    }
    if err := h.AppearanceRepo.CreateTx(ctx, tx, appearance); err != nil {
        log.Printf("create appearance insert: %v", err) // log the cause, clients get the generic body
        return c.JSON(http.StatusInternalServerError, echo.Map{"errors": []string{"An error occurred while creating Appearance"}})
    }
    if err := tx.Commit(); err != nil {
        log.Printf("create appearance commit: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"errors": []string{"An error occurred while creating Appearance"}})
    }
    committed = true

    // Publish the domain event after the commit; a broker outage must not
    // fail a request that already persisted.
    event := queue.AppearanceCreatedEvent{
        AppearanceID:  appearance.ID,
        GuestID:       guest.ID,
        EpisodeID:     episode.ID,
        GuestName:     guest.Name,
        EpisodeNumber: episode.Number.String,
        Role:          appearance.Role,
        Rating:        nullInt(appearance.Rating),
        CreatedAt:     time.Now().UTC().Format(time.RFC3339),
    }
    go func() {
        // The request context ends with the response; give the publisher its own.
        pubCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
        defer cancel()
        _ = queue_publisher.PublishAppearanceCreated(pubCtx, event) // errors are logged inside the publisher
    }()

    resp := AppearanceCreated{
        ID:        appearance.ID,
        Role:      appearance.Role,
        Rating:    nullInt(appearance.Rating),
        GuestID:   guest.ID,
        EpisodeID: episode.ID,
        Guest:     guestView(guest),     // nested guest, appearances suppressed
        Episode:   episodeView(episode), // nested episode, appearances suppressed
    }
    return c.JSON(http.StatusCreated, resp)
}
