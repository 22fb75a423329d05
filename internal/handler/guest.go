// Package handler exposes HTTP handlers for the lateshow API.  This file
// defines the guest endpoints.  Guests are the only entity that supports
// updates after creation, via an enumerated PATCH body; unknown keys are
// rejected instead of being applied blindly.
package handler

import (
    "encoding/json" // json gives access to a strict decoder for PATCH bodies
    "errors"        // errors provides Is comparisons against repository sentinels
    "log"           // log records unexpected persistence failures
    "net/http"      // HTTP status codes
    "strings"       // strings offers trimming utilities

    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/lateshow/lateshow-api/internal/repository" // repository layer
)

// ListGuests handles GET /guests and returns every guest as a flat JSON
// array ordered by insertion.
func (h *APIHandler) ListGuests(c echo.Context) error {
    guests, err := h.GuestRepo.ListAll(c.Request().Context()) // fetch all guests
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]GuestView, 0, len(guests)) // empty table serializes as []
    for i := range guests {
        out = append(out, guestView(&guests[i]))
    }
    return c.JSON(http.StatusOK, out)
}

// GetGuest handles GET /guests/:id.  A missing row yields the fixed 404
// body {"error": "Guest not found"}.
func (h *APIHandler) GetGuest(c echo.Context) error {
    id, ok := pathID(c) // parse the guest ID from the URL
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    guest, err := h.GuestRepo.GetByID(c.Request().Context(), id)
    if err != nil {
        if errors.Is(err, repository.ErrGuestNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "Guest not found"}) // fixed not-found message
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, guestView(guest))
}

// CreateGuest handles POST /guests.  The body must carry both name and
// occupation keys; a missing key is a 400 with the errors list form.  The
// name must additionally be non-empty after trimming.  The insert runs in
// its own transaction so a failure never leaves a partial row behind.
func (h *APIHandler) CreateGuest(c echo.Context) error {
    var body struct { // anonymous struct to bind incoming JSON; pointers distinguish absent from empty
        Name       *string `json:"name"`       // Name is the guest's display name
        Occupation *string `json:"occupation"` // Occupation is the guest's profession
    }
    if err := c.Bind(&body); err != nil { // attempt to bind the request body
        return c.JSON(http.StatusBadRequest, echo.Map{"errors": []string{"invalid request body"}})
    }
    if body.Name == nil || body.Occupation == nil { // both keys are required on create
        return c.JSON(http.StatusBadRequest, echo.Map{"errors": []string{"Missing data fields"}})
    }
    name := strings.TrimSpace(*body.Name) // trim spaces around the guest name
    if name == "" {                       // the name must not be blank
        return c.JSON(http.StatusBadRequest, echo.Map{"errors": []string{repository.ErrEmptyName.Error()}})
    }
    guest := &repository.Guest{Name: name}
    guest.Occupation.String = *body.Occupation
    guest.Occupation.Valid = true

    ctx := c.Request().Context()
    tx, err := h.GuestRepo.DB().BeginTx(ctx, nil) // scope the write in a transaction
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"errors": []string{"An error occurred while creating Guest"}})
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback() // roll back anything uncommitted on the way out
        }
    }()
    if err := h.GuestRepo.CreateTx(ctx, tx, guest); err != nil {
        log.Printf("create guest: %v", err) // log the underlying cause, clients get the generic body
        return c.JSON(http.StatusInternalServerError, echo.Map{"errors": []string{"An error occurred while creating Guest"}})
    }
    if err := tx.Commit(); err != nil {
        log.Printf("create guest commit: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"errors": []string{"An error occurred while creating Guest"}})
    }
    committed = true
    return c.JSON(http.StatusCreated, guestView(guest)) // return 201 and the created guest
}

// PatchGuest handles PATCH /guests/:id.  The body is decoded strictly into
// the enumerated GuestPatch structure: keys other than name and occupation
// fail the request instead of being assigned.  Only the provided fields are
// written; patching with the stored values is a no-op on the row.
func (h *APIHandler) PatchGuest(c echo.Context) error {
    id, ok := pathID(c)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    ctx := c.Request().Context()
    if _, err := h.GuestRepo.GetByID(ctx, id); err != nil { // verify the guest exists before reading the body
        if errors.Is(err, repository.ErrGuestNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "Guest not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    var patch repository.GuestPatch
    dec := json.NewDecoder(c.Request().Body) // strict decode: echo's Bind would drop unknown keys silently
    dec.DisallowUnknownFields()
    if err := dec.Decode(&patch); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"errors": []string{err.Error()}}) // unknown key or malformed JSON
    }
    if patch.Name != nil { // a provided name must still be non-empty
        trimmed := strings.TrimSpace(*patch.Name)
        if trimmed == "" {
            return c.JSON(http.StatusBadRequest, echo.Map{"errors": []string{repository.ErrEmptyName.Error()}})
        }
        patch.Name = &trimmed
    }

    tx, err := h.GuestRepo.DB().BeginTx(ctx, nil) // scope the write in a transaction
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"errors": []string{"An error occurred while updating Guest"}})
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()
    if err := h.GuestRepo.ApplyPatchTx(ctx, tx, id, patch); err != nil {
        log.Printf("patch guest %d: %v", id, err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"errors": []string{"An error occurred while updating Guest"}})
    }
    updated, err := h.GuestRepo.GetByIDTx(ctx, tx, id) // re-read inside the transaction so the response matches what commits
    if err != nil {
        log.Printf("patch guest %d readback: %v", id, err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"errors": []string{"An error occurred while updating Guest"}})
    }
    if err := tx.Commit(); err != nil {
        log.Printf("patch guest %d commit: %v", id, err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"errors": []string{"An error occurred while updating Guest"}})
    }
    committed = true
    return c.JSON(http.StatusOK, guestView(updated)) // return the updated guest with OK status
}
