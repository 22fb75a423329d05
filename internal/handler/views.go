// This file defines the response view types for every endpoint.  Each view
// is a fixed field set chosen per call site; nesting never recurses.  The
// Episode/Appearance/Guest relationship is bidirectional in the schema, so
// each nested view omits the collection pointing back at its root:
//
//	EpisodeDetail -> AppearanceEntry   (no episode, no guest object)
//	AppearanceCreated -> GuestView     (no appearances list)
//	AppearanceCreated -> EpisodeView   (no appearances list)
//
// Cycle avoidance is therefore decided at compile time by these structs
// rather than by a recursive serializer tracking visited nodes.
package handler

import "github.com/lateshow/lateshow-api/internal/repository"

// EpisodeView is the flat episode representation used in list responses
// and nested inside created appearances.
type EpisodeView struct {
	ID     uint64  `json:"id"`
	Date   *string `json:"date"`
	Number *string `json:"number"`
}

// GuestView is the flat guest representation used in list responses, as
// the body of guest reads and writes, and nested inside created
// appearances.
type GuestView struct {
	ID         uint64  `json:"id"`
	Name       string  `json:"name"`
	Occupation *string `json:"occupation"`
}

// AppearanceEntry is the reduced appearance representation nested in an
// episode detail: the row id, the guest's name and the role.
type AppearanceEntry struct {
	ID        uint64 `json:"id"`
	GuestName string `json:"guest_name"`
	Role      string `json:"role"`
}

// EpisodeDetail is the single-episode representation: the episode scalars
// plus its appearances.
type EpisodeDetail struct {
	ID          uint64            `json:"id"`
	Date        *string           `json:"date"`
	Number      *string           `json:"number"`
	Appearances []AppearanceEntry `json:"appearances"`
}

// AppearanceCreated is the response body for a successful appearance
// creation: the full appearance scalars plus one level of guest and
// episode detail.
type AppearanceCreated struct {
	ID        uint64      `json:"id"`
	Role      string      `json:"role"`
	Rating    *int32      `json:"rating"`
	GuestID   uint64      `json:"guest_id"`
	EpisodeID uint64      `json:"episode_id"`
	Guest     GuestView   `json:"guest"`
	Episode   EpisodeView `json:"episode"`
}

// episodeView builds the flat view of an episode.
func episodeView(e *repository.Episode) EpisodeView {
	return EpisodeView{ID: e.ID, Date: nullStr(e.Date), Number: nullStr(e.Number)}
}

// guestView builds the flat view of a guest.
func guestView(g *repository.Guest) GuestView {
	return GuestView{ID: g.ID, Name: g.Name, Occupation: nullStr(g.Occupation)}
}
