// Package queue defines message payloads exchanged over the message broker.
package queue

// AppearanceCreatedEvent is published after an appearance row committed.
// It carries enough denormalized detail for downstream consumers to log
// or notify without querying the primary database.
type AppearanceCreatedEvent struct {
    AppearanceID  uint64 `json:"appearance_id"`
    GuestID       uint64 `json:"guest_id"`
    EpisodeID     uint64 `json:"episode_id"`
    GuestName     string `json:"guest_name"`
    EpisodeNumber string `json:"episode_number"`
    Role          string `json:"role"`
    Rating        *int32 `json:"rating"`
    CreatedAt     string `json:"created_at"`
}
