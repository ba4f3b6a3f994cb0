package app

import "time"

// TickMsg triggers a frame update for animation.
type TickMsg time.Time

// PanelTickMsg drives the auto-hide deadline.
type PanelTickMsg time.Time

// EvictMsg triggers stale target eviction.
type EvictMsg time.Time
