package entity

import "time"

// ActivityEvent is one entry of the admin recent-activity feed
type ActivityEvent struct {
	Type    string    `json:"type"`
	Action  string    `json:"action"`
	Summary string    `json:"summary"`
	Detail  string    `json:"detail"`
	Link    string    `json:"link"`
	Date    time.Time `json:"date"`
}

// Fingerprint identifies events that count as duplicates when close in time
func (e ActivityEvent) Fingerprint() string {
	return e.Type + "|" + e.Action + "|" + e.Summary
}
