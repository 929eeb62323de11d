package dto

import "time"

type ActivityEventResponse struct {
	Type    string    `json:"type"`
	Action  string    `json:"action"`
	Summary string    `json:"summary"`
	Detail  string    `json:"detail"`
	Link    string    `json:"link"`
	Date    time.Time `json:"date"`
}
