package entity

import "time"

type BenachrichtigungEntity struct {
	ID           string     `json:"id"`
	RecipientID  string     `json:"recipient_id"`
	VorgangID    *string    `json:"vorgang_id,omitempty"`
	VorgangLabel string     `json:"vorgang_label"`
	Message      string     `json:"message"`
	CreatedAt    time.Time  `json:"created_at"`
	ReadAt       *time.Time `json:"read_at,omitempty"`
}
