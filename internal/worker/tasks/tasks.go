package worker_task

import "time"

const TaskVorgangNotificationEmail = "email:vorgang_notification"

const TaskSessionSweep = "low:session_sweep"

const TaskSequenceRepair = "low:sequence_repair"

// VorgangNotificationEmail begleitet einen Eintrag im Posteingang als E-Mail.
type VorgangNotificationEmail struct {
	NotificationID string    `json:"notification_id"`
	RecipientID    string    `json:"recipient_id"`
	VorgangID      string    `json:"vorgang_id"`
	VorgangLabel   string    `json:"vorgang_label"`
	Message        string    `json:"message"`
	CreatedAt      time.Time `json:"created_at"`
}

// SequenceRepair nummeriert ein Jahr neu. Year 0 steht für das laufende Jahr.
type SequenceRepair struct {
	Year int `json:"year"`
}
