package vorgang_case

import (
	"time"

	"github.com/Xenn-00/vorgang-meister/internal/entity"
)

type NewVorgang struct {
	ReferenceNumber string
	Parish          string
	Canton          string
	Detail          string
	SentAt          time.Time
	RegisteredBy    string
}

// DetailsPatch: nil-Felder bleiben unverändert.
type DetailsPatch struct {
	ReferenceNumber *string
	Parish          *string
	Canton          *string
	Detail          *string
	SentAt          *time.Time
}

// AssignmentPatch: nil-Felder bleiben unverändert, ein leerer String löscht eine Anhang-Referenz.
type AssignmentPatch struct {
	SubStatus         *entity.AssignmentStatus
	ProgressNotes     *string
	ActivityDate      *time.Time
	HandoverFlag      *entity.HandoverFlag
	HandoverReference *string
	HandoverRecord    *string
}

type DesignateResult struct {
	Vorgang                  *entity.VorgangEntity
	Previous                 []entity.AssignmentEntity
	Released                 []string
	InvalidatedNotifications int64
	// Notifications sind mit der Disposition gespeichert, ihre E-Mails aber noch nicht eingereiht.
	Notifications []entity.BenachrichtigungEntity
}

type AssignmentResult struct {
	Vorgang    *entity.VorgangEntity
	Assignment entity.AssignmentEntity
	Released   []string
	// Completed ist nur für genau den Aufruf true, der den Vorgang abgeschlossen hat.
	Completed bool
}

type DeleteResult struct {
	Vorgang         *entity.VorgangEntity
	Released        []string
	RenumberPending bool
}
