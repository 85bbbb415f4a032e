package entity

import "time"

type VorgangEntity struct {
	ID              string             `json:"id"`
	SequentialLabel string             `json:"sequential_label"`
	ReferenceNumber string             `json:"reference_number"`
	Parish          string             `json:"parish"`
	Canton          string             `json:"canton"`
	Detail          string             `json:"detail"`
	SentAt          time.Time          `json:"sent_at"`
	ReceivedAt      time.Time          `json:"received_at"`
	DesignatedAt    *time.Time         `json:"designated_at,omitempty"`
	CompletedAt     *time.Time         `json:"completed_at,omitempty"`
	Status          VorgangStatus      `json:"status"`
	RegisteredBy    *string            `json:"registered_by,omitempty"`
	Assignments     []AssignmentEntity `json:"assignments"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// AssignmentEntity gehört immer zu genau einem Vorgang. Identität ist (VorgangID, WorkerID),
// Position bestimmt die Anzeige-Reihenfolge.
type AssignmentEntity struct {
	VorgangID         string           `json:"vorgang_id"`
	WorkerID          string           `json:"worker_id"`
	Position          int              `json:"position"`
	TaskType          string           `json:"task_type"`
	SubStatus         AssignmentStatus `json:"sub_status"`
	ProgressNotes     *string          `json:"progress_notes,omitempty"`
	ActivityDate      *time.Time       `json:"activity_date,omitempty"`
	HandoverFlag      HandoverFlag     `json:"handover_flag"`
	HandoverReference *string          `json:"handover_reference,omitempty"`
	HandoverRecord    *string          `json:"handover_record,omitempty"`
	ConcludedAt       *time.Time       `json:"concluded_at,omitempty"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// AttachmentRefs liefert alle gesetzten Anhang-Referenzen der Zuweisung.
func (a *AssignmentEntity) AttachmentRefs() []string {
	var refs []string
	if a.HandoverReference != nil && *a.HandoverReference != "" {
		refs = append(refs, *a.HandoverReference)
	}
	if a.HandoverRecord != nil && *a.HandoverRecord != "" {
		refs = append(refs, *a.HandoverRecord)
	}
	return refs
}

// WorkerAssignment ist eine Zuweisung mit den Kopfdaten ihres Vorgangs, für die Techniker-Übersicht.
type WorkerAssignment struct {
	AssignmentEntity
	SequentialLabel string        `json:"sequential_label"`
	ReferenceNumber string        `json:"reference_number"`
	Parish          string        `json:"parish"`
	Canton          string        `json:"canton"`
	VorgangStatus   VorgangStatus `json:"vorgang_status"`
	DesignatedAt    *time.Time    `json:"designated_at,omitempty"`
}

// LabelledVorgang ist die minimale Sicht, die die Neunummerierung braucht.
type LabelledVorgang struct {
	ID              string    `json:"id"`
	SequentialLabel string    `json:"sequential_label"`
	ReceivedAt      time.Time `json:"received_at"`
}

type LabelRename struct {
	VorgangID string `json:"vorgang_id"`
	From      string `json:"from"`
	To        string `json:"to"`
}

type VorgangStatusCount struct {
	Status VorgangStatus `json:"status"`
	Count  int64         `json:"count"`
}

type VorgangStatus string

const (
	VorgangPending   VorgangStatus = "Pending"
	VorgangAssigned  VorgangStatus = "Assigned"
	VorgangCompleted VorgangStatus = "Completed"
)

func (s VorgangStatus) IsValid() bool {
	switch s {
	case VorgangPending, VorgangAssigned, VorgangCompleted:
		return true
	}
	return false
}

type AssignmentStatus string

const (
	AssignmentAssigned  AssignmentStatus = "Assigned"
	AssignmentConcluded AssignmentStatus = "Concluded"
)

func (s AssignmentStatus) IsValid() bool {
	switch s {
	case AssignmentAssigned, AssignmentConcluded:
		return true
	}
	return false
}

type HandoverFlag string

const (
	HandoverNotApplicable HandoverFlag = "NotApplicable"
	HandoverApplies       HandoverFlag = "Applies"
)

func (f HandoverFlag) IsValid() bool {
	switch f {
	case HandoverNotApplicable, HandoverApplies:
		return true
	}
	return false
}
