package vorgang_dto

import (
	"regexp"
	"time"

	"github.com/Xenn-00/vorgang-meister/internal/entity"
	"github.com/go-playground/validator/v10"
)

type RegisterVorgangRequest struct {
	ReferenceNumber string    `json:"reference_number" validate:"required,max=50,referenceNumber"`
	Parish          string    `json:"parish" validate:"required,max=120"`
	Canton          *string   `json:"canton,omitempty" validate:"omitempty,max=120"`
	Detail          string    `json:"detail" validate:"max=10000"`
	SentAt          time.Time `json:"sent_at" validate:"required"`
}

type EditVorgangRequest struct {
	ReferenceNumber *string    `json:"reference_number,omitempty" validate:"omitempty,max=50,referenceNumber"`
	Parish          *string    `json:"parish,omitempty" validate:"omitempty,min=1,max=120"`
	Canton          *string    `json:"canton,omitempty" validate:"omitempty,min=1,max=120"`
	Detail          *string    `json:"detail,omitempty" validate:"omitempty,max=10000"`
	SentAt          *time.Time `json:"sent_at,omitempty"`
}

// DesignateRequest: WorkerIDs[i] erhält TaskTypes[i].
type DesignateRequest struct {
	WorkerIDs []string `json:"worker_ids" validate:"required,min=1,max=20,unique,dive,uuid"`
	TaskTypes []string `json:"task_types" validate:"required,min=1,max=20,dive,required,max=120"`
}

type UpdateAssignmentRequest struct {
	SubStatus         *string    `json:"sub_status,omitempty" validate:"omitempty,assignmentStatus"`
	ProgressNotes     *string    `json:"progress_notes,omitempty" validate:"omitempty,max=5000"`
	ActivityDate      *time.Time `json:"activity_date,omitempty"`
	HandoverFlag      *string    `json:"handover_flag,omitempty" validate:"omitempty,handoverFlag"`
	HandoverReference *string    `json:"handover_reference,omitempty" validate:"omitempty,max=200"`
	HandoverRecord    *string    `json:"handover_record,omitempty" validate:"omitempty,max=200"`
}

// DeliverRequest verlangt den Unterstatus ausdrücklich; nur "Concluded" wird angenommen.
type DeliverRequest struct {
	SubStatus         string     `json:"sub_status" validate:"required,assignmentStatus"`
	ProgressNotes     *string    `json:"progress_notes,omitempty" validate:"omitempty,max=5000"`
	ActivityDate      *time.Time `json:"activity_date,omitempty"`
	HandoverFlag      *string    `json:"handover_flag,omitempty" validate:"omitempty,handoverFlag"`
	HandoverReference *string    `json:"handover_reference,omitempty" validate:"omitempty,max=200"`
	HandoverRecord    *string    `json:"handover_record,omitempty" validate:"omitempty,max=200"`
}

type VorgangListFilter struct {
	Status *string `query:"status,omitempty" validate:"omitempty,vorgangStatus"`
	Year   *int    `query:"year,omitempty" validate:"omitempty,min=1900,max=9999"`
	Limit  int     `query:"limit,omitempty" validate:"omitempty,min=1,max=100"`
	Page   int     `query:"page,omitempty" validate:"omitempty,min=1"`
}

type AssignmentListFilter struct {
	SubStatus *string `query:"sub_status,omitempty" validate:"omitempty,assignmentStatus"`
}

type ParamVorgangID struct {
	ID string `params:"vorgang_id" validate:"required,uuid"`
}

var referenceNumberPattern = regexp.MustCompile(`^[A-Za-z0-9\-/]+$`)

func IsValidReferenceNumber(fl validator.FieldLevel) bool {
	return referenceNumberPattern.MatchString(fl.Field().String())
}

func IsValidVorgangStatus(fl validator.FieldLevel) bool {
	return entity.VorgangStatus(fl.Field().String()).IsValid()
}

func IsValidAssignmentStatus(fl validator.FieldLevel) bool {
	return entity.AssignmentStatus(fl.Field().String()).IsValid()
}

func IsValidHandoverFlag(fl validator.FieldLevel) bool {
	return entity.HandoverFlag(fl.Field().String()).IsValid()
}

// RegisterValidators hängt die Vorgang-spezifischen Regeln an v.
func RegisterValidators(v *validator.Validate) {
	v.RegisterValidation("referenceNumber", IsValidReferenceNumber)
	v.RegisterValidation("vorgangStatus", IsValidVorgangStatus)
	v.RegisterValidation("assignmentStatus", IsValidAssignmentStatus)
	v.RegisterValidation("handoverFlag", IsValidHandoverFlag)
}
