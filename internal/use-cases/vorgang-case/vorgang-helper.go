package vorgang_case

import (
	"slices"
	"strings"
	"time"

	"github.com/Xenn-00/vorgang-meister/internal/entity"
	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
)

// validateDesignation prüft die Listen, bevor irgendein Speicherzugriff passiert.
func validateDesignation(workerIDs, taskTypes []string) *app_errors.AppError {
	if len(workerIDs) == 0 {
		return app_errors.NewFieldValidationError("worker_ids", "required", "validation.required")
	}
	if len(workerIDs) != len(taskTypes) {
		return app_errors.NewFieldValidationError("task_types", "length_mismatch", "validation.length_mismatch")
	}

	seen := make(map[string]struct{}, len(workerIDs))
	for i, workerID := range workerIDs {
		if workerID == "" {
			return app_errors.NewFieldValidationError("worker_ids", "required", "validation.required")
		}
		if _, dup := seen[workerID]; dup {
			return app_errors.NewFieldValidationError("worker_ids", "unique", "validation.unique")
		}
		seen[workerID] = struct{}{}

		if strings.TrimSpace(taskTypes[i]) == "" {
			return app_errors.NewFieldValidationError("task_types", "required", "validation.required")
		}
	}
	return nil
}

func buildAssignments(vorgangID string, workerIDs, taskTypes []string, now time.Time) []entity.AssignmentEntity {
	assignments := make([]entity.AssignmentEntity, 0, len(workerIDs))
	for i, workerID := range workerIDs {
		assignments = append(assignments, entity.AssignmentEntity{
			VorgangID:    vorgangID,
			WorkerID:     workerID,
			Position:     i,
			TaskType:     strings.TrimSpace(taskTypes[i]),
			SubStatus:    entity.AssignmentAssigned,
			HandoverFlag: entity.HandoverNotApplicable,
			UpdatedAt:    now,
		})
	}
	return assignments
}

func optionalRef(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

// applyPatch überträgt die gesetzten Felder auf a. adopted sind die Anhang-Referenzen, die a
// neu hält, released die, die a danach nicht mehr hält.
func applyPatch(a *entity.AssignmentEntity, p *AssignmentPatch, now time.Time) (adopted, released []string, err *app_errors.AppError) {
	before := a.AttachmentRefs()

	if p.SubStatus != nil {
		a.SubStatus = *p.SubStatus
		switch a.SubStatus {
		case entity.AssignmentConcluded:
			if a.ConcludedAt == nil {
				a.ConcludedAt = &now
			}
		case entity.AssignmentAssigned:
			a.ConcludedAt = nil
		}
	}
	if p.ProgressNotes != nil {
		a.ProgressNotes = p.ProgressNotes
	}
	if p.ActivityDate != nil {
		a.ActivityDate = p.ActivityDate
	}
	if p.HandoverFlag != nil {
		a.HandoverFlag = *p.HandoverFlag
	}
	if p.HandoverReference != nil {
		a.HandoverReference = optionalRef(*p.HandoverReference)
	}
	if p.HandoverRecord != nil {
		a.HandoverRecord = optionalRef(*p.HandoverRecord)
	}

	// Referenzen gibt es nur bei handover_flag = Applies.
	if a.HandoverFlag == entity.HandoverNotApplicable {
		if (p.HandoverReference != nil && *p.HandoverReference != "") || (p.HandoverRecord != nil && *p.HandoverRecord != "") {
			return nil, nil, app_errors.NewFieldValidationError("handover_flag", "handover_not_applicable", "validation.handover_not_applicable")
		}
		a.HandoverReference = nil
		a.HandoverRecord = nil
	}

	a.UpdatedAt = now

	after := a.AttachmentRefs()
	return subtract(after, before), subtract(before, after), nil
}

// subtract liefert die Einträge aus refs, die nicht in other vorkommen.
func subtract(refs, other []string) []string {
	var out []string
	for _, ref := range refs {
		if !slices.Contains(other, ref) {
			out = append(out, ref)
		}
	}
	return out
}

func collectRefs(assignments []entity.AssignmentEntity) []string {
	var refs []string
	for i := range assignments {
		refs = append(refs, assignments[i].AttachmentRefs()...)
	}
	return refs
}
