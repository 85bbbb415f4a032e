package workflow_case

import (
	"context"
	"time"

	vorgang_dto "github.com/Xenn-00/vorgang-meister/internal/dtos/vorgang-dto"
	"github.com/Xenn-00/vorgang-meister/internal/entity"
	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
	vorgang_case "github.com/Xenn-00/vorgang-meister/internal/use-cases/vorgang-case"
	"github.com/rs/zerolog/log"
)

const (
	msgRegistered = "Neuer Vorgang %s wartet auf Disposition."
	msgDelivered  = "Vorgang %s: Zuweisung von %s abgegeben."
	msgCompleted  = "Vorgang %s ist abgeschlossen."
)

func authorize(actor *entity.Actor, c entity.Capability) *app_errors.AppError {
	if actor == nil || actor.ID == "" {
		return app_errors.NewAuthenticationError("auth.unauthorized")
	}
	if !actor.Role.Can(c) {
		return app_errors.NewForbiddenError("auth.forbidden")
	}
	return nil
}

func buildPatch(subStatus *string, notes *string, activityDate *time.Time, flag, reference, record *string) *vorgang_case.AssignmentPatch {
	patch := &vorgang_case.AssignmentPatch{
		ProgressNotes:     notes,
		ActivityDate:      activityDate,
		HandoverReference: reference,
		HandoverRecord:    record,
	}
	if subStatus != nil {
		s := entity.AssignmentStatus(*subStatus)
		patch.SubStatus = &s
	}
	if flag != nil {
		f := entity.HandoverFlag(*flag)
		patch.HandoverFlag = &f
	}
	return patch
}

func updatePatch(req vorgang_dto.UpdateAssignmentRequest) *vorgang_case.AssignmentPatch {
	return buildPatch(req.SubStatus, req.ProgressNotes, req.ActivityDate, req.HandoverFlag, req.HandoverReference, req.HandoverRecord)
}

func deliverPatch(req vorgang_dto.DeliverRequest) *vorgang_case.AssignmentPatch {
	return buildPatch(&req.SubStatus, req.ProgressNotes, req.ActivityDate, req.HandoverFlag, req.HandoverReference, req.HandoverRecord)
}

func detailsPatch(req vorgang_dto.EditVorgangRequest) *vorgang_case.DetailsPatch {
	return &vorgang_case.DetailsPatch{
		ReferenceNumber: req.ReferenceNumber,
		Parish:          req.Parish,
		Canton:          req.Canton,
		Detail:          req.Detail,
		SentAt:          req.SentAt,
	}
}

func toAssignmentResponse(r *vorgang_case.AssignmentResult) vorgang_dto.AssignmentResponse {
	return vorgang_dto.AssignmentResponse{
		VorgangID:     r.Vorgang.ID,
		VorgangStatus: r.Vorgang.Status,
		Assignment:    r.Assignment,
	}
}

// requireOwnRefs lässt nur Referenzen zu, die der Aufrufer selbst hochgeladen hat. Ein leerer
// Wert löscht die Referenz und braucht keine Prüfung.
func (s *WorkflowService) requireOwnRefs(ctx context.Context, actor *entity.Actor, reference, record *string) *app_errors.AppError {
	fields := []struct {
		name string
		ref  *string
	}{{"handover_reference", reference}, {"handover_record", record}}

	for _, f := range fields {
		if f.ref == nil || *f.ref == "" {
			continue
		}
		owner, err := s.attachments.Owner(ctx, *f.ref)
		if err != nil {
			if err.Type == app_errors.ErrNotFound {
				return app_errors.NewFieldValidationError(f.name, "attachment", "attachment.not_found")
			}
			return err
		}
		if owner != actor.ID {
			log.Warn().Str("ref", *f.ref).Str("user_id", actor.ID).Msg("Fremder Anhang abgelehnt")
			return app_errors.NewForbiddenError("attachment.not_owner")
		}
	}
	return nil
}

// releaseAttachments ist best effort: ein verwaister Anhang ist harmlos, ein fehlgeschlagener Workflow nicht.
func (s *WorkflowService) releaseAttachments(ctx context.Context, refs []string) {
	for _, ref := range refs {
		if err := s.attachments.Delete(ctx, ref); err != nil {
			log.Warn().Err(err.Err).Str("ref", ref).Msg("Anhang konnte nicht freigegeben werden")
		}
	}
}

func (s *WorkflowService) recipients(ctx context.Context, roles ...entity.UserRole) []string {
	ids, err := s.directory.ListIDsByRole(ctx, roles...)
	if err != nil {
		log.Error().Err(err.Err).Msg("Empfänger für Benachrichtigung nicht ermittelbar")
		return nil
	}
	return ids
}
