package workflow_case

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Xenn-00/vorgang-meister/internal/abstraction/attachment"
	"github.com/Xenn-00/vorgang-meister/internal/dtos"
	vorgang_dto "github.com/Xenn-00/vorgang-meister/internal/dtos/vorgang-dto"
	"github.com/Xenn-00/vorgang-meister/internal/entity"
	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
	"github.com/Xenn-00/vorgang-meister/internal/metrics"
	"github.com/Xenn-00/vorgang-meister/internal/queue"
	benachrichtigung_case "github.com/Xenn-00/vorgang-meister/internal/use-cases/benachrichtigung-case"
	katalog_case "github.com/Xenn-00/vorgang-meister/internal/use-cases/katalog-case"
	sequence_case "github.com/Xenn-00/vorgang-meister/internal/use-cases/sequence-case"
	user_case "github.com/Xenn-00/vorgang-meister/internal/use-cases/user-case"
	vorgang_case "github.com/Xenn-00/vorgang-meister/internal/use-cases/vorgang-case"
	worker_task "github.com/Xenn-00/vorgang-meister/internal/worker/tasks"
	"github.com/rs/zerolog/log"
)

const defaultPageLimit = 20

type WorkflowService struct {
	vorgaenge   vorgang_case.VorgangServiceContract
	users       user_case.UserServiceContract
	katalog     katalog_case.KatalogServiceContract
	directory   RecipientDirectory
	notifier    benachrichtigung_case.Notifier
	attachments attachment.Store
	queue       queue.TaskQueueClient
	metrics     *metrics.Metrics
}

type Deps struct {
	Vorgaenge   vorgang_case.VorgangServiceContract
	Users       user_case.UserServiceContract
	Katalog     katalog_case.KatalogServiceContract
	Directory   RecipientDirectory
	Notifier    benachrichtigung_case.Notifier
	Attachments attachment.Store
	Queue       queue.TaskQueueClient
	Metrics     *metrics.Metrics
}

func NewWorkflowService(d Deps) WorkflowServiceContract {
	return &WorkflowService{
		vorgaenge:   d.Vorgaenge,
		users:       d.Users,
		katalog:     d.Katalog,
		directory:   d.Directory,
		notifier:    d.Notifier,
		attachments: d.Attachments,
		queue:       d.Queue,
		metrics:     d.Metrics,
	}
}

// Register vergibt das Label und benachrichtigt alle Disponenten. Ohne Kanton wird er aus dem Pfarrei-Katalog ermittelt.
func (s *WorkflowService) Register(ctx context.Context, actor *entity.Actor, req vorgang_dto.RegisterVorgangRequest) (*vorgang_dto.RegisterVorgangResponse, *app_errors.AppError) {
	if err := authorize(actor, entity.CapRegisterVorgang); err != nil {
		return nil, err
	}

	canton := ""
	if req.Canton != nil {
		canton = strings.TrimSpace(*req.Canton)
	}
	if canton == "" {
		found, err := s.katalog.LookupCanton(ctx, req.Parish)
		if err != nil {
			if err.Type == app_errors.ErrNotFound {
				return nil, app_errors.NewFieldValidationError("canton", "required", "katalog.pfarrei_not_found")
			}
			return nil, err
		}
		canton = found
	}

	v, err := s.vorgaenge.Register(ctx, &vorgang_case.NewVorgang{
		ReferenceNumber: req.ReferenceNumber,
		Parish:          req.Parish,
		Canton:          canton,
		Detail:          req.Detail,
		SentAt:          req.SentAt,
		RegisteredBy:    actor.ID,
	})
	if err != nil {
		return nil, err
	}

	s.metrics.Transition(string(entity.VorgangPending))
	s.notifier.Notify(ctx, s.recipients(ctx, entity.DISPONENT), v, fmt.Sprintf(msgRegistered, v.SequentialLabel))

	return &vorgang_dto.RegisterVorgangResponse{
		ID:              v.ID,
		SequentialLabel: v.SequentialLabel,
		Status:          v.Status,
		ReceivedAt:      v.ReceivedAt,
	}, nil
}

func (s *WorkflowService) Edit(ctx context.Context, actor *entity.Actor, vorgangID string, req vorgang_dto.EditVorgangRequest) (*entity.VorgangEntity, *app_errors.AppError) {
	if err := authorize(actor, entity.CapEditVorgang); err != nil {
		return nil, err
	}
	return s.vorgaenge.Edit(ctx, vorgangID, detailsPatch(req))
}

// Designate prüft Techniker und Tätigkeiten vor dem Ersetzen der Zuweisungen.
func (s *WorkflowService) Designate(ctx context.Context, actor *entity.Actor, vorgangID string, req vorgang_dto.DesignateRequest) (*vorgang_dto.DesignateResponse, *app_errors.AppError) {
	if err := authorize(actor, entity.CapDesignateVorgang); err != nil {
		return nil, err
	}
	if len(req.WorkerIDs) != len(req.TaskTypes) {
		return nil, app_errors.NewFieldValidationError("task_types", "length_mismatch", "validation.length_mismatch")
	}
	if err := s.users.RequireTechniker(ctx, req.WorkerIDs); err != nil {
		return nil, err
	}
	if err := s.katalog.RequireTaetigkeiten(ctx, req.TaskTypes); err != nil {
		return nil, err
	}

	res, err := s.vorgaenge.Designate(ctx, vorgangID, req.WorkerIDs, req.TaskTypes)
	if err != nil {
		return nil, err
	}

	s.releaseAttachments(ctx, res.Released)
	s.metrics.Transition(string(entity.VorgangAssigned))
	if res.InvalidatedNotifications > 0 {
		log.Info().Str("vorgang_id", vorgangID).Int64("count", res.InvalidatedNotifications).Msg("Benachrichtigungen nach Neudisposition verworfen")
	}
	s.notifier.Dispatch(ctx, res.Vorgang, res.Notifications)

	return &vorgang_dto.DesignateResponse{
		ID:              res.Vorgang.ID,
		SequentialLabel: res.Vorgang.SequentialLabel,
		Status:          res.Vorgang.Status,
		DesignatedAt:    res.Vorgang.DesignatedAt,
		Assignments:     res.Vorgang.Assignments,
	}, nil
}

// UpdateAssignment wirkt immer auf die Zuweisung des Aufrufers.
func (s *WorkflowService) UpdateAssignment(ctx context.Context, actor *entity.Actor, vorgangID string, req vorgang_dto.UpdateAssignmentRequest) (*vorgang_dto.AssignmentResponse, *app_errors.AppError) {
	if err := authorize(actor, entity.CapWorkAssignment); err != nil {
		return nil, err
	}

	if err := s.requireOwnRefs(ctx, actor, req.HandoverReference, req.HandoverRecord); err != nil {
		return nil, err
	}

	res, err := s.vorgaenge.UpdateAssignment(ctx, vorgangID, actor.ID, updatePatch(req))
	if err != nil {
		return nil, err
	}
	s.releaseAttachments(ctx, res.Released)

	resp := toAssignmentResponse(res)
	return &resp, nil
}

// Deliver benachrichtigt die Admins über jede Abgabe. Die Abschlussnachricht geht nur von
// dem Aufruf aus, der den Vorgang tatsächlich abgeschlossen hat.
func (s *WorkflowService) Deliver(ctx context.Context, actor *entity.Actor, vorgangID string, req vorgang_dto.DeliverRequest) (*vorgang_dto.DeliverResponse, *app_errors.AppError) {
	if err := authorize(actor, entity.CapWorkAssignment); err != nil {
		return nil, err
	}

	if err := s.requireOwnRefs(ctx, actor, req.HandoverReference, req.HandoverRecord); err != nil {
		return nil, err
	}

	res, err := s.vorgaenge.Deliver(ctx, vorgangID, actor.ID, deliverPatch(req))
	if err != nil {
		return nil, err
	}
	s.releaseAttachments(ctx, res.Released)

	admins := s.recipients(ctx, entity.ADMIN)
	s.notifier.Notify(ctx, admins, res.Vorgang, fmt.Sprintf(msgDelivered, res.Vorgang.SequentialLabel, actor.Username))

	if res.Completed {
		s.metrics.Transition(string(entity.VorgangCompleted))
		recipients := admins
		if res.Vorgang.RegisteredBy != nil {
			recipients = append(append([]string{}, admins...), *res.Vorgang.RegisteredBy)
		}
		s.notifier.Notify(ctx, recipients, res.Vorgang, fmt.Sprintf(msgCompleted, res.Vorgang.SequentialLabel))
	}

	return &vorgang_dto.DeliverResponse{
		AssignmentResponse: toAssignmentResponse(res),
		Completed:          res.Completed,
	}, nil
}

// Delete reiht eine Reparatur ein, wenn das Neunummerieren nicht durchlief.
func (s *WorkflowService) Delete(ctx context.Context, actor *entity.Actor, vorgangID string) (*vorgang_dto.DeleteVorgangResponse, *app_errors.AppError) {
	if err := authorize(actor, entity.CapDeleteVorgang); err != nil {
		return nil, err
	}

	res, err := s.vorgaenge.Delete(ctx, vorgangID)
	if err != nil {
		return nil, err
	}
	s.releaseAttachments(ctx, res.Released)

	if res.RenumberPending {
		if year, _, ok := sequence_case.ParseLabel(res.Vorgang.SequentialLabel); ok {
			if qErr := s.queue.EnqueueSequenceRepair(ctx, &worker_task.SequenceRepair{Year: year}); qErr != nil {
				log.Error().Err(qErr).Int("year", year).Msg("Reparatur der Nummerierung nicht eingereiht")
			}
		}
	}

	return &vorgang_dto.DeleteVorgangResponse{
		ID:              res.Vorgang.ID,
		SequentialLabel: res.Vorgang.SequentialLabel,
		RenumberPending: res.RenumberPending,
	}, nil
}

// Get erlaubt Technikern nur Vorgänge, denen sie zugewiesen sind.
func (s *WorkflowService) Get(ctx context.Context, actor *entity.Actor, vorgangID string) (*entity.VorgangEntity, *app_errors.AppError) {
	if err := authorize(actor, entity.CapViewRegistry); err != nil {
		if err.Type != app_errors.ErrForbidden || !actor.Role.Can(entity.CapWorkAssignment) {
			return nil, err
		}
		assigned, aErr := s.vorgaenge.IsAssigned(ctx, vorgangID, actor.ID)
		if aErr != nil {
			return nil, aErr
		}
		if !assigned {
			return nil, err
		}
	}
	return s.vorgaenge.Get(ctx, vorgangID)
}

func (s *WorkflowService) List(ctx context.Context, actor *entity.Actor, filter vorgang_dto.VorgangListFilter) (*vorgang_dto.VorgangListResponse, *app_errors.AppError) {
	if err := authorize(actor, entity.CapViewRegistry); err != nil {
		return nil, err
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPageLimit
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}

	items, total, err := s.vorgaenge.List(ctx, &filter)
	if err != nil {
		return nil, err
	}

	return &vorgang_dto.VorgangListResponse{
		Items: items,
		Pagination: dtos.PaginationMeta{
			Page:       filter.Page,
			Limit:      filter.Limit,
			Total:      int(total),
			TotalPages: int((total + int64(filter.Limit) - 1) / int64(filter.Limit)),
		},
	}, nil
}

func (s *WorkflowService) MyAssignments(ctx context.Context, actor *entity.Actor, filter vorgang_dto.AssignmentListFilter) ([]entity.WorkerAssignment, *app_errors.AppError) {
	if err := authorize(actor, entity.CapWorkAssignment); err != nil {
		return nil, err
	}
	var subStatus *entity.AssignmentStatus
	if filter.SubStatus != nil {
		st := entity.AssignmentStatus(*filter.SubStatus)
		subStatus = &st
	}
	return s.vorgaenge.ListForWorker(ctx, actor.ID, subStatus)
}

func (s *WorkflowService) Statistics(ctx context.Context, actor *entity.Actor) (*vorgang_dto.StatisticsResponse, *app_errors.AppError) {
	if err := authorize(actor, entity.CapViewStatistics); err != nil {
		return nil, err
	}
	counts, err := s.vorgaenge.Statistics(ctx)
	if err != nil {
		return nil, err
	}

	// Jeder Status erscheint, auch mit 0
	byStatus := map[entity.VorgangStatus]int64{}
	for _, c := range counts {
		byStatus[c.Status] = c.Count
	}
	resp := &vorgang_dto.StatisticsResponse{Counts: make([]entity.VorgangStatusCount, 0, 3)}
	for _, st := range []entity.VorgangStatus{entity.VorgangPending, entity.VorgangAssigned, entity.VorgangCompleted} {
		resp.Counts = append(resp.Counts, entity.VorgangStatusCount{Status: st, Count: byStatus[st]})
		resp.Total += byStatus[st]
	}
	return resp, nil
}

func (s *WorkflowService) UploadAttachment(ctx context.Context, actor *entity.Actor, filename string, r io.Reader) (string, *app_errors.AppError) {
	if err := authorize(actor, entity.CapUploadAttachment); err != nil {
		return "", err
	}
	ref, err := s.attachments.Put(ctx, actor.ID, filename, r)
	if err != nil {
		return "", err
	}
	log.Info().Str("ref", ref).Str("user_id", actor.ID).Msg("Anhang gespeichert")
	return ref, nil
}

func (s *WorkflowService) OpenAttachment(ctx context.Context, actor *entity.Actor, ref string) (io.ReadCloser, *app_errors.AppError) {
	if actor == nil || actor.ID == "" {
		return nil, app_errors.NewAuthenticationError("auth.unauthorized")
	}
	return s.attachments.Open(ctx, ref)
}
