package vorgang_case

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/Xenn-00/vorgang-meister/internal/abstraction/tx"
	vorgang_dto "github.com/Xenn-00/vorgang-meister/internal/dtos/vorgang-dto"
	"github.com/Xenn-00/vorgang-meister/internal/entity"
	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
	vorgang_repo "github.com/Xenn-00/vorgang-meister/internal/repo/vorgang-repo"
	benachrichtigung_case "github.com/Xenn-00/vorgang-meister/internal/use-cases/benachrichtigung-case"
	sequence_case "github.com/Xenn-00/vorgang-meister/internal/use-cases/sequence-case"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

const (
	defaultLabelAttempts = 5

	msgDesignated = "Vorgang %s wurde Ihnen zugewiesen: %s."
)

type VorgangService struct {
	repo          vorgang_repo.VorgangRepoContract
	txManager     tx.TxManager
	sequence      sequence_case.SequenceServiceContract
	now           func() time.Time
	labelAttempts int
}

func NewVorgangService(db *pgxpool.Pool, sequence sequence_case.SequenceServiceContract) VorgangServiceContract {
	return &VorgangService{
		repo:          vorgang_repo.NewVorgangRepo(db),
		txManager:     tx.NewPgxTxManager(db),
		sequence:      sequence,
		now:           time.Now,
		labelAttempts: defaultLabelAttempts,
	}
}

func (s *VorgangService) clock() time.Time {
	if s.now == nil {
		return time.Now().UTC()
	}
	return s.now().UTC()
}

func (s *VorgangService) Register(ctx context.Context, in *NewVorgang) (*entity.VorgangEntity, *app_errors.AppError) {
	if in == nil || in.SentAt.IsZero() {
		return nil, app_errors.NewFieldValidationError("sent_at", "required", "validation.required")
	}

	vorgangID, idErr := uuid.NewV7()
	if idErr != nil {
		return nil, app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "internal_error", idErr)
	}

	now := s.clock()
	v := &entity.VorgangEntity{
		ID:              vorgangID.String(),
		ReferenceNumber: strings.TrimSpace(in.ReferenceNumber),
		Parish:          strings.TrimSpace(in.Parish),
		Canton:          strings.TrimSpace(in.Canton),
		Detail:          in.Detail,
		SentAt:          in.SentAt,
		ReceivedAt:      now,
		Status:          entity.VorgangPending,
		Assignments:     []entity.AssignmentEntity{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if in.RegisteredBy != "" {
		v.RegisteredBy = &in.RegisteredBy
	}

	attempts := max(s.labelAttempts, 1)
	year := in.SentAt.Year()
	for attempt := 1; ; attempt++ {
		err := s.insertWithLabel(ctx, year, v)
		if err == nil {
			break
		}
		// Label belegt oder Verbindung gestört: mit frischer Transaktion neu vergeben.
		retry := err.Retryable() || (err.Type == app_errors.ErrConflict && err.MessageKey == "vorgang.label_taken")
		if retry && attempt < attempts {
			log.Warn().Err(err).Str("label", v.SequentialLabel).Int("attempt", attempt).Msg("Label-Vergabe fehlgeschlagen, vergebe neu")
			continue
		}
		return nil, err
	}

	return v, nil
}

// insertWithLabel vergibt das Label und fügt ein, beides unter der Jahressperre der Sequenz.
func (s *VorgangService) insertWithLabel(ctx context.Context, year int, v *entity.VorgangEntity) *app_errors.AppError {
	t, err := s.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer t.Rollback(ctx)

	label, err := s.sequence.Allocate(ctx, t, year)
	if err != nil {
		return err
	}
	v.SequentialLabel = label

	if err := s.repo.InsertVorgang(ctx, t, v); err != nil {
		return err
	}
	return t.Commit(ctx)
}

func (s *VorgangService) Edit(ctx context.Context, vorgangID string, patch *DetailsPatch) (*entity.VorgangEntity, *app_errors.AppError) {
	t, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer t.Rollback(ctx)

	v, err := s.repo.LockVorgang(ctx, t, vorgangID)
	if err != nil {
		return nil, err
	}

	if patch != nil {
		if patch.ReferenceNumber != nil {
			v.ReferenceNumber = strings.TrimSpace(*patch.ReferenceNumber)
		}
		if patch.Parish != nil {
			v.Parish = strings.TrimSpace(*patch.Parish)
		}
		if patch.Canton != nil {
			v.Canton = strings.TrimSpace(*patch.Canton)
		}
		if patch.Detail != nil {
			v.Detail = *patch.Detail
		}
		if patch.SentAt != nil {
			v.SentAt = *patch.SentAt
		}
	}

	if err := s.repo.UpdateDetails(ctx, t, v); err != nil {
		return nil, err
	}

	if err := t.Commit(ctx); err != nil {
		return nil, err
	}

	v.UpdatedAt = s.clock()
	return v, nil
}

// Designate ersetzt die Zuweisungen als Ganzes und verwirft alle Benachrichtigungen zum Vorgang.
func (s *VorgangService) Designate(ctx context.Context, vorgangID string, workerIDs, taskTypes []string) (*DesignateResult, *app_errors.AppError) {
	if err := validateDesignation(workerIDs, taskTypes); err != nil {
		return nil, err
	}

	t, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer t.Rollback(ctx)

	v, err := s.repo.LockVorgang(ctx, t, vorgangID)
	if err != nil {
		return nil, err
	}
	if v.Status == entity.VorgangCompleted {
		return nil, app_errors.NewConflictError("vorgang.already_completed", nil)
	}

	previous, err := s.repo.ListAssignments(ctx, t, vorgangID)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	assignments := buildAssignments(vorgangID, workerIDs, taskTypes, now)

	if err := s.repo.ReplaceAssignments(ctx, t, vorgangID, assignments); err != nil {
		return nil, err
	}
	if err := s.repo.MarkDesignated(ctx, t, vorgangID, now); err != nil {
		return nil, err
	}

	invalidated, err := s.repo.DeleteNotificationsForVorgang(ctx, t, vorgangID)
	if err != nil {
		return nil, err
	}

	var notifications []entity.BenachrichtigungEntity
	for _, a := range assignments {
		msg := fmt.Sprintf(msgDesignated, v.SequentialLabel, a.TaskType)
		notifications = append(notifications, benachrichtigung_case.Build([]string{a.WorkerID}, v, msg, now)...)
	}
	if err := s.repo.InsertNotifications(ctx, t, notifications); err != nil {
		return nil, err
	}

	released, err := s.guardRefs(ctx, t, vorgangID, "", nil, collectRefs(previous))
	if err != nil {
		return nil, err
	}

	if err := t.Commit(ctx); err != nil {
		return nil, err
	}

	v.Status = entity.VorgangAssigned
	v.DesignatedAt = &now
	v.CompletedAt = nil
	v.UpdatedAt = now
	v.Assignments = assignments

	return &DesignateResult{
		Vorgang:                  v,
		Previous:                 previous,
		Released:                 released,
		InvalidatedNotifications: invalidated,
		Notifications:            notifications,
	}, nil
}

// UpdateAssignment ändert nur die Felder der eigenen Zuweisung und bewegt den Vorgang nie weiter.
func (s *VorgangService) UpdateAssignment(ctx context.Context, vorgangID, workerID string, patch *AssignmentPatch) (*AssignmentResult, *app_errors.AppError) {
	if patch == nil {
		patch = &AssignmentPatch{}
	}

	t, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer t.Rollback(ctx)

	v, err := s.repo.LockVorgang(ctx, t, vorgangID)
	if err != nil {
		return nil, err
	}
	if v.Status == entity.VorgangCompleted && patch.SubStatus != nil && *patch.SubStatus != entity.AssignmentConcluded {
		return nil, app_errors.NewConflictError("vorgang.already_completed", nil)
	}

	a, err := s.repo.GetAssignment(ctx, t, vorgangID, workerID)
	if err != nil {
		return nil, err
	}

	adopted, released, err := applyPatch(a, patch, s.clock())
	if err != nil {
		return nil, err
	}
	released, err = s.guardRefs(ctx, t, vorgangID, workerID, adopted, released)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateAssignment(ctx, t, a); err != nil {
		return nil, err
	}

	if err := t.Commit(ctx); err != nil {
		return nil, err
	}

	return &AssignmentResult{
		Vorgang:    v,
		Assignment: *a,
		Released:   released,
	}, nil
}

// Deliver schließt die eigene Zuweisung ab und prüft in derselben Transaktion, ob damit
// alle Zuweisungen abgeschlossen sind. Die Sperre auf der Vorgang-Zeile serialisiert
// gleichzeitige Abgaben, daher sieht genau eine von ihnen den vollständigen Stand.
func (s *VorgangService) Deliver(ctx context.Context, vorgangID, workerID string, patch *AssignmentPatch) (*AssignmentResult, *app_errors.AppError) {
	if patch == nil || patch.SubStatus == nil || *patch.SubStatus != entity.AssignmentConcluded {
		return nil, app_errors.NewConflictError("assignment.must_conclude_before_delivering", nil)
	}

	t, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer t.Rollback(ctx)

	v, err := s.repo.LockVorgang(ctx, t, vorgangID)
	if err != nil {
		return nil, err
	}
	switch v.Status {
	case entity.VorgangPending:
		return nil, app_errors.NewConflictError("vorgang.not_designated", nil)
	case entity.VorgangCompleted:
		return nil, app_errors.NewConflictError("vorgang.already_completed", nil)
	}

	a, err := s.repo.GetAssignment(ctx, t, vorgangID, workerID)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	adopted, released, err := applyPatch(a, patch, now)
	if err != nil {
		return nil, err
	}
	released, err = s.guardRefs(ctx, t, vorgangID, workerID, adopted, released)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateAssignment(ctx, t, a); err != nil {
		return nil, err
	}

	allDone, err := s.repo.AllAssignmentsConcluded(ctx, t, vorgangID)
	if err != nil {
		return nil, err
	}

	completed := false
	if allDone {
		completed, err = s.repo.MarkCompleted(ctx, t, vorgangID, now)
		if err != nil {
			return nil, err
		}
	}

	if err := t.Commit(ctx); err != nil {
		return nil, err
	}

	if completed {
		v.Status = entity.VorgangCompleted
		v.CompletedAt = &now
		v.UpdatedAt = now
	}

	return &AssignmentResult{
		Vorgang:    v,
		Assignment: *a,
		Released:   released,
		Completed:  completed,
	}, nil
}

// Delete entfernt den Vorgang samt Zuweisungen und Benachrichtigungen und schließt danach
// die Lücke im Jahr. Scheitert das Neunummerieren, bleibt das Löschen gültig.
func (s *VorgangService) Delete(ctx context.Context, vorgangID string) (*DeleteResult, *app_errors.AppError) {
	t, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer t.Rollback(ctx)

	v, err := s.repo.LockVorgang(ctx, t, vorgangID)
	if err != nil {
		return nil, err
	}

	assignments, err := s.repo.ListAssignments(ctx, t, vorgangID)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.DeleteNotificationsForVorgang(ctx, t, vorgangID); err != nil {
		return nil, err
	}
	if err := s.repo.DeleteVorgang(ctx, t, vorgangID); err != nil {
		return nil, err
	}

	released, err := s.guardRefs(ctx, t, vorgangID, "", nil, collectRefs(assignments))
	if err != nil {
		return nil, err
	}

	if err := t.Commit(ctx); err != nil {
		return nil, err
	}

	v.Assignments = assignments
	result := &DeleteResult{
		Vorgang:  v,
		Released: released,
	}

	year, _, ok := sequence_case.ParseLabel(v.SequentialLabel)
	if !ok {
		log.Warn().Str("vorgang_id", vorgangID).Str("label", v.SequentialLabel).Msg("Label nicht lesbar, keine Neunummerierung")
		return result, nil
	}

	if _, err := s.sequence.Renumber(ctx, year); err != nil {
		log.Error().Err(err).Int("year", year).Str("vorgang_id", vorgangID).Msg("Neunummerierung nach dem Löschen fehlgeschlagen")
		result.RenumberPending = true
	}

	return result, nil
}

// guardRefs lehnt übernommene Referenzen ab, die schon eine andere Zuweisung hält, und
// entfernt aus released, was anderswo noch gehalten wird. Läuft in t unter der Vorgang-Sperre.
func (s *VorgangService) guardRefs(ctx context.Context, t tx.Tx, vorgangID, workerID string, adopted, released []string) ([]string, *app_errors.AppError) {
	if len(adopted) == 0 && len(released) == 0 {
		return nil, nil
	}

	held, err := s.repo.RefsInUse(ctx, t, append(slices.Clone(adopted), released...), vorgangID, workerID)
	if err != nil {
		return nil, err
	}
	for _, ref := range adopted {
		if slices.Contains(held, ref) {
			return nil, app_errors.NewConflictError("attachment.in_use", nil)
		}
	}
	for _, ref := range released {
		if slices.Contains(held, ref) {
			log.Info().Str("ref", ref).Str("vorgang_id", vorgangID).Msg("Anhang wird noch gehalten, keine Freigabe")
		}
	}
	return subtract(released, held), nil
}

func (s *VorgangService) Get(ctx context.Context, vorgangID string) (*entity.VorgangEntity, *app_errors.AppError) {
	return s.repo.GetByID(ctx, vorgangID)
}

func (s *VorgangService) List(ctx context.Context, filter *vorgang_dto.VorgangListFilter) ([]entity.VorgangEntity, int64, *app_errors.AppError) {
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entity.VorgangEntity{}, 0, nil
	}

	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *VorgangService) ListForWorker(ctx context.Context, workerID string, subStatus *entity.AssignmentStatus) ([]entity.WorkerAssignment, *app_errors.AppError) {
	items, err := s.repo.ListForWorker(ctx, workerID, subStatus)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []entity.WorkerAssignment{}
	}
	return items, nil
}

func (s *VorgangService) Statistics(ctx context.Context) ([]entity.VorgangStatusCount, *app_errors.AppError) {
	return s.repo.CountByStatus(ctx)
}

func (s *VorgangService) IsAssigned(ctx context.Context, vorgangID, workerID string) (bool, *app_errors.AppError) {
	return s.repo.IsAssigned(ctx, vorgangID, workerID)
}
