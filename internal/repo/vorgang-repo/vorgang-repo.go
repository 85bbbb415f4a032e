package vorgang_repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Xenn-00/vorgang-meister/internal/abstraction/tx"
	vorgang_dto "github.com/Xenn-00/vorgang-meister/internal/dtos/vorgang-dto"
	"github.com/Xenn-00/vorgang-meister/internal/entity"
	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	labelConstraint = "vorgaenge_sequential_label_key"

	defaultLimit = 20

	vorgangColumns = `id, sequential_label, reference_number, parish, canton, detail, sent_at, received_at,
		designated_at, completed_at, status, registered_by, created_at, updated_at`

	assignmentColumns = `vorgang_id, worker_id, position, task_type, sub_status, progress_notes, activity_date,
		handover_flag, handover_reference, handover_record, concluded_at, updated_at`
)

type VorgangRepo struct {
	db *pgxpool.Pool
}

func NewVorgangRepo(db *pgxpool.Pool) VorgangRepoContract {
	return &VorgangRepo{
		db: db,
	}
}

func scanVorgang(row pgx.Row) (entity.VorgangEntity, error) {
	var v entity.VorgangEntity
	err := row.Scan(&v.ID, &v.SequentialLabel, &v.ReferenceNumber, &v.Parish, &v.Canton, &v.Detail, &v.SentAt, &v.ReceivedAt,
		&v.DesignatedAt, &v.CompletedAt, &v.Status, &v.RegisteredBy, &v.CreatedAt, &v.UpdatedAt)
	return v, err
}

func scanAssignment(row pgx.Row) (entity.AssignmentEntity, error) {
	var a entity.AssignmentEntity
	err := row.Scan(&a.VorgangID, &a.WorkerID, &a.Position, &a.TaskType, &a.SubStatus, &a.ProgressNotes, &a.ActivityDate,
		&a.HandoverFlag, &a.HandoverReference, &a.HandoverRecord, &a.ConcludedAt, &a.UpdatedAt)
	return a, err
}

func notFoundOr(err error, key string) *app_errors.AppError {
	if errors.Is(err, pgx.ErrNoRows) {
		return app_errors.NewNotFoundError(key)
	}
	return app_errors.MapPgxError(err)
}

func (r *VorgangRepo) InsertVorgang(ctx context.Context, t tx.Tx, v *entity.VorgangEntity) *app_errors.AppError {
	pgxTx, appErr := tx.Unwrap(t)
	if appErr != nil {
		return appErr
	}

	query := `
	INSERT INTO vorgaenge (
			id,
			sequential_label,
			reference_number,
			parish,
			canton,
			detail,
			sent_at,
			received_at,
			status,
			registered_by,
			created_at,
			updated_at
		) VALUES (
			$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$11
		);
	`

	if _, err := pgxTx.Exec(
		ctx,
		query,
		v.ID,
		v.SequentialLabel,
		v.ReferenceNumber,
		v.Parish,
		v.Canton,
		v.Detail,
		v.SentAt,
		v.ReceivedAt,
		v.Status,
		v.RegisteredBy,
		v.CreatedAt,
	); err != nil {
		if app_errors.IsUniqueViolation(err, labelConstraint) {
			return app_errors.NewConflictError("vorgang.label_taken", err)
		}
		return app_errors.MapPgxError(err)
	}

	return nil
}

func (r *VorgangRepo) GetByID(ctx context.Context, vorgangID string) (*entity.VorgangEntity, *app_errors.AppError) {
	query := fmt.Sprintf(`SELECT %s FROM vorgaenge WHERE id = $1;`, vorgangColumns)

	v, err := scanVorgang(r.db.QueryRow(ctx, query, vorgangID))
	if err != nil {
		return nil, notFoundOr(err, "vorgang_not_found")
	}

	assignments, appErr := r.queryAssignments(ctx, r.db, vorgangID)
	if appErr != nil {
		return nil, appErr
	}
	v.Assignments = assignments

	return &v, nil
}

// buildFilter liefert die WHERE-Klausel und Argumente für Listen- und Zählabfragen.
func buildFilter(filter *vorgang_dto.VorgangListFilter) (string, []any) {
	where := " WHERE 1 = 1"
	args := []any{}
	argsPos := 1

	if filter == nil {
		return where, args
	}

	if filter.Status != nil {
		where += fmt.Sprintf(" AND status = $%d", argsPos)
		args = append(args, *filter.Status)
		argsPos++
	}

	if filter.Year != nil {
		where += fmt.Sprintf(" AND sequential_label LIKE $%d", argsPos)
		args = append(args, fmt.Sprintf("%04d-%%", *filter.Year))
		argsPos++
	}

	return where, args
}

func (r *VorgangRepo) List(ctx context.Context, filter *vorgang_dto.VorgangListFilter) ([]entity.VorgangEntity, *app_errors.AppError) {
	where, args := buildFilter(filter)

	limit := defaultLimit
	page := 1
	if filter != nil {
		if filter.Limit > 0 {
			limit = filter.Limit
		}
		if filter.Page > 0 {
			page = filter.Page
		}
	}

	query := fmt.Sprintf(`SELECT %s FROM vorgaenge%s ORDER BY received_at DESC, sequential_label DESC LIMIT $%d OFFSET $%d;`,
		vorgangColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, (page-1)*limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.VorgangEntity, error) {
		return scanVorgang(row)
	})
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}

	return items, nil
}

func (r *VorgangRepo) Count(ctx context.Context, filter *vorgang_dto.VorgangListFilter) (int64, *app_errors.AppError) {
	where, args := buildFilter(filter)

	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM vorgaenge`+where+`;`, args...).Scan(&count); err != nil {
		return 0, app_errors.MapPgxError(err)
	}
	return count, nil
}

func (r *VorgangRepo) CountByStatus(ctx context.Context) ([]entity.VorgangStatusCount, *app_errors.AppError) {
	query := `
	SELECT status, COUNT(*)
	FROM vorgaenge
	GROUP BY status
	ORDER BY status;
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}

	counts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.VorgangStatusCount, error) {
		var c entity.VorgangStatusCount
		err := row.Scan(&c.Status, &c.Count)
		return c, err
	})
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	return counts, nil
}

func (r *VorgangRepo) ListForWorker(ctx context.Context, workerID string, subStatus *entity.AssignmentStatus) ([]entity.WorkerAssignment, *app_errors.AppError) {
	query := `
	SELECT
		a.vorgang_id, a.worker_id, a.position, a.task_type, a.sub_status, a.progress_notes, a.activity_date,
		a.handover_flag, a.handover_reference, a.handover_record, a.concluded_at, a.updated_at,
		v.sequential_label, v.reference_number, v.parish, v.canton, v.status, v.designated_at
	FROM vorgang_assignments a
	JOIN vorgaenge v ON v.id = a.vorgang_id
	WHERE a.worker_id = $1
	`
	args := []any{workerID}

	if subStatus != nil {
		query += " AND a.sub_status = $2"
		args = append(args, *subStatus)
	}
	query += " ORDER BY v.designated_at DESC NULLS LAST, v.sequential_label;"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.WorkerAssignment, error) {
		var w entity.WorkerAssignment
		a := &w.AssignmentEntity
		err := row.Scan(&a.VorgangID, &a.WorkerID, &a.Position, &a.TaskType, &a.SubStatus, &a.ProgressNotes, &a.ActivityDate,
			&a.HandoverFlag, &a.HandoverReference, &a.HandoverRecord, &a.ConcludedAt, &a.UpdatedAt,
			&w.SequentialLabel, &w.ReferenceNumber, &w.Parish, &w.Canton, &w.VorgangStatus, &w.DesignatedAt)
		return w, err
	})
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	return items, nil
}

func (r *VorgangRepo) IsAssigned(ctx context.Context, vorgangID, workerID string) (bool, *app_errors.AppError) {
	query := `
	SELECT EXISTS (
		SELECT 1
		FROM vorgang_assignments
		WHERE vorgang_id = $1
			AND worker_id = $2
	);
	`

	var exists bool
	if err := r.db.QueryRow(ctx, query, vorgangID, workerID).Scan(&exists); err != nil {
		return false, app_errors.MapPgxError(err)
	}
	return exists, nil
}

// LockVorgang sperrt die Vorgang-Zeile bis zum Ende der Transaktion. Alle schreibenden
// Operationen auf Zuweisungen laufen hinter dieser Sperre.
func (r *VorgangRepo) LockVorgang(ctx context.Context, t tx.Tx, vorgangID string) (*entity.VorgangEntity, *app_errors.AppError) {
	pgxTx, appErr := tx.Unwrap(t)
	if appErr != nil {
		return nil, appErr
	}

	query := fmt.Sprintf(`SELECT %s FROM vorgaenge WHERE id = $1 FOR UPDATE;`, vorgangColumns)

	v, err := scanVorgang(pgxTx.QueryRow(ctx, query, vorgangID))
	if err != nil {
		return nil, notFoundOr(err, "vorgang_not_found")
	}
	return &v, nil
}

func (r *VorgangRepo) UpdateDetails(ctx context.Context, t tx.Tx, v *entity.VorgangEntity) *app_errors.AppError {
	pgxTx, appErr := tx.Unwrap(t)
	if appErr != nil {
		return appErr
	}

	query := `
	UPDATE vorgaenge
	SET reference_number = $2,
		parish = $3,
		canton = $4,
		detail = $5,
		sent_at = $6,
		updated_at = now()
	WHERE id = $1;
	`

	tag, err := pgxTx.Exec(ctx, query, v.ID, v.ReferenceNumber, v.Parish, v.Canton, v.Detail, v.SentAt)
	if err != nil {
		return app_errors.MapPgxError(err)
	}
	if tag.RowsAffected() == 0 {
		return app_errors.NewNotFoundError("vorgang_not_found")
	}
	return nil
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (r *VorgangRepo) queryAssignments(ctx context.Context, q querier, vorgangID string) ([]entity.AssignmentEntity, *app_errors.AppError) {
	query := fmt.Sprintf(`SELECT %s FROM vorgang_assignments WHERE vorgang_id = $1 ORDER BY position;`, assignmentColumns)

	rows, err := q.Query(ctx, query, vorgangID)
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}

	assignments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.AssignmentEntity, error) {
		return scanAssignment(row)
	})
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	return assignments, nil
}

func (r *VorgangRepo) ListAssignments(ctx context.Context, t tx.Tx, vorgangID string) ([]entity.AssignmentEntity, *app_errors.AppError) {
	pgxTx, appErr := tx.Unwrap(t)
	if appErr != nil {
		return nil, appErr
	}
	return r.queryAssignments(ctx, pgxTx, vorgangID)
}

func (r *VorgangRepo) GetAssignment(ctx context.Context, t tx.Tx, vorgangID, workerID string) (*entity.AssignmentEntity, *app_errors.AppError) {
	pgxTx, appErr := tx.Unwrap(t)
	if appErr != nil {
		return nil, appErr
	}

	query := fmt.Sprintf(`SELECT %s FROM vorgang_assignments WHERE vorgang_id = $1 AND worker_id = $2;`, assignmentColumns)

	a, err := scanAssignment(pgxTx.QueryRow(ctx, query, vorgangID, workerID))
	if err != nil {
		return nil, notFoundOr(err, "assignment_not_found")
	}
	return &a, nil
}

// ReplaceAssignments ersetzt die Zuweisungsliste als Ganzes.
func (r *VorgangRepo) ReplaceAssignments(ctx context.Context, t tx.Tx, vorgangID string, assignments []entity.AssignmentEntity) *app_errors.AppError {
	pgxTx, appErr := tx.Unwrap(t)
	if appErr != nil {
		return appErr
	}

	batch := &pgx.Batch{}
	batch.Queue(`DELETE FROM vorgang_assignments WHERE vorgang_id = $1;`, vorgangID)
	for _, a := range assignments {
		batch.Queue(`
		INSERT INTO vorgang_assignments (vorgang_id, worker_id, position, task_type, sub_status, handover_flag, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
		`, vorgangID, a.WorkerID, a.Position, a.TaskType, a.SubStatus, a.HandoverFlag, a.UpdatedAt)
	}

	results := pgxTx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return app_errors.MapPgxError(err)
		}
	}
	if err := results.Close(); err != nil {
		return app_errors.MapPgxError(err)
	}
	return nil
}

func (r *VorgangRepo) MarkDesignated(ctx context.Context, t tx.Tx, vorgangID string, at time.Time) *app_errors.AppError {
	pgxTx, appErr := tx.Unwrap(t)
	if appErr != nil {
		return appErr
	}

	query := `
	UPDATE vorgaenge
	SET status = 'Assigned',
		designated_at = $2,
		completed_at = NULL,
		updated_at = $2
	WHERE id = $1;
	`

	tag, err := pgxTx.Exec(ctx, query, vorgangID, at)
	if err != nil {
		return app_errors.MapPgxError(err)
	}
	if tag.RowsAffected() == 0 {
		return app_errors.NewNotFoundError("vorgang_not_found")
	}
	return nil
}

// UpdateAssignment schreibt genau ein Element, adressiert über (vorgang_id, worker_id).
func (r *VorgangRepo) UpdateAssignment(ctx context.Context, t tx.Tx, a *entity.AssignmentEntity) *app_errors.AppError {
	pgxTx, appErr := tx.Unwrap(t)
	if appErr != nil {
		return appErr
	}

	query := `
	UPDATE vorgang_assignments
	SET sub_status = $3,
		progress_notes = $4,
		activity_date = $5,
		handover_flag = $6,
		handover_reference = $7,
		handover_record = $8,
		concluded_at = $9,
		updated_at = $10
	WHERE vorgang_id = $1
		AND worker_id = $2;
	`

	tag, err := pgxTx.Exec(ctx, query,
		a.VorgangID,
		a.WorkerID,
		a.SubStatus,
		a.ProgressNotes,
		a.ActivityDate,
		a.HandoverFlag,
		a.HandoverReference,
		a.HandoverRecord,
		a.ConcludedAt,
		a.UpdatedAt,
	)
	if err != nil {
		return app_errors.MapPgxError(err)
	}
	if tag.RowsAffected() == 0 {
		return app_errors.NewNotFoundError("assignment_not_found")
	}
	return nil
}

func (r *VorgangRepo) AllAssignmentsConcluded(ctx context.Context, t tx.Tx, vorgangID string) (bool, *app_errors.AppError) {
	pgxTx, appErr := tx.Unwrap(t)
	if appErr != nil {
		return false, appErr
	}

	// bool_and über eine leere Menge ist NULL, also nie abgeschlossen.
	query := `
	SELECT COALESCE(bool_and(sub_status = 'Concluded'), false)
	FROM vorgang_assignments
	WHERE vorgang_id = $1;
	`

	var done bool
	if err := pgxTx.QueryRow(ctx, query, vorgangID).Scan(&done); err != nil {
		return false, app_errors.MapPgxError(err)
	}
	return done, nil
}

// MarkCompleted meldet true nur für den Aufruf, der den Übergang tatsächlich vollzieht.
func (r *VorgangRepo) MarkCompleted(ctx context.Context, t tx.Tx, vorgangID string, at time.Time) (bool, *app_errors.AppError) {
	pgxTx, appErr := tx.Unwrap(t)
	if appErr != nil {
		return false, appErr
	}

	query := `
	UPDATE vorgaenge
	SET status = 'Completed',
		completed_at = $2,
		updated_at = $2
	WHERE id = $1
		AND status = 'Assigned';
	`

	tag, err := pgxTx.Exec(ctx, query, vorgangID, at)
	if err != nil {
		return false, app_errors.MapPgxError(err)
	}
	return tag.RowsAffected() == 1, nil
}

// RefsInUse liefert die Referenzen aus refs, die eine andere Zuweisung als (vorgangID, workerID)
// hält. Ein leerer workerID schließt alle Zuweisungen von vorgangID aus.
func (r *VorgangRepo) RefsInUse(ctx context.Context, t tx.Tx, refs []string, vorgangID, workerID string) ([]string, *app_errors.AppError) {
	if len(refs) == 0 {
		return nil, nil
	}
	pgxTx, appErr := tx.Unwrap(t)
	if appErr != nil {
		return nil, appErr
	}

	query := `
		SELECT ref FROM (
			SELECT handover_reference AS ref, vorgang_id, worker_id FROM vorgang_assignments
			UNION ALL
			SELECT handover_record, vorgang_id, worker_id FROM vorgang_assignments
		) AS held
		WHERE ref = ANY($1::text[])
		  AND NOT (vorgang_id::text = $2::text AND ($3::text = '' OR worker_id::text = $3::text))
		GROUP BY ref;
	`

	rows, err := pgxTx.Query(ctx, query, refs, vorgangID, workerID)
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	held, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	return held, nil
}

func (r *VorgangRepo) DeleteNotificationsForVorgang(ctx context.Context, t tx.Tx, vorgangID string) (int64, *app_errors.AppError) {
	pgxTx, appErr := tx.Unwrap(t)
	if appErr != nil {
		return 0, appErr
	}

	tag, err := pgxTx.Exec(ctx, `DELETE FROM benachrichtigungen WHERE vorgang_id = $1;`, vorgangID)
	if err != nil {
		return 0, app_errors.MapPgxError(err)
	}
	return tag.RowsAffected(), nil
}

// InsertNotifications schreibt Posteingangs-Einträge in t, damit sie mit der Disposition
// sichtbar werden, die sie auslöst.
func (r *VorgangRepo) InsertNotifications(ctx context.Context, t tx.Tx, items []entity.BenachrichtigungEntity) *app_errors.AppError {
	if len(items) == 0 {
		return nil
	}
	pgxTx, appErr := tx.Unwrap(t)
	if appErr != nil {
		return appErr
	}

	batch := &pgx.Batch{}
	for _, n := range items {
		batch.Queue(`
			INSERT INTO benachrichtigungen (id, recipient_id, vorgang_id, vorgang_label, message, created_at)
			VALUES ($1,$2,$3,$4,$5,$6)
		`, n.ID, n.RecipientID, n.VorgangID, n.VorgangLabel, n.Message, n.CreatedAt)
	}

	if err := pgxTx.SendBatch(ctx, batch).Close(); err != nil {
		return app_errors.MapPgxError(err)
	}
	return nil
}

func (r *VorgangRepo) DeleteVorgang(ctx context.Context, t tx.Tx, vorgangID string) *app_errors.AppError {
	pgxTx, appErr := tx.Unwrap(t)
	if appErr != nil {
		return appErr
	}

	tag, err := pgxTx.Exec(ctx, `DELETE FROM vorgaenge WHERE id = $1;`, vorgangID)
	if err != nil {
		return app_errors.MapPgxError(err)
	}
	if tag.RowsAffected() == 0 {
		return app_errors.NewNotFoundError("vorgang_not_found")
	}
	return nil
}
