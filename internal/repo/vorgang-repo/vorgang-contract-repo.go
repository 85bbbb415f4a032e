package vorgang_repo

import (
	"context"
	"time"

	"github.com/Xenn-00/vorgang-meister/internal/abstraction/tx"
	vorgang_dto "github.com/Xenn-00/vorgang-meister/internal/dtos/vorgang-dto"
	"github.com/Xenn-00/vorgang-meister/internal/entity"
	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
)

type VorgangRepoContract interface {
	InsertVorgang(ctx context.Context, t tx.Tx, v *entity.VorgangEntity) *app_errors.AppError
	GetByID(ctx context.Context, vorgangID string) (*entity.VorgangEntity, *app_errors.AppError)
	List(ctx context.Context, filter *vorgang_dto.VorgangListFilter) ([]entity.VorgangEntity, *app_errors.AppError)
	Count(ctx context.Context, filter *vorgang_dto.VorgangListFilter) (int64, *app_errors.AppError)
	CountByStatus(ctx context.Context) ([]entity.VorgangStatusCount, *app_errors.AppError)
	ListForWorker(ctx context.Context, workerID string, subStatus *entity.AssignmentStatus) ([]entity.WorkerAssignment, *app_errors.AppError)
	IsAssigned(ctx context.Context, vorgangID, workerID string) (bool, *app_errors.AppError)

	LockVorgang(ctx context.Context, t tx.Tx, vorgangID string) (*entity.VorgangEntity, *app_errors.AppError)
	UpdateDetails(ctx context.Context, t tx.Tx, v *entity.VorgangEntity) *app_errors.AppError
	ListAssignments(ctx context.Context, t tx.Tx, vorgangID string) ([]entity.AssignmentEntity, *app_errors.AppError)
	GetAssignment(ctx context.Context, t tx.Tx, vorgangID, workerID string) (*entity.AssignmentEntity, *app_errors.AppError)
	ReplaceAssignments(ctx context.Context, t tx.Tx, vorgangID string, assignments []entity.AssignmentEntity) *app_errors.AppError
	MarkDesignated(ctx context.Context, t tx.Tx, vorgangID string, at time.Time) *app_errors.AppError
	UpdateAssignment(ctx context.Context, t tx.Tx, a *entity.AssignmentEntity) *app_errors.AppError
	AllAssignmentsConcluded(ctx context.Context, t tx.Tx, vorgangID string) (bool, *app_errors.AppError)
	MarkCompleted(ctx context.Context, t tx.Tx, vorgangID string, at time.Time) (bool, *app_errors.AppError)
	RefsInUse(ctx context.Context, t tx.Tx, refs []string, vorgangID, workerID string) ([]string, *app_errors.AppError)
	DeleteNotificationsForVorgang(ctx context.Context, t tx.Tx, vorgangID string) (int64, *app_errors.AppError)
	InsertNotifications(ctx context.Context, t tx.Tx, items []entity.BenachrichtigungEntity) *app_errors.AppError
	DeleteVorgang(ctx context.Context, t tx.Tx, vorgangID string) *app_errors.AppError
}
