package vorgang_case

import (
	"context"

	vorgang_dto "github.com/Xenn-00/vorgang-meister/internal/dtos/vorgang-dto"
	"github.com/Xenn-00/vorgang-meister/internal/entity"
	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
)

type VorgangServiceContract interface {
	Register(ctx context.Context, in *NewVorgang) (*entity.VorgangEntity, *app_errors.AppError)
	Edit(ctx context.Context, vorgangID string, patch *DetailsPatch) (*entity.VorgangEntity, *app_errors.AppError)
	Designate(ctx context.Context, vorgangID string, workerIDs, taskTypes []string) (*DesignateResult, *app_errors.AppError)
	UpdateAssignment(ctx context.Context, vorgangID, workerID string, patch *AssignmentPatch) (*AssignmentResult, *app_errors.AppError)
	Deliver(ctx context.Context, vorgangID, workerID string, patch *AssignmentPatch) (*AssignmentResult, *app_errors.AppError)
	Delete(ctx context.Context, vorgangID string) (*DeleteResult, *app_errors.AppError)

	Get(ctx context.Context, vorgangID string) (*entity.VorgangEntity, *app_errors.AppError)
	List(ctx context.Context, filter *vorgang_dto.VorgangListFilter) ([]entity.VorgangEntity, int64, *app_errors.AppError)
	ListForWorker(ctx context.Context, workerID string, subStatus *entity.AssignmentStatus) ([]entity.WorkerAssignment, *app_errors.AppError)
	Statistics(ctx context.Context) ([]entity.VorgangStatusCount, *app_errors.AppError)
	IsAssigned(ctx context.Context, vorgangID, workerID string) (bool, *app_errors.AppError)
}
