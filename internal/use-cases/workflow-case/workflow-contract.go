package workflow_case

import (
	"context"
	"io"

	vorgang_dto "github.com/Xenn-00/vorgang-meister/internal/dtos/vorgang-dto"
	"github.com/Xenn-00/vorgang-meister/internal/entity"
	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
)

// RecipientDirectory liefert die Empfänger rollenbezogener Benachrichtigungen.
type RecipientDirectory interface {
	ListIDsByRole(ctx context.Context, roles ...entity.UserRole) ([]string, *app_errors.AppError)
}

// WorkflowServiceContract ist die einzige Stelle, an der Capabilities geprüft werden.
type WorkflowServiceContract interface {
	Register(ctx context.Context, actor *entity.Actor, req vorgang_dto.RegisterVorgangRequest) (*vorgang_dto.RegisterVorgangResponse, *app_errors.AppError)
	Edit(ctx context.Context, actor *entity.Actor, vorgangID string, req vorgang_dto.EditVorgangRequest) (*entity.VorgangEntity, *app_errors.AppError)
	Designate(ctx context.Context, actor *entity.Actor, vorgangID string, req vorgang_dto.DesignateRequest) (*vorgang_dto.DesignateResponse, *app_errors.AppError)
	UpdateAssignment(ctx context.Context, actor *entity.Actor, vorgangID string, req vorgang_dto.UpdateAssignmentRequest) (*vorgang_dto.AssignmentResponse, *app_errors.AppError)
	Deliver(ctx context.Context, actor *entity.Actor, vorgangID string, req vorgang_dto.DeliverRequest) (*vorgang_dto.DeliverResponse, *app_errors.AppError)
	Delete(ctx context.Context, actor *entity.Actor, vorgangID string) (*vorgang_dto.DeleteVorgangResponse, *app_errors.AppError)

	Get(ctx context.Context, actor *entity.Actor, vorgangID string) (*entity.VorgangEntity, *app_errors.AppError)
	List(ctx context.Context, actor *entity.Actor, filter vorgang_dto.VorgangListFilter) (*vorgang_dto.VorgangListResponse, *app_errors.AppError)
	MyAssignments(ctx context.Context, actor *entity.Actor, filter vorgang_dto.AssignmentListFilter) ([]entity.WorkerAssignment, *app_errors.AppError)
	Statistics(ctx context.Context, actor *entity.Actor) (*vorgang_dto.StatisticsResponse, *app_errors.AppError)

	UploadAttachment(ctx context.Context, actor *entity.Actor, filename string, r io.Reader) (string, *app_errors.AppError)
	OpenAttachment(ctx context.Context, actor *entity.Actor, ref string) (io.ReadCloser, *app_errors.AppError)
}
