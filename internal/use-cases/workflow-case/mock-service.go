package workflow_case

import (
	"context"
	"io"

	vorgang_dto "github.com/Xenn-00/vorgang-meister/internal/dtos/vorgang-dto"
	"github.com/Xenn-00/vorgang-meister/internal/entity"
	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
	"github.com/stretchr/testify/mock"
)

type MockWorkflowService struct {
	mock.Mock
}

func (m *MockWorkflowService) Register(ctx context.Context, actor *entity.Actor, req vorgang_dto.RegisterVorgangRequest) (*vorgang_dto.RegisterVorgangResponse, *app_errors.AppError) {
	args := m.Called(ctx, actor, req)
	return args.Get(0).(*vorgang_dto.RegisterVorgangResponse), args.Get(1).(*app_errors.AppError)
}

func (m *MockWorkflowService) Edit(ctx context.Context, actor *entity.Actor, vorgangID string, req vorgang_dto.EditVorgangRequest) (*entity.VorgangEntity, *app_errors.AppError) {
	args := m.Called(ctx, actor, vorgangID, req)
	return args.Get(0).(*entity.VorgangEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockWorkflowService) Designate(ctx context.Context, actor *entity.Actor, vorgangID string, req vorgang_dto.DesignateRequest) (*vorgang_dto.DesignateResponse, *app_errors.AppError) {
	args := m.Called(ctx, actor, vorgangID, req)
	return args.Get(0).(*vorgang_dto.DesignateResponse), args.Get(1).(*app_errors.AppError)
}

func (m *MockWorkflowService) UpdateAssignment(ctx context.Context, actor *entity.Actor, vorgangID string, req vorgang_dto.UpdateAssignmentRequest) (*vorgang_dto.AssignmentResponse, *app_errors.AppError) {
	args := m.Called(ctx, actor, vorgangID, req)
	return args.Get(0).(*vorgang_dto.AssignmentResponse), args.Get(1).(*app_errors.AppError)
}

func (m *MockWorkflowService) Deliver(ctx context.Context, actor *entity.Actor, vorgangID string, req vorgang_dto.DeliverRequest) (*vorgang_dto.DeliverResponse, *app_errors.AppError) {
	args := m.Called(ctx, actor, vorgangID, req)
	return args.Get(0).(*vorgang_dto.DeliverResponse), args.Get(1).(*app_errors.AppError)
}

func (m *MockWorkflowService) Delete(ctx context.Context, actor *entity.Actor, vorgangID string) (*vorgang_dto.DeleteVorgangResponse, *app_errors.AppError) {
	args := m.Called(ctx, actor, vorgangID)
	return args.Get(0).(*vorgang_dto.DeleteVorgangResponse), args.Get(1).(*app_errors.AppError)
}

func (m *MockWorkflowService) Get(ctx context.Context, actor *entity.Actor, vorgangID string) (*entity.VorgangEntity, *app_errors.AppError) {
	args := m.Called(ctx, actor, vorgangID)
	return args.Get(0).(*entity.VorgangEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockWorkflowService) List(ctx context.Context, actor *entity.Actor, filter vorgang_dto.VorgangListFilter) (*vorgang_dto.VorgangListResponse, *app_errors.AppError) {
	args := m.Called(ctx, actor, filter)
	return args.Get(0).(*vorgang_dto.VorgangListResponse), args.Get(1).(*app_errors.AppError)
}

func (m *MockWorkflowService) MyAssignments(ctx context.Context, actor *entity.Actor, filter vorgang_dto.AssignmentListFilter) ([]entity.WorkerAssignment, *app_errors.AppError) {
	args := m.Called(ctx, actor, filter)
	return args.Get(0).([]entity.WorkerAssignment), args.Get(1).(*app_errors.AppError)
}

func (m *MockWorkflowService) Statistics(ctx context.Context, actor *entity.Actor) (*vorgang_dto.StatisticsResponse, *app_errors.AppError) {
	args := m.Called(ctx, actor)
	return args.Get(0).(*vorgang_dto.StatisticsResponse), args.Get(1).(*app_errors.AppError)
}

func (m *MockWorkflowService) UploadAttachment(ctx context.Context, actor *entity.Actor, filename string, r io.Reader) (string, *app_errors.AppError) {
	args := m.Called(ctx, actor, filename, r)
	return args.String(0), args.Get(1).(*app_errors.AppError)
}

func (m *MockWorkflowService) OpenAttachment(ctx context.Context, actor *entity.Actor, ref string) (io.ReadCloser, *app_errors.AppError) {
	args := m.Called(ctx, actor, ref)
	return args.Get(0).(io.ReadCloser), args.Get(1).(*app_errors.AppError)
}
