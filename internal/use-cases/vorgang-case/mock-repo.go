package vorgang_case

import (
	"context"
	"time"

	"github.com/Xenn-00/vorgang-meister/internal/abstraction/tx"
	vorgang_dto "github.com/Xenn-00/vorgang-meister/internal/dtos/vorgang-dto"
	"github.com/Xenn-00/vorgang-meister/internal/entity"
	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
	"github.com/stretchr/testify/mock"
)

type MockVorgangRepo struct {
	mock.Mock
}

func (m *MockVorgangRepo) InsertVorgang(ctx context.Context, t tx.Tx, v *entity.VorgangEntity) *app_errors.AppError {
	args := m.Called(ctx, t, v)
	return args.Get(0).(*app_errors.AppError)
}

func (m *MockVorgangRepo) GetByID(ctx context.Context, vorgangID string) (*entity.VorgangEntity, *app_errors.AppError) {
	args := m.Called(ctx, vorgangID)
	return args.Get(0).(*entity.VorgangEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockVorgangRepo) List(ctx context.Context, filter *vorgang_dto.VorgangListFilter) ([]entity.VorgangEntity, *app_errors.AppError) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]entity.VorgangEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockVorgangRepo) Count(ctx context.Context, filter *vorgang_dto.VorgangListFilter) (int64, *app_errors.AppError) {
	args := m.Called(ctx, filter)
	return int64(args.Int(0)), args.Get(1).(*app_errors.AppError)
}

func (m *MockVorgangRepo) CountByStatus(ctx context.Context) ([]entity.VorgangStatusCount, *app_errors.AppError) {
	args := m.Called(ctx)
	return args.Get(0).([]entity.VorgangStatusCount), args.Get(1).(*app_errors.AppError)
}

func (m *MockVorgangRepo) ListForWorker(ctx context.Context, workerID string, subStatus *entity.AssignmentStatus) ([]entity.WorkerAssignment, *app_errors.AppError) {
	args := m.Called(ctx, workerID, subStatus)
	return args.Get(0).([]entity.WorkerAssignment), args.Get(1).(*app_errors.AppError)
}

func (m *MockVorgangRepo) IsAssigned(ctx context.Context, vorgangID, workerID string) (bool, *app_errors.AppError) {
	args := m.Called(ctx, vorgangID, workerID)
	return args.Bool(0), args.Get(1).(*app_errors.AppError)
}

func (m *MockVorgangRepo) LockVorgang(ctx context.Context, t tx.Tx, vorgangID string) (*entity.VorgangEntity, *app_errors.AppError) {
	args := m.Called(ctx, t, vorgangID)
	return args.Get(0).(*entity.VorgangEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockVorgangRepo) UpdateDetails(ctx context.Context, t tx.Tx, v *entity.VorgangEntity) *app_errors.AppError {
	args := m.Called(ctx, t, v)
	return args.Get(0).(*app_errors.AppError)
}

func (m *MockVorgangRepo) ListAssignments(ctx context.Context, t tx.Tx, vorgangID string) ([]entity.AssignmentEntity, *app_errors.AppError) {
	args := m.Called(ctx, t, vorgangID)
	return args.Get(0).([]entity.AssignmentEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockVorgangRepo) GetAssignment(ctx context.Context, t tx.Tx, vorgangID, workerID string) (*entity.AssignmentEntity, *app_errors.AppError) {
	args := m.Called(ctx, t, vorgangID, workerID)
	return args.Get(0).(*entity.AssignmentEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockVorgangRepo) ReplaceAssignments(ctx context.Context, t tx.Tx, vorgangID string, assignments []entity.AssignmentEntity) *app_errors.AppError {
	args := m.Called(ctx, t, vorgangID, assignments)
	return args.Get(0).(*app_errors.AppError)
}

func (m *MockVorgangRepo) MarkDesignated(ctx context.Context, t tx.Tx, vorgangID string, at time.Time) *app_errors.AppError {
	args := m.Called(ctx, t, vorgangID, at)
	return args.Get(0).(*app_errors.AppError)
}

func (m *MockVorgangRepo) UpdateAssignment(ctx context.Context, t tx.Tx, a *entity.AssignmentEntity) *app_errors.AppError {
	args := m.Called(ctx, t, a)
	return args.Get(0).(*app_errors.AppError)
}

func (m *MockVorgangRepo) AllAssignmentsConcluded(ctx context.Context, t tx.Tx, vorgangID string) (bool, *app_errors.AppError) {
	args := m.Called(ctx, t, vorgangID)
	return args.Bool(0), args.Get(1).(*app_errors.AppError)
}

func (m *MockVorgangRepo) MarkCompleted(ctx context.Context, t tx.Tx, vorgangID string, at time.Time) (bool, *app_errors.AppError) {
	args := m.Called(ctx, t, vorgangID, at)
	return args.Bool(0), args.Get(1).(*app_errors.AppError)
}

func (m *MockVorgangRepo) RefsInUse(ctx context.Context, t tx.Tx, refs []string, vorgangID, workerID string) ([]string, *app_errors.AppError) {
	args := m.Called(ctx, t, refs, vorgangID, workerID)
	return args.Get(0).([]string), args.Get(1).(*app_errors.AppError)
}

func (m *MockVorgangRepo) InsertNotifications(ctx context.Context, t tx.Tx, items []entity.BenachrichtigungEntity) *app_errors.AppError {
	args := m.Called(ctx, t, items)
	return args.Get(0).(*app_errors.AppError)
}

func (m *MockVorgangRepo) DeleteNotificationsForVorgang(ctx context.Context, t tx.Tx, vorgangID string) (int64, *app_errors.AppError) {
	args := m.Called(ctx, t, vorgangID)
	return int64(args.Int(0)), args.Get(1).(*app_errors.AppError)
}

func (m *MockVorgangRepo) DeleteVorgang(ctx context.Context, t tx.Tx, vorgangID string) *app_errors.AppError {
	args := m.Called(ctx, t, vorgangID)
	return args.Get(0).(*app_errors.AppError)
}

// MockVorgangService wird von den Workflow-Tests genutzt.
type MockVorgangService struct {
	mock.Mock
}

func (m *MockVorgangService) Register(ctx context.Context, in *NewVorgang) (*entity.VorgangEntity, *app_errors.AppError) {
	args := m.Called(ctx, in)
	return args.Get(0).(*entity.VorgangEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockVorgangService) Edit(ctx context.Context, vorgangID string, patch *DetailsPatch) (*entity.VorgangEntity, *app_errors.AppError) {
	args := m.Called(ctx, vorgangID, patch)
	return args.Get(0).(*entity.VorgangEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockVorgangService) Designate(ctx context.Context, vorgangID string, workerIDs, taskTypes []string) (*DesignateResult, *app_errors.AppError) {
	args := m.Called(ctx, vorgangID, workerIDs, taskTypes)
	return args.Get(0).(*DesignateResult), args.Get(1).(*app_errors.AppError)
}

func (m *MockVorgangService) UpdateAssignment(ctx context.Context, vorgangID, workerID string, patch *AssignmentPatch) (*AssignmentResult, *app_errors.AppError) {
	args := m.Called(ctx, vorgangID, workerID, patch)
	return args.Get(0).(*AssignmentResult), args.Get(1).(*app_errors.AppError)
}

func (m *MockVorgangService) Deliver(ctx context.Context, vorgangID, workerID string, patch *AssignmentPatch) (*AssignmentResult, *app_errors.AppError) {
	args := m.Called(ctx, vorgangID, workerID, patch)
	return args.Get(0).(*AssignmentResult), args.Get(1).(*app_errors.AppError)
}

func (m *MockVorgangService) Delete(ctx context.Context, vorgangID string) (*DeleteResult, *app_errors.AppError) {
	args := m.Called(ctx, vorgangID)
	return args.Get(0).(*DeleteResult), args.Get(1).(*app_errors.AppError)
}

func (m *MockVorgangService) Get(ctx context.Context, vorgangID string) (*entity.VorgangEntity, *app_errors.AppError) {
	args := m.Called(ctx, vorgangID)
	return args.Get(0).(*entity.VorgangEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockVorgangService) List(ctx context.Context, filter *vorgang_dto.VorgangListFilter) ([]entity.VorgangEntity, int64, *app_errors.AppError) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]entity.VorgangEntity), int64(args.Int(1)), args.Get(2).(*app_errors.AppError)
}

func (m *MockVorgangService) ListForWorker(ctx context.Context, workerID string, subStatus *entity.AssignmentStatus) ([]entity.WorkerAssignment, *app_errors.AppError) {
	args := m.Called(ctx, workerID, subStatus)
	return args.Get(0).([]entity.WorkerAssignment), args.Get(1).(*app_errors.AppError)
}

func (m *MockVorgangService) Statistics(ctx context.Context) ([]entity.VorgangStatusCount, *app_errors.AppError) {
	args := m.Called(ctx)
	return args.Get(0).([]entity.VorgangStatusCount), args.Get(1).(*app_errors.AppError)
}

func (m *MockVorgangService) IsAssigned(ctx context.Context, vorgangID, workerID string) (bool, *app_errors.AppError) {
	args := m.Called(ctx, vorgangID, workerID)
	return args.Bool(0), args.Get(1).(*app_errors.AppError)
}
