package benachrichtigung_case

import (
	"context"
	"time"

	benachrichtigung_dto "github.com/Xenn-00/vorgang-meister/internal/dtos/benachrichtigung-dto"
	"github.com/Xenn-00/vorgang-meister/internal/entity"
	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
	"github.com/stretchr/testify/mock"
)

type MockBenachrichtigungRepo struct {
	mock.Mock
}

func (m *MockBenachrichtigungRepo) InsertMany(ctx context.Context, items []entity.BenachrichtigungEntity) *app_errors.AppError {
	args := m.Called(ctx, items)
	return args.Get(0).(*app_errors.AppError)
}

func (m *MockBenachrichtigungRepo) ListUnread(ctx context.Context, recipientID string, limit int) ([]entity.BenachrichtigungEntity, *app_errors.AppError) {
	args := m.Called(ctx, recipientID, limit)
	return args.Get(0).([]entity.BenachrichtigungEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockBenachrichtigungRepo) CountUnread(ctx context.Context, recipientID string) (int64, *app_errors.AppError) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Get(1).(*app_errors.AppError)
}

func (m *MockBenachrichtigungRepo) MarkAllRead(ctx context.Context, recipientID string, at time.Time) (int64, *app_errors.AppError) {
	args := m.Called(ctx, recipientID, at)
	return args.Get(0).(int64), args.Get(1).(*app_errors.AppError)
}

// MockNotifier zeichnet jeden Aufruf auf, für Tests des Workflow-Koordinators.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, recipientIDs []string, v *entity.VorgangEntity, message string) int {
	args := m.Called(ctx, recipientIDs, v, message)
	return args.Int(0)
}

func (m *MockNotifier) Dispatch(ctx context.Context, v *entity.VorgangEntity, items []entity.BenachrichtigungEntity) {
	m.Called(ctx, v, items)
}

type MockBenachrichtigungService struct {
	MockNotifier
}

func (m *MockBenachrichtigungService) Inbox(ctx context.Context, userID string) (*benachrichtigung_dto.InboxResponse, *app_errors.AppError) {
	args := m.Called(ctx, userID)
	return args.Get(0).(*benachrichtigung_dto.InboxResponse), args.Get(1).(*app_errors.AppError)
}

func (m *MockBenachrichtigungService) CountUnread(ctx context.Context, userID string) (*benachrichtigung_dto.UnreadCountResponse, *app_errors.AppError) {
	args := m.Called(ctx, userID)
	return args.Get(0).(*benachrichtigung_dto.UnreadCountResponse), args.Get(1).(*app_errors.AppError)
}

func (m *MockBenachrichtigungService) MarkAllRead(ctx context.Context, userID string) (*benachrichtigung_dto.MarkReadResponse, *app_errors.AppError) {
	args := m.Called(ctx, userID)
	return args.Get(0).(*benachrichtigung_dto.MarkReadResponse), args.Get(1).(*app_errors.AppError)
}
