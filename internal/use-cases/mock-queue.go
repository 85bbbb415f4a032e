package use_cases

import (
	"context"

	"github.com/Xenn-00/vorgang-meister/internal/queue"
	worker_task "github.com/Xenn-00/vorgang-meister/internal/worker/tasks"
	"github.com/stretchr/testify/mock"
)

var _ queue.TaskQueueClient = (*MockTaskQueue)(nil)

// Mock TaskQueue for testing
type MockTaskQueue struct {
	mock.Mock
}

func (m *MockTaskQueue) EnqueueVorgangNotificationEmail(ctx context.Context, payload *worker_task.VorgangNotificationEmail) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

func (m *MockTaskQueue) EnqueueSequenceRepair(ctx context.Context, payload *worker_task.SequenceRepair) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}
