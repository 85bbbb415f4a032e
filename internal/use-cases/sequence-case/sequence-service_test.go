package sequence_case

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Xenn-00/vorgang-meister/internal/entity"
	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
	use_cases "github.com/Xenn-00/vorgang-meister/internal/use-cases"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Test 1: Allocate zählt vom aktuellen Maximum weiter
func TestAllocate_Success(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSequenceRepo)
	tx := new(use_cases.MockTx)
	service := &SequenceService{repo: repo, maxAttempts: 3}

	repo.On("LockSequence", ctx, tx, 2024).Return((*app_errors.AppError)(nil))
	repo.On("MaxCounter", ctx, tx, 2024).Return(7, (*app_errors.AppError)(nil))

	label, err := service.Allocate(ctx, tx, 2024)

	assert.Nil(t, err)
	assert.Equal(t, "2024-0008", label)
	repo.AssertExpectations(t)
}

// Test 2: leeres Jahr beginnt bei 0001
func TestAllocate_EmptyYear(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSequenceRepo)
	tx := new(use_cases.MockTx)
	service := &SequenceService{repo: repo, maxAttempts: 3}

	repo.On("LockSequence", ctx, tx, 2025).Return((*app_errors.AppError)(nil))
	repo.On("MaxCounter", ctx, tx, 2025).Return(0, (*app_errors.AppError)(nil))

	label, err := service.Allocate(ctx, tx, 2025)

	assert.Nil(t, err)
	assert.Equal(t, "2025-0001", label)
}

// Test 3: das Maximum wird erst unter der Jahressperre gelesen
func TestAllocate_LocksBeforeReadingMax(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSequenceRepo)
	tx := new(use_cases.MockTx)
	service := &SequenceService{repo: repo, maxAttempts: 3}

	var order []string
	repo.On("LockSequence", ctx, tx, 2024).Run(func(mock.Arguments) { order = append(order, "lock") }).Return((*app_errors.AppError)(nil))
	repo.On("MaxCounter", ctx, tx, 2024).Run(func(mock.Arguments) { order = append(order, "max") }).Return(3, (*app_errors.AppError)(nil))

	_, err := service.Allocate(ctx, tx, 2024)

	assert.Nil(t, err)
	assert.Equal(t, []string{"lock", "max"}, order)
}

// Test 4: scheitert die Sperre, wird kein Label vergeben
func TestAllocate_LockFailure(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSequenceRepo)
	tx := new(use_cases.MockTx)
	service := &SequenceService{repo: repo, maxAttempts: 2}

	repo.On("LockSequence", ctx, tx, 2024).Return(app_errors.NewStorageError(errors.New("connection reset")))

	label, err := service.Allocate(ctx, tx, 2024)

	assert.NotNil(t, err)
	assert.Equal(t, app_errors.ErrStorage, err.Type)
	assert.Empty(t, label)
	repo.AssertNotCalled(t, "MaxCounter", mock.Anything, mock.Anything, mock.Anything)
}

// Test 5: Validierungsfehler werden nicht wiederholt
func TestRenumber_DoesNotRetryValidationError(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSequenceRepo)
	txManager := new(use_cases.MockTxManager)
	tx := new(use_cases.MockTx)
	service := &SequenceService{repo: repo, txManager: txManager, maxAttempts: 5}

	txManager.On("Begin", ctx).Return(tx, (*app_errors.AppError)(nil)).Once()
	tx.On("Rollback", ctx).Return((*app_errors.AppError)(nil))
	repo.On("LockSequence", ctx, tx, 2024).Return((*app_errors.AppError)(nil))
	repo.On("LockYear", ctx, tx, 2024).Return([]entity.LabelledVorgang(nil), app_errors.NewFieldValidationError("year", "invalid", "validation.invalid"))

	_, err := service.Renumber(ctx, 2024)

	assert.NotNil(t, err)
	assert.Equal(t, app_errors.ErrValidation, err.Type)
	txManager.AssertNumberOfCalls(t, "Begin", 1)
}

// Test 6: lückenloses Jahr schreibt nichts und committet nicht
func TestRenumber_NoopWhenContiguous(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSequenceRepo)
	txManager := new(use_cases.MockTxManager)
	tx := new(use_cases.MockTx)
	service := &SequenceService{repo: repo, txManager: txManager, maxAttempts: 3}

	now := time.Now()
	txManager.On("Begin", ctx).Return(tx, (*app_errors.AppError)(nil))
	tx.On("Rollback", ctx).Return((*app_errors.AppError)(nil))
	repo.On("LockSequence", ctx, tx, 2024).Return((*app_errors.AppError)(nil))
	repo.On("LockYear", ctx, tx, 2024).Return([]entity.LabelledVorgang{
		{ID: "a", SequentialLabel: "2024-0001", ReceivedAt: now},
		{ID: "b", SequentialLabel: "2024-0002", ReceivedAt: now.Add(time.Second)},
	}, (*app_errors.AppError)(nil))

	n, err := service.Renumber(ctx, 2024)

	assert.Nil(t, err)
	assert.Equal(t, 0, n)
	repo.AssertNotCalled(t, "ApplyRenames", mock.Anything, mock.Anything, mock.Anything)
	tx.AssertNotCalled(t, "Commit", mock.Anything)
}

// Test 7: Konflikt beim Umbenennen wird mit frischer Transaktion wiederholt
func TestRenumber_RetriesConflict(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSequenceRepo)
	txManager := new(use_cases.MockTxManager)
	tx := new(use_cases.MockTx)
	service := &SequenceService{repo: repo, txManager: txManager, maxAttempts: 3}

	now := time.Now()
	records := []entity.LabelledVorgang{
		{ID: "a", SequentialLabel: "2024-0001", ReceivedAt: now},
		{ID: "c", SequentialLabel: "2024-0003", ReceivedAt: now.Add(time.Second)},
	}
	expectedPlan := []entity.LabelRename{{VorgangID: "c", From: "2024-0003", To: "2024-0002"}}

	txManager.On("Begin", ctx).Return(tx, (*app_errors.AppError)(nil))
	tx.On("Rollback", ctx).Return((*app_errors.AppError)(nil))
	repo.On("LockSequence", ctx, tx, 2024).Return((*app_errors.AppError)(nil))
	repo.On("LockYear", ctx, tx, 2024).Return(records, (*app_errors.AppError)(nil))
	repo.On("ApplyRenames", ctx, tx, expectedPlan).Return(app_errors.NewConflictError("conflict", nil)).Once()
	repo.On("ApplyRenames", ctx, tx, expectedPlan).Return((*app_errors.AppError)(nil)).Once()
	tx.On("Commit", ctx).Return((*app_errors.AppError)(nil)).Once()

	n, err := service.Renumber(ctx, 2024)

	assert.Nil(t, err)
	assert.Equal(t, 1, n)
	txManager.AssertNumberOfCalls(t, "Begin", 2)
	tx.AssertExpectations(t)
}

// Test 8: abgebrochener Kontext beendet das Warten zwischen Versuchen
func TestWithRetry_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	service := &SequenceService{maxAttempts: 5, backoff: time.Hour}
	calls := 0

	err := service.withRetry(ctx, "allocate", 2024, func() *app_errors.AppError {
		calls++
		return app_errors.NewStorageError(errors.New("down"))
	})

	assert.NotNil(t, err)
	assert.Equal(t, 1, calls)
}
