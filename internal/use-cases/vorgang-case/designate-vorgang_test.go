package vorgang_case

import (
	"context"
	"errors"
	"testing"

	"github.com/Xenn-00/vorgang-meister/internal/entity"
	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
	use_cases "github.com/Xenn-00/vorgang-meister/internal/use-cases"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Test 1: unterschiedliche Listenlängen, keine Zustandsänderung
func TestDesignate_LengthMismatch(t *testing.T) {
	ctx := context.Background()
	repo := new(MockVorgangRepo)
	txManager := new(use_cases.MockTxManager)
	service := &VorgangService{repo: repo, txManager: txManager, now: fixedClock}

	_, err := service.Designate(ctx, "v-1", []string{"w-1", "w-2"}, []string{"Inspección"})

	assert.NotNil(t, err)
	assert.Equal(t, app_errors.ErrValidation, err.Type)
	assert.Equal(t, "task_types", err.Details[0].Field)
	txManager.AssertNotCalled(t, "Begin", mock.Anything)
}

// Test 2: doppelte Techniker verletzen den Schlüssel (vorgang_id, worker_id)
func TestDesignate_DuplicateWorker(t *testing.T) {
	ctx := context.Background()
	txManager := new(use_cases.MockTxManager)
	service := &VorgangService{txManager: txManager, now: fixedClock}

	_, err := service.Designate(ctx, "v-1", []string{"w-1", "w-1"}, []string{"A", "B"})

	assert.NotNil(t, err)
	assert.Equal(t, "unique", err.Details[0].Reason)
	txManager.AssertNotCalled(t, "Begin", mock.Anything)
}

// Test 3: Neuzuweisung ersetzt die Liste und verwirft alte Benachrichtigungen
func TestDesignate_RedesignationReplacesAssignments(t *testing.T) {
	ctx := context.Background()
	repo := new(MockVorgangRepo)
	txManager := new(use_cases.MockTxManager)
	tx := new(use_cases.MockTx)
	service := &VorgangService{repo: repo, txManager: txManager, now: fixedClock}

	ref := "anhang-7"
	previous := []entity.AssignmentEntity{
		{VorgangID: "v-1", WorkerID: "w-old", HandoverFlag: entity.HandoverApplies, HandoverReference: &ref},
	}

	txManager.On("Begin", ctx).Return(tx, (*app_errors.AppError)(nil))
	tx.On("Rollback", ctx).Return((*app_errors.AppError)(nil))
	tx.On("Commit", ctx).Return((*app_errors.AppError)(nil))
	repo.On("LockVorgang", ctx, tx, "v-1").Return(&entity.VorgangEntity{ID: "v-1", SequentialLabel: "2024-0001", Status: entity.VorgangAssigned}, (*app_errors.AppError)(nil))
	repo.On("ListAssignments", ctx, tx, "v-1").Return(previous, (*app_errors.AppError)(nil))
	repo.On("ReplaceAssignments", ctx, tx, "v-1", mock.MatchedBy(func(as []entity.AssignmentEntity) bool {
		return len(as) == 2 &&
			as[0].WorkerID == "w-1" && as[0].TaskType == "Inspección" && as[0].Position == 0 &&
			as[1].WorkerID == "w-2" && as[1].TaskType == "Consultoría" && as[1].Position == 1 &&
			as[0].SubStatus == entity.AssignmentAssigned
	})).Return((*app_errors.AppError)(nil))
	repo.On("MarkDesignated", ctx, tx, "v-1", fixedNow).Return((*app_errors.AppError)(nil))
	repo.On("DeleteNotificationsForVorgang", ctx, tx, "v-1").Return(3, (*app_errors.AppError)(nil))
	repo.On("InsertNotifications", ctx, tx, mock.MatchedBy(func(items []entity.BenachrichtigungEntity) bool {
		return len(items) == 2 &&
			items[0].RecipientID == "w-1" && items[0].Message == "Vorgang 2024-0001 wurde Ihnen zugewiesen: Inspección." &&
			items[1].RecipientID == "w-2" && items[1].Message == "Vorgang 2024-0001 wurde Ihnen zugewiesen: Consultoría."
	})).Return((*app_errors.AppError)(nil))
	repo.On("RefsInUse", ctx, tx, []string{"anhang-7"}, "v-1", "").Return([]string(nil), (*app_errors.AppError)(nil))

	res, err := service.Designate(ctx, "v-1", []string{"w-1", "w-2"}, []string{"Inspección", "Consultoría"})

	assert.Nil(t, err)
	assert.Equal(t, entity.VorgangAssigned, res.Vorgang.Status)
	assert.Equal(t, fixedNow, *res.Vorgang.DesignatedAt)
	assert.Equal(t, []string{"anhang-7"}, res.Released)
	assert.Equal(t, int64(3), res.InvalidatedNotifications)
	assert.Len(t, res.Vorgang.Assignments, 2)
	assert.Len(t, res.Notifications, 2)
	repo.AssertExpectations(t)
	tx.AssertExpectations(t)
}

// Test 4: abgeschlossene Vorgänge werden nicht neu zugewiesen
func TestDesignate_CompletedIsConflict(t *testing.T) {
	ctx := context.Background()
	repo := new(MockVorgangRepo)
	txManager := new(use_cases.MockTxManager)
	tx := new(use_cases.MockTx)
	service := &VorgangService{repo: repo, txManager: txManager, now: fixedClock}

	txManager.On("Begin", ctx).Return(tx, (*app_errors.AppError)(nil))
	tx.On("Rollback", ctx).Return((*app_errors.AppError)(nil))
	repo.On("LockVorgang", ctx, tx, "v-1").Return(&entity.VorgangEntity{ID: "v-1", Status: entity.VorgangCompleted}, (*app_errors.AppError)(nil))

	_, err := service.Designate(ctx, "v-1", []string{"w-1"}, []string{"A"})

	assert.NotNil(t, err)
	assert.Equal(t, "vorgang.already_completed", err.MessageKey)
	repo.AssertNotCalled(t, "ReplaceAssignments", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	tx.AssertNotCalled(t, "Commit", mock.Anything)
}

// Test 5: unbekannter Vorgang
func TestDesignate_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(MockVorgangRepo)
	txManager := new(use_cases.MockTxManager)
	tx := new(use_cases.MockTx)
	service := &VorgangService{repo: repo, txManager: txManager, now: fixedClock}

	txManager.On("Begin", ctx).Return(tx, (*app_errors.AppError)(nil))
	tx.On("Rollback", ctx).Return((*app_errors.AppError)(nil))
	repo.On("LockVorgang", ctx, tx, "missing").Return((*entity.VorgangEntity)(nil), app_errors.NewNotFoundError("vorgang_not_found"))

	_, err := service.Designate(ctx, "missing", []string{"w-1"}, []string{"A"})

	assert.NotNil(t, err)
	assert.Equal(t, app_errors.ErrNotFound, err.Type)
	tx.AssertNotCalled(t, "Commit", mock.Anything)
}

// Test 6: scheitert das Speichern der Benachrichtigungen, wird nichts festgeschrieben
func TestDesignate_NotificationsShareTransaction(t *testing.T) {
	ctx := context.Background()
	repo := new(MockVorgangRepo)
	txManager := new(use_cases.MockTxManager)
	tx := new(use_cases.MockTx)
	service := &VorgangService{repo: repo, txManager: txManager, now: fixedClock}

	txManager.On("Begin", ctx).Return(tx, (*app_errors.AppError)(nil))
	tx.On("Rollback", ctx).Return((*app_errors.AppError)(nil))
	repo.On("LockVorgang", ctx, tx, "v-1").Return(&entity.VorgangEntity{ID: "v-1", SequentialLabel: "2024-0001", Status: entity.VorgangPending}, (*app_errors.AppError)(nil))
	repo.On("ListAssignments", ctx, tx, "v-1").Return([]entity.AssignmentEntity{}, (*app_errors.AppError)(nil))
	repo.On("ReplaceAssignments", ctx, tx, "v-1", mock.Anything).Return((*app_errors.AppError)(nil))
	repo.On("MarkDesignated", ctx, tx, "v-1", fixedNow).Return((*app_errors.AppError)(nil))
	repo.On("DeleteNotificationsForVorgang", ctx, tx, "v-1").Return(0, (*app_errors.AppError)(nil))
	repo.On("InsertNotifications", ctx, tx, mock.Anything).Return(app_errors.NewStorageError(errors.New("db down")))

	_, err := service.Designate(ctx, "v-1", []string{"w-1"}, []string{"Inspección"})

	assert.NotNil(t, err)
	assert.Equal(t, app_errors.ErrStorage, err.Type)
	tx.AssertNotCalled(t, "Commit", mock.Anything)
	tx.AssertCalled(t, "Rollback", ctx)
}
