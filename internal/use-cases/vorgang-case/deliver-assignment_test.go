package vorgang_case

import (
	"context"
	"testing"

	"github.com/Xenn-00/vorgang-meister/internal/entity"
	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
	use_cases "github.com/Xenn-00/vorgang-meister/internal/use-cases"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func statusPtr(s entity.AssignmentStatus) *entity.AssignmentStatus { return &s }

func flagPtr(f entity.HandoverFlag) *entity.HandoverFlag { return &f }

func strPtr(s string) *string { return &s }

func setupDeliver(t *testing.T, status entity.VorgangStatus) (*VorgangService, *MockVorgangRepo, *use_cases.MockTx) {
	t.Helper()
	ctx := context.Background()
	repo := new(MockVorgangRepo)
	txManager := new(use_cases.MockTxManager)
	tx := new(use_cases.MockTx)

	txManager.On("Begin", ctx).Return(tx, (*app_errors.AppError)(nil))
	tx.On("Rollback", ctx).Return((*app_errors.AppError)(nil))
	repo.On("LockVorgang", ctx, tx, "v-1").Return(&entity.VorgangEntity{ID: "v-1", SequentialLabel: "2024-0005", Status: status}, (*app_errors.AppError)(nil))

	return &VorgangService{repo: repo, txManager: txManager, now: fixedClock}, repo, tx
}

// Test 1: ohne "Concluded" im selben Request wird abgelehnt, bevor gespeichert wird
func TestDeliver_MustConcludeFirst(t *testing.T) {
	ctx := context.Background()
	repo := new(MockVorgangRepo)
	txManager := new(use_cases.MockTxManager)
	service := &VorgangService{repo: repo, txManager: txManager, now: fixedClock}

	for _, patch := range []*AssignmentPatch{nil, {}, {SubStatus: statusPtr(entity.AssignmentAssigned)}} {
		_, err := service.Deliver(ctx, "v-1", "w-1", patch)

		assert.NotNil(t, err)
		assert.Equal(t, app_errors.ErrConflict, err.Type)
		assert.Equal(t, "assignment.must_conclude_before_delivering", err.MessageKey)
	}
	txManager.AssertNotCalled(t, "Begin", mock.Anything)
}

// Test 2: erster Techniker gibt ab, der zweite ist noch offen
func TestDeliver_NotLastKeepsAssigned(t *testing.T) {
	ctx := context.Background()
	service, repo, tx := setupDeliver(t, entity.VorgangAssigned)

	repo.On("GetAssignment", ctx, tx, "v-1", "w-1").Return(&entity.AssignmentEntity{
		VorgangID: "v-1", WorkerID: "w-1", SubStatus: entity.AssignmentAssigned, HandoverFlag: entity.HandoverNotApplicable,
	}, (*app_errors.AppError)(nil))
	repo.On("UpdateAssignment", ctx, tx, mock.MatchedBy(func(a *entity.AssignmentEntity) bool {
		return a.SubStatus == entity.AssignmentConcluded && a.ConcludedAt != nil && *a.ProgressNotes == "erledigt"
	})).Return((*app_errors.AppError)(nil))
	repo.On("AllAssignmentsConcluded", ctx, tx, "v-1").Return(false, (*app_errors.AppError)(nil))
	tx.On("Commit", ctx).Return((*app_errors.AppError)(nil))

	res, err := service.Deliver(ctx, "v-1", "w-1", &AssignmentPatch{
		SubStatus:     statusPtr(entity.AssignmentConcluded),
		ProgressNotes: strPtr("erledigt"),
	})

	assert.Nil(t, err)
	assert.False(t, res.Completed)
	assert.Equal(t, entity.VorgangAssigned, res.Vorgang.Status)
	repo.AssertNotCalled(t, "MarkCompleted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

// Test 3: letzte Abgabe schließt den Vorgang ab
func TestDeliver_LastCompletesVorgang(t *testing.T) {
	ctx := context.Background()
	service, repo, tx := setupDeliver(t, entity.VorgangAssigned)

	repo.On("GetAssignment", ctx, tx, "v-1", "w-2").Return(&entity.AssignmentEntity{
		VorgangID: "v-1", WorkerID: "w-2", SubStatus: entity.AssignmentAssigned, HandoverFlag: entity.HandoverNotApplicable,
	}, (*app_errors.AppError)(nil))
	repo.On("UpdateAssignment", ctx, tx, mock.Anything).Return((*app_errors.AppError)(nil))
	repo.On("AllAssignmentsConcluded", ctx, tx, "v-1").Return(true, (*app_errors.AppError)(nil))
	repo.On("MarkCompleted", ctx, tx, "v-1", fixedNow).Return(true, (*app_errors.AppError)(nil))
	tx.On("Commit", ctx).Return((*app_errors.AppError)(nil))

	res, err := service.Deliver(ctx, "v-1", "w-2", &AssignmentPatch{SubStatus: statusPtr(entity.AssignmentConcluded)})

	assert.Nil(t, err)
	assert.True(t, res.Completed)
	assert.Equal(t, entity.VorgangCompleted, res.Vorgang.Status)
	assert.Equal(t, fixedNow, *res.Vorgang.CompletedAt)
	tx.AssertExpectations(t)
}

// Test 4: fremde oder fehlende Zuweisung
func TestDeliver_AssignmentNotFound(t *testing.T) {
	ctx := context.Background()
	service, repo, tx := setupDeliver(t, entity.VorgangAssigned)

	repo.On("GetAssignment", ctx, tx, "v-1", "w-9").Return((*entity.AssignmentEntity)(nil), app_errors.NewNotFoundError("assignment_not_found"))

	_, err := service.Deliver(ctx, "v-1", "w-9", &AssignmentPatch{SubStatus: statusPtr(entity.AssignmentConcluded)})

	assert.NotNil(t, err)
	assert.Equal(t, "assignment_not_found", err.MessageKey)
	tx.AssertNotCalled(t, "Commit", mock.Anything)
}

// Test 5: nicht zugewiesener und bereits abgeschlossener Vorgang
func TestDeliver_StatusPreconditions(t *testing.T) {
	ctx := context.Background()
	patch := &AssignmentPatch{SubStatus: statusPtr(entity.AssignmentConcluded)}

	service, _, _ := setupDeliver(t, entity.VorgangPending)
	_, err := service.Deliver(ctx, "v-1", "w-1", patch)
	assert.Equal(t, "vorgang.not_designated", err.MessageKey)

	service, _, _ = setupDeliver(t, entity.VorgangCompleted)
	_, err = service.Deliver(ctx, "v-1", "w-1", patch)
	assert.Equal(t, "vorgang.already_completed", err.MessageKey)
}

// Test 6: Referenzen bei handover_flag NotApplicable sind ungültig
func TestDeliver_HandoverRefsRequireApplies(t *testing.T) {
	ctx := context.Background()
	service, repo, tx := setupDeliver(t, entity.VorgangAssigned)

	repo.On("GetAssignment", ctx, tx, "v-1", "w-1").Return(&entity.AssignmentEntity{
		VorgangID: "v-1", WorkerID: "w-1", SubStatus: entity.AssignmentAssigned, HandoverFlag: entity.HandoverNotApplicable,
	}, (*app_errors.AppError)(nil))

	_, err := service.Deliver(ctx, "v-1", "w-1", &AssignmentPatch{
		SubStatus:         statusPtr(entity.AssignmentConcluded),
		HandoverReference: strPtr("anhang-1"),
	})

	assert.NotNil(t, err)
	assert.Equal(t, app_errors.ErrValidation, err.Type)
	repo.AssertNotCalled(t, "UpdateAssignment", mock.Anything, mock.Anything, mock.Anything)
}
