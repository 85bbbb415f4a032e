package vorgang_case

import (
	"context"
	"testing"

	"github.com/Xenn-00/vorgang-meister/internal/entity"
	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Test 1: Update ändert nur gelieferte Felder und gibt ersetzte Anhänge frei
func TestUpdateAssignment_ReplacesHandoverRef(t *testing.T) {
	ctx := context.Background()
	service, repo, tx := setupDeliver(t, entity.VorgangAssigned)

	notes := "vor Ort gewesen"
	repo.On("GetAssignment", ctx, tx, "v-1", "w-1").Return(&entity.AssignmentEntity{
		VorgangID:         "v-1",
		WorkerID:          "w-1",
		TaskType:          "Inspección",
		SubStatus:         entity.AssignmentAssigned,
		ProgressNotes:     &notes,
		HandoverFlag:      entity.HandoverApplies,
		HandoverReference: strPtr("alt"),
	}, (*app_errors.AppError)(nil))
	repo.On("UpdateAssignment", ctx, tx, mock.MatchedBy(func(a *entity.AssignmentEntity) bool {
		return *a.HandoverReference == "neu" && *a.ProgressNotes == notes && a.SubStatus == entity.AssignmentAssigned
	})).Return((*app_errors.AppError)(nil))
	repo.On("RefsInUse", ctx, tx, []string{"neu", "alt"}, "v-1", "w-1").Return([]string(nil), (*app_errors.AppError)(nil))
	tx.On("Commit", ctx).Return((*app_errors.AppError)(nil))

	res, err := service.UpdateAssignment(ctx, "v-1", "w-1", &AssignmentPatch{HandoverReference: strPtr("neu")})

	assert.Nil(t, err)
	assert.Equal(t, []string{"alt"}, res.Released)
	assert.False(t, res.Completed)
	repo.AssertNotCalled(t, "MarkCompleted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// Test 2: Zurücksetzen auf NotApplicable löscht die Referenzen
func TestUpdateAssignment_FlagResetReleasesRefs(t *testing.T) {
	ctx := context.Background()
	service, repo, tx := setupDeliver(t, entity.VorgangAssigned)

	repo.On("GetAssignment", ctx, tx, "v-1", "w-1").Return(&entity.AssignmentEntity{
		VorgangID:         "v-1",
		WorkerID:          "w-1",
		HandoverFlag:      entity.HandoverApplies,
		HandoverReference: strPtr("ref-a"),
		HandoverRecord:    strPtr("ref-b"),
	}, (*app_errors.AppError)(nil))
	repo.On("UpdateAssignment", ctx, tx, mock.MatchedBy(func(a *entity.AssignmentEntity) bool {
		return a.HandoverReference == nil && a.HandoverRecord == nil
	})).Return((*app_errors.AppError)(nil))
	repo.On("RefsInUse", ctx, tx, []string{"ref-a", "ref-b"}, "v-1", "w-1").Return([]string(nil), (*app_errors.AppError)(nil))
	tx.On("Commit", ctx).Return((*app_errors.AppError)(nil))

	res, err := service.UpdateAssignment(ctx, "v-1", "w-1", &AssignmentPatch{HandoverFlag: flagPtr(entity.HandoverNotApplicable)})

	assert.Nil(t, err)
	assert.ElementsMatch(t, []string{"ref-a", "ref-b"}, res.Released)
}

// Test 3: ein abgeschlossener Vorgang kann nicht zurückgesetzt werden
func TestUpdateAssignment_RevertOnCompletedIsConflict(t *testing.T) {
	ctx := context.Background()
	service, repo, tx := setupDeliver(t, entity.VorgangCompleted)

	_, err := service.UpdateAssignment(ctx, "v-1", "w-1", &AssignmentPatch{SubStatus: statusPtr(entity.AssignmentAssigned)})

	assert.NotNil(t, err)
	assert.Equal(t, "vorgang.already_completed", err.MessageKey)
	repo.AssertNotCalled(t, "GetAssignment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	tx.AssertNotCalled(t, "Commit", mock.Anything)
}

// Test 4: eine Referenz einer anderen Zuweisung wird vor dem Speichern abgelehnt
func TestUpdateAssignment_ForeignRefIsConflict(t *testing.T) {
	ctx := context.Background()
	service, repo, tx := setupDeliver(t, entity.VorgangAssigned)

	repo.On("GetAssignment", ctx, tx, "v-1", "w-1").Return(&entity.AssignmentEntity{
		VorgangID:    "v-1",
		WorkerID:     "w-1",
		HandoverFlag: entity.HandoverApplies,
	}, (*app_errors.AppError)(nil))
	repo.On("RefsInUse", ctx, tx, []string{"fremd.pdf"}, "v-1", "w-1").Return([]string{"fremd.pdf"}, (*app_errors.AppError)(nil))

	_, err := service.UpdateAssignment(ctx, "v-1", "w-1", &AssignmentPatch{HandoverRecord: strPtr("fremd.pdf")})

	assert.NotNil(t, err)
	assert.Equal(t, "attachment.in_use", err.MessageKey)
	repo.AssertNotCalled(t, "UpdateAssignment", mock.Anything, mock.Anything, mock.Anything)
	tx.AssertNotCalled(t, "Commit", mock.Anything)
}
