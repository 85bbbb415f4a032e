package workflow_case

import (
	"context"
	"errors"
	"testing"

	"github.com/Xenn-00/vorgang-meister/internal/entity"
	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
	vorgang_case "github.com/Xenn-00/vorgang-meister/internal/use-cases/vorgang-case"
	worker_task "github.com/Xenn-00/vorgang-meister/internal/worker/tasks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Test 1: Offene Neunummerierung wird als Reparatur eingereiht
func TestDelete_EnqueuesRepairWhenRenumberPending(t *testing.T) {
	ctx := context.Background()
	f := setup()

	f.vorgaenge.On("Delete", ctx, "v-1").Return(&vorgang_case.DeleteResult{
		Vorgang:         &entity.VorgangEntity{ID: "v-1", SequentialLabel: "2023-0005"},
		Released:        []string{"a.pdf", "b.jpg"},
		RenumberPending: true,
	}, (*app_errors.AppError)(nil))
	f.queue.On("EnqueueSequenceRepair", ctx, &worker_task.SequenceRepair{Year: 2023}).Return(nil)

	resp, err := f.svc.Delete(ctx, empfaenger, "v-1")

	require.Nil(t, err)
	assert.True(t, resp.RenumberPending)
	assert.Equal(t, "2023-0005", resp.SequentialLabel)
	assert.ElementsMatch(t, []string{"a.pdf", "b.jpg"}, f.store.deleted)
	f.queue.AssertExpectations(t)
}

// Test 2: Fehler beim Einreihen ändert die Antwort nicht
func TestDelete_EnqueueFailureIsLogged(t *testing.T) {
	ctx := context.Background()
	f := setup()

	f.vorgaenge.On("Delete", ctx, "v-1").Return(&vorgang_case.DeleteResult{
		Vorgang:         &entity.VorgangEntity{ID: "v-1", SequentialLabel: "2023-0005"},
		RenumberPending: true,
	}, (*app_errors.AppError)(nil))
	f.queue.On("EnqueueSequenceRepair", ctx, mock.Anything).Return(errors.New("redis down"))

	resp, err := f.svc.Delete(ctx, disponent, "v-1")

	require.Nil(t, err)
	assert.True(t, resp.RenumberPending)
}

// Test 3: Ohne offene Neunummerierung keine Reparatur
func TestDelete_NoRepairWhenRenumbered(t *testing.T) {
	ctx := context.Background()
	f := setup()

	f.vorgaenge.On("Delete", ctx, "v-1").Return(&vorgang_case.DeleteResult{
		Vorgang: &entity.VorgangEntity{ID: "v-1", SequentialLabel: "2023-0005"},
	}, (*app_errors.AppError)(nil))

	_, err := f.svc.Delete(ctx, empfaenger, "v-1")

	require.Nil(t, err)
	f.queue.AssertNotCalled(t, "EnqueueSequenceRepair", mock.Anything, mock.Anything)
}

// Test 4: Techniker dürfen nicht löschen
func TestDelete_Forbidden(t *testing.T) {
	f := setup()

	_, err := f.svc.Delete(context.Background(), techniker, "v-1")

	require.NotNil(t, err)
	assert.Equal(t, app_errors.ErrForbidden, err.Type)
	f.vorgaenge.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
