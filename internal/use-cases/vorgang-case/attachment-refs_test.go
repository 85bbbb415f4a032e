package vorgang_case

import (
	"context"
	"testing"

	"github.com/Xenn-00/vorgang-meister/internal/entity"
	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const refB = "bbbbbbbbbbbbbbbbbbbbbbbb.pdf"

// seedHandover legt v-1 mit zwei Zuweisungen an, von denen nur B einen Anhang hält.
func seedHandover(t *testing.T) (*memVorgangRepo, *VorgangService) {
	t.Helper()
	repo := newMemVorgangRepo()
	service := newMemService(repo)
	seedDesignated(t, repo, service, "A", "B")

	applies := flagPtr(entity.HandoverApplies)
	_, err := service.UpdateAssignment(context.Background(), "v-1", "A", &AssignmentPatch{HandoverFlag: applies})
	require.Nil(t, err)
	ref := refB
	_, err = service.UpdateAssignment(context.Background(), "v-1", "B", &AssignmentPatch{HandoverFlag: applies, HandoverReference: &ref})
	require.Nil(t, err)
	return repo, service
}

func assignmentOf(repo *memVorgangRepo, vorgangID, workerID string) entity.AssignmentEntity {
	for _, a := range repo.assignments[vorgangID] {
		if a.WorkerID == workerID {
			return a
		}
	}
	return entity.AssignmentEntity{}
}

// Test 1: eine Referenz, die eine andere Zuweisung hält, kann nicht übernommen werden
func TestUpdateAssignment_RejectsForeignRef(t *testing.T) {
	ctx := context.Background()
	repo, service := seedHandover(t)

	ref := refB
	_, err := service.UpdateAssignment(ctx, "v-1", "A", &AssignmentPatch{HandoverRecord: &ref})

	require.NotNil(t, err)
	assert.Equal(t, app_errors.ErrConflict, err.Type)
	assert.Equal(t, "attachment.in_use", err.MessageKey)
	assert.Nil(t, assignmentOf(repo, "v-1", "A").HandoverRecord)
}

// Test 2: auch über Deliver lässt sich keine fremde Referenz übernehmen
func TestDeliver_RejectsForeignRef(t *testing.T) {
	ctx := context.Background()
	repo, service := seedHandover(t)

	ref := refB
	patch := concluded()
	patch.HandoverReference = &ref
	_, err := service.Deliver(ctx, "v-1", "A", patch)

	require.NotNil(t, err)
	assert.Equal(t, "attachment.in_use", err.MessageKey)
	assert.Equal(t, entity.AssignmentAssigned, assignmentOf(repo, "v-1", "A").SubStatus)
}

// Test 3: eine Referenz, die noch woanders gehalten wird, wird nie freigegeben
func TestUpdateAssignment_KeepsRefHeldElsewhere(t *testing.T) {
	ctx := context.Background()
	repo, service := seedHandover(t)

	// Altbestand: A hält dieselbe Referenz wie B
	repo.mu.Lock()
	for i := range repo.assignments["v-1"] {
		if repo.assignments["v-1"][i].WorkerID == "A" {
			ref := refB
			repo.assignments["v-1"][i].HandoverReference = &ref
		}
	}
	repo.mu.Unlock()

	res, err := service.UpdateAssignment(ctx, "v-1", "A", &AssignmentPatch{HandoverFlag: flagPtr(entity.HandoverNotApplicable)})

	require.Nil(t, err)
	assert.Empty(t, res.Released)
	assert.Nil(t, assignmentOf(repo, "v-1", "A").HandoverReference)
	assert.Equal(t, refB, *assignmentOf(repo, "v-1", "B").HandoverReference)
}

// Test 4: die eigene Referenz wird beim Ersetzen weiterhin freigegeben
func TestUpdateAssignment_ReleasesOwnRef(t *testing.T) {
	ctx := context.Background()
	_, service := seedHandover(t)

	empty := ""
	res, err := service.UpdateAssignment(ctx, "v-1", "B", &AssignmentPatch{HandoverReference: &empty})

	require.Nil(t, err)
	assert.Equal(t, []string{refB}, res.Released)
}

// Test 5: Neudisposition gibt keine Referenz frei, die ein anderer Vorgang hält
func TestDesignate_KeepsRefHeldByOtherVorgang(t *testing.T) {
	ctx := context.Background()
	repo, service := seedHandover(t)

	ref := refB
	repo.vorgaenge["v-2"] = entity.VorgangEntity{ID: "v-2", SequentialLabel: "2024-0002", Status: entity.VorgangAssigned}
	repo.assignments["v-2"] = []entity.AssignmentEntity{
		{VorgangID: "v-2", WorkerID: "C", HandoverFlag: entity.HandoverApplies, HandoverReference: &ref},
	}

	res, err := service.Designate(ctx, "v-1", []string{"D"}, []string{"Inspección"})

	require.Nil(t, err)
	assert.Empty(t, res.Released)
}
