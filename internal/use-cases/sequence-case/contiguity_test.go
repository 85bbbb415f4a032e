package sequence_case

import (
	"context"
	"fmt"
	"math/rand"
	"slices"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/Xenn-00/vorgang-meister/internal/abstraction/tx"
	"github.com/Xenn-00/vorgang-meister/internal/entity"
	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memTx gibt die Jahressperren beim Commit oder Rollback frei, wie pg_advisory_xact_lock.
type memTx struct {
	release []func()
}

func (t *memTx) end() {
	for _, r := range t.release {
		r()
	}
	t.release = nil
}

func (t *memTx) Commit(context.Context) *app_errors.AppError   { t.end(); return nil }
func (t *memTx) Rollback(context.Context) *app_errors.AppError { t.end(); return nil }

type memTxManager struct{}

func (memTxManager) Begin(context.Context) (tx.Tx, *app_errors.AppError) { return &memTx{}, nil }

// memSequenceRepo hält Labels im Speicher und prüft bei jedem Schritt die Eindeutigkeit.
type memSequenceRepo struct {
	mu        sync.Mutex
	records   map[string]entity.LabelledVorgang
	yearLocks map[int]*sync.Mutex
}

func newMemSequenceRepo() *memSequenceRepo {
	return &memSequenceRepo{records: map[string]entity.LabelledVorgang{}, yearLocks: map[int]*sync.Mutex{}}
}

func (r *memSequenceRepo) LockSequence(_ context.Context, t tx.Tx, year int) *app_errors.AppError {
	r.mu.Lock()
	l, ok := r.yearLocks[year]
	if !ok {
		l = &sync.Mutex{}
		r.yearLocks[year] = l
	}
	r.mu.Unlock()

	l.Lock()
	mt := t.(*memTx)
	mt.release = append(mt.release, l.Unlock)
	return nil
}

func (r *memSequenceRepo) MaxCounter(_ context.Context, _ tx.Tx, year int) (int, *app_errors.AppError) {
	r.mu.Lock()
	defer r.mu.Unlock()
	max := 0
	for _, rec := range r.records {
		y, c, ok := ParseLabel(rec.SequentialLabel)
		if ok && y == year && c > max {
			max = c
		}
	}
	return max, nil
}

func (r *memSequenceRepo) LockYear(_ context.Context, _ tx.Tx, year int) ([]entity.LabelledVorgang, *app_errors.AppError) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.LabelledVorgang
	for _, rec := range r.records {
		if y, _, ok := ParseLabel(rec.SequentialLabel); ok && y == year {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *memSequenceRepo) ApplyRenames(_ context.Context, _ tx.Tx, renames []entity.LabelRename) *app_errors.AppError {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rn := range renames {
		if err := r.setLabel(rn.VorgangID, "~renumber~"+rn.VorgangID); err != nil {
			return err
		}
	}
	for _, rn := range renames {
		if err := r.setLabel(rn.VorgangID, rn.To); err != nil {
			return err
		}
	}
	return nil
}

func (r *memSequenceRepo) setLabel(id, label string) *app_errors.AppError {
	for otherID, rec := range r.records {
		if otherID != id && rec.SequentialLabel == label {
			return app_errors.NewConflictError("conflict", fmt.Errorf("label %s already taken", label))
		}
	}
	rec := r.records[id]
	rec.SequentialLabel = label
	r.records[id] = rec
	return nil
}

func (r *memSequenceRepo) insert(id, label string, receivedAt time.Time) *app_errors.AppError {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.SequentialLabel == label {
			return app_errors.NewConflictError("conflict", nil)
		}
	}
	r.records[id] = entity.LabelledVorgang{ID: id, SequentialLabel: label, ReceivedAt: receivedAt}
	return nil
}

func (r *memSequenceRepo) delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.records, id)
}

func (r *memSequenceRepo) labels(year int) []string {
	recs, _ := r.LockYear(context.Background(), &memTx{}, year)
	out := make([]string, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.SequentialLabel)
	}
	sort.Strings(out)
	return out
}

// registerOne vergibt und fügt in einer Transaktion ein, wie der Vorgang-Service.
func registerOne(ctx context.Context, service *SequenceService, repo *memSequenceRepo, id string, year int, receivedAt time.Time) *app_errors.AppError {
	t, _ := memTxManager{}.Begin(ctx)
	defer t.Rollback(ctx)

	label, err := service.Allocate(ctx, t, year)
	if err != nil {
		return err
	}
	if err := repo.insert(id, label, receivedAt); err != nil {
		return err
	}
	return t.Commit(ctx)
}

func expectedLabels(year, n int) []string {
	out := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, FormatLabel(year, i))
	}
	return out
}

func TestLabelsStayContiguousAcrossInsertsAndDeletes(t *testing.T) {
	ctx := context.Background()
	repo := newMemSequenceRepo()
	service := &SequenceService{repo: repo, txManager: memTxManager{}, maxAttempts: 3}

	rng := rand.New(rand.NewSource(42))
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var ids []string

	for step := 0; step < 300; step++ {
		if len(ids) == 0 || rng.Intn(3) > 0 {
			id := fmt.Sprintf("v-%d", step)
			require.Nil(t, registerOne(ctx, service, repo, id, 2024, base.Add(time.Duration(step)*time.Minute)))
			ids = append(ids, id)
		} else {
			i := rng.Intn(len(ids))
			repo.delete(ids[i])
			ids = slices.Delete(ids, i, i+1)

			_, err := service.Renumber(ctx, 2024)
			require.Nil(t, err)
		}

		require.Equal(t, expectedLabels(2024, len(ids)), repo.labels(2024), "step %d", step)
	}
}

func TestRenumberIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := newMemSequenceRepo()
	service := &SequenceService{repo: repo, txManager: memTxManager{}, maxAttempts: 3}

	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= 6; i++ {
		require.Nil(t, repo.insert(fmt.Sprintf("v-%d", i), FormatLabel(2024, i), base.Add(time.Duration(i)*time.Hour)))
	}
	repo.delete("v-2")
	repo.delete("v-5")

	first, err := service.Renumber(ctx, 2024)
	require.Nil(t, err)
	afterFirst := repo.labels(2024)

	second, err := service.Renumber(ctx, 2024)
	require.Nil(t, err)

	assert.Equal(t, 3, first)
	assert.Equal(t, 0, second)
	assert.Equal(t, afterFirst, repo.labels(2024))
	assert.Equal(t, expectedLabels(2024, 4), afterFirst)
}

func TestRenumberLeavesOtherYearsUntouched(t *testing.T) {
	ctx := context.Background()
	repo := newMemSequenceRepo()
	service := &SequenceService{repo: repo, txManager: memTxManager{}, maxAttempts: 3}

	base := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)
	require.Nil(t, repo.insert("old", "2023-0002", base))
	require.Nil(t, repo.insert("new", "2024-0003", base.Add(48*time.Hour)))

	_, err := service.Renumber(ctx, 2024)
	require.Nil(t, err)

	assert.Equal(t, []string{"2023-0002"}, repo.labels(2023))
	assert.Equal(t, []string{"2024-0001"}, repo.labels(2024))
}

func TestRenumberWaitsForPendingRegistration(t *testing.T) {
	ctx := context.Background()
	repo := newMemSequenceRepo()
	service := &SequenceService{repo: repo, txManager: memTxManager{}, maxAttempts: 3}

	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= 4; i++ {
		require.Nil(t, repo.insert(fmt.Sprintf("v-%d", i), FormatLabel(2024, i), base.Add(time.Duration(i)*time.Hour)))
	}
	repo.delete("v-2")

	// Register hat das Label schon vergeben, aber noch nicht eingefügt.
	pending, _ := memTxManager{}.Begin(ctx)
	label, err := service.Allocate(ctx, pending, 2024)
	require.Nil(t, err)
	require.Equal(t, "2024-0005", label)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := service.Renumber(ctx, 2024)
		assert.Nil(t, err)
	}()

	select {
	case <-done:
		t.Fatal("renumber ran while a registration held the year")
	case <-time.After(50 * time.Millisecond):
	}

	require.Nil(t, repo.insert("v-5", label, base.Add(5*time.Hour)))
	require.Nil(t, pending.Commit(ctx))
	<-done

	assert.Equal(t, expectedLabels(2024, 4), repo.labels(2024))
}
