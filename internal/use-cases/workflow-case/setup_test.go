package workflow_case

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
	use_cases "github.com/Xenn-00/vorgang-meister/internal/use-cases"
	benachrichtigung_case "github.com/Xenn-00/vorgang-meister/internal/use-cases/benachrichtigung-case"
	katalog_case "github.com/Xenn-00/vorgang-meister/internal/use-cases/katalog-case"
	user_case "github.com/Xenn-00/vorgang-meister/internal/use-cases/user-case"
	vorgang_case "github.com/Xenn-00/vorgang-meister/internal/use-cases/vorgang-case"
)

var fixedNow = time.Date(2024, 5, 6, 9, 0, 0, 0, time.UTC)

type fakeStore struct {
	mu      sync.Mutex
	deleted []string
	files   map[string]string
	owners  map[string]string
}

func (f *fakeStore) Put(ctx context.Context, owner, filename string, r io.Reader) (string, *app_errors.AppError) {
	b, _ := io.ReadAll(r)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.files == nil {
		f.files = map[string]string{}
	}
	f.files["ref-1"] = string(b)
	f.own("ref-1", owner)
	return "ref-1", nil
}

// own verlangt f.mu oder einen Aufrufer ohne Nebenläufigkeit.
func (f *fakeStore) own(ref, owner string) {
	if f.owners == nil {
		f.owners = map[string]string{}
	}
	f.owners[ref] = owner
}

func (f *fakeStore) Owner(ctx context.Context, ref string) (string, *app_errors.AppError) {
	f.mu.Lock()
	defer f.mu.Unlock()
	owner, ok := f.owners[ref]
	if !ok {
		return "", app_errors.NewNotFoundError("attachment.not_found")
	}
	return owner, nil
}

func (f *fakeStore) Open(ctx context.Context, ref string) (io.ReadCloser, *app_errors.AppError) {
	f.mu.Lock()
	defer f.mu.Unlock()
	body, ok := f.files[ref]
	if !ok {
		return nil, app_errors.NewNotFoundError("attachment.not_found")
	}
	return io.NopCloser(strings.NewReader(body)), nil
}

func (f *fakeStore) Delete(ctx context.Context, ref string) *app_errors.AppError {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, ref)
	return nil
}

type fixture struct {
	svc       *WorkflowService
	vorgaenge *vorgang_case.MockVorgangService
	users     *user_case.MockUserService
	katalog   *katalog_case.MockKatalogService
	directory *user_case.MockUserRepo
	notifier  *benachrichtigung_case.MockNotifier
	store     *fakeStore
	queue     *use_cases.MockTaskQueue
}

func setup() *fixture {
	f := &fixture{
		vorgaenge: new(vorgang_case.MockVorgangService),
		users:     new(user_case.MockUserService),
		katalog:   new(katalog_case.MockKatalogService),
		directory: new(user_case.MockUserRepo),
		notifier:  new(benachrichtigung_case.MockNotifier),
		store:     &fakeStore{},
		queue:     new(use_cases.MockTaskQueue),
	}
	f.svc = &WorkflowService{
		vorgaenge:   f.vorgaenge,
		users:       f.users,
		katalog:     f.katalog,
		directory:   f.directory,
		notifier:    f.notifier,
		attachments: f.store,
		queue:       f.queue,
	}
	return f
}
