package attachment

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	refAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	// ownerDir beginnt mit einem Punkt und ist damit nie eine gültige Referenz.
	ownerDir = ".owners"
)

var (
	refPattern = regexp.MustCompile(`^[0-9a-z]{24}(\.[0-9a-z]{1,8})?$`)
	extPattern = regexp.MustCompile(`^\.[0-9a-z]{1,8}$`)
)

type LocalStore struct {
	dir      string
	maxBytes int64
}

func NewLocalStore(dir string, maxBytes int64) (*LocalStore, error) {
	if err := os.MkdirAll(filepath.Join(dir, ownerDir), 0o750); err != nil {
		return nil, err
	}
	return &LocalStore{dir: dir, maxBytes: maxBytes}, nil
}

// ValidRef prüft, ob ref von diesem Store stammen kann. Schützt vor Pfaden außerhalb von dir.
func ValidRef(ref string) bool {
	return refPattern.MatchString(ref)
}

func (s *LocalStore) ownerPath(ref string) string {
	return filepath.Join(s.dir, ownerDir, ref)
}

// Put legt zuerst den Besitzer ab, danach erst wird die Datei unter ref sichtbar.
func (s *LocalStore) Put(ctx context.Context, owner, filename string, r io.Reader) (string, *app_errors.AppError) {
	if owner == "" {
		return "", app_errors.NewAuthenticationError("auth.unauthorized")
	}
	id, err := gonanoid.Generate(refAlphabet, 24)
	if err != nil {
		return "", app_errors.NewAppError(500, app_errors.ErrInternal, "internal_error", err)
	}
	ref := id
	if ext := strings.ToLower(filepath.Ext(filename)); extPattern.MatchString(ext) {
		ref += ext
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", app_errors.NewStorageError(err)
	}
	defer os.Remove(tmp.Name())

	written, err := io.Copy(tmp, io.LimitReader(r, s.maxBytes+1))
	closeErr := tmp.Close()
	if err != nil {
		return "", app_errors.NewStorageError(err)
	}
	if closeErr != nil {
		return "", app_errors.NewStorageError(closeErr)
	}
	if written > s.maxBytes {
		return "", app_errors.NewFieldValidationError("file", "max", "attachment.too_large")
	}
	if written == 0 {
		return "", app_errors.NewFieldValidationError("file", "required", "attachment.empty")
	}
	if err := ctx.Err(); err != nil {
		return "", app_errors.NewStorageError(err)
	}

	if err := os.WriteFile(s.ownerPath(ref), []byte(owner), 0o640); err != nil {
		return "", app_errors.NewStorageError(err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, ref)); err != nil {
		os.Remove(s.ownerPath(ref))
		return "", app_errors.NewStorageError(err)
	}
	return ref, nil
}

func (s *LocalStore) Open(ctx context.Context, ref string) (io.ReadCloser, *app_errors.AppError) {
	if !ValidRef(ref) {
		return nil, app_errors.NewNotFoundError("attachment.not_found")
	}
	f, err := os.Open(filepath.Join(s.dir, ref))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, app_errors.NewNotFoundError("attachment.not_found")
		}
		return nil, app_errors.NewStorageError(err)
	}
	return f, nil
}

// Owner: Anhänge ohne Besitzer-Eintrag gehören niemandem und liefern "".
func (s *LocalStore) Owner(ctx context.Context, ref string) (string, *app_errors.AppError) {
	if !ValidRef(ref) {
		return "", app_errors.NewNotFoundError("attachment.not_found")
	}
	if _, err := os.Stat(filepath.Join(s.dir, ref)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", app_errors.NewNotFoundError("attachment.not_found")
		}
		return "", app_errors.NewStorageError(err)
	}
	b, err := os.ReadFile(s.ownerPath(ref))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", app_errors.NewStorageError(err)
	}
	return string(b), nil
}

func (s *LocalStore) Delete(ctx context.Context, ref string) *app_errors.AppError {
	if !ValidRef(ref) {
		return nil
	}
	if err := os.Remove(filepath.Join(s.dir, ref)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return app_errors.NewStorageError(err)
	}
	if err := os.Remove(s.ownerPath(ref)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return app_errors.NewStorageError(err)
	}
	return nil
}
