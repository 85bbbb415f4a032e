package attachment

import (
	"context"
	"io"

	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
)

// Store verwaltet Anhänge über eine opake Referenz und merkt sich, wer sie hochgeladen hat.
// Delete auf eine unbekannte Referenz ist kein Fehler.
type Store interface {
	Put(ctx context.Context, owner, filename string, r io.Reader) (string, *app_errors.AppError)
	Open(ctx context.Context, ref string) (io.ReadCloser, *app_errors.AppError)
	// Owner liefert die ID des Hochladenden, NotFound für unbekannte Referenzen.
	Owner(ctx context.Context, ref string) (string, *app_errors.AppError)
	Delete(ctx context.Context, ref string) *app_errors.AppError
}
