package vorgang_handlers

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	vorgang_dto "github.com/Xenn-00/vorgang-meister/internal/dtos/vorgang-dto"
	"github.com/Xenn-00/vorgang-meister/internal/entity"
	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
	internal_i18n "github.com/Xenn-00/vorgang-meister/internal/i18n"
	"github.com/Xenn-00/vorgang-meister/internal/middleware"
	workflow_case "github.com/Xenn-00/vorgang-meister/internal/use-cases/workflow-case"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const vorgangID = "7b1c2f00-4f8e-4a53-9d7e-2b2a51c0f001"

var actor = &entity.Actor{ID: "u-1", Username: "ana", Role: entity.ADMIN}

func setupApp(svc workflow_case.WorkflowServiceContract) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandlerMiddleware(internal_i18n.NewInitI18nService())})
	app.Use(middleware.AcceptLanguageMiddleware(), func(c *fiber.Ctx) error {
		c.Locals("actor", actor)
		c.Locals("user_id", actor.ID)
		return c.Next()
	})

	h := NewVorgangHandler(svc, internal_i18n.NewInitI18nService())
	app.Post("/vorgaenge", h.RegisterVorgang)
	app.Get("/vorgaenge", h.ListVorgaenge)
	app.Get("/vorgaenge/:vorgang_id", h.GetVorgang)
	app.Delete("/vorgaenge/:vorgang_id", h.DeleteVorgang)
	app.Post("/vorgaenge/:vorgang_id/designieren", h.Designate)
	app.Post("/anhaenge", h.UploadAttachment)
	app.Get("/anhaenge/:ref", h.DownloadAttachment)
	return app
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return req
}

type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Type string `json:"type"`
	} `json:"error"`
}

func decode(t *testing.T, r io.Reader) envelope {
	t.Helper()
	var e envelope
	require.NoError(t, json.NewDecoder(r).Decode(&e))
	return e
}

// Test 1: Erfassung liefert 201 und nennt das Label in der Nachricht
func TestRegisterVorgang_Created(t *testing.T) {
	svc := new(workflow_case.MockWorkflowService)
	svc.On("Register", mock.Anything, actor, mock.MatchedBy(func(req vorgang_dto.RegisterVorgangRequest) bool {
		return req.ReferenceNumber == "AZ-17/24" && req.Parish == "St. Anton" && req.SentAt.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	})).Return(&vorgang_dto.RegisterVorgangResponse{ID: vorgangID, SequentialLabel: "1-2024", Status: entity.VorgangPending}, (*app_errors.AppError)(nil))

	app := setupApp(svc)
	resp, err := app.Test(jsonRequest(fiber.MethodPost, "/vorgaenge",
		`{"reference_number":"AZ-17/24","parish":"St. Anton","sent_at":"2024-03-01T00:00:00Z"}`))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	body := decode(t, resp.Body)
	assert.Equal(t, "Case registered as 1-2024.", body.Message)
	svc.AssertExpectations(t)
}

// Test 2: ungültige Referenznummer erreicht den Service nicht
func TestRegisterVorgang_ValidationFails(t *testing.T) {
	svc := new(workflow_case.MockWorkflowService)
	app := setupApp(svc)

	resp, err := app.Test(jsonRequest(fiber.MethodPost, "/vorgaenge",
		`{"reference_number":"AZ 17","parish":"St. Anton","sent_at":"2024-03-01T00:00:00Z"}`))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, app_errors.ErrValidation, decode(t, resp.Body).Error.Type)
	svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything)
}

// Test 3: Pfadparameter muss eine UUID sein
func TestGetVorgang_InvalidParam(t *testing.T) {
	svc := new(workflow_case.MockWorkflowService)
	app := setupApp(svc)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/vorgaenge/keine-uuid", nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	svc.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
}

// Test 4: Fehler des Service werden unverändert abgebildet
func TestGetVorgang_Forbidden(t *testing.T) {
	svc := new(workflow_case.MockWorkflowService)
	svc.On("Get", mock.Anything, actor, vorgangID).
		Return((*entity.VorgangEntity)(nil), app_errors.NewForbiddenError("auth.forbidden"))
	app := setupApp(svc)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/vorgaenge/"+vorgangID, nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

// Test 5: renumber_pending wird an den Client durchgereicht
func TestDeleteVorgang_RenumberPending(t *testing.T) {
	svc := new(workflow_case.MockWorkflowService)
	svc.On("Delete", mock.Anything, actor, vorgangID).Return(&vorgang_dto.DeleteVorgangResponse{
		ID: vorgangID, SequentialLabel: "3-2024", RenumberPending: true,
	}, (*app_errors.AppError)(nil))
	app := setupApp(svc)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodDelete, "/vorgaenge/"+vorgangID, nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var data vorgang_dto.DeleteVorgangResponse
	require.NoError(t, json.Unmarshal(decode(t, resp.Body).Data, &data))
	assert.True(t, data.RenumberPending)
}

// Test 6: Query-Filter werden geparst
func TestListVorgaenge_Filter(t *testing.T) {
	svc := new(workflow_case.MockWorkflowService)
	svc.On("List", mock.Anything, actor, mock.MatchedBy(func(f vorgang_dto.VorgangListFilter) bool {
		return f.Status != nil && *f.Status == "Assigned" && f.Page == 2 && f.Year != nil && *f.Year == 2024
	})).Return(&vorgang_dto.VorgangListResponse{}, (*app_errors.AppError)(nil))
	app := setupApp(svc)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/vorgaenge?status=Assigned&page=2&year=2024", nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	svc.AssertExpectations(t)

	app = setupApp(svc)
	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/vorgaenge?status=Archiviert", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

// Test 7: Designieren verlangt gleich viele Einträge, doppelte Techniker sind ungültig
func TestDesignate_DuplicateWorker(t *testing.T) {
	svc := new(workflow_case.MockWorkflowService)
	app := setupApp(svc)

	worker := "0f3e7a52-2d4b-4c0a-8d61-1f8e8b6f2a11"
	resp, err := app.Test(jsonRequest(fiber.MethodPost, "/vorgaenge/"+vorgangID+"/designieren",
		`{"worker_ids":["`+worker+`","`+worker+`"],"task_types":["Taufe","Trauung"]}`))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	svc.AssertNotCalled(t, "Designate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// Test 8: Upload via Multipart liefert die Referenz
func TestUploadAttachment(t *testing.T) {
	svc := new(workflow_case.MockWorkflowService)
	svc.On("UploadAttachment", mock.Anything, actor, "protokoll.pdf", mock.Anything).
		Return("k2j4h5g6f7d8s9a0q1w2e3r4.pdf", (*app_errors.AppError)(nil))
	app := setupApp(svc)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", "protokoll.pdf")
	require.NoError(t, err)
	_, _ = part.Write([]byte("%PDF-1.4"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(fiber.MethodPost, "/anhaenge", &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Contains(t, string(decode(t, resp.Body).Data), "k2j4h5g6f7d8s9a0q1w2e3r4.pdf")
}

// Test 9: Download einer unmöglichen Referenz fragt den Store gar nicht erst
func TestDownloadAttachment_InvalidRef(t *testing.T) {
	svc := new(workflow_case.MockWorkflowService)
	app := setupApp(svc)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/anhaenge/..%2Fetc%2Fpasswd", nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	svc.AssertNotCalled(t, "OpenAttachment", mock.Anything, mock.Anything, mock.Anything)
}

// Test 10: Download streamt den Inhalt
func TestDownloadAttachment(t *testing.T) {
	ref := "k2j4h5g6f7d8s9a0q1w2e3r4.txt"
	svc := new(workflow_case.MockWorkflowService)
	svc.On("OpenAttachment", mock.Anything, actor, ref).
		Return(io.NopCloser(strings.NewReader("Übergabe erfolgt")), (*app_errors.AppError)(nil))
	app := setupApp(svc)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/anhaenge/"+ref, nil))
	require.NoError(t, err)

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Übergabe erfolgt", string(body))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), ref)
}
