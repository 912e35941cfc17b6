package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wedding-api/internal/application/auth"
	"github.com/jhoicas/wedding-api/internal/application/dto"
	"github.com/jhoicas/wedding-api/internal/application/usecase"
	"github.com/jhoicas/wedding-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/wedding-api/internal/interfaces/http"
	"github.com/jhoicas/wedding-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// App completa sobre el almacenamiento en memoria
// ──────────────────────────────────────────────────────────────────────────────

type stubPDF struct{}

func (stubPDF) GenerateChecklist(context.Context, dto.ChecklistDocument) ([]byte, error) {
	return []byte("%PDF-stub"), nil
}

func buildApp() *fiber.App {
	store := memory.NewStore()
	log := logger.Nop()
	todos := memory.NewTodoRepository(store)
	settings := memory.NewWeddingSettingsRepository(store)
	tx := memory.NewTxRunner(store)

	categoryUC := usecase.NewCategoryUseCase(memory.NewTodoCategoryRepository(store), tx, log)
	settingsUC := usecase.NewSettingsUseCase(settings)

	app := fiber.New()
	app.Use(apphttp.AccessLog(log))
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:       auth.NewAuthUseCase(memory.NewUserRepository(store), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}),
		TodoUC:       usecase.NewTodoUseCase(todos, categoryUC, tx, log),
		CategoryUC:   categoryUC,
		SettingsUC:   settingsUC,
		DashboardUC:  usecase.NewDashboardUseCase(settings, todos),
		ChecklistUC:  usecase.NewChecklistUseCase(todos, categoryUC, settings, stubPDF{}),
		ImportUC:     usecase.NewLocalImportUseCase(categoryUC, settingsUC, tx, log),
		JWTSecret:    testJWTSecret,
		CookieName:   testCookieName,
		CookieSecure: false,
		TokenTTL:     time.Hour,
	})
	return app
}

// call lanza la petición; body se serializa como JSON salvo que sea nil.
func call(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func register(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	resp, body := call(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"username": "小美",
		"email":    email,
		"password": "secreto1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	return decode[dto.LoginResponse](t, body).Token
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_RegistroLoginYCookie(t *testing.T) {
	app := buildApp()
	register(t, app, "Mei@Example.com")

	resp, _ := call(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"username": "otra", "email": "mei@example.com", "password": "secreto1",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, body := call(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email": "mei@example.com", "password": "secreto1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	login := decode[dto.LoginResponse](t, body)
	assert.Equal(t, "mei@example.com", login.User.Email)

	var session *http.Cookie
	for _, ck := range resp.Cookies() {
		if ck.Name == testCookieName {
			session = ck
		}
	}
	require.NotNil(t, session, "login debe fijar la cookie de sesión")
	assert.Equal(t, login.Token, session.Value)
	assert.True(t, session.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: session.Value})
	meResp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer meResp.Body.Close()
	assert.Equal(t, http.StatusOK, meResp.StatusCode)

	resp, _ = call(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email": "mei@example.com", "password": "incorrecta",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_RegistroInvalido(t *testing.T) {
	app := buildApp()

	resp, body := call(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"username": "x", "email": "no-es-email", "password": "123",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, body).Code)

	resp, body = call(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"username": "mei", "email": "mei@example.com", "password": strings.Repeat("a", 80),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, body).Code)
}

func TestRouter_RutasProtegidasSinToken(t *testing.T) {
	app := buildApp()
	for _, path := range []string{"/api/todos", "/api/todo-categories", "/api/wedding-settings", "/api/dashboard/summary", "/api/auth/me"} {
		resp, _ := call(t, app, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}

	resp, _ := call(t, app, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Todos
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_CicloDeVidaDeTareas(t *testing.T) {
	app := buildApp()
	token := register(t, app, "mei@example.com")

	resp, body := call(t, app, http.MethodPost, "/api/todos", token, fiber.Map{"text": "订酒店"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	parent := decode[dto.TodoResponse](t, body)
	assert.Equal(t, "medium", parent.Priority)
	assert.NotEmpty(t, parent.CategoryID, "sin categoría se asigna la de respaldo")

	resp, body = call(t, app, http.MethodPost, "/api/todos", token, fiber.Map{"text": "看场地", "parentId": parent.ID})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	child := decode[dto.TodoResponse](t, body)

	resp, body = call(t, app, http.MethodGet, "/api/todos?tree=true&stats=true", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.TodoListResponse](t, body)
	require.Len(t, list.Items, 1)
	require.Len(t, list.Items[0].Children, 1)
	require.NotNil(t, list.Stats)
	assert.Equal(t, 2, list.Stats.Total)

	resp, body = call(t, app, http.MethodPost, "/api/todos/"+child.ID+"/toggle", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decode[dto.TodoResponse](t, body).Completed)

	resp, body = call(t, app, http.MethodGet, "/api/todos/"+parent.ID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decode[dto.TodoResponse](t, body).Completed, "el padre se completa con su única subtarea")

	resp, body = call(t, app, http.MethodGet, "/api/todos/stats", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, decode[dto.TodoStatsResponse](t, body).Completed)

	resp, body = call(t, app, http.MethodDelete, "/api/todos/completed", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.ElementsMatch(t, []string{parent.ID, child.ID}, decode[dto.ClearCompletedResponse](t, body).Removed)

	resp, _ = call(t, app, http.MethodGet, "/api/todos/"+parent.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_TareasDeOtroUsuarioNoVisibles(t *testing.T) {
	app := buildApp()
	mei := register(t, app, "mei@example.com")
	ming := register(t, app, "ming@example.com")

	_, body := call(t, app, http.MethodPost, "/api/todos", mei, fiber.Map{"text": "买戒指"})
	todo := decode[dto.TodoResponse](t, body)

	resp, _ := call(t, app, http.MethodGet, "/api/todos/"+todo.ID, ming, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = call(t, app, http.MethodDelete, "/api/todos/"+todo.ID, ming, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_CuerposInvalidos(t *testing.T) {
	app := buildApp()
	token := register(t, app, "mei@example.com")

	resp, body := call(t, app, http.MethodPost, "/api/todos", token, fiber.Map{"text": ""})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, body).Code)

	resp, body = call(t, app, http.MethodPost, "/api/todos", token, fiber.Map{"text": "x", "priority": "urgent"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode[dto.ErrorResponse](t, body).Message, "priority")

	req := httptest.NewRequest(http.MethodPost, "/api/todos", bytes.NewReader([]byte("{no json")))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	raw, err := app.Test(req, -1)
	require.NoError(t, err)
	defer raw.Body.Close()
	assert.Equal(t, http.StatusBadRequest, raw.StatusCode)
}

func TestRouter_ExportarPDF(t *testing.T) {
	app := buildApp()
	token := register(t, app, "mei@example.com")
	call(t, app, http.MethodPost, "/api/todos", token, fiber.Map{"text": "订酒店"})

	resp, body := call(t, app, http.MethodGet, "/api/todos/export.pdf", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), `attachment; filename="checklist-`)
	assert.Equal(t, "%PDF-stub", string(body))
}

// ──────────────────────────────────────────────────────────────────────────────
// Categorías, configuración, dashboard e importación
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_Categorias(t *testing.T) {
	app := buildApp()
	token := register(t, app, "mei@example.com")

	resp, body := call(t, app, http.MethodGet, "/api/todo-categories", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.TodoCategoryResponse](t, body), 8)

	resp, body = call(t, app, http.MethodPost, "/api/todo-categories", token, fiber.Map{"name": "蜜月", "color": "blue"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	honeymoon := decode[dto.TodoCategoryResponse](t, body)
	assert.Equal(t, 9, honeymoon.Order)

	resp, _ = call(t, app, http.MethodPost, "/api/todo-categories", token, fiber.Map{"name": "x", "color": "teal"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = call(t, app, http.MethodPut, "/api/todo-categories/"+honeymoon.ID, token, fiber.Map{"icon": "✈️"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "✈️", decode[dto.TodoCategoryResponse](t, body).Icon)

	call(t, app, http.MethodPost, "/api/todos", token, fiber.Map{"text": "订机票", "categoryId": honeymoon.ID})
	resp, body = call(t, app, http.MethodDelete, "/api/todo-categories/"+honeymoon.ID, token, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CATEGORY_IN_USE", decode[dto.ErrorResponse](t, body).Code)
}

func TestRouter_ConfiguracionYCuentaAtras(t *testing.T) {
	app := buildApp()
	token := register(t, app, "mei@example.com")

	resp, _ := call(t, app, http.MethodGet, "/api/wedding-settings", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = call(t, app, http.MethodPut, "/api/wedding-settings", token, fiber.Map{"brideName": "小美"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "la primera configuración exige fecha")

	date := time.Now().AddDate(1, 0, 0).UTC().Truncate(time.Second)
	resp, body := call(t, app, http.MethodPut, "/api/wedding-settings", token, fiber.Map{
		"brideName":   "小美",
		"weddingDate": date.Format(time.RFC3339),
		"theme":       "dark",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	settings := decode[dto.WeddingSettingsResponse](t, body)
	assert.Equal(t, "新郎", settings.GroomName)
	assert.True(t, date.Equal(settings.WeddingDate))

	resp, body = call(t, app, http.MethodGet, "/api/wedding-settings/countdown", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cd := decode[dto.CountdownResponse](t, body)
	assert.False(t, cd.Passed)
	assert.GreaterOrEqual(t, cd.Days, 364)

	resp, body = call(t, app, http.MethodGet, "/api/dashboard/summary", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	summary := decode[dto.DashboardSummaryDTO](t, body)
	require.NotNil(t, summary.Countdown)
	assert.Equal(t, "小美", summary.BrideName)

	resp, _ = call(t, app, http.MethodDelete, "/api/wedding-settings", token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = call(t, app, http.MethodGet, "/api/wedding-settings", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_ImportarLocal(t *testing.T) {
	app := buildApp()
	token := register(t, app, "mei@example.com")

	resp, body := call(t, app, http.MethodPost, "/api/import/local", token, fiber.Map{
		"weddingCategories": []fiber.Map{{"id": "venue", "name": "场地布置", "color": "rose", "icon": "🏛️", "order": 1}},
		"weddingTodos": []fiber.Map{{
			"id": "1", "text": "订酒店", "categoryId": "venue", "priority": "high",
			"children": []fiber.Map{{"id": "2", "text": "看场地", "completed": true}},
		}},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	res := decode[dto.LocalImportResult](t, body)
	assert.Equal(t, 2, res.TodosCreated)
	assert.Equal(t, 1, res.CategoriesMatched)
	assert.False(t, res.SettingsImported)

	_, body = call(t, app, http.MethodGet, "/api/todos?tree=true", token, nil)
	list := decode[dto.TodoListResponse](t, body)
	require.Len(t, list.Items, 1)
	assert.True(t, list.Items[0].Completed)
}
