package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/metrologia-api/internal/application/dto"
	"github.com/jhoicas/metrologia-api/internal/application/inventory"
	"github.com/jhoicas/metrologia-api/internal/domain/entity"
	"github.com/jhoicas/metrologia-api/internal/domain/repository"
	apphttp "github.com/jhoicas/metrologia-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Stub de almacenamiento: un solo ítem en memoria, sin concurrencia real.
// Implementa ItemRepository, MovementRepository y el runner transaccional.
// ──────────────────────────────────────────────────────────────────────────────

type stubStore struct {
	item *entity.Item
	movs []*entity.Movement
}

func (s *stubStore) Run(_ context.Context, fn func(
	movRepo repository.MovementRepository,
	itemRepo repository.ItemRepository,
) error) error {
	return fn(stubMovRepo{s}, stubItemRepo{s})
}

// stubItemRepo expone el ítem del store como ItemRepository.
type stubItemRepo struct{ s *stubStore }

func (r stubItemRepo) match(category, code string) *entity.Item {
	if r.s.item != nil && r.s.item.Category == category && r.s.item.InternalCode == code {
		return r.s.item
	}
	return nil
}

func (r stubItemRepo) Create(item *entity.Item) error { r.s.item = item; return nil }

func (r stubItemRepo) GetByID(category, id string) (*entity.Item, error) {
	return r.GetForUpdateByID(category, id)
}

func (r stubItemRepo) GetByCode(category, code string) (*entity.Item, error) {
	return r.match(category, code), nil
}

func (r stubItemRepo) GetForUpdateByID(category, id string) (*entity.Item, error) {
	if r.s.item != nil && r.s.item.Category == category && r.s.item.ID == id {
		return r.s.item, nil
	}
	return nil, nil
}

func (r stubItemRepo) GetForUpdateByCode(category, code string) (*entity.Item, error) {
	return r.match(category, code), nil
}

func (r stubItemRepo) UpdateStock(id string, quantity int64, status *string, updatedAt time.Time) error {
	r.s.item.Quantity = quantity
	if status != nil {
		r.s.item.Status = *status
	}
	r.s.item.UpdatedAt = updatedAt
	return nil
}

func (r stubItemRepo) UpdateDetails(*entity.Item) error { return nil }

func (r stubItemRepo) List(string, string, int) ([]*entity.Item, error) {
	if r.s.item == nil {
		return nil, nil
	}
	return []*entity.Item{r.s.item}, nil
}

func (r stubItemRepo) FindByCode(code string) (*entity.Item, error) {
	if r.s.item != nil && r.s.item.InternalCode == code {
		return r.s.item, nil
	}
	return nil, nil
}

func (r stubItemRepo) ListCalibrationDue(time.Time) ([]*entity.Item, error) { return nil, nil }

// stubMovRepo expone los movimientos del store como MovementRepository.
type stubMovRepo struct{ s *stubStore }

func (r stubMovRepo) Create(m *entity.Movement) error {
	r.s.movs = append(r.s.movs, m)
	return nil
}

func (r stubMovRepo) GetByID(string) (*entity.Movement, error) { return nil, nil }

func (r stubMovRepo) List(filter repository.MovementFilter) ([]*entity.Movement, error) {
	out := r.s.movs
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

// movementApp monta las rutas de movimientos con el stub como backend.
func movementApp(store *stubStore) *fiber.App {
	register := inventory.NewRegisterMovementUseCase(store)
	list := inventory.NewListMovementsUseCase(stubMovRepo{store})
	handler := apphttp.NewMovementHandler(register, list)

	app := fiber.New()
	grp := app.Group("/api", apphttp.AuthMiddleware(testJWTSecret))
	grp.Post("/movements", handler.Register)
	grp.Get("/movements", handler.List)
	return app
}

func postMovement(t *testing.T, app *fiber.App, token string, body dto.RegisterMovementRequest) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/movements", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests POST /api/movements
// ──────────────────────────────────────────────────────────────────────────────

func TestMovementHandler_RegistroExitoso(t *testing.T) {
	store := &stubStore{item: &entity.Item{
		ID:           uuid.New().String(),
		Category:     entity.CategoryTool,
		Name:         "Micrómetro de exteriores",
		InternalCode: "TOOL-007",
		Quantity:     5,
	}}
	app := movementApp(store)

	resp := postMovement(t, app, tokenForRole(t, "tecnico"), dto.RegisterMovementRequest{
		Type:     "exit",
		Category: "tool",
		Code:     "TOOL-007",
		Quantity: 3,
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body dto.MovementResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Committed)
	assert.NotEmpty(t, body.MovementID)
	assert.Equal(t, store.item.ID, body.ItemID)
	assert.Equal(t, int64(2), body.NewQuantity)
	assert.Nil(t, body.NewStatus)

	require.Len(t, store.movs, 1, "el movimiento debe quedar en el libro")
	assert.Equal(t, entity.MovementTypeExit, store.movs[0].Type)
}

func TestMovementHandler_SinToken_Retorna401(t *testing.T) {
	app := movementApp(&stubStore{})
	resp := postMovement(t, app, "", dto.RegisterMovementRequest{
		Type: "exit", Category: "tool", Code: "X", Quantity: 1,
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMovementHandler_CantidadInvalida_Retorna400(t *testing.T) {
	app := movementApp(&stubStore{})
	resp := postMovement(t, app, tokenForRole(t, "tecnico"), dto.RegisterMovementRequest{
		Type: "exit", Category: "tool", Code: "TOOL-007", Quantity: 0,
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "VALIDATION", body.Code)
}

func TestMovementHandler_ItemInexistente_Retorna404(t *testing.T) {
	app := movementApp(&stubStore{})
	resp := postMovement(t, app, tokenForRole(t, "tecnico"), dto.RegisterMovementRequest{
		Type: "exit", Category: "tool", Code: "NO-EXISTE", Quantity: 1,
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ITEM_NOT_FOUND", body.Code)
}

func TestMovementHandler_StockInsuficiente_Retorna409(t *testing.T) {
	store := &stubStore{item: &entity.Item{
		ID:           uuid.New().String(),
		Category:     entity.CategoryTool,
		InternalCode: "TOOL-008",
		Quantity:     2,
	}}
	app := movementApp(store)

	resp := postMovement(t, app, tokenForRole(t, "tecnico"), dto.RegisterMovementRequest{
		Type: "exit", Category: "tool", Code: "TOOL-008", Quantity: 5,
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)
	assert.Equal(t, int64(2), store.item.Quantity, "un rechazo no altera el stock")
	assert.Empty(t, store.movs)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests GET /api/movements
// ──────────────────────────────────────────────────────────────────────────────

func TestMovementHandler_Listado(t *testing.T) {
	note := "calibración anual"
	store := &stubStore{movs: []*entity.Movement{{
		ID:           uuid.New().String(),
		Type:         entity.MovementTypeLoan,
		ItemID:       uuid.New().String(),
		Category:     entity.CategoryInstrument,
		InternalCode: "INS-001",
		Quantity:     1,
		ActorID:      testUserID,
		Note:         &note,
		OccurredAt:   time.Now(),
	}}}
	app := movementApp(store)

	req := httptest.NewRequest(http.MethodGet, "/api/movements?code=INS-001&limit=50", nil)
	req.Header.Set("Authorization", tokenForRole(t, "tecnico"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body []dto.MovementDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body, 1)
	assert.Equal(t, entity.MovementTypeLoan, body[0].Type)
	assert.Equal(t, "INS-001", body[0].InternalCode)
	require.NotNil(t, body[0].Note)
	assert.Equal(t, note, *body[0].Note)
}
