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

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/jhoicas/ventas-api/internal/application/inventory"
	"github.com/jhoicas/ventas-api/internal/application/sales"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/infrastructure/export"
	"github.com/jhoicas/ventas-api/internal/infrastructure/memory"
	"github.com/jhoicas/ventas-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/ventas-api/internal/interfaces/http"
	"github.com/jhoicas/ventas-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type apiFixture struct {
	app   *fiber.App
	store *memory.Store
	guard *inventory.StockGuard
}

// newAPIFixture monta el router completo sobre el almacenamiento en memoria.
func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	store := memory.NewStore()
	runner := memory.NewTxRunner(store)
	guard := inventory.NewStockGuard(runner, nil, logger.Nop())
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		CreateSale:     sales.NewCreateSaleUseCase(runner, guard, nil, logger.Nop()),
		Reports:        sales.NewReportUseCase(store.Sales(), pdf.NewMarotoReceiptGenerator("Tienda Demo", language.Spanish), export.NewXMLReportExporter()),
		StockGuard:     guard,
		InventoryQuery: inventory.NewQueryUseCase(store.Products(), store.Movements(), store.InventoryQueries(), 10),
		JWTSecret:      testJWTSecret,
		JWTIssuer:      testIssuer,
	})
	return &apiFixture{app: app, store: store, guard: guard}
}

func (f *apiFixture) seed(t *testing.T, id, name, price string, stock int) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.store.Products().Create(ctx, &entity.Product{
		ID: id, Name: name, Price: decimal.RequireFromString(price), Active: true,
	}))
	if stock > 0 {
		_, err := f.guard.AdjustStock(ctx, inventory.AdjustStockInput{
			ProductID: id, Delta: stock, Cause: entity.MovementCauseManualAdjustment,
		})
		require.NoError(t, err)
	}
}

func (f *apiFixture) stock(t *testing.T, id string) int {
	t.Helper()
	p, err := f.store.Products().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

// call lanza la petición con el rol indicado y devuelve status, headers y cuerpo.
func (f *apiFixture) call(t *testing.T, method, path, role string, body any, headers ...string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = strings.NewReader(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func decodeMap(t *testing.T, raw []byte) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

func venta(lines ...any) map[string]any {
	detalles := make([]map[string]any, 0, len(lines)/2)
	for i := 0; i+1 < len(lines); i += 2 {
		detalles = append(detalles, map[string]any{"producto_id": lines[i], "cantidad": lines[i+1]})
	}
	return map[string]any{"detalles": detalles}
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventas
// ──────────────────────────────────────────────────────────────────────────────

func TestVentas_CrearVenta_Retorna201(t *testing.T) {
	f := newAPIFixture(t)
	f.seed(t, "p1", "Arroz", "12.50", 5)

	resp, raw := f.call(t, http.MethodPost, "/api/ventas", apphttp.RoleCajero, venta("p1", 2))
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	body := decodeMap(t, raw)
	assert.Equal(t, "25", body["total"])
	assert.Equal(t, testUserID, body["usuario_id"])
	assert.Len(t, body["detalles"], 1)
	assert.Equal(t, 3, f.stock(t, "p1"))
}

func TestVentas_StockInsuficiente_Retorna400ConDetalle(t *testing.T) {
	f := newAPIFixture(t)
	f.seed(t, "p1", "Arroz", "12.50", 5)
	f.seed(t, "p2", "Frijol", "8.00", 1)

	resp, raw := f.call(t, http.MethodPost, "/api/ventas", apphttp.RoleCajero, venta("p1", 2, "p2", 3))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeMap(t, raw)
	assert.Equal(t, "INSUFFICIENT_STOCK", body["code"])
	details, ok := body["details"].(map[string]any)
	require.True(t, ok, "debe incluir details")
	assert.Equal(t, "p2", details["product_id"])
	assert.Equal(t, "Frijol", details["product_name"])
	assert.EqualValues(t, 3, details["requested"])
	assert.EqualValues(t, 1, details["available"])
	assert.EqualValues(t, 2, details["shortfall"])

	assert.Equal(t, 5, f.stock(t, "p1"), "la venta rechazada no descuenta ninguna línea")
	assert.Equal(t, 1, f.stock(t, "p2"))
}

func TestVentas_Errores(t *testing.T) {
	f := newAPIFixture(t)
	f.seed(t, "p1", "Arroz", "12.50", 5)

	cases := []struct {
		name   string
		body   any
		status int
		code   string
	}{
		{"venta vacía", venta(), http.StatusBadRequest, "EMPTY_SALE"},
		{"cantidad cero", venta("p1", 0), http.StatusBadRequest, "INVALID_QUANTITY"},
		{"producto inexistente", venta("nope", 1), http.StatusNotFound, "NOT_FOUND"},
		{"cuerpo inválido", "{no-json", http.StatusBadRequest, "INVALID_BODY"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, raw := f.call(t, http.MethodPost, "/api/ventas", apphttp.RoleCajero, tc.body)
			assert.Equal(t, tc.status, resp.StatusCode, string(raw))
			assert.Equal(t, tc.code, decodeMap(t, raw)["code"])
		})
	}
	assert.Equal(t, 5, f.stock(t, "p1"))
}

func TestVentas_SinToken_Retorna401(t *testing.T) {
	f := newAPIFixture(t)
	resp, _ := f.call(t, http.MethodPost, "/api/ventas", "", venta("p1", 1))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestVentas_ObtenerYComprobante(t *testing.T) {
	f := newAPIFixture(t)
	f.seed(t, "p1", "Arroz", "12.50", 5)
	_, raw := f.call(t, http.MethodPost, "/api/ventas", apphttp.RoleCajero, venta("p1", 1))
	id, _ := decodeMap(t, raw)["id"].(string)
	require.NotEmpty(t, id)

	resp, raw := f.call(t, http.MethodGet, "/api/ventas/"+id, apphttp.RoleSupervisor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, id, decodeMap(t, raw)["id"])

	resp, raw = f.call(t, http.MethodGet, "/api/ventas/"+id+"/pdf", apphttp.RoleCajero, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "venta_"+id+".pdf")
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))

	resp, raw = f.call(t, http.MethodGet, "/api/ventas/no-existe", apphttp.RoleAdmin, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeMap(t, raw)["code"])
}

func TestVentas_ListarFiltraPorUsuario(t *testing.T) {
	f := newAPIFixture(t)
	f.seed(t, "p1", "Arroz", "12.50", 5)
	_, _ = f.call(t, http.MethodPost, "/api/ventas", apphttp.RoleCajero, venta("p1", 1))

	resp, raw := f.call(t, http.MethodGet, "/api/ventas?usuario_id="+testUserID, apphttp.RoleAdmin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(raw, &list))
	assert.Len(t, list, 1)

	_, raw = f.call(t, http.MethodGet, "/api/ventas?usuario_id=otro", apphttp.RoleAdmin, nil)
	require.NoError(t, json.Unmarshal(raw, &list))
	assert.Empty(t, list)

	resp, _ = f.call(t, http.MethodGet, "/api/ventas?fecha_inicio=ayer", apphttp.RoleAdmin, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestVentas_ReporteJSON(t *testing.T) {
	f := newAPIFixture(t)
	f.seed(t, "p1", "Arroz", "10.00", 10)
	_, _ = f.call(t, http.MethodPost, "/api/ventas", apphttp.RoleCajero, venta("p1", 1))
	_, _ = f.call(t, http.MethodPost, "/api/ventas", apphttp.RoleCajero, venta("p1", 2))

	resp, raw := f.call(t, http.MethodGet, "/api/ventas/reporte", apphttp.RoleCajero, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	body := decodeMap(t, raw)
	stats, ok := body["estadisticas"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 2, stats["totalVentas"])
	assert.Equal(t, "30", stats["totalIngresos"])
	assert.Equal(t, "15", stats["promedioVenta"])
	assert.Len(t, body["ventas"], 2)

	resp, _ = f.call(t, http.MethodGet, "/api/ventas/reporte?fecha_inicio=2024-02-01&fecha_fin=2024-01-01", apphttp.RoleCajero, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = f.call(t, http.MethodGet, "/api/ventas/reporte?format=csv", apphttp.RoleCajero, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestVentas_ReporteXMLConETag(t *testing.T) {
	f := newAPIFixture(t)
	f.seed(t, "p1", "Arroz", "10.00", 10)
	_, _ = f.call(t, http.MethodPost, "/api/ventas", apphttp.RoleCajero, venta("p1", 1))

	resp, raw := f.call(t, http.MethodGet, "/api/ventas/reporte?format=xml", apphttp.RoleSupervisor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	etag := resp.Header.Get("ETag")
	require.NotEmpty(t, etag)
	assert.Contains(t, resp.Header.Get("Content-Type"), "xml")
	assert.Contains(t, string(raw), "ReporteVentas")

	resp, raw = f.call(t, http.MethodGet, "/api/ventas/reporte?format=xml", apphttp.RoleSupervisor, nil, "If-None-Match", etag)
	assert.Equal(t, http.StatusNotModified, resp.StatusCode)
	assert.Empty(t, raw)

	// Una venta nueva cambia el documento y su etag
	_, _ = f.call(t, http.MethodPost, "/api/ventas", apphttp.RoleCajero, venta("p1", 1))
	resp, _ = f.call(t, http.MethodGet, "/api/ventas/reporte?format=xml", apphttp.RoleSupervisor, nil, "If-None-Match", etag)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEqual(t, etag, resp.Header.Get("ETag"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Inventario
// ──────────────────────────────────────────────────────────────────────────────

func TestInventario_StockBajoConUmbral(t *testing.T) {
	f := newAPIFixture(t)
	f.seed(t, "p1", "Arroz", "10.00", 3)
	f.seed(t, "p2", "Frijol", "8.00", 12)

	resp, raw := f.call(t, http.MethodGet, "/api/inventario/stock-bajo", apphttp.RoleSupervisor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(raw, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "p1", list[0]["id"])

	_, raw = f.call(t, http.MethodGet, "/api/inventario/stock-bajo?umbral=12", apphttp.RoleSupervisor, nil)
	require.NoError(t, json.Unmarshal(raw, &list))
	assert.Len(t, list, 2)

	resp, _ = f.call(t, http.MethodGet, "/api/inventario/stock-bajo?umbral=abc", apphttp.RoleSupervisor, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp, _ = f.call(t, http.MethodGet, "/api/inventario/stock-bajo?umbral=-1", apphttp.RoleSupervisor, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestInventario_EstadisticasYListado(t *testing.T) {
	f := newAPIFixture(t)
	f.seed(t, "p1", "Arroz", "10.00", 0)
	f.seed(t, "p2", "Frijol", "8.00", 20)

	resp, raw := f.call(t, http.MethodGet, "/api/inventario/estadisticas", apphttp.RoleAdmin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stats := decodeMap(t, raw)
	assert.EqualValues(t, 2, stats["totalProductos"])
	assert.EqualValues(t, 1, stats["productosStockBajo"])
	assert.EqualValues(t, 1, stats["productosSinStock"])
	assert.Equal(t, "18", stats["valorTotalInventario"])

	resp, raw = f.call(t, http.MethodGet, "/api/inventario", apphttp.RoleSupervisor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(raw, &list))
	assert.Len(t, list, 2)
}

func TestInventario_HistorialNoCacheable(t *testing.T) {
	f := newAPIFixture(t)
	f.seed(t, "p1", "Arroz", "10.00", 4)
	f.seed(t, "p2", "Frijol", "8.00", 2)

	resp, raw := f.call(t, http.MethodGet, "/api/inventario/historial?producto_id=p1", apphttp.RoleSupervisor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "no-store", resp.Header.Get("Cache-Control"))
	var list []map[string]any
	require.NoError(t, json.Unmarshal(raw, &list))
	require.Len(t, list, 1)
	assert.EqualValues(t, 4, list[0]["cambio"])

	resp, _ = f.call(t, http.MethodGet, "/api/inventario/historial?fecha_inicio=2030-01-02&fecha_fin=2030-01-01", apphttp.RoleSupervisor, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestInventario_RegistrarMovimiento(t *testing.T) {
	f := newAPIFixture(t)
	f.seed(t, "p1", "Arroz", "10.00", 4)

	resp, raw := f.call(t, http.MethodPost, "/api/inventario/movimiento", apphttp.RoleCajero,
		map[string]any{"producto_id": "p1", "cambio": -1, "tipo": "correction", "motivo": "conteo"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	body := decodeMap(t, raw)
	assert.EqualValues(t, 3, body["stock_resultante"])
	assert.Equal(t, "correction", body["tipo"])
	assert.Equal(t, 3, f.stock(t, "p1"))

	resp, raw = f.call(t, http.MethodPost, "/api/inventario/movimiento", apphttp.RoleCajero,
		map[string]any{"producto_id": "p1", "cambio": -1, "tipo": "sale"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "las salidas por venta solo entran por /api/ventas")
	assert.Equal(t, "VALIDATION", decodeMap(t, raw)["code"])

	resp, raw = f.call(t, http.MethodPost, "/api/inventario/movimiento", apphttp.RoleCajero,
		map[string]any{"producto_id": "p1", "cambio": -10})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", decodeMap(t, raw)["code"])
	assert.Equal(t, 3, f.stock(t, "p1"))
}

func TestProductos_AjusteDeStock(t *testing.T) {
	f := newAPIFixture(t)
	f.seed(t, "p1", "Arroz", "10.00", 4)

	resp, raw := f.call(t, http.MethodPatch, "/api/productos/p1/stock", apphttp.RoleSupervisor,
		map[string]any{"cantidad": 6, "motivo": "reposición"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	body := decodeMap(t, raw)
	assert.EqualValues(t, 10, body["stock_resultante"])
	assert.Equal(t, "manual-adjustment", body["tipo"])

	resp, _ = f.call(t, http.MethodPatch, "/api/productos/nope/stock", apphttp.RoleSupervisor,
		map[string]any{"cantidad": 1})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = f.call(t, http.MethodPatch, "/api/productos/p1/stock", apphttp.RoleCajero,
		map[string]any{"cantidad": 1})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestInventario_Conciliacion(t *testing.T) {
	f := newAPIFixture(t)
	f.seed(t, "p1", "Arroz", "10.00", 4)
	_, _ = f.call(t, http.MethodPost, "/api/ventas", apphttp.RoleCajero, venta("p1", 3))

	resp, raw := f.call(t, http.MethodGet, "/api/inventario/conciliacion", apphttp.RoleAdmin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeMap(t, raw)
	assert.Equal(t, true, body["consistente"])
	assert.Empty(t, body["diferencias"])
}

func TestInventario_PermisosPorRol(t *testing.T) {
	f := newAPIFixture(t)

	cases := []struct {
		method, path, role string
		status             int
	}{
		{http.MethodGet, "/api/inventario", apphttp.RoleCajero, http.StatusForbidden},
		{http.MethodGet, "/api/inventario/historial", apphttp.RoleCajero, http.StatusForbidden},
		{http.MethodGet, "/api/inventario/estadisticas", apphttp.RoleCajero, http.StatusForbidden},
		{http.MethodGet, "/api/inventario/conciliacion", apphttp.RoleSupervisor, http.StatusForbidden},
		{http.MethodGet, "/api/inventario/conciliacion", apphttp.RoleAdmin, http.StatusOK},
		{http.MethodGet, "/api/ventas/reporte", apphttp.RoleCajero, http.StatusOK},
		{http.MethodGet, "/api/ventas", "bodeguero", http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.role+" "+tc.path, func(t *testing.T) {
			resp, _ := f.call(t, tc.method, tc.path, tc.role, nil)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}
