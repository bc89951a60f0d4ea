// seed carga el catálogo de demostración en PostgreSQL.
//
// Uso: go run ./cmd/seed
//
// Los productos se crean con stock 0 y el stock inicial entra como ajuste manual por el
// StockGuard, así el historial cuadra desde el primer movimiento. Los IDs son UUID v5 del
// nombre: ejecutarlo dos veces no duplica productos ni stock.
// Si JWT_SECRET está definido imprime un token admin de desarrollo.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/ventas-api/internal/application/inventory"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/ventas-api/pkg/config"
	"github.com/jhoicas/ventas-api/pkg/jwt"
	"github.com/jhoicas/ventas-api/pkg/logger"
	"github.com/shopspring/decimal"
)

const seedActor = "seed"

// Espacio de nombres para los UUID v5 del catálogo de demostración.
var catalogNamespace = uuid.MustParse("6f1c1d2e-8a4b-4c8e-9a57-3d2f0b1e7c10")

type categoria struct {
	nombre      string
	descripcion string
}

type producto struct {
	nombre      string
	descripcion string
	precio      string
	stock       int
	categoria   string
}

var categorias = []categoria{
	{"Electrónicos", "Dispositivos electrónicos y tecnología"},
	{"Ropa", "Prendas de vestir para hombre, mujer y niños"},
	{"Hogar", "Artículos para el hogar y decoración"},
	{"Deportes", "Equipos y artículos deportivos"},
	{"Juguetes", "Juguetes y juegos para todas las edades"},
	{"Libros", "Libros y material de lectura"},
}

var productos = []producto{
	{"Laptop HP Pavilion", `Laptop HP Pavilion 15.6" Intel Core i5, 8GB RAM, 512GB SSD`, "15999.99", 15, "Electrónicos"},
	{"Smartphone Samsung Galaxy", "Smartphone Samsung Galaxy S23 128GB, 5G, Cámara 50MP", "8999.50", 25, "Electrónicos"},
	{"Camiseta Nike Dri-FIT", "Camiseta deportiva Nike tecnología Dri-FIT, talla M", "599.99", 50, "Ropa"},
	{"Silla Gamer RGB", "Silla gamer ergonómica con iluminación RGB ajustable", "4599.00", 8, "Hogar"},
	{"Pelota de Fútbol", "Pelota de fútbol profesional tamaño 5, material PVC", "299.99", 30, "Deportes"},
	{"Tablet Amazon Fire", `Tablet Amazon Fire HD 10, 32GB, pantalla 10.1"`, "2499.00", 20, "Electrónicos"},
	{"Zapatos Running", "Zapatos para running, talla 28, color negro/rojo", "1299.00", 35, "Ropa"},
	{"Juego de Sala", "Juego de sala moderno, 3 plazas, color gris", "12500.00", 5, "Hogar"},
	{"Raqueta Tenis", "Raqueta de tenis profesional, grip G4, 275g", "1899.00", 12, "Deportes"},
	{"Libro Programación", `Libro "JavaScript Moderno", 450 páginas, edición 2024`, "450.00", 40, "Libros"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	products := postgres.NewProductRepository(pool)
	guard := inventory.NewStockGuard(postgres.NewTxRunner(pool), nil, log)

	categoryIDs := make(map[string]string, len(categorias))
	for _, c := range categorias {
		categoryIDs[c.nombre] = uuid.NewSHA1(catalogNamespace, []byte("categoria:"+c.nombre)).String()
	}

	created := 0
	for _, p := range productos {
		id := uuid.NewSHA1(catalogNamespace, []byte("producto:"+p.nombre)).String()
		existing, err := products.GetByID(ctx, id)
		if err != nil {
			log.Fatal().Err(err).Str("producto", p.nombre).Msg("consultar producto")
		}
		if existing != nil {
			log.Debug().Str("producto", p.nombre).Msg("ya existe, se omite")
			continue
		}
		categoryID := categoryIDs[p.categoria]
		if err := products.Create(ctx, &entity.Product{
			ID:          id,
			CategoryID:  &categoryID,
			Name:        p.nombre,
			Description: p.descripcion,
			Price:       decimal.RequireFromString(p.precio),
			Active:      true,
			CreatedAt:   time.Now().UTC(),
		}); err != nil {
			log.Fatal().Err(err).Str("producto", p.nombre).Msg("crear producto")
		}
		if _, err := guard.AdjustStock(ctx, inventory.AdjustStockInput{
			ProductID: id,
			Delta:     p.stock,
			Cause:     entity.MovementCauseManualAdjustment,
			Reason:    "stock inicial",
			Actor:     seedActor,
		}); err != nil {
			log.Fatal().Err(err).Str("producto", p.nombre).Msg("cargar stock inicial")
		}
		created++
	}
	log.Info().Int("creados", created).Int("catalogo", len(productos)).Msg("seed ejecutado correctamente")

	if cfg.JWT.Secret != "" {
		token, err := jwt.Generate(cfg.JWT.Secret, "admin", "admin", cfg.JWT.Issuer, 24*60)
		if err != nil {
			log.Fatal().Err(err).Msg("generar token de desarrollo")
		}
		fmt.Println(token)
	}
}
