package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

func TestGenerateSaleReceipt_ProducePDF(t *testing.T) {
	g := NewMarotoReceiptGenerator("Tienda Demo", language.Spanish)
	sale := &entity.Sale{
		ID:        "0b7c6a9e-1111-4222-8333-944445555666",
		Total:     decimal.RequireFromString("36.50"),
		CreatedAt: time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC),
		CreatedBy: "u1",
		Lines: []*entity.SaleLine{
			{ID: "l1", ProductID: "p1", Quantity: 2, UnitPrice: decimal.RequireFromString("10.00"),
				Subtotal: decimal.RequireFromString("20.00"), Product: &entity.ProductSummary{ID: "p1", Name: "Arroz"}},
			{ID: "l2", ProductID: "p2", Quantity: 3, UnitPrice: decimal.RequireFromString("5.50"),
				Subtotal: decimal.RequireFromString("16.50")},
		},
	}

	out, err := g.GenerateSaleReceipt(context.Background(), sale)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "debe ser un PDF")
}

func TestMoneyFormatter_SeparadoresPorIdioma(t *testing.T) {
	es := newMoneyFormatter(language.Spanish)
	assert.Equal(t, "$1.234.567,50", es.Format(decimal.RequireFromString("1234567.5")))

	en := newMoneyFormatter(language.English)
	assert.Equal(t, "$1,234,567.50", en.Format(decimal.RequireFromString("1234567.5")))
	assert.Equal(t, "$0.00", en.Format(decimal.Zero))
}
