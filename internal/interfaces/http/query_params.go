package http

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ventas-api/internal/domain"
)

const dateLayout = "2006-01-02"

// queryTime lee un parámetro de fecha (YYYY-MM-DD o RFC3339). dateOnly indica si vino sin hora.
func queryTime(c *fiber.Ctx, key string) (t *time.Time, dateOnly bool, err error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, false, nil
	}
	if d, err := time.Parse(dateLayout, raw); err == nil {
		return &d, true, nil
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %s debe ser YYYY-MM-DD o RFC3339", domain.ErrInvalidInput, key)
	}
	return &ts, false, nil
}

// queryDateOr como queryTime pero con valor por defecto.
func queryDateOr(c *fiber.Ctx, key string, def time.Time) (time.Time, error) {
	t, _, err := queryTime(c, key)
	if err != nil {
		return time.Time{}, err
	}
	if t == nil {
		return def, nil
	}
	return *t, nil
}

// queryInt entero opcional; nil si el parámetro no viene.
func queryInt(c *fiber.Ctx, key string) (*int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s debe ser entero", domain.ErrInvalidInput, key)
	}
	return &n, nil
}

// endOfDay último instante del día UTC de t.
func endOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
