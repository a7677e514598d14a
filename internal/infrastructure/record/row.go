// Package record implementa el puente entre las filas persistidas y el modelo
// de dominio. El almacén local de respaldo arrastra blobs escritos por la
// aplicación antigua, donde conviven dos convenciones de nombres
// (client_email vs clientEmail); la lectura acepta ambas con precedencia
// snake_case y la escritura emite siempre snake_case.
package record

import (
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mdc-pro/mdcpro-api/internal/domain/entity"
)

// Row fila genérica tal como viene del JSON persistido.
type Row = map[string]any

// camelKey convierte client_email -> clientEmail para el fallback de lectura.
func camelKey(snake string) string {
	parts := strings.Split(snake, "_")
	for i := 1; i < len(parts); i++ {
		if parts[i] == "" {
			continue
		}
		parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
	}
	return strings.Join(parts, "")
}

// lookup busca la clave en snake_case y, si no está, en camelCase.
// El valor snake_case gana cuando ambas están presentes.
func lookup(row Row, snake string) (any, bool) {
	if v, ok := row[snake]; ok {
		return v, true
	}
	if v, ok := row[camelKey(snake)]; ok {
		return v, true
	}
	return nil, false
}

// String lee un campo de texto bajo cualquiera de las dos convenciones.
func String(row Row, key string) string {
	v, ok := lookup(row, key)
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	default:
		return ""
	}
}

// Number coerción numérica "que nunca rompa la vista": NaN, ausente, nulo o
// texto no numérico colapsan a cero. No es una garantía de integridad.
func Number(row Row, key string) decimal.Decimal {
	v, ok := lookup(row, key)
	if !ok || v == nil {
		return decimal.Zero
	}
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(n)
	case int:
		return decimal.NewFromInt(int64(n))
	case int64:
		return decimal.NewFromInt(n)
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		if err != nil {
			return decimal.Zero
		}
		return d
	case decimal.Decimal:
		return n
	default:
		return decimal.Zero
	}
}

// Int coerción a entero con las mismas reglas que Number.
func Int(row Row, key string) int {
	v, ok := lookup(row, key)
	if !ok || v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0
		}
		return int(n)
	case int:
		return n
	case int64:
		return int(n)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0
		}
		return i
	default:
		return 0
	}
}

// Bool coerción booleana; acepta bool nativo y las cadenas "true"/"1".
func Bool(row Row, key string) bool {
	v, ok := lookup(row, key)
	if !ok || v == nil {
		return false
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return b == "true" || b == "1"
	default:
		return false
	}
}

// List lee una lista de filas; ausente, nulo o malformado devuelve lista
// vacía en lugar de propagar error.
func List(row Row, key string) []Row {
	v, ok := lookup(row, key)
	if !ok || v == nil {
		return nil
	}
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]Row, 0, len(raw))
	for _, e := range raw {
		if m, ok := e.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// NormalizeItems coerce filas heterogéneas de líneas a LineItem canónico:
// cantidad por defecto 1, precio por defecto 0, id generado si falta, y
// total siempre derivado.
func NormalizeItems(rows []Row) []entity.LineItem {
	items := make([]entity.LineItem, 0, len(rows))
	for _, row := range rows {
		id := String(row, "id")
		if id == "" {
			id = uuid.New().String()
		}
		qty := Int(row, "quantity")
		if _, present := lookup(row, "quantity"); !present {
			qty = 1
		}
		if qty < 0 {
			qty = 0
		}
		price := Number(row, "unit_price")
		if price.IsNegative() {
			price = decimal.Zero
		}
		items = append(items, entity.NewLineItem(id, String(row, "description"), qty, price))
	}
	return items
}
