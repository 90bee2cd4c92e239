package service

import (
	"math"

	"github.com/govalues/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CleanDecimals recorre una estructura anidada (mapas, listas) y
// reemplaza cada Decimal128 por un int64 si no tiene parte fraccionaria
// o un float64 si la tiene. El resto de los valores pasa sin tocar.
// Es idempotente: normalizar algo ya normalizado no cambia nada.
func CleanDecimals(v interface{}) interface{} {
	switch t := v.(type) {
	case bson.M:
		out := bson.M{}
		for k, val := range t {
			out[k] = CleanDecimals(val)
		}
		return out
	case map[string]interface{}:
		out := map[string]interface{}{}
		for k, val := range t {
			out[k] = CleanDecimals(val)
		}
		return out
	case bson.D:
		// los documentos anidados decodifican como bson.D; se convierten
		// a mapa para que serialicen como objeto JSON
		out := bson.M{}
		for _, e := range t {
			out[e.Key] = CleanDecimals(e.Value)
		}
		return out
	case bson.A:
		out := make(bson.A, 0, len(t))
		for _, val := range t {
			out = append(out, CleanDecimals(val))
		}
		return out
	case []interface{}:
		out := make([]interface{}, 0, len(t))
		for _, val := range t {
			out = append(out, CleanDecimals(val))
		}
		return out
	case []bson.M:
		out := make([]bson.M, 0, len(t))
		for _, val := range t {
			out = append(out, CleanDecimals(val).(bson.M))
		}
		return out
	case primitive.Decimal128:
		return decimalToNative(t)
	default:
		return v
	}
}

func decimalToNative(d128 primitive.Decimal128) interface{} {
	d, err := decimal.Parse(d128.String())
	if err != nil {
		// NaN / Inf no tienen representación nativa razonable
		return d128.String()
	}
	if d.IsInt() {
		if whole, _, ok := d.Int64(0); ok {
			return whole
		}
	}
	if f, ok := d.Float64(); ok {
		return f
	}
	return d128.String()
}

// totalToFloat convierte el campo total (Decimal128, int o float según
// cómo se haya escrito) a float64. Ausente o irreconocible vale 0.
func totalToFloat(v interface{}) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case primitive.Decimal128:
		if d, err := decimal.Parse(t.String()); err == nil {
			if f, ok := d.Float64(); ok {
				return f
			}
		}
		return 0
	default:
		return 0
	}
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
