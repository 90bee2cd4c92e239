package service

import (
	"log"
	"sort"
	"strings"
	"time"

	"order-tracking-service/internal/model"
	"order-tracking-service/internal/status"

	"github.com/govalues/decimal"
	"go.mongodb.org/mongo-driver/bson"
)

const statsError = "No se pudieron calcular estadísticas"

// BuildTimeline combina el historial del servicio de pedidos con el
// event_history propio en una sola secuencia cronológica. Primero se
// vuelcan las entradas de origen, después las de eventos; el sort es
// estable, así que con timestamps iguales se conserva ese orden.
// Una entrada sin timestamp ordena como si fuera el string vacío.
func BuildTimeline(history []model.OriginEntry, eventHistory []bson.M) []bson.M {
	timeline := make([]bson.M, 0, len(history)+len(eventHistory))

	for _, h := range history {
		timeline = append(timeline, bson.M{
			"timestamp": h.At,
			"action":    h.Action,
			"by":        h.By,
			"reason":    h.Reason,
			"source":    "order_service",
		})
	}

	for _, e := range eventHistory {
		details := bson.M{}
		for k, v := range e {
			if k != "timestamp" && k != "event" {
				details[k] = v
			}
		}
		timeline = append(timeline, bson.M{
			"timestamp": e["timestamp"],
			"event":     e["event"],
			"details":   details,
			"source":    "status_service",
		})
	}

	sort.SliceStable(timeline, func(i, j int) bool {
		return timestampOf(timeline[i]) < timestampOf(timeline[j])
	})

	return timeline
}

func timestampOf(entry bson.M) string {
	if ts, ok := entry["timestamp"].(string); ok {
		return ts
	}
	return ""
}

// Statistics calcula las estadísticas de un pedido sobre su timeline.
// Timestamps malformados degradan a un marcador de error en la
// respuesta, nunca a un fallo del request.
func Statistics(timeline []bson.M, o *model.Order) bson.M {
	if len(timeline) == 0 {
		return bson.M{}
	}

	tiempoTotal := 0.0
	if o.CreatedAt != "" && o.UpdatedAt != "" {
		inicio, errInicio := time.Parse(time.RFC3339, o.CreatedAt)
		fin, errFin := time.Parse(time.RFC3339, o.UpdatedAt)
		if errInicio != nil || errFin != nil {
			log.Printf("Error calculando estadísticas del pedido %s", o.OrderID)
			return bson.M{"error": statsError}
		}
		tiempoTotal = fin.Sub(inicio).Minutes()
	}

	cambiosEstado := 0
	for _, e := range timeline {
		if action, ok := e["action"].(string); ok && strings.Contains(action, "status_changed") {
			cambiosEstado++
		}
	}

	return bson.M{
		"tiempo_total_minutos": round2(tiempoTotal),
		"eventos_totales":      len(timeline),
		"cambios_estado":       cambiosEstado,
		"estado_actual":        o.Status,
	}
}

// WaitMinutes devuelve los minutos transcurridos desde created_at,
// con un decimal. Fecha ausente o imposible de parsear vale 0.
func WaitMinutes(createdAt string) float64 {
	if createdAt == "" {
		return 0
	}
	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return 0
	}
	return round1(time.Since(t).Minutes())
}

// CountSteps cuenta los cambios de estado registrados por el servicio
// de pedidos. Se mantiene el match por substring del sistema original
// para no cambiar los conteos frente al mismo stream.
func CountSteps(history []model.OriginEntry) int {
	n := 0
	for _, h := range history {
		if strings.Contains(h.Action, "status_changed") {
			n++
		}
	}
	return n
}

// DashboardStatistics agrega sobre la lista ya formateada del
// dashboard. La lista canónica de estados se devuelve siempre, haya o
// no pedidos, para que el cliente pueda renderizar los filtros.
func DashboardStatistics(pedidos []bson.M) bson.M {
	if len(pedidos) == 0 {
		return bson.M{
			"total_pedidos":              0,
			"por_estado":                 bson.M{},
			"tiempo_espera_promedio":     0,
			"pedido_mas_antiguo_minutos": 0,
			"total_ventas":               0,
			"estados_disponibles":        status.Known,
		}
	}

	porEstado := bson.M{}
	sumaEspera := 0.0
	masAntiguo := 0.0
	ventas := decimal.MustNew(0, 0)

	for _, p := range pedidos {
		st, _ := p["status"].(string)
		if c, ok := porEstado[st].(int); ok {
			porEstado[st] = c + 1
		} else {
			porEstado[st] = 1
		}

		espera, _ := p["tiempo_espera_minutos"].(float64)
		sumaEspera += espera
		if espera > masAntiguo {
			masAntiguo = espera
		}

		total, _ := p["total"].(float64)
		if d, err := decimal.NewFromFloat64(total); err == nil {
			if suma, err := ventas.Add(d); err == nil {
				ventas = suma
			}
		}
	}

	totalVentas, _ := ventas.Round(2).Float64()

	return bson.M{
		"total_pedidos":              len(pedidos),
		"por_estado":                 porEstado,
		"tiempo_espera_promedio":     round1(sumaEspera / float64(len(pedidos))),
		"pedido_mas_antiguo_minutos": round1(masAntiguo),
		"total_ventas":               totalVentas,
		"estados_disponibles":        status.Known,
	}
}
