package service

import (
	"context"
	"sort"
	"time"

	"order-tracking-service/internal/dto"
	"order-tracking-service/internal/model"
	"order-tracking-service/internal/status"

	"go.mongodb.org/mongo-driver/bson"
)

// Interfaz que debe implementar repository
type OrderRepository interface {
	FindByOrderID(ctx context.Context, orderID string) (*model.Order, error)
	AppendEvent(ctx context.Context, orderID string, entry bson.M, now string) error
	FindByCustomerID(ctx context.Context, customerID string) ([]*model.Order, error)
	FindByStatus(ctx context.Context, status string) ([]*model.Order, error)
	FindAll(ctx context.Context) ([]*model.Order, error)
}

type OrderTrackingService struct {
	repo OrderRepository
}

func NewOrderTrackingService(r OrderRepository) *OrderTrackingService {
	return &OrderTrackingService{repo: r}
}

// RecordEvent traduce un evento del bus a una entrada de event_history
// y la agrega al pedido. Devuelve false (sin error) para discriminadores
// desconocidos: se reconocen y se descartan. No lee el estado actual del
// pedido ni valida transiciones; el append es ciego.
func (s *OrderTrackingService) RecordEvent(ctx context.Context, env dto.EventEnvelope) (bool, error) {
	// Un solo timestamp de procesamiento por invocación: va en la
	// entrada y en last_event_update
	now := time.Now().UTC().Format(time.RFC3339)
	detail := env.Detail

	orderID := getString(detail, "order_id", "")
	if orderID == "" {
		return false, &ValidationError{Field: "order_id"}
	}

	var entry bson.M
	switch env.DetailType {
	case dto.EventOrderCreated:
		entry = bson.M{
			"event":       "order_created",
			"timestamp":   now,
			"customer_id": detail["customer_id"],
			"status":      getString(detail, "status", "created"),
			"total":       detail["total"],
			"event_time":  getString(detail, "event_time", now),
		}
	case dto.EventOrderStatusUpdated:
		entry = bson.M{
			"event":      "status_updated",
			"timestamp":  now,
			"old_status": detail["old_status"],
			"new_status": detail["new_status"],
			"event_time": getString(detail, "event_time", now),
		}
	case dto.EventOrderCancelled:
		entry = bson.M{
			"event":        "order_cancelled",
			"timestamp":    now,
			"reason":       getString(detail, "reason", ""),
			"cancelled_by": getString(detail, "cancelled_by", "system"),
			"event_time":   getString(detail, "event_time", now),
		}
	default:
		return false, nil
	}

	if err := s.repo.AppendEvent(ctx, orderID, entry, now); err != nil {
		return false, &StorageError{Err: err}
	}
	return true, nil
}

// GetOrderStatus arma la respuesta de GET /orders/:orderId.
func (s *OrderTrackingService) GetOrderStatus(ctx context.Context, orderID string) (bson.M, error) {
	pedido, err := s.repo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	st := pedido.Status
	if st == "" {
		st = "created"
	}

	return bson.M{
		"order_id":    pedido.OrderID,
		"status":      st,
		"customer_id": pedido.CustomerID,
		"items":       CleanDecimals(itemsOrEmpty(pedido.Items)),
		"total":       totalToFloat(pedido.Total),
		"created_at":  pedido.CreatedAt,
		"updated_at":  pedido.UpdatedAt,
		"progress":    status.Progress(st),
	}, nil
}

// GetOrderHistory arma la respuesta de GET /orders/:orderId/history:
// el pedido más su timeline combinado y las estadísticas derivadas.
func (s *OrderTrackingService) GetOrderHistory(ctx context.Context, orderID string) (bson.M, error) {
	pedido, err := s.repo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	timeline := BuildTimeline(pedido.History, pedido.EventHistory)

	return bson.M{
		"order_id":    pedido.OrderID,
		"customer_id": pedido.CustomerID,
		"status":      pedido.Status,
		"items":       CleanDecimals(itemsOrEmpty(pedido.Items)),
		"total":       totalToFloat(pedido.Total),
		"created_at":  pedido.CreatedAt,
		"updated_at":  pedido.UpdatedAt,
		"timeline":    CleanDecimals(timeline),
		"statistics":  Statistics(timeline, pedido),
	}, nil
}

// GetCustomerOrders devuelve los pedidos del cliente, más recientes primero.
func (s *OrderTrackingService) GetCustomerOrders(ctx context.Context, customerID string) (bson.M, error) {
	pedidos, err := s.repo.FindByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	formateados := make([]bson.M, 0, len(pedidos))
	for _, p := range pedidos {
		st := p.Status
		if st == "" {
			st = "created"
		}
		formateados = append(formateados, bson.M{
			"order_id":     p.OrderID,
			"status":       p.Status,
			"items":        CleanDecimals(itemsOrEmpty(p.Items)),
			"total":        totalToFloat(p.Total),
			"created_at":   p.CreatedAt,
			"updated_at":   p.UpdatedAt,
			"progress":     status.Progress(st),
			"status_label": status.Label(p.Status),
		})
	}

	return bson.M{
		"customer_id":  customerID,
		"orders":       formateados,
		"total_orders": len(formateados),
	}, nil
}

// GetDashboardOrders devuelve todos los pedidos (o los del estado
// filtrado), enriquecidos con tiempo de espera y pasos completados,
// más los agregados del dashboard sobre el conjunto resultante.
func (s *OrderTrackingService) GetDashboardOrders(ctx context.Context, statusFilter string) (bson.M, error) {
	var pedidos []*model.Order
	var err error
	if statusFilter != "" {
		pedidos, err = s.repo.FindByStatus(ctx, statusFilter)
	} else {
		pedidos, err = s.repo.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	formateados := make([]bson.M, 0, len(pedidos))
	for _, p := range pedidos {
		formateados = append(formateados, bson.M{
			"order_id":              p.OrderID,
			"customer_id":           p.CustomerID,
			"status":                p.Status,
			"items":                 CleanDecimals(itemsOrEmpty(p.Items)),
			"total":                 totalToFloat(p.Total),
			"created_at":            p.CreatedAt,
			"updated_at":            p.UpdatedAt,
			"tiempo_espera_minutos": WaitMinutes(p.CreatedAt),
			"pasos_completados":     CountSteps(p.History),
		})
	}

	// Ascendente por fecha de creación; sin fecha ordena primero
	sort.SliceStable(formateados, func(i, j int) bool {
		ci, _ := formateados[i]["created_at"].(string)
		cj, _ := formateados[j]["created_at"].(string)
		return ci < cj
	})

	// filter_applied va como null cuando no hubo filtro
	var filtro interface{}
	if statusFilter != "" {
		filtro = statusFilter
	}

	return bson.M{
		"orders":         formateados,
		"statistics":     DashboardStatistics(formateados),
		"total":          len(formateados),
		"filter_applied": filtro,
	}, nil
}

func getString(m map[string]interface{}, key, fallback string) string {
	if v, ok := m[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

func itemsOrEmpty(items bson.A) bson.A {
	if items == nil {
		return bson.A{}
	}
	return items
}
