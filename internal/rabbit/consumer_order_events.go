package rabbit

import (
	"context"
	"encoding/json"
	"log"

	"order-tracking-service/internal/dto"
	"order-tracking-service/internal/metrics"
	"order-tracking-service/internal/service"
)

type OrderEventConsumer struct {
	Service *service.OrderTrackingService
}

func NewOrderEventConsumer(s *service.OrderTrackingService) *OrderEventConsumer {
	return &OrderEventConsumer{Service: s}
}

// Handle procesa un envelope del bus. Un detail-type desconocido se
// acepta y se descarta; el bus puede reentregar, y un duplicado solo
// produce una entrada duplicada en el historial (limitación documentada,
// no corrupción). Por eso acá no hay retries.
func (c *OrderEventConsumer) Handle(msg []byte) error {
	var env dto.EventEnvelope
	if err := json.Unmarshal(msg, &env); err != nil {
		log.Println("Error parseando mensaje:", err)
		metrics.OrderEventsFailedTotal.Inc()
		return err
	}

	log.Println("[Rabbit] Evento recibido:", env.DetailType)

	processed, err := c.Service.RecordEvent(context.Background(), env)
	if err != nil {
		log.Println("❌ Error procesando evento:", err)
		metrics.OrderEventsFailedTotal.Inc()
		return err
	}

	if !processed {
		log.Println("Evento no reconocido:", env.DetailType)
		metrics.OrderEventsSkippedTotal.Inc()
		return nil
	}

	metrics.OrderEventsProcessedTotal.WithLabelValues(env.DetailType).Inc()
	log.Printf("✔ Pedido %v actualizado con evento %s", env.Detail["order_id"], env.DetailType)
	return nil
}
