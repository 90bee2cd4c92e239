// dto.go
package dto

// EventEnvelope es el mensaje que llega por el bus de eventos.
// El discriminador viene en "detail-type" y el payload en "detail".
type EventEnvelope struct {
	DetailType string                 `json:"detail-type"`
	Detail     map[string]interface{} `json:"detail"`
}

// Discriminadores conocidos. Cualquier otro valor se reconoce y se
// descarta sin error (el bus puede publicar tipos que no nos interesan).
const (
	EventOrderCreated       = "OrderCreated"
	EventOrderStatusUpdated = "OrderStatusUpdated"
	EventOrderCancelled     = "OrderCancelled"
)
