// setup.go
package rabbit

import (
	"log"

	"order-tracking-service/internal/service"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
)

func SetupConsumers(ch *amqp091.Channel, exchange string, svc *service.OrderTrackingService) {
	consumer := NewOrderEventConsumer(svc)

	// 1. Declarar la queue
	q, err := ch.QueueDeclare(
		"order_tracking_events", // cola exclusiva para este micro
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		log.Println("❌ Error declarando queue:", err)
		return
	}

	// 2. Bindear al exchange fanout de eventos de pedido
	err = ch.QueueBind(
		q.Name,
		"", // fanout ignora routing key
		exchange,
		false,
		nil,
	)
	if err != nil {
		log.Println("❌ Error binding exchange:", err)
		return
	}

	// 3. Consumir
	msgs, err := ch.Consume(
		q.Name,
		"order-tracking-"+uuid.NewString(),
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		log.Println("❌ Error al consumir queue:", err)
		return
	}

	go func() {
		for m := range msgs {
			consumer.Handle(m.Body)
		}
	}()

	log.Printf("🐰 Suscrito a exchange %s (fanout)", exchange)
}
