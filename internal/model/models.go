// models.go
package model

import "go.mongodb.org/mongo-driver/bson"

// Order es el documento principal de la colección "orders".
// Los timestamps se guardan como strings ISO-8601 en UTC porque el
// timeline se ordena por comparación lexicográfica de esos strings.
type Order struct {
	OrderID         string        `bson:"order_id" json:"order_id"`
	CustomerID      string        `bson:"customer_id" json:"customer_id"`
	Status          string        `bson:"status" json:"status"`
	Items           bson.A        `bson:"items" json:"items"`
	Total           interface{}   `bson:"total" json:"total"` // puede venir como Decimal128
	CreatedAt       string        `bson:"created_at" json:"created_at"`
	UpdatedAt       string        `bson:"updated_at" json:"updated_at"`
	History         []OriginEntry `bson:"history" json:"history"`
	EventHistory    []bson.M      `bson:"event_history" json:"event_history"`
	LastEventUpdate string        `bson:"last_event_update" json:"last_event_update"`
}

// OriginEntry es una entrada del historial que escribe el servicio de
// pedidos (colaborador externo). Este servicio solo la lee, nunca la muta.
type OriginEntry struct {
	At     string `bson:"at" json:"at"`
	Action string `bson:"action" json:"action"`
	By     string `bson:"by" json:"by"`
	Reason string `bson:"reason,omitempty" json:"reason,omitempty"`
}
