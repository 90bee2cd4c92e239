package repository

import (
	"context"
	"errors"

	"order-tracking-service/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("pedido no encontrado")

// Mongo implementation
type MongoOrderRepository struct {
	col *mongo.Collection
}

func NewMongoOrderRepository(db *mongo.Database) *MongoOrderRepository {
	return &MongoOrderRepository{col: db.Collection("orders")}
}

func (m *MongoOrderRepository) FindByOrderID(ctx context.Context, orderID string) (*model.Order, error) {
	var res model.Order
	err := m.col.FindOne(ctx, bson.M{"order_id": orderID}).Decode(&res)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	return &res, err
}

// AppendEvent agrega una entrada a event_history y actualiza
// last_event_update en una sola operación. $push con upsert cubre el
// contrato append-or-create: si el documento (o la lista) no existe,
// Mongo la inicializa antes de agregar. Nunca lee antes de escribir.
func (m *MongoOrderRepository) AppendEvent(ctx context.Context, orderID string, entry bson.M, now string) error {
	filter := bson.M{"order_id": orderID}
	update := bson.M{
		"$push": bson.M{"event_history": entry},
		"$set":  bson.M{"last_event_update": now},
	}
	opts := options.Update().SetUpsert(true)
	_, err := m.col.UpdateOne(ctx, filter, update, opts)
	return err
}

// FindByCustomerID devuelve los pedidos del cliente, más recientes
// primero (equivale al índice secundario por cliente, descendente).
func (m *MongoOrderRepository) FindByCustomerID(ctx context.Context, customerID string) ([]*model.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return m.findAll(ctx, bson.M{"customer_id": customerID}, opts)
}

// FindByStatus devuelve los pedidos con ese estado, ascendente por
// fecha de creación (índice secundario por estado).
func (m *MongoOrderRepository) FindByStatus(ctx context.Context, status string) ([]*model.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	return m.findAll(ctx, bson.M{"status": status}, opts)
}

// FindAll es el scan completo (dashboard sin filtro).
func (m *MongoOrderRepository) FindAll(ctx context.Context) ([]*model.Order, error) {
	return m.findAll(ctx, bson.M{}, options.Find())
}

func (m *MongoOrderRepository) findAll(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*model.Order, error) {
	cur, err := m.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*model.Order
	for cur.Next(ctx) {
		var v model.Order
		if err := cur.Decode(&v); err != nil {
			return nil, err
		}
		out = append(out, &v)
	}
	return out, cur.Err()
}
