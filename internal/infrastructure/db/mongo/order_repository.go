package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/digiloka/marketplace-api/internal/core/domain"
)

const ordersCollection = "orders"

type OrderRepository struct {
	coll *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{coll: db.Collection(ordersCollection)}
}

type orderDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	ProductID       string             `bson:"product_id"`
	BuyerID         string             `bson:"buyer_id"`
	SellerID        string             `bson:"seller_id"`
	PriceAtPurchase float64            `bson:"price_at_purchase"`
	Status          string             `bson:"status"`
	CreatedAt       time.Time          `bson:"created_at"`
}

// EnsureIndexes creates the buyer history index.
func (r *OrderRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "buyer_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}

func (r *OrderRepository) InsertMany(ctx context.Context, orders []*domain.Order) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	docs := make([]interface{}, 0, len(orders))
	for _, o := range orders {
		docs = append(docs, orderDoc{
			ProductID:       o.ProductID,
			BuyerID:         o.BuyerID,
			SellerID:        o.SellerID,
			PriceAtPurchase: o.PriceAtPurchase,
			Status:          string(o.Status),
			CreatedAt:       o.CreatedAt,
		})
	}

	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert orders: %w", err)
	}
	return nil
}

func (r *OrderRepository) FindByBuyer(ctx context.Context, buyerID string) ([]*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{"buyer_id": buyerID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find orders: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Order
	for cur.Next(ctx) {
		var doc orderDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode order: %w", err)
		}
		out = append(out, &domain.Order{
			ID:              doc.ID.Hex(),
			ProductID:       doc.ProductID,
			BuyerID:         doc.BuyerID,
			SellerID:        doc.SellerID,
			PriceAtPurchase: doc.PriceAtPurchase,
			Status:          domain.OrderStatus(doc.Status),
			CreatedAt:       doc.CreatedAt,
		})
	}
	return out, cur.Err()
}
