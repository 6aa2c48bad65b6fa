package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/meditrack/clinic-system/internal/core/domain"
)

const subscriptionsCollection = "subscriptions"

// MongoSubscriptionRepository stores the subscription snapshot kept in sync
// by billing webhook events. One document per user (_id = user id).
type MongoSubscriptionRepository struct {
	coll *mongo.Collection
}

func NewSubscriptionRepository(db *mongo.Database) *MongoSubscriptionRepository {
	return &MongoSubscriptionRepository{coll: db.Collection(subscriptionsCollection)}
}

type mongoSubscription struct {
	UserID            string `bson:"_id"`
	Status            string `bson:"status"`
	PriceID           string `bson:"price_id,omitempty"`
	CurrentPeriodEnd  int64  `bson:"current_period_end"`
	CancelAtPeriodEnd bool   `bson:"cancel_at_period_end"`
}

func (r *MongoSubscriptionRepository) FindByUserID(ctx context.Context, userID string) (*domain.Subscription, error) {
	var ms mongoSubscription
	if err := r.coll.FindOne(ctx, bson.M{"_id": userID}).Decode(&ms); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("find subscription: %w", err)
	}

	return &domain.Subscription{
		UserID:            ms.UserID,
		Status:            ms.Status,
		PriceID:           ms.PriceID,
		CurrentPeriodEnd:  time.Unix(ms.CurrentPeriodEnd, 0).UTC(),
		CancelAtPeriodEnd: ms.CancelAtPeriodEnd,
	}, nil
}

// FetchByUserID satisfies ports.SubscriptionProvider.
func (r *MongoSubscriptionRepository) FetchByUserID(ctx context.Context, userID string) (*domain.Subscription, error) {
	return r.FindByUserID(ctx, userID)
}

func (r *MongoSubscriptionRepository) Upsert(ctx context.Context, sub *domain.Subscription) error {
	doc := mongoSubscription{
		UserID:            sub.UserID,
		Status:            sub.Status,
		PriceID:           sub.PriceID,
		CurrentPeriodEnd:  sub.CurrentPeriodEnd.Unix(),
		CancelAtPeriodEnd: sub.CancelAtPeriodEnd,
	}

	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": sub.UserID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert subscription: %w", err)
	}
	return nil
}

func (r *MongoSubscriptionRepository) Cancel(ctx context.Context, userID string) error {
	set := bson.M{"status": "canceled", "cancel_at_period_end": false}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("cancel subscription: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrSubscriptionNotFound
	}
	return nil
}
