package newsportal

import (
	"context"
	"fmt"
)

// Subscribe registers a push subscription. Subscribing again with a known
// endpoint replaces the keys, user and categories of the existing record.
func (u *Manager) Subscribe(ctx context.Context, ps PushSubscription) (*PushSubscription, error) {
	ps.ID = 0
	ps.CreatedAt = u.now()
	if ps.Categories == nil {
		ps.Categories = []string{}
	}

	sub, err := u.db.UpsertPushSubscription(ctx, ps)
	if err != nil {
		return nil, fmt.Errorf("db upsert push subscription: %w", err)
	}

	return sub, nil
}

func (u *Manager) PushSubscriptionByEndpoint(ctx context.Context, endpoint string) (*PushSubscription, error) {
	sub, err := u.db.PushSubscriptionByEndpoint(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("db get push subscription: %w", err)
	}

	return sub, nil
}

func (u *Manager) PushSubscriptions(ctx context.Context) ([]PushSubscription, error) {
	return u.PushSubscriptionsByCategory(ctx, "")
}

// PushSubscriptionsByCategory returns subscriptions with an empty category set
// or one containing slug.
func (u *Manager) PushSubscriptionsByCategory(ctx context.Context, slug string) ([]PushSubscription, error) {
	list, err := u.db.PushSubscriptions(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("db get push subscriptions: %w", err)
	}

	return list, nil
}

func (u *Manager) Unsubscribe(ctx context.Context, endpoint string) (bool, error) {
	ok, err := u.db.DeletePushSubscription(ctx, endpoint)
	if err != nil {
		return false, fmt.Errorf("db delete push subscription: %w", err)
	}

	return ok, nil
}
