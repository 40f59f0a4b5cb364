package backendapi

import (
	"context"

	"github.com/louisbranch/retina.care/internal/services/web/platform/apiclient"
)

// ServicePackages lists the purchasable packages.
func (c *Client) ServicePackages(ctx context.Context) ([]ServicePackage, error) {
	return getList[ServicePackage](ctx, c, "/service-packages", "packages")
}

// ActiveSubscription returns an account's active subscription.
func (c *Client) ActiveSubscription(ctx context.Context, accountID apiclient.ID) (Subscription, error) {
	if err := requireID("account", accountID); err != nil {
		return Subscription{}, err
	}
	return getOne[Subscription](ctx, c, resource("/subscriptions/account", accountID.String(), "active"))
}

// Credits returns an account's remaining image credits.
func (c *Client) Credits(ctx context.Context, accountID apiclient.ID) (Credits, error) {
	if err := requireID("account", accountID); err != nil {
		return Credits{}, err
	}
	return getOne[Credits](ctx, c, resource("/subscriptions/account", accountID.String(), "credits"))
}

// Subscribe purchases a package for an account.
func (c *Client) Subscribe(ctx context.Context, in SubscriptionInput) (Subscription, error) {
	return postOne[Subscription](ctx, c, "/subscriptions", in)
}
