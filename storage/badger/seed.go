package badger

import (
	"context"
	"log/slog"

	"github.com/claimlog/claimlog/core"
)

// defaultRetailers is the reference data written to an empty store on
// first open. Plain records afterward: editable and deletable like any
// retailer added by hand.
var defaultRetailers = []core.Retailer{
	{Name: "Amazon", PhoneNumber: "1-888-280-4331", Email: "cs-reply@amazon.com", Website: "amazon.com", PreferredContactMethod: "Website"},
	{Name: "Best Buy", PhoneNumber: "1-888-237-8289", Email: "customercare@bestbuy.com", Website: "bestbuy.com", PreferredContactMethod: "Phone"},
	{Name: "Walmart", PhoneNumber: "1-800-925-6278", Email: "help@walmart.com", Website: "walmart.com", PreferredContactMethod: "Website"},
	{Name: "Target", PhoneNumber: "1-800-440-0680", Email: "guest.service@target.com", Website: "target.com", PreferredContactMethod: "Phone"},
	{Name: "Apple", PhoneNumber: "1-800-275-2273", Email: "support@apple.com", Website: "apple.com", PreferredContactMethod: "Phone"},
	{Name: "Google Store", PhoneNumber: "1-855-836-3987", Email: "store-support@google.com", Website: "store.google.com", PreferredContactMethod: "Website"},
}

// SeedRetailers inserts the default retailers when the collection is
// empty. A store with any retailer at all, including one the user
// added after deleting the defaults, is left alone.
func (b *Backend) SeedRetailers(ctx context.Context, retailers *RetailerRepository) error {
	count, err := retailers.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for i := range defaultRetailers {
		retailer := defaultRetailers[i]
		if _, err := retailers.Add(ctx, &retailer); err != nil {
			return err
		}
	}

	b.logger.Info("seeded default retailers", slog.Int("count", len(defaultRetailers)))
	return nil
}
