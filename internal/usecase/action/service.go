// Package action acknowledges storefront mutations without applying them.
package action

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/storefront/internal/domain"
	"github.com/kailas-cloud/storefront/internal/logger"
)

// Name is a storefront mutation.
type Name string

// Supported actions.
const (
	AddToCart          Name = "add-to-cart"
	AddToWishlist      Name = "add-to-wishlist"
	RemoveFromWishlist Name = "remove-from-wishlist"
	PlaceBid           Name = "place-bid"
	MakeOffer          Name = "make-offer"
	AcceptOffer        Name = "accept-offer"
	PlaceOrder         Name = "place-order"
	CancelOrder        Name = "cancel-order"
	UpdateProfile      Name = "update-profile"
	ContactSupplier    Name = "contact-supplier"
)

var names = []Name{
	AddToCart, AddToWishlist, RemoveFromWishlist,
	PlaceBid, MakeOffer, AcceptOffer,
	PlaceOrder, CancelOrder,
	UpdateProfile, ContactSupplier,
}

// Names returns every supported action.
func Names() []Name { return slices.Clone(names) }

// Ack acknowledges a demo action. Applied is always false.
type Ack struct {
	Reference  string
	Action     Name
	Applied    bool
	ReceivedAt time.Time
}

// Service simulates storefront mutations.
type Service struct {
	now   func() time.Time
	newID func() string
}

// New creates the demo action service.
func New() *Service {
	return &Service{now: time.Now, newID: uuid.NewString}
}

// Perform validates the action name and returns an acknowledgement. Nothing is stored.
func (s *Service) Perform(ctx context.Context, name string) (Ack, error) {
	n := Name(name)
	if !slices.Contains(names, n) {
		return Ack{}, fmt.Errorf("%w: %q", domain.ErrUnknownAction, name)
	}

	ack := Ack{Reference: s.newID(), Action: n, ReceivedAt: s.now().UTC()}
	logger.FromContext(ctx).Info("Demo action acknowledged",
		zap.String("action", name), zap.String("reference", ack.Reference))
	return ack, nil
}
