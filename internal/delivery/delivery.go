// Package delivery defines the inbound transport contract. Concrete
// transports (HTTP today) implement Delivery and are driven by main.
package delivery

import "context"

// Delivery is a long-running inbound server. Serve blocks until the
// transport stops; shutdown is handled through lifecycle hooks.
type Delivery interface {
	Serve(ctx context.Context) error
}
