package order

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
)

// StatusChangedEventName is the wire name of StatusChanged.
const StatusChangedEventName = "order.StatusChanged"

// StatusChanged is recorded every time an order moves to a different status.
// Fields are exported so publishers can encode it directly.
type StatusChanged struct {
	OrderID    kernel.UUID  `json:"orderId"`
	ShopID     kernel.UUID  `json:"shopId"`
	CustomerID kernel.UUID  `json:"customerId"`
	From       string       `json:"from"`
	To         string       `json:"to"`
	PartnerID  *kernel.UUID `json:"deliveryPartnerId,omitempty"`
	At         time.Time    `json:"occurredAt"`
}

func (e StatusChanged) EventName() string {
	return StatusChangedEventName
}

func (e StatusChanged) AggregateID() kernel.UUID {
	return e.OrderID
}

func (e StatusChanged) OccurredAt() time.Time {
	return e.At
}
