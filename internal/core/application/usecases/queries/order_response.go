// Package queries contains the read side: order views built straight from
// the database without loading aggregates.
package queries

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderResponse is the read model of an order as shown to its participants.
type OrderResponse struct {
	ID                kernel.UUID
	CustomerID        kernel.UUID
	ShopID            kernel.UUID
	DeliveryPartnerID *kernel.UUID
	Items             []OrderItemResponse
	TotalAmount       decimal.Decimal
	Status            string
	ShippingAddress   string
	DeliveryLocation  *kernel.Location
	CreatedAt         time.Time

	// CustomerName is empty when the customer is no longer in the directory.
	CustomerName string
	// Shop tells the partner where to pick the order up.
	Shop *PartySummary
	// DeliveryPartner is nil until a partner is assigned.
	DeliveryPartner *PartySummary
}

// PartySummary is the public part of a participant's profile shown on an
// order. Location is nil while the user has not reported one.
type PartySummary struct {
	Name     string
	Address  string
	Location *kernel.Location
}

type OrderItemResponse struct {
	ProductID kernel.UUID
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	Image     string
}

type orderRow struct {
	ID                uuid.UUID
	CustomerID        uuid.UUID
	ShopID            uuid.UUID
	DeliveryPartnerID *uuid.UUID
	TotalAmount       decimal.Decimal
	Status            string
	ShippingAddress   string
	DeliveryLongitude *float64
	DeliveryLatitude  *float64
	CreatedAt         time.Time

	CustomerName     *string
	ShopName         *string
	ShopAddress      *string
	ShopLongitude    *float64
	ShopLatitude     *float64
	PartnerName      *string
	PartnerLongitude *float64
	PartnerLatitude  *float64
}

type orderItemRow struct {
	OrderID   uuid.UUID
	ProductID uuid.UUID
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	Image     string
}

const selectOrders = `
	SELECT
		o.id,
		o.customer_id,
		o.shop_id,
		o.delivery_partner_id,
		o.total_amount,
		o.status,
		o.shipping_address,
		o.delivery_longitude,
		o.delivery_latitude,
		o.created_at,
		c.name AS customer_name,
		s.name AS shop_name,
		s.address AS shop_address,
		s.longitude AS shop_longitude,
		s.latitude AS shop_latitude,
		p.name AS partner_name,
		p.longitude AS partner_longitude,
		p.latitude AS partner_latitude
	FROM orders o
	LEFT JOIN users c ON c.id = o.customer_id
	LEFT JOIN users s ON s.id = o.shop_id
	LEFT JOIN users p ON p.id = o.delivery_partner_id
`

// loadOrders runs selectOrders with the given tail (WHERE/ORDER BY) and
// attaches the items of every returned order. Columns in the tail must be
// qualified with the orders alias "o".
func loadOrders(ctx context.Context, db *gorm.DB, tail string, args ...any) ([]OrderResponse, error) {
	var rows []orderRow
	if err := db.WithContext(ctx).Raw(selectOrders+tail, args...).Scan(&rows).Error; err != nil {
		return nil, errs.NewDependencyError("postgres", err)
	}

	orders := make([]OrderResponse, 0, len(rows))
	if len(rows) == 0 {
		return orders, nil
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	var itemRows []orderItemRow
	err := db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			product_id,
			name,
			quantity,
			unit_price,
			image
		FROM order_items
		WHERE order_id IN ?
		ORDER BY order_id, position
	`, ids).Scan(&itemRows).Error
	if err != nil {
		return nil, errs.NewDependencyError("postgres", err)
	}

	itemsByOrder := make(map[uuid.UUID][]OrderItemResponse, len(rows))
	for _, ir := range itemRows {
		productID, idErr := kernel.UUIDFromBytes(ir.ProductID[:])
		if idErr != nil {
			return nil, idErr
		}
		itemsByOrder[ir.OrderID] = append(itemsByOrder[ir.OrderID], OrderItemResponse{
			ProductID: productID,
			Name:      ir.Name,
			Quantity:  ir.Quantity,
			UnitPrice: ir.UnitPrice,
			Image:     ir.Image,
		})
	}

	for _, row := range rows {
		resp, convErr := row.toResponse()
		if convErr != nil {
			return nil, convErr
		}
		resp.Items = itemsByOrder[row.ID]
		if resp.Items == nil {
			resp.Items = []OrderItemResponse{}
		}
		orders = append(orders, resp)
	}

	return orders, nil
}

func (r orderRow) toResponse() (OrderResponse, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return OrderResponse{}, err
	}
	customerID, err := kernel.UUIDFromBytes(r.CustomerID[:])
	if err != nil {
		return OrderResponse{}, err
	}
	shopID, err := kernel.UUIDFromBytes(r.ShopID[:])
	if err != nil {
		return OrderResponse{}, err
	}

	resp := OrderResponse{
		ID:              id,
		CustomerID:      customerID,
		ShopID:          shopID,
		TotalAmount:     r.TotalAmount,
		Status:          r.Status,
		ShippingAddress: r.ShippingAddress,
		CreatedAt:       r.CreatedAt.UTC(),
	}

	if r.DeliveryPartnerID != nil {
		partnerID, pErr := kernel.UUIDFromBytes((*r.DeliveryPartnerID)[:])
		if pErr != nil {
			return OrderResponse{}, pErr
		}
		resp.DeliveryPartnerID = &partnerID
	}

	if r.DeliveryLongitude != nil && r.DeliveryLatitude != nil {
		loc, locErr := kernel.NewLocation(*r.DeliveryLongitude, *r.DeliveryLatitude)
		if locErr != nil {
			return OrderResponse{}, locErr
		}
		resp.DeliveryLocation = &loc
	}

	if r.CustomerName != nil {
		resp.CustomerName = *r.CustomerName
	}
	if r.ShopName != nil {
		resp.Shop = &PartySummary{
			Name:     *r.ShopName,
			Address:  deref(r.ShopAddress),
			Location: knownLocation(r.ShopLongitude, r.ShopLatitude),
		}
	}
	if resp.DeliveryPartnerID != nil && r.PartnerName != nil {
		resp.DeliveryPartner = &PartySummary{
			Name:     *r.PartnerName,
			Location: knownLocation(r.PartnerLongitude, r.PartnerLatitude),
		}
	}

	return resp, nil
}

// knownLocation drops missing and 0,0 coordinates, which the user directory
// stores for users that never reported a position.
func knownLocation(longitude, latitude *float64) *kernel.Location {
	if longitude == nil || latitude == nil {
		return nil
	}
	loc, err := kernel.NewLocation(*longitude, *latitude)
	if err != nil || !loc.IsKnown() {
		return nil
	}
	return &loc
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// CanBeViewedBy mirrors order.Order.CanBeViewedBy for the read model.
func (r OrderResponse) CanBeViewedBy(userID kernel.UUID) bool {
	return r.CustomerID.IsEqual(userID) ||
		r.ShopID.IsEqual(userID) ||
		(r.DeliveryPartnerID != nil && r.DeliveryPartnerID.IsEqual(userID))
}
