package http

import (
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/user"

	"github.com/shopspring/decimal"
)

type LocationDTO struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type CreateOrderItemRequest struct {
	ShopID    string          `json:"shopId"`
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image,omitempty"`
}

type CreateOrderRequest struct {
	Items            []CreateOrderItemRequest `json:"items"`
	TotalAmount      decimal.Decimal          `json:"totalAmount"`
	ShippingAddress  string                   `json:"shippingAddress"`
	DeliveryLocation *LocationDTO             `json:"deliveryLocation,omitempty"`
}

type ChangeStatusRequest struct {
	Status string `json:"status"`
}

// UpdateLocationRequest uses pointers so that a missing coordinate is
// reported instead of read as zero.
type UpdateLocationRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type OrderItemResponse struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image,omitempty"`
}

type OrderResponse struct {
	ID                string              `json:"id"`
	CustomerID        string              `json:"customerId"`
	ShopID            string              `json:"shopId"`
	DeliveryPartnerID *string             `json:"deliveryPartnerId"`
	Items             []OrderItemResponse `json:"items"`
	TotalAmount       decimal.Decimal     `json:"totalAmount"`
	Status            string              `json:"status"`
	ShippingAddress   string              `json:"shippingAddress"`
	DeliveryLocation  *LocationDTO        `json:"deliveryLocation,omitempty"`
	CreatedAt         time.Time           `json:"createdAt"`
	CustomerName      string              `json:"customerName,omitempty"`
	Shop              *PartySummaryDTO    `json:"shop,omitempty"`
	DeliveryPartner   *PartySummaryDTO    `json:"deliveryPartner,omitempty"`
}

// PartySummaryDTO is filled on read endpoints only.
type PartySummaryDTO struct {
	Name     string       `json:"name"`
	Address  string       `json:"address,omitempty"`
	Location *LocationDTO `json:"location,omitempty"`
}

type UserLocationResponse struct {
	ID        string  `json:"id"`
	Role      string  `json:"role"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (r CreateOrderRequest) toItems() ([]commands.CreateOrderItem, error) {
	items := make([]commands.CreateOrderItem, 0, len(r.Items))
	for _, it := range r.Items {
		shopID, err := kernel.UUIDFromString(it.ShopID)
		if err != nil {
			return nil, err
		}
		productID, err := kernel.UUIDFromString(it.ProductID)
		if err != nil {
			return nil, err
		}
		items = append(items, commands.CreateOrderItem{
			ShopID:    shopID,
			ProductID: productID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.Price,
			Image:     it.Image,
		})
	}
	return items, nil
}

func (r CreateOrderRequest) toLocation() (*kernel.Location, error) {
	if r.DeliveryLocation == nil {
		return nil, nil
	}
	loc, err := kernel.NewLocation(r.DeliveryLocation.Longitude, r.DeliveryLocation.Latitude)
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

func locationDTO(loc *kernel.Location) *LocationDTO {
	if loc == nil {
		return nil
	}
	return &LocationDTO{Latitude: loc.Latitude(), Longitude: loc.Longitude()}
}

func optionalID(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func orderFromAggregate(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items()))
	for _, it := range o.Items() {
		items = append(items, OrderItemResponse{
			ProductID: it.ProductID().String(),
			Name:      it.Name(),
			Quantity:  it.Quantity(),
			Price:     it.UnitPrice(),
			Image:     it.Image(),
		})
	}

	return OrderResponse{
		ID:                o.ID().String(),
		CustomerID:        o.CustomerID().String(),
		ShopID:            o.ShopID().String(),
		DeliveryPartnerID: optionalID(o.DeliveryPartnerID()),
		Items:             items,
		TotalAmount:       o.TotalAmount(),
		Status:            o.Status().String(),
		ShippingAddress:   o.ShippingAddress(),
		DeliveryLocation:  locationDTO(o.DeliveryLocation()),
		CreatedAt:         o.CreatedAt(),
	}
}

func orderFromReadModel(r queries.OrderResponse) OrderResponse {
	items := make([]OrderItemResponse, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, OrderItemResponse{
			ProductID: it.ProductID.String(),
			Name:      it.Name,
			Quantity:  it.Quantity,
			Price:     it.UnitPrice,
			Image:     it.Image,
		})
	}

	return OrderResponse{
		ID:                r.ID.String(),
		CustomerID:        r.CustomerID.String(),
		ShopID:            r.ShopID.String(),
		DeliveryPartnerID: optionalID(r.DeliveryPartnerID),
		Items:             items,
		TotalAmount:       r.TotalAmount,
		Status:            r.Status,
		ShippingAddress:   r.ShippingAddress,
		DeliveryLocation:  locationDTO(r.DeliveryLocation),
		CreatedAt:         r.CreatedAt,
		CustomerName:      r.CustomerName,
		Shop:              partySummary(r.Shop),
		DeliveryPartner:   partySummary(r.DeliveryPartner),
	}
}

func partySummary(p *queries.PartySummary) *PartySummaryDTO {
	if p == nil {
		return nil
	}
	return &PartySummaryDTO{Name: p.Name, Address: p.Address, Location: locationDTO(p.Location)}
}

func userLocationFromAggregate(u *user.User) UserLocationResponse {
	return UserLocationResponse{
		ID:        u.ID().String(),
		Role:      u.Role().String(),
		Latitude:  u.Location().Latitude(),
		Longitude: u.Location().Longitude(),
	}
}
