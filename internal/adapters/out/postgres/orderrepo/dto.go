package orderrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders row. Status is stored by name.
type OrderDTO struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ShopID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	DeliveryPartnerID *uuid.UUID      `gorm:"type:uuid;index"`
	Items             []OrderItemDTO  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	TotalAmount       decimal.Decimal `gorm:"type:numeric;not null"`
	Status            string          `gorm:"type:varchar(16);not null;index"`
	ShippingAddress   string          `gorm:"type:text;not null"`
	DeliveryLongitude *float64
	DeliveryLatitude  *float64
	CreatedAt         time.Time `gorm:"not null;index"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one line of an order. Position keeps the original order of items.
type OrderItemDTO struct {
	ID        uint            `gorm:"primaryKey"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position  int             `gorm:"not null"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Name      string          `gorm:"type:varchar(255);not null"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric;not null"`
	Image     string          `gorm:"type:text"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(o *order.Order) OrderDTO {
	id := o.ID().Bytes()

	items := make([]OrderItemDTO, 0, len(o.Items()))
	for i, item := range o.Items() {
		items = append(items, OrderItemDTO{
			OrderID:   id,
			Position:  i,
			ProductID: item.ProductID().Bytes(),
			Name:      item.Name(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
			Image:     item.Image(),
		})
	}

	dto := OrderDTO{
		ID:                id,
		CustomerID:        o.CustomerID().Bytes(),
		ShopID:            o.ShopID().Bytes(),
		DeliveryPartnerID: partnerToDTO(o),
		Items:             items,
		TotalAmount:       o.TotalAmount(),
		Status:            o.Status().String(),
		ShippingAddress:   o.ShippingAddress(),
		CreatedAt:         o.CreatedAt(),
	}

	if loc := o.DeliveryLocation(); loc != nil {
		lon, lat := loc.Longitude(), loc.Latitude()
		dto.DeliveryLongitude = &lon
		dto.DeliveryLatitude = &lat
	}

	return dto
}

func partnerToDTO(o *order.Order) *uuid.UUID {
	id := o.DeliveryPartnerID()
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	shopID, err := kernel.UUIDFromBytes(dto.ShopID[:])
	if err != nil {
		return nil, err
	}

	var partnerID *kernel.UUID
	if dto.DeliveryPartnerID != nil {
		pID, pErr := kernel.UUIDFromBytes((*dto.DeliveryPartnerID)[:])
		if pErr != nil {
			return nil, pErr
		}
		partnerID = &pID
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var deliveryLocation *kernel.Location
	if dto.DeliveryLongitude != nil && dto.DeliveryLatitude != nil {
		loc, locErr := kernel.NewLocation(*dto.DeliveryLongitude, *dto.DeliveryLatitude)
		if locErr != nil {
			return nil, locErr
		}
		deliveryLocation = &loc
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(id, customerID, shopID, partnerID, items, dto.TotalAmount,
		status, dto.ShippingAddress, deliveryLocation, dto.CreatedAt)
}

func itemToDomain(dto OrderItemDTO) (order.LineItem, error) {
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return order.LineItem{}, err
	}
	return order.NewLineItem(productID, dto.Name, dto.Quantity, dto.UnitPrice, dto.Image)
}
