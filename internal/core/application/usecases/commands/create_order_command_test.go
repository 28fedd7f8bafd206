package commands_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderItems(shopIDs ...kernel.UUID) []commands.CreateOrderItem {
	items := make([]commands.CreateOrderItem, 0, len(shopIDs))
	for _, shopID := range shopIDs {
		items = append(items, commands.CreateOrderItem{
			ShopID:    shopID,
			ProductID: kernel.NewUUID(),
			Name:      "Bread",
			Quantity:  1,
			UnitPrice: decimal.RequireFromString("2.25"),
		})
	}
	return items
}

func TestNewCreateOrderCommand(t *testing.T) {
	customer := mustActor(t, kernel.NewUUID(), user.Customer)
	shopID := kernel.NewUUID()
	total := decimal.RequireFromString("4.50")

	t.Run("valid command takes shop from items", func(t *testing.T) {
		loc := mustLocation(t, 77.59, 12.97)

		cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), customer,
			orderItems(shopID, shopID), total, "  7 Lake View ", &loc)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.True(t, cmd.ShopID().IsEqual(shopID))
		assert.Len(t, cmd.Items(), 2)
		assert.Equal(t, "7 Lake View", cmd.ShippingAddress())
		require.NotNil(t, cmd.DeliveryLocation())
		assert.True(t, total.Equal(cmd.TotalAmount()))
	})

	t.Run("no items", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), customer, nil, total, "", nil)

		require.ErrorIs(t, err, order.ErrItemsAreRequired)
	})

	t.Run("items from several shops", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), customer,
			orderItems(shopID, kernel.NewUUID()), total, "", nil)

		require.ErrorIs(t, err, commands.ErrItemsFromSeveralShops)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("invalid item quantity", func(t *testing.T) {
		items := orderItems(shopID)
		items[0].Quantity = 0

		_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), customer, items, total, "", nil)

		require.Error(t, err)
		assert.True(t, errs.IsValidation(err))
		assert.Contains(t, err.Error(), "items[0]")
	})

	t.Run("negative total", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), customer,
			orderItems(shopID), decimal.RequireFromString("-1"), "", nil)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("only customers place orders", func(t *testing.T) {
		shop := mustActor(t, shopID, user.Shopkeeper)

		_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), shop, orderItems(shopID), total, "", nil)

		require.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("zero order id", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(kernel.UUID{}, customer, orderItems(shopID), total, "", nil)

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var cmd commands.CreateOrderCommand

		require.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
	})
}
