package market

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/odyssey-game/server/game"
)

type fakeAccounts struct {
	invs map[int64]*game.Inventory
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{invs: make(map[int64]*game.Inventory)}
}

func (a *fakeAccounts) with(playerID int64, omen float64, counts map[string]int) *fakeAccounts {
	inv := game.NewInventory()
	inv.OmenBalance = omen
	for k, v := range counts {
		inv.Counts[k] = v
	}
	a.invs[playerID] = inv
	return a
}

func (a *fakeAccounts) Inventory(playerID int64) (*game.Inventory, bool) {
	inv, ok := a.invs[playerID]
	return inv, ok
}

func TestOrderCrossingSettlesAtRestingPrice(t *testing.T) {
	accounts := newFakeAccounts().
		with(1, 0, map[string]int{"iron": 10}).
		with(2, 1000, nil)
	m := NewMarket(game.NewIDAllocator(1))

	sellOrder, trades, err := m.Place(accounts, 1, "iron", Sell, 10, 50, 0)
	require.NoError(t, err)
	require.Empty(t, trades)
	require.Equal(t, Open, sellOrder.Status)

	buyOrder, trades, err := m.Place(accounts, 2, "iron", Buy, 10, 60, 100)
	require.NoError(t, err)
	require.Len(t, trades, 1)

	trade := trades[0]
	require.Equal(t, 50.0, trade.Price)
	require.Equal(t, 10, trade.Quantity)
	require.Equal(t, 25.0, trade.Fee) // floor(500*0.05*100)/100
	require.Equal(t, 475.0, trade.SellerNet)
	require.Equal(t, 100.0, trade.BuyerRefund) // 10 * (60-50)

	require.Equal(t, Filled, buyOrder.Status)

	sellerInv, _ := accounts.Inventory(1)
	buyerInv, _ := accounts.Inventory(2)
	require.Equal(t, 475.0, sellerInv.OmenBalance)
	require.Equal(t, 10, buyerInv.Counts["iron"])
	require.Equal(t, 1000-600+100.0, buyerInv.OmenBalance)
}

func TestPlaceThenCancelReturnsEscrowExactly(t *testing.T) {
	accounts := newFakeAccounts().with(1, 500, nil)
	m := NewMarket(game.NewIDAllocator(1))

	order, _, err := m.Place(accounts, 1, "iron", Buy, 5, 20, 0)
	require.NoError(t, err)
	inv, _ := accounts.Inventory(1)
	require.Equal(t, 400.0, inv.OmenBalance)

	cancelled, err := m.Cancel(accounts, 1, order.ID, "iron")
	require.NoError(t, err)
	require.Equal(t, Cancelled, cancelled.Status)
	require.Equal(t, 500.0, inv.OmenBalance)
}

func TestCancelByNonOwnerFails(t *testing.T) {
	accounts := newFakeAccounts().with(1, 0, map[string]int{"iron": 5}).with(2, 0, nil)
	m := NewMarket(game.NewIDAllocator(1))
	order, _, err := m.Place(accounts, 1, "iron", Sell, 5, 10, 0)
	require.NoError(t, err)

	_, err = m.Cancel(accounts, 2, order.ID, "iron")
	require.Error(t, err)
}

func TestInsufficientEscrowFailsWithoutStateChange(t *testing.T) {
	accounts := newFakeAccounts().with(1, 0, map[string]int{"iron": 3})
	m := NewMarket(game.NewIDAllocator(1))

	_, _, err := m.Place(accounts, 1, "iron", Sell, 5, 10, 0)
	require.Error(t, err)
	inv, _ := accounts.Inventory(1)
	require.Equal(t, 3, inv.Counts["iron"])
}

func TestSnapshotExcludesFilledOrders(t *testing.T) {
	accounts := newFakeAccounts().
		with(1, 0, map[string]int{"iron": 10}).
		with(2, 1000, nil)
	m := NewMarket(game.NewIDAllocator(1))

	_, _, err := m.Place(accounts, 1, "iron", Sell, 10, 50, 0)
	require.NoError(t, err)
	_, _, err = m.Place(accounts, 2, "iron", Buy, 10, 60, 1)
	require.NoError(t, err)

	buys, sells := m.Snapshot("iron")
	require.Empty(t, buys)
	require.Empty(t, sells)
}

func TestPartialFillLeavesResidualInBook(t *testing.T) {
	accounts := newFakeAccounts().
		with(1, 0, map[string]int{"iron": 5}).
		with(2, 1000, nil)
	m := NewMarket(game.NewIDAllocator(1))

	_, _, err := m.Place(accounts, 1, "iron", Sell, 5, 50, 0)
	require.NoError(t, err)
	buyOrder, trades, err := m.Place(accounts, 2, "iron", Buy, 10, 50, 1)
	require.NoError(t, err)
	require.Len(t, trades, 1)
	require.Equal(t, Partial, buyOrder.Status)

	_, sells := m.Snapshot("iron")
	require.Empty(t, sells)
	buys, _ := m.Snapshot("iron")
	require.Len(t, buys, 1)
	require.Equal(t, 5, buys[0].Remaining)
}

func TestCancelByIDSearchesEveryBook(t *testing.T) {
	accounts := newFakeAccounts().with(1, 500, map[string]int{"iron": 5})
	m := NewMarket(game.NewIDAllocator(1))

	_, _, err := m.Place(accounts, 1, "iron", Sell, 5, 10, 0)
	require.NoError(t, err)
	order, _, err := m.Place(accounts, 1, "titanium", Buy, 2, 100, 1)
	require.NoError(t, err)

	cancelled, err := m.CancelByID(accounts, 1, order.ID)
	require.NoError(t, err)
	require.Equal(t, Cancelled, cancelled.Status)
	inv, _ := accounts.Inventory(1)
	require.Equal(t, 500.0, inv.OmenBalance)

	_, err = m.CancelByID(accounts, 1, 999)
	require.Error(t, err)
}

func TestTradeCarriesBothLegStates(t *testing.T) {
	accounts := newFakeAccounts().
		with(1, 0, map[string]int{"iron": 10}).
		with(2, 1000, nil)
	m := NewMarket(game.NewIDAllocator(1))

	_, _, err := m.Place(accounts, 1, "iron", Sell, 10, 50, 0)
	require.NoError(t, err)
	_, trades, err := m.Place(accounts, 2, "iron", Buy, 4, 50, 1)
	require.NoError(t, err)
	require.Len(t, trades, 1)

	trade := trades[0]
	require.Equal(t, Filled, trade.BuyStatus)
	require.Equal(t, Partial, trade.SellStatus)
	require.Equal(t, 4, trade.BuyFilled)
	require.Equal(t, 4, trade.SellFilled)
	require.Equal(t, 4, trade.BuyQuantity)
	require.Equal(t, 10, trade.SellQuantity)
}
