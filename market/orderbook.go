package market

import (
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/odyssey-game/server/game"
)

// Accounts is the escrow surface the order book needs from whatever
// owns player inventories. The server package's loop satisfies this by
// looking player ids up in its zone maps.
type Accounts interface {
	Inventory(playerID int64) (*game.Inventory, bool)
}

// Book is one item type's two sorted sequences of resting orders.
type Book struct {
	Item  string
	Buys  []*Order // descending price, ascending created_at within a price
	Sells []*Order // ascending price, ascending created_at within a price
}

// Market owns one Book per item type and allocates order ids.
type Market struct {
	ids   *game.IDAllocator
	books map[string]*Book
	// SettlementLog records a correlation id per executed trade, the
	// way a persistence layer would tag a settlement batch for audit.
	SettlementLog []string
}

// NewMarket returns an empty market using ids for order identity.
func NewMarket(ids *game.IDAllocator) *Market {
	return &Market{ids: ids, books: make(map[string]*Book)}
}

func (m *Market) book(item string) *Book {
	b, ok := m.books[item]
	if !ok {
		b = &Book{Item: item}
		m.books[item] = b
	}
	return b
}

func buyLess(a, b *Order) bool {
	if a.Price != b.Price {
		return a.Price > b.Price // descending
	}
	return a.CreatedAt < b.CreatedAt
}

func sellLess(a, b *Order) bool {
	if a.Price != b.Price {
		return a.Price < b.Price // ascending
	}
	return a.CreatedAt < b.CreatedAt
}

func insertSorted(orders []*Order, o *Order, less func(a, b *Order) bool) []*Order {
	i := sort.Search(len(orders), func(i int) bool { return less(o, orders[i]) })
	orders = append(orders, nil)
	copy(orders[i+1:], orders[i:])
	orders[i] = o
	return orders
}

func removeAt(orders []*Order, i int) []*Order {
	return append(orders[:i], orders[i+1:]...)
}

// Place escrows the order's collateral, matches it against the
// opposing side while prices cross, and rests any unfilled remainder
// in the book. Returns the placed order (reflecting fills applied to
// it) and the trades executed.
func (m *Market) Place(accounts Accounts, playerID int64, item string, side Side, quantity int, price float64, nowMS int64) (*Order, []Trade, error) {
	if quantity <= 0 {
		return nil, nil, errorf("invalid quantity %d", quantity)
	}
	if price <= 0 {
		return nil, nil, errorf("invalid price %f", price)
	}
	inv, ok := accounts.Inventory(playerID)
	if !ok {
		return nil, nil, errorf("unknown player %d", playerID)
	}

	if side == Sell {
		if !inv.Has(item, quantity) {
			return nil, nil, errorf("insufficient %s: have %d, need %d", item, inv.Counts[item], quantity)
		}
		if err := inv.Remove(item, quantity); err != nil {
			return nil, nil, errorf("escrow: %w", err)
		}
	} else {
		cost := float64(quantity) * price
		if err := inv.DebitOmen(cost); err != nil {
			return nil, nil, errorf("escrow: %w", err)
		}
	}

	order := &Order{
		ID:        m.ids.Next(),
		PlayerID:  playerID,
		Item:      item,
		Side:      side,
		Quantity:  quantity,
		Price:     price,
		Status:    Open,
		CreatedAt: nowMS,
	}

	book := m.book(item)
	trades := m.match(accounts, book, order)

	if order.Remaining() > 0 {
		if side == Buy {
			book.Buys = insertSorted(book.Buys, order, buyLess)
		} else {
			book.Sells = insertSorted(book.Sells, order, sellLess)
		}
	}
	return order, trades, nil
}

// match fills incoming against the opposing sorted side while prices
// cross, settling escrow on both legs as it goes.
func (m *Market) match(accounts Accounts, book *Book, incoming *Order) []Trade {
	var resting *[]*Order
	var crosses func(incomingPrice, restingPrice float64) bool
	if incoming.Side == Buy {
		resting = &book.Sells
		crosses = func(in, rest float64) bool { return in >= rest }
	} else {
		resting = &book.Buys
		crosses = func(in, rest float64) bool { return in <= rest }
	}

	var trades []Trade
	i := 0
	for incoming.Remaining() > 0 && i < len(*resting) {
		other := (*resting)[i]
		if !crosses(incoming.Price, other.Price) {
			break
		}

		fill := incoming.Remaining()
		if other.Remaining() < fill {
			fill = other.Remaining()
		}
		tradePrice := other.Price
		total := float64(fill) * tradePrice
		fee := math.Floor(total*FeeRate*100) / 100

		var buyOrder, sellOrder *Order
		if incoming.Side == Buy {
			buyOrder, sellOrder = incoming, other
		} else {
			buyOrder, sellOrder = other, incoming
		}

		trade := Trade{
			BuyOrderID:  buyOrder.ID,
			SellOrderID: sellOrder.ID,
			BuyerID:     buyOrder.PlayerID,
			SellerID:    sellOrder.PlayerID,
			Item:        book.Item,
			Quantity:    fill,
			Price:       tradePrice,
			Fee:         fee,
			SellerNet:   total - fee,
		}

		if buyerInv, ok := accounts.Inventory(buyOrder.PlayerID); ok {
			buyerInv.AddUpTo(book.Item, fill)
			if buyOrder.Price > tradePrice {
				refund := float64(fill) * (buyOrder.Price - tradePrice)
				trade.BuyerRefund = refund
				buyerInv.CreditOmen(refund)
			}
		}
		if sellerInv, ok := accounts.Inventory(sellOrder.PlayerID); ok {
			sellerInv.CreditOmen(total - fee)
		}

		incoming.Filled += fill
		incoming.recomputeStatus()
		other.Filled += fill
		other.recomputeStatus()
		trade.BuyStatus = buyOrder.Status
		trade.SellStatus = sellOrder.Status
		trade.BuyFilled = buyOrder.Filled
		trade.SellFilled = sellOrder.Filled
		trade.BuyQuantity = buyOrder.Quantity
		trade.SellQuantity = sellOrder.Quantity

		trades = append(trades, trade)
		m.SettlementLog = append(m.SettlementLog, uuid.NewString())

		if other.Remaining() == 0 {
			*resting = removeAt(*resting, i)
			continue // don't advance i: the next order shifted into position i
		}
		i++
	}
	return trades
}

// Cancel removes orderID from its book, refunding escrow to its owner.
// Only the placing player may cancel, and only while the order is open
// or partially filled.
func (m *Market) Cancel(accounts Accounts, playerID, orderID int64, item string) (*Order, error) {
	book, ok := m.books[item]
	if !ok {
		return nil, errorf("unknown order %d", orderID)
	}
	for _, side := range []*[]*Order{&book.Buys, &book.Sells} {
		for i, o := range *side {
			if o.ID != orderID {
				continue
			}
			if o.PlayerID != playerID {
				return nil, errorf("order %d not owned by player %d", orderID, playerID)
			}
			if o.Status != Open && o.Status != Partial {
				return nil, errorf("order %d not cancellable (status %v)", orderID, o.Status)
			}
			o.Status = Cancelled
			*side = removeAt(*side, i)
			if inv, ok := accounts.Inventory(playerID); ok {
				remaining := o.Remaining()
				if o.Side == Sell {
					inv.AddUpTo(item, remaining)
				} else {
					inv.CreditOmen(float64(remaining) * o.Price)
				}
			}
			return o, nil
		}
	}
	return nil, errorf("unknown order %d", orderID)
}

// CancelByID is Cancel for callers that don't know which item's book
// holds the order, searching every book.
func (m *Market) CancelByID(accounts Accounts, playerID, orderID int64) (*Order, error) {
	for item, book := range m.books {
		for _, side := range [][]*Order{book.Buys, book.Sells} {
			for _, o := range side {
				if o.ID == orderID {
					return m.Cancel(accounts, playerID, orderID, item)
				}
			}
		}
	}
	return nil, errorf("unknown order %d", orderID)
}

// Level is one aggregated price-level row of a book snapshot.
type Level struct {
	Price     float64
	Remaining int
	Orders    int
}

func aggregate(orders []*Order) []Level {
	var levels []Level
	for _, o := range orders {
		if len(levels) > 0 && levels[len(levels)-1].Price == o.Price {
			levels[len(levels)-1].Remaining += o.Remaining()
			levels[len(levels)-1].Orders++
			continue
		}
		levels = append(levels, Level{Price: o.Price, Remaining: o.Remaining(), Orders: 1})
	}
	return levels
}

// Snapshot returns the aggregated, price-sorted view of one item's
// book: buys descending, sells ascending. Filled/cancelled orders are
// never present since they're removed from the book as they resolve.
func (m *Market) Snapshot(item string) (buys, sells []Level) {
	book, ok := m.books[item]
	if !ok {
		return nil, nil
	}
	return aggregate(book.Buys), aggregate(book.Sells)
}

// Order looks up a resting order by id across both sides of item's book.
func (m *Market) Order(item string, orderID int64) (*Order, bool) {
	book, ok := m.books[item]
	if !ok {
		return nil, false
	}
	for _, side := range [][]*Order{book.Buys, book.Sells} {
		for _, o := range side {
			if o.ID == orderID {
				return o, true
			}
		}
	}
	return nil, false
}
