package server

import (
	"github.com/odyssey-game/server/market"
	"github.com/odyssey-game/server/wire"
)

var marketStatusNames = map[market.Status]string{
	market.Open:      "open",
	market.Partial:   "partial",
	market.Filled:    "filled",
	market.Cancelled: "cancelled",
}

// handleMarketPlaceFrame escrows and places a limit order, streaming
// the resulting order update to the placer and a TRADE frame to both
// parties of every fill. The buyer's TRADE carries fee=0 and the
// seller's the full fee; that asymmetry is part of the wire contract.
func (s *Server) handleMarketPlaceFrame(connID int64, raw []byte) {
	p := s.playerForConn(connID)
	if p == nil {
		return
	}
	var body wire.MarketPlaceBody
	if _, err := wire.DecodeInto(raw, &body); err != nil {
		return
	}
	side := market.Buy
	if body.Side == "sell" {
		side = market.Sell
	}

	order, trades, err := s.market.Place(s, p.ID, body.Item, side, body.Quantity, body.Price, s.nowMS())
	if err != nil {
		s.sendToConn(connID, wire.TypeMarketOrderUpdate, wire.MarketOrderUpdateBody{Error: err.Error()})
		return
	}
	s.sendToConn(connID, wire.TypeMarketOrderUpdate, wire.MarketOrderUpdateBody{
		OrderID: order.ID, Status: marketStatusNames[order.Status],
		Filled: order.Filled, Quantity: order.Quantity,
	})

	for _, t := range trades {
		total := float64(t.Quantity) * t.Price
		s.sendTo(t.BuyerID, wire.TypeMarketTrade, wire.MarketTradeBody{
			Item: t.Item, Quantity: t.Quantity, Price: t.Price, Fee: 0, Total: total,
		})
		s.sendTo(t.SellerID, wire.TypeMarketTrade, wire.MarketTradeBody{
			Item: t.Item, Quantity: t.Quantity, Price: t.Price, Fee: t.Fee, Total: total,
		})

		// Counterparty order update; the placer already got one above.
		if order.Side == market.Buy {
			s.sendTo(t.SellerID, wire.TypeMarketOrderUpdate, wire.MarketOrderUpdateBody{
				OrderID: t.SellOrderID, Status: marketStatusNames[t.SellStatus],
				Filled: t.SellFilled, Quantity: t.SellQuantity,
			})
		} else {
			s.sendTo(t.BuyerID, wire.TypeMarketOrderUpdate, wire.MarketOrderUpdateBody{
				OrderID: t.BuyOrderID, Status: marketStatusNames[t.BuyStatus],
				Filled: t.BuyFilled, Quantity: t.BuyQuantity,
			})
		}
	}
}

func (s *Server) handleMarketCancelFrame(connID int64, raw []byte) {
	p := s.playerForConn(connID)
	if p == nil {
		return
	}
	var body wire.MarketCancelBody
	if _, err := wire.DecodeInto(raw, &body); err != nil {
		return
	}
	order, err := s.market.CancelByID(s, p.ID, body.OrderID)
	if err != nil {
		s.sendToConn(connID, wire.TypeMarketOrderUpdate, wire.MarketOrderUpdateBody{
			OrderID: body.OrderID, Error: err.Error(),
		})
		return
	}
	s.sendToConn(connID, wire.TypeMarketOrderUpdate, wire.MarketOrderUpdateBody{
		OrderID: order.ID, Status: marketStatusNames[order.Status],
		Filled: order.Filled, Quantity: order.Quantity,
	})
}

func (s *Server) handleMarketReqBookFrame(connID int64, raw []byte) {
	var body wire.MarketReqBookBody
	if _, err := wire.DecodeInto(raw, &body); err != nil {
		return
	}
	buys, sells := s.market.Snapshot(body.Item)
	out := wire.MarketBookBody{Item: body.Item}
	for _, l := range buys {
		out.Buys = append(out.Buys, wire.MarketBookLevel{Price: l.Price, Remaining: l.Remaining, Orders: l.Orders})
	}
	for _, l := range sells {
		out.Sells = append(out.Sells, wire.MarketBookLevel{Price: l.Price, Remaining: l.Remaining, Orders: l.Orders})
	}
	s.sendToConn(connID, wire.TypeMarketBook, out)
}
