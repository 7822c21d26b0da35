package server

import (
	"github.com/odyssey-game/server/game"
	"github.com/odyssey-game/server/wire"
)

// dispatch routes one raw inbound frame. The [0xFF] disconnect sentinel
// is handled before any wire.Decode, since it deliberately isn't a real
// MessagePack-bodied frame.
func (s *Server) dispatch(connID int64, raw []byte) {
	if len(raw) == 0 {
		return
	}
	if wire.Type(raw[0]) == wire.Disconnected {
		s.handleDisconnect(connID)
		return
	}

	typ := wire.Type(raw[0])
	switch typ {
	case wire.TypeLogin:
		s.handleLoginFrame(connID, raw)
	case wire.TypeRegister:
		s.handleRegisterFrame(connID, raw)
	case wire.TypeHello:
		s.handleHelloFrame(connID, raw)
	case wire.TypeInput:
		s.handleInputFrame(connID, raw)
	case wire.TypeStartMining:
		s.handleStartMiningFrame(connID, raw)
	case wire.TypeStopMining:
		s.handleStopMiningFrame(connID)
	case wire.TypeZoneTransfer:
		s.handleZoneTransferFrame(connID, raw)
	case wire.TypeFire:
		s.handleFireFrame(connID, raw)
	case wire.TypeRespawnRequest:
		s.handleRespawnRequestFrame(connID)
	case wire.TypeEquip:
		s.handleEquipFrame(connID, raw)
	case wire.TypeUnequip:
		s.handleUnequipFrame(connID, raw)
	case wire.TypeCraftStart:
		s.handleCraftStartFrame(connID, raw)
	case wire.TypeMarketPlace:
		s.handleMarketPlaceFrame(connID, raw)
	case wire.TypeMarketCancel:
		s.handleMarketCancelFrame(connID, raw)
	case wire.TypeMarketReqBook:
		s.handleMarketReqBookFrame(connID, raw)
	case wire.TypeQuestAccept:
		s.handleQuestAcceptFrame(connID, raw)
	case wire.TypeQuestAbandon:
		s.handleQuestAbandonFrame(connID, raw)
	case wire.TypeQuestList:
		s.handleQuestListFrame(connID)
	case wire.TypeQuestAvailable:
		s.handleQuestAvailableFrame(connID)
	case wire.TypeDockRequest:
		s.handleDockRequestFrame(connID, raw)
	case wire.TypeUndockRequest:
		s.handleUndockRequestFrame(connID)
	case wire.TypePing:
		s.sendToConn(connID, wire.TypePong, nil)
	default:
		s.log.Warnw("unknown frame type", "conn", connID, "type", typ)
	}
}

// playerForConn resolves the player currently attached to a
// connection, or nil if the connection hasn't joined the world yet.
func (s *Server) playerForConn(connID int64) *game.Player {
	playerID, ok := s.connPlayer[connID]
	if !ok {
		return nil
	}
	return s.findPlayer(playerID)
}
