package signal

import "github.com/dkeye/watchparty/internal/protocol"

func (ctl *SignalWSController) handlePing(
	conn *WsSignalConn,
) {
	ctl.sendJSON(conn, protocol.TypePong, nil)
}
