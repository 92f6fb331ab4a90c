package core

// memberSession implements MemberSession by pairing ids + transport.
type memberSession struct {
	sid    SessionID
	token  string
	signal SignalConnection
}

func NewMemberSession(sid SessionID, clientToken string, signal SignalConnection) MemberSession {
	return &memberSession{sid: sid, token: clientToken, signal: signal}
}

func (m *memberSession) ID() SessionID            { return m.sid }
func (m *memberSession) ClientToken() string      { return m.token }
func (m *memberSession) Signal() SignalConnection { return m.signal }
