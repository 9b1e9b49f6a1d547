package protocol

type MessageType uint8

const (
	MessageTypePut   MessageType = 1
	MessageTypeGet   MessageType = 2
	MessageTypeValue MessageType = 3
	MessageTypeAck   MessageType = 4
	MessageTypeError MessageType = 5
)

func (t MessageType) String() string {
	switch t {
	case MessageTypePut:
		return "PUT"
	case MessageTypeGet:
		return "GET"
	case MessageTypeValue:
		return "VALUE"
	case MessageTypeAck:
		return "ACK"
	case MessageTypeError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}
