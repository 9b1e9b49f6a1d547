package protocol

// ErrorCode classifies an ERROR frame.
type ErrorCode uint8

const (
	ErrorCodeInternal    ErrorCode = 1
	ErrorCodeNotFound    ErrorCode = 2
	ErrorCodeInvalid     ErrorCode = 3
	ErrorCodeUnsupported ErrorCode = 4
)

// ErrorFrame builds an ERROR frame: 1 byte code followed by a UTF-8 message.
func ErrorFrame(code ErrorCode, msg string) Frame {
	payload := make([]byte, 0, 1+len(msg))
	payload = append(payload, byte(code))
	payload = append(payload, msg...)
	return Frame{Type: MessageTypeError, Payload: payload}
}

func DecodeError(payload []byte) (ErrorCode, string) {
	if len(payload) == 0 {
		return ErrorCodeInternal, ""
	}
	return ErrorCode(payload[0]), string(payload[1:])
}
