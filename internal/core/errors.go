package core

// Error codes for domain errors. Every code is caller-correctable; none is
// fatal to the process.
const (
	ErrCodeAlreadyExists     = "room_already_exists"
	ErrCodeRoomNotFound      = "room_not_found"
	ErrCodeRoomFull          = "room_full"
	ErrCodeNotYourTurn       = "not_your_turn"
	ErrCodeRoundCompleted    = "round_already_completed"
	ErrCodeRoundNotCompleted = "round_not_completed"
	ErrCodeInsufficientChips = "insufficient_chips"
	ErrCodeInvalidAction     = "invalid_action"
)

// CoreError wraps a code and human-readable message.
type CoreError struct {
	Code    string
	Message string
}

func (e *CoreError) Error() string {
	return e.Message
}

func coreError(code, msg string) *CoreError {
	return &CoreError{Code: code, Message: msg}
}
