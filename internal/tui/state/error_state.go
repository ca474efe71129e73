package state

// ErrorState tracks the blocking error screen shown when the board cannot
// be fetched at all.
type ErrorState struct {
	message  string
	retrying bool
}

// NewErrorState creates a new ErrorState with no error.
func NewErrorState() *ErrorState {
	return &ErrorState{}
}

// Set shows the error screen with msg.
func (s *ErrorState) Set(msg string) {
	s.message = msg
	s.retrying = false
}

// Clear hides the error screen.
func (s *ErrorState) Clear() {
	s.message = ""
	s.retrying = false
}

// HasError returns true if the error screen is shown.
func (s *ErrorState) HasError() bool {
	return s.message != ""
}

// Get returns the current error message.
func (s *ErrorState) Get() string {
	return s.message
}

// SetRetrying marks a retry fetch as in flight.
func (s *ErrorState) SetRetrying(retrying bool) {
	s.retrying = retrying
}

// Retrying reports whether a retry fetch is in flight.
func (s *ErrorState) Retrying() bool {
	return s.retrying
}
