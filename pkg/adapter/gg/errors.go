package gg

import "errors"

// Session-ending conditions. Each one maps to a distinct way a session
// can stop; the serve loop logs them and runs the same cleanup path for
// all of them.
var (
	// ErrServerShutdown ends a session because the server is stopping.
	// The client is told with a Disconnect frame first.
	ErrServerShutdown = errors.New("client disconnected because of server shutdown")

	// ErrClientDisconnected ends a session because the peer closed the
	// connection or sent Disconnect.
	ErrClientDisconnected = errors.New("client disconnected")

	// ErrAuthTimeout ends a session that did not log in within the
	// authentication window.
	ErrAuthTimeout = errors.New("authentication failed to finish in time")

	// ErrInvalidCredentials ends a session after an unknown UIN or a
	// login hash mismatch. The client is told with LoginFailed.
	ErrInvalidCredentials = errors.New("authentication failed: invalid credentials")

	// ErrSessionTimeout ends a session with no activity for the idle
	// window.
	ErrSessionTimeout = errors.New("session timed out")
)
