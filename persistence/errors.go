package persistence

import "errors"

// ErrDatabaseNotReady is returned by SaveIndex, LoadIndex, DeleteIndex, and
// Close when called on a Store that was not created by Open (such as the
// zero value). A Store that has been closed returns ErrClosed instead.
var ErrDatabaseNotReady = errors.New("persistence: database not ready")

// ErrClosed is returned when an operation is attempted after Close.
var ErrClosed = errors.New("persistence: store is closed")
