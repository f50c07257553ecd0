// Package browser abstracts the standalone-browser primitives the core
// needs when no privileged bridge is available: window handles, tab
// opening, top-level navigation and the blocking dialogs.
package browser

import "errors"

// ErrBlocked is returned when the environment refuses to open a window,
// typically because the call left the originating user gesture.
var ErrBlocked = errors.New("browser: window open blocked")

// Window is a handle to a browser window, owned by whoever opened it.
type Window interface {
	// Navigate points the window at url. Fails when the window is gone
	// or cross-origin rules forbid it.
	Navigate(url string) error
	Focus()
	Close()
	Closed() bool
}

// Env is the ambient browser environment.
type Env interface {
	// OpenBlank synchronously opens an empty window. It must be called
	// inside the originating user gesture call stack, or popup blockers
	// will refuse it and ErrBlocked is returned.
	OpenBlank() (Window, error)
	// OpenTab opens url in a new tab.
	OpenTab(url string) (Window, error)
	// Navigate replaces the current page.
	Navigate(url string)
	// Alert shows a blocking message dialog.
	Alert(message string)
	// Confirm shows a blocking ok/cancel dialog.
	Confirm(message string) bool
}
