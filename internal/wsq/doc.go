// Package wsq forwards a small subset of the SQLite C API to Go.
//
// The package binds against wrapper.h, a header that declares the SQLite
// entry points under renamed functions and opaque handle types, so cgo never
// has to parse sqlite3.h. Every exported function calls exactly one wrapper
// function and returns whatever the engine returned: there are no retries,
// no caching and no state kept on the Go side.
//
// Handles are owned by the caller. Open and Close, Prepare and Finalize must
// be paired explicitly, and a handle must not be used after its release call.
//
//   - https://www.sqlite.org/cintro.html
//   - https://www.sqlite.org/c3ref/intro.html
package wsq
