// Package giterror classifies errors returned by the HTTP layer when talking
// to the GitHub API. Status codes are mapped to sentinel errors directly by
// the client; this package covers the errors that arrive without a status
// code (failed dials, DNS lookups, timeouts, TLS handshakes) and decides
// which of them are worth retrying.
//
// Classification prefers typed inspection (net.Error, *url.Error in the
// chain) and falls back to message matching, because several failure modes
// in the net stack still only identify themselves by text.
package giterror
