// Package auth supplies authenticated HTTP reads for spreadsheet exports.
//
// A Client wraps an oauth2.TokenSource. Tokens are cached until the remote side
// rejects one with 401, at which point the cached token is dropped, a fresh one is
// requested and the read is retried once. Without a configured token the client
// performs anonymous reads, which is enough for publicly shared sheets.
package auth
