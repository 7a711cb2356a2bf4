// Package ws exposes a study session over a websocket. The browser owns
// the audio capabilities (speech synthesis, speech recognition, the chime),
// so the server drives the session flow and delegates every audio action to
// the client through typed JSON messages; the client reports results back
// and the server feeds them into the session. Session snapshots are pushed
// to the client after every observable transition.
package ws
