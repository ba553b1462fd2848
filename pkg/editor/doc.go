// Package editor holds the live editing session: the project, its history,
// the open graphic and the playhead.
//
// Every collaborator (UI, HTTP, audio callback) reaches the session through
// one Shared value. Holders of its lock must not block on I/O; the audio
// path takes it once per sample block, reads the voices, advances the
// playhead and releases.
package editor
