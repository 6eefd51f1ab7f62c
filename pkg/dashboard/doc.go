// Package dashboard serves episode data over HTTP: stored episode
// listings and transcripts as JSON, and a live WebSocket stream
// bridging bus traffic to connected clients.
package dashboard
