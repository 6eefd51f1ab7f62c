// Package bus provides an in-process publish/subscribe message bus.
//
// Topics are slash-separated paths ("env/ava/output"). Subscription
// patterns may use two wildcards:
//   - `+` matches exactly one topic level
//   - `#` matches any number of remaining levels (must be last)
//
// Every subscriber owns a buffered channel. Publish delivers a message
// to every subscription whose pattern matches the topic; delivery order
// per subscriber matches publish order. Publish blocks when a
// subscriber's buffer is full, so a stalled consumer applies
// backpressure instead of losing messages.
package bus
