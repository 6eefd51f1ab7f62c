// Package node runs agents on a message bus.
//
// A [Node] owns one agent: a single goroutine consumes the node's bus
// subscriptions strictly in publish order, translates messages into
// agent events, and publishes the resulting actions. One goroutine per
// agent means at most one decision (and so at most one generation call)
// is in flight per agent.
//
// A [Clock] drives the simulation by publishing ticks on a fixed
// period.
package node
