// Package episode persists simulation episodes: which agents took part
// and the ordered stream of history entries and published actions.
//
// A [Store] is backed by BadgerDB. Records are msgpack-encoded and keyed
// so that a lexicographic scan replays an episode in append order:
//
//	ep:{id}:meta           → Meta
//	ep:{id}:rec:{seq}      → Record (seq is a zero-padded counter)
package episode
