// Package events lets views subscribe to state transitions.
//
// Every state owner in the service layer emits a StateChangedEvent after it
// commits a transition and releases its lock. Subscribers re-read whatever
// they display; the event itself only names the partition and the action.
//
// The primary components are:
// - StateChangedEvent: names the partition that changed and why
// - EventHandler: interface for components that can handle events
// - EventEmitter: interface for components that can emit events
package events
