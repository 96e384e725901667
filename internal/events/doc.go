// Package events provides types and interfaces for an event-driven architecture.
//
// The swipe engine emits events when a decision has been dispatched and its
// outcome is known, and when the feed has been (re)loaded. Handlers such as
// the toast notifier subscribe without the engine knowing about them.
//
// The primary components are:
// - Event: an envelope with a type and a JSON payload
// - EventHandler: Interface for components that can handle events
// - EventEmitter: Interface for components that can emit events
package events
