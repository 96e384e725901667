// Package notify turns decision events into user-facing toast notifications
// and holds them in a bounded inbox until the renderer collects them.
package notify
