// Package api exposes a feed session over HTTP for a thin renderer: it reads
// the visible card window and animation state, forwards pointer and button
// input to the decision engine, and drains toast notifications. It translates
// HTTP concerns to engine operations and never leaks internal errors.
package api
