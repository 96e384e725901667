// Package domain contains the core entities of the discovery feed: the
// candidate profiles shown as cards and the decisions a viewer makes about
// them. It is independent of any transport, storage or rendering concern.
package domain
