// Package config handles configuration loading, parsing, and validation
// from various sources (environment variables, files). It provides type-safe
// access to the settings of the feed server, the backend client and the
// swipe engine while keeping configuration details out of business logic.
package config
