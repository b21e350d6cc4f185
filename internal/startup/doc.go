// Package startup loads and validates environment configuration for the
// preview service and carries build-time version information.
package startup
