// Langfuse trace query service serves session-scoped trace queries over HTTP.
//
// Incoming queries pass through an advisory engine that rewrites unsafe
// queries into bounded ones, warns about expensive access patterns, and
// estimates query performance before execution.
//
// Usage:
//
//	# Start the server with default configuration
//	langfuse run
//
//	# Start with a custom configuration file
//	langfuse run --config /path/to/config.yaml
//
//	# Validate a configuration file without starting the server
//	langfuse validate --config /path/to/config.yaml
//
//	# Show version information
//	langfuse version
package main

func main() {
	Execute()
}
