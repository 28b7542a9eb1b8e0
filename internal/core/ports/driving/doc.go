// Package driving defines the interfaces external actors use to drive the
// core: the CLI, the TUI, and the MCP server all depend on these and are
// served by implementations in core/services.
package driving
