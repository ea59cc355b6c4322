// Package server implements the MCP (Model Context Protocol) server for
// negative film inversion.
//
// This package provides a JSON-RPC 2.0 server that drives a single edit
// session: load a scanned negative, invert it, dial in the orange-mask
// correction, compare against the original and export the positive.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Session Lifecycle:
//   - session_load: Load a negative from disk
//   - session_invert: Produce the inverted baseline
//   - session_set_correction: Apply correction intensity 0-100
//   - session_reset: Return to the uncorrected baseline
//   - session_status: Report state and status message
//
// Comparison and Output:
//   - session_compare: Move the before/after wipe, optionally rendering it
//   - session_export: Encode the result as png, jpg or webp
//   - session_sample_color: Get a pixel of the original or rendered image
//
// Basic Image Information:
//   - image_dimensions: Get width and height
//   - image_info: Get format, depth, alpha and file size
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with
// code -32000, message "Tool execution failed" and a ToolError in data
// carrying the user-facing status message, the session state after the
// failure and the Go error string. A failed tool never changes the session.
package server
