package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func noArgs() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}

func pathArg() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"path": map[string]interface{}{
				"type":        "string",
				"description": "Absolute path to the image file",
			},
		},
		"required": []string{"path"},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Session Lifecycle
		{
			Name:        "session_load",
			Description: "Load a scanned negative from disk into the edit session. Discards any previous inversion and correction and cancels pending work.",
			InputSchema: pathArg(),
		},
		{
			Name:        "session_invert",
			Description: "Invert the loaded image into its positive. Only valid right after session_load. Sets the comparison wipe to 50%.",
			InputSchema: noArgs(),
		},
		{
			Name:        "session_set_correction",
			Description: "Apply the orange-mask correction to the inverted image. Adds round(intensity*0.2) to green and round(intensity*1.2) to blue, saturating at 255. Always computed from the uncorrected inversion.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"intensity": map[string]interface{}{
						"type":        "integer",
						"description": "Correction intensity from 0 (none) to 100",
						"minimum":     0,
						"maximum":     100,
					},
				},
				"required": []string{"intensity"},
			},
		},
		{
			Name:        "session_reset",
			Description: "Remove the correction and return to the plain inversion.",
			InputSchema: noArgs(),
		},
		{
			Name:        "session_status",
			Description: "Report the session state, correction intensity, comparison position, image dimensions and status message.",
			InputSchema: noArgs(),
		},

		// Comparison and Output
		{
			Name:        "session_compare",
			Description: "Move the before/after comparison wipe. Returns the CSS clip polygon for the rendered layer and optionally a PNG preview with the rendered image over the left part and the original on the right.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"percent": map[string]interface{}{
						"type":        "number",
						"description": "Wipe position as a percentage of the image width (0-100)",
						"minimum":     0,
						"maximum":     100,
					},
					"render": map[string]interface{}{
						"type":        "boolean",
						"description": "Also return a base64 PNG preview of the wipe. Default false",
						"default":     false,
					},
				},
				"required": []string{"percent"},
			},
		},
		{
			Name:        "session_export",
			Description: "Encode the rendered image. jpg is flattened over black; png and webp are lossless. Returns base64 data, or writes the file when output_path is given.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"format": map[string]interface{}{
						"type":        "string",
						"description": "Output format",
						"enum":        []string{"png", "jpg", "jpeg", "webp"},
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional file path to write instead of returning base64 data",
					},
				},
				"required": []string{"format"},
			},
		},
		{
			Name:        "session_sample_color",
			Description: "Get the color at a pixel of the original or rendered image, as RGB, hex and HSL.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based)",
					},
					"source": map[string]interface{}{
						"type":        "string",
						"description": "Which image to sample. Default rendered",
						"enum":        []string{"rendered", "original"},
						"default":     "rendered",
					},
				},
				"required": []string{"x", "y"},
			},
		},

		// Basic Image Information
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: pathArg(),
		},
		{
			Name:        "image_info",
			Description: "Describe an image file: dimensions, format, color depth, alpha and file size.",
			InputSchema: pathArg(),
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
