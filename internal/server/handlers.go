package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"os"

	"github.com/ironsheep/polarity-mcp/internal/imaging"
	"github.com/ironsheep/polarity-mcp/internal/session"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "session_load", "session_invert").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// ToolError is the data attached to a failed tool call.
type ToolError struct {
	// Status is the user-facing message for the failure category.
	Status string `json:"status"`

	// State is the session state after the failure.
	State string `json:"state"`

	// Error is the underlying Go error string.
	Error string `json:"error"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000
// whose data is a ToolError.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		s.log.WithError(err).WithField("tool", params.Name).Warn("Tool execution failed")
		return s.errorResponse(req.ID, -32000, "Tool execution failed", ToolError{
			Status: session.StatusMessage(err),
			State:  s.session.State().String(),
			Error:  err.Error(),
		})
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// errUnknownTool reports a tools/call naming no known tool.
var errUnknownTool = errors.New("unknown tool")

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Session Lifecycle
	case "session_load":
		return s.handleSessionLoad(ctx, args)
	case "session_invert":
		return s.handleSessionInvert(ctx)
	case "session_set_correction":
		return s.handleSessionSetCorrection(ctx, args)
	case "session_reset":
		return s.handleSessionReset(ctx)
	case "session_status":
		return s.session.Snapshot(), nil

	// Comparison and Output
	case "session_compare":
		return s.handleSessionCompare(args)
	case "session_export":
		return s.handleSessionExport(args)
	case "session_sample_color":
		return s.handleSessionSampleColor(args)

	// Basic Image Information
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "image_info":
		return s.handleImageInfo(args)

	default:
		return nil, fmt.Errorf("%w: %s", errUnknownTool, name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message string, data interface{}) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Session Lifecycle Handlers ===

type pathArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleSessionLoad(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}

	// Always read the file afresh; it may have changed since it was cached
	s.cache.Evict(a.Path)
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	if err := s.session.Load(ctx, img, a.Path); err != nil {
		return nil, err
	}
	return s.session.Snapshot(), nil
}

func (s *Server) handleSessionInvert(ctx context.Context) (interface{}, error) {
	if err := s.session.Invert(ctx); err != nil {
		return nil, err
	}
	return s.session.Snapshot(), nil
}

type setCorrectionArgs struct {
	Intensity *int `json:"intensity"`
}

func (s *Server) handleSessionSetCorrection(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a setCorrectionArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Intensity == nil {
		return nil, fmt.Errorf("intensity is required")
	}
	if err := s.session.SetCorrection(ctx, *a.Intensity); err != nil {
		return nil, err
	}
	return s.session.Snapshot(), nil
}

func (s *Server) handleSessionReset(ctx context.Context) (interface{}, error) {
	if err := s.session.Reset(ctx); err != nil {
		return nil, err
	}
	return s.session.Snapshot(), nil
}

// === Comparison and Output Handlers ===

type compareArgs struct {
	Percent *float64 `json:"percent"`
	Render  bool     `json:"render"`
}

// CompareResult describes the comparison wipe.
type CompareResult struct {
	Percent float64 `json:"percent"`

	// Clip is the CSS clip-path polygon applied to the rendered layer.
	Clip string `json:"clip"`

	// Column is the first pixel column showing the original.
	Column int `json:"column"`

	// Preview is a PNG of the composed wipe, present only when requested.
	Preview *imaging.ExportResult `json:"preview,omitempty"`
}

func (s *Server) handleSessionCompare(args json.RawMessage) (interface{}, error) {
	var a compareArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Percent == nil {
		return nil, fmt.Errorf("percent is required")
	}
	if err := s.session.SetCompare(*a.Percent); err != nil {
		return nil, err
	}

	clip, err := imaging.WipeClip(*a.Percent)
	if err != nil {
		return nil, err
	}
	rendered, err := s.session.Rendered()
	if err != nil {
		return nil, err
	}
	result := &CompareResult{
		Percent: *a.Percent,
		Clip:    clip,
		Column:  imaging.WipeColumn(rendered.Width(), *a.Percent),
	}

	if a.Render {
		original, err := s.session.Original()
		if err != nil {
			return nil, err
		}
		wipe, err := imaging.Wipe(original, rendered, *a.Percent)
		if err != nil {
			return nil, err
		}
		preview, err := imaging.Export(wipe, imaging.FormatPNG, s.cfg.JPEGQuality)
		if err != nil {
			return nil, err
		}
		result.Preview = preview
	}
	return result, nil
}

type exportArgs struct {
	Format     string `json:"format"`
	OutputPath string `json:"output_path"`
}

// ExportFileResult describes an export written to disk.
type ExportFileResult struct {
	Path      string `json:"path"`
	Format    string `json:"format"`
	MimeType  string `json:"mime_type"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	SizeBytes int64  `json:"size_bytes"`
}

func (s *Server) handleSessionExport(args json.RawMessage) (interface{}, error) {
	var a exportArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	rendered, err := s.session.Rendered()
	if err != nil {
		return nil, err
	}

	if a.OutputPath == "" {
		return imaging.Export(rendered, a.Format, s.cfg.JPEGQuality)
	}

	format, err := imaging.NormalizeFormat(a.Format)
	if err != nil {
		return nil, err
	}
	f, err := os.Create(a.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	if err := imaging.EncodeTo(f, rendered, format, s.cfg.JPEGQuality); err != nil {
		f.Close()
		os.Remove(a.OutputPath)
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close output file: %w", err)
	}
	stat, err := os.Stat(a.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat output file: %w", err)
	}

	s.log.WithField("path", a.OutputPath).Info("Export written")
	return &ExportFileResult{
		Path:      a.OutputPath,
		Format:    format,
		MimeType:  imaging.MimeType(format),
		Width:     rendered.Width(),
		Height:    rendered.Height(),
		SizeBytes: stat.Size(),
	}, nil
}

type sampleColorArgs struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Source string `json:"source"`
}

func (s *Server) handleSessionSampleColor(args json.RawMessage) (interface{}, error) {
	var a sampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	var (
		img image.Image
		err error
	)
	switch a.Source {
	case "", "rendered":
		img, err = s.session.Rendered()
	case "original":
		img, err = s.session.Original()
	default:
		return nil, fmt.Errorf("unknown source %q: expected rendered or original", a.Source)
	}
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y)
}

// === Basic Image Information Handlers ===

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

func (s *Server) handleImageInfo(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}
