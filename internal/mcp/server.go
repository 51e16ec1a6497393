package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/agentarena/agentarena/internal/logging"
)

// Server is a tools-only MCP server
type Server struct {
	info        ServerInfo
	initialized bool

	tools map[string]registeredTool
	mu    sync.RWMutex
}

type registeredTool struct {
	definition Tool
	handler    ToolHandler
}

// Config for creating an MCP server
type Config struct {
	Name    string
	Version string
}

// New creates a new MCP server
func New(cfg Config) *Server {
	if cfg.Name == "" {
		cfg.Name = "agentarena-mcp"
	}
	if cfg.Version == "" {
		cfg.Version = "1.0.0"
	}

	return &Server{
		info: ServerInfo{
			Name:    cfg.Name,
			Version: cfg.Version,
		},
		tools: make(map[string]registeredTool),
	}
}

// RegisterTool adds a tool to the server
func (s *Server) RegisterTool(tool Tool, handler ToolHandler) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tool.Name == "" {
		return fmt.Errorf("tool name is required")
	}
	if handler == nil {
		return fmt.Errorf("tool handler is required")
	}
	if _, exists := s.tools[tool.Name]; exists {
		return fmt.Errorf("tool %s already registered", tool.Name)
	}

	s.tools[tool.Name] = registeredTool{definition: tool, handler: handler}
	return nil
}

// ListTools returns all registered tools in name order
func (s *Server) ListTools() []Tool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tools := make([]Tool, 0, len(s.tools))
	for _, rt := range s.tools {
		tools = append(tools, rt.definition)
	}
	sort.Slice(tools, func(i, j int) bool { return tools[i].Name < tools[j].Name })
	return tools
}

// ServeStdio runs the JSON-RPC loop over line-delimited messages until the
// input closes or the context is cancelled. This is how MCP clients spawn
// the adapter as a subprocess.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	enc := json.NewEncoder(out)

	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		resp := s.HandleMessage(ctx, line)
		if resp == nil {
			// Notification; nothing goes back.
			continue
		}
		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("failed to write response: %w", err)
		}
	}

	return scanner.Err()
}

// HandleMessage processes one raw JSON-RPC message. Returns nil for
// notifications, which expect no response.
func (s *Server) HandleMessage(ctx context.Context, raw []byte) *Response {
	var req Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return errorResponse(nil, ErrCodeParse, "Invalid JSON")
	}

	if req.JSONRPC != "2.0" {
		return errorResponse(req.ID, ErrCodeInvalidRequest, "Invalid JSON-RPC version")
	}

	result, err := s.handleMethod(ctx, req.Method, req.Params)
	if err != nil {
		if mcpErr, ok := err.(*Error); ok {
			return errorResponse(req.ID, mcpErr.Code, mcpErr.Message)
		}
		return errorResponse(req.ID, ErrCodeInternal, err.Error())
	}

	if req.ID == nil {
		return nil
	}
	return &Response{JSONRPC: "2.0", ID: req.ID, Result: result}
}

// handleMethod routes JSON-RPC methods to handlers
func (s *Server) handleMethod(ctx context.Context, method string, params json.RawMessage) (any, error) {
	switch method {
	case "initialize":
		return s.handleInitialize(params)
	case "notifications/initialized":
		return map[string]any{}, nil
	case "tools/list":
		return &ToolsListResult{Tools: s.ListTools()}, nil
	case "tools/call":
		return s.handleToolsCall(ctx, params)
	case "ping":
		return map[string]string{}, nil
	default:
		return nil, &Error{Code: ErrCodeMethodNotFound, Message: fmt.Sprintf("Method not found: %s", method)}
	}
}

func (s *Server) handleInitialize(params json.RawMessage) (*InitializeResult, error) {
	var initParams InitializeParams
	if params != nil {
		if err := json.Unmarshal(params, &initParams); err != nil {
			return nil, &Error{Code: ErrCodeInvalidParams, Message: "Invalid initialize params"}
		}
	}

	s.mu.Lock()
	s.initialized = true
	s.mu.Unlock()

	capabilities := Capabilities{}
	if len(s.tools) > 0 {
		capabilities.Tools = &ToolsCapability{ListChanged: true}
	}

	return &InitializeResult{
		ProtocolVersion: "2024-11-05",
		Capabilities:    capabilities,
		ServerInfo:      s.info,
	}, nil
}

func (s *Server) handleToolsCall(ctx context.Context, params json.RawMessage) (*ToolResult, error) {
	var callParams ToolsCallParams
	if err := json.Unmarshal(params, &callParams); err != nil {
		return nil, &Error{Code: ErrCodeInvalidParams, Message: "Invalid tools/call params"}
	}

	s.mu.RLock()
	rt, ok := s.tools[callParams.Name]
	s.mu.RUnlock()
	if !ok {
		return ErrorResult(fmt.Sprintf("Unknown tool: %s", callParams.Name)), nil
	}

	result, err := rt.handler(ctx, callParams.Arguments)
	if err != nil {
		logging.Error("MCP tool %s failed: %v", callParams.Name, err)
		return ErrorResult(err.Error()), nil
	}

	return result, nil
}

// Info returns the server info
func (s *Server) Info() ServerInfo {
	return s.info
}

// IsInitialized returns whether the server has been initialized
func (s *Server) IsInitialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialized
}

func errorResponse(id any, code int, message string) *Response {
	return &Response{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &Error{Code: code, Message: message},
	}
}
