// Package envelope defines the uniform response shape returned by every tool.
//
// Every tool call produces exactly one Envelope, JSON-encoded into the MCP
// result's text content. A failed call carries Error and no Data; a successful
// call carries Data (when the operation returns any) and no Error. Callers
// never see a raw Go error, only the envelope.
package envelope

import (
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vcsbridge/vcs-mcp-server/pkg/utils"
)

// Envelope is the uniform contract every tool action produces.
type Envelope struct {
	Success bool   `json:"success"`
	Action  string `json:"action"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Ok creates a success envelope for the given action.
func Ok(action, message string, data any) Envelope {
	return Envelope{
		Success: true,
		Action:  action,
		Message: message,
		Data:    data,
	}
}

// Fail creates a failure envelope for the given action. Data is never set on
// a failure envelope.
func Fail(action, errMsg string) Envelope {
	return Envelope{
		Success: false,
		Action:  action,
		Error:   errMsg,
	}
}

// FailErr creates a failure envelope from an error.
func FailErr(action string, err error) Envelope {
	return Fail(action, err.Error())
}

// ToolResult encodes the envelope as the text content of an MCP tool result.
// Failure envelopes additionally mark the MCP result as an error.
func (e Envelope) ToolResult() *mcp.CallToolResult {
	data, err := json.Marshal(e)
	if err != nil {
		return utils.NewToolResultErrorFromErr("failed to marshal response envelope", err)
	}
	if !e.Success {
		return utils.NewToolResultError(string(data))
	}
	return utils.NewToolResultText(string(data))
}
