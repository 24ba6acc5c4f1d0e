package envelope

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOk(t *testing.T) {
	e := Ok("list", "2 issues found", []string{"a", "b"})

	assert.True(t, e.Success)
	assert.Equal(t, "list", e.Action)
	assert.Equal(t, "2 issues found", e.Message)
	assert.NotNil(t, e.Data)
	assert.Empty(t, e.Error)
}

func TestFail(t *testing.T) {
	e := Fail("create", "missing required parameter: title")

	assert.False(t, e.Success)
	assert.Equal(t, "create", e.Action)
	assert.Equal(t, "missing required parameter: title", e.Error)
	assert.Nil(t, e.Data, "failure envelopes must not carry data")
}

func TestFailErr(t *testing.T) {
	e := FailErr("get", errors.New("boom"))

	assert.False(t, e.Success)
	assert.Equal(t, "boom", e.Error)
}

func TestToolResult_Success(t *testing.T) {
	result := Ok("get", "fetched", map[string]any{"id": 1}).ToolResult()

	require.False(t, result.IsError)
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)

	var decoded Envelope
	require.NoError(t, json.Unmarshal([]byte(text.Text), &decoded))
	assert.True(t, decoded.Success)
	assert.Equal(t, "get", decoded.Action)
	assert.Empty(t, decoded.Error)
}

func TestToolResult_Failure(t *testing.T) {
	result := Fail("get", "provider not found: gitlab").ToolResult()

	require.True(t, result.IsError)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)

	var decoded Envelope
	require.NoError(t, json.Unmarshal([]byte(text.Text), &decoded))
	assert.False(t, decoded.Success)
	assert.Equal(t, "provider not found: gitlab", decoded.Error)
	assert.Nil(t, decoded.Data)
}

func TestEnvelope_JSONShape(t *testing.T) {
	// Omitted fields must not appear as nulls in the wire form.
	data, err := json.Marshal(Fail("x", "err"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"action":"x","error":"err"}`, string(data))

	data, err = json.Marshal(Ok("y", "done", nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"action":"y","message":"done"}`, string(data))
}
