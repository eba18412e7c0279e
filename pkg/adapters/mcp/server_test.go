package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/automaton/pkg/domain"
)

const parityYAML = `
states: [q0, q1]
alphabet: [0, 1]
initial_state: q0
accepting_states: [q0]
transitions:
  q0: {0: q0, 1: q1}
  q1: {0: q1, 1: q0}
`

const parityJSON = `{"states": ["q0", "q1"], "alphabet": ["0", "1"], "initial_state": "q0",
 "accepting_states": ["q0"], "transitions": {"q0": {"0": "q0", "1": "q1"}, "q1": {"0": "q1", "1": "q0"}}}`

func TestHandleValidate(t *testing.T) {
	s := NewServer()
	ctx := context.Background()

	for _, raw := range []string{parityYAML, parityJSON} {
		resp, err := s.handleValidate(ctx, mcp.CallToolRequest{}, map[string]interface{}{"definition": raw})
		require.NoError(t, err)
		assert.True(t, resp.Valid)
	}

	resp, err := s.handleValidate(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"definition": `{"states": ["q0"], "alphabet": ["a"], "initial_state": "q0", "transitions": {"q0": {"a": "zz"}}}`,
	})
	require.NoError(t, err)
	assert.False(t, resp.Valid)
	assert.Equal(t, string(domain.KindTransitionTargetUnknown), resp.Kind)

	_, err = s.handleValidate(ctx, mcp.CallToolRequest{}, map[string]interface{}{})
	assert.Error(t, err)
}

func TestHandleRun(t *testing.T) {
	s := NewServer()
	ctx := context.Background()

	resp, err := s.handleRun(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"definition": parityYAML,
		"input":      "0110",
	})
	require.NoError(t, err)
	assert.True(t, resp.Accepted)
	assert.Equal(t, "q0", resp.FinalState)
	assert.Len(t, resp.Trace, 4)
	assert.Contains(t, resp.Explain, "result: ACCEPTED")

	resp, err = s.handleRun(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"definition": parityYAML,
		"symbols":    `["1"]`,
	})
	require.NoError(t, err)
	assert.False(t, resp.Accepted)

	_, err = s.handleRun(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"definition": parityYAML,
		"input":      "2",
	})
	var inErr *domain.InputError
	require.ErrorAs(t, err, &inErr)
	assert.Equal(t, 1, inErr.Position)
}

func TestHandleEnumerate(t *testing.T) {
	s := NewServer(WithEnumerationDefaults(4, 3))
	ctx := context.Background()

	resp, err := s.handleEnumerate(ctx, mcp.CallToolRequest{}, map[string]interface{}{"definition": parityYAML})
	require.NoError(t, err)
	assert.Equal(t, []string{"", "0", "00", "11"}, resp.Strings)

	resp, err = s.handleEnumerate(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"definition":  parityYAML,
		"max_results": float64(2),
		"max_length":  "5",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"", "0"}, resp.Strings)

	_, err = s.handleEnumerate(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"definition":  parityYAML,
		"max_results": float64(-1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidLimits)

	_, err = s.handleEnumerate(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"definition": parityYAML,
		"max_length": true,
	})
	assert.Error(t, err)
}

func TestHandleMessage_ToolsList(t *testing.T) {
	s := NewServer()
	msg := json.RawMessage(`{"jsonrpc": "2.0", "id": 1, "method": "tools/list"}`)

	out := s.MCPServer().HandleMessage(context.Background(), msg)
	data, err := json.Marshal(out)
	require.NoError(t, err)

	for _, name := range []string{"validate_definition", "run_input", "enumerate_accepted", "list_examples", "get_example", "render_graph"} {
		assert.Contains(t, string(data), `"`+name+`"`)
	}
}
