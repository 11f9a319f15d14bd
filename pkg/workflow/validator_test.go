package workflow

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veildoc/veilflow/pkg/models"
	"github.com/veildoc/veilflow/pkg/registry"
	"github.com/veildoc/veilflow/pkg/testutil"
)

func newTestRegistry(t *testing.T) *registry.Registry {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	reg := registry.NewRegistry(logger)
	reg.RegisterDefaultCapabilities()

	return reg
}

func violationMessages(violations []error) []string {
	messages := make([]string, 0, len(violations))
	for _, violation := range violations {
		messages = append(messages, violation.Error())
	}

	return messages
}

func TestValidate_CleanGraph(t *testing.T) {
	validator := NewValidator(newTestRegistry(t))
	wf := testutil.HashAndSignWorkflow()

	violations := validator.Validate(wf.Nodes, wf.Edges)

	assert.Empty(t, violations)
}

func TestValidate_Cycle(t *testing.T) {
	validator := NewValidator(newTestRegistry(t))

	nodes := []models.WorkflowNode{
		testutil.CreateTestNode(testutil.WithID("a")),
		testutil.CreateTestNode(testutil.WithID("b")),
	}
	edges := []models.WorkflowEdge{
		testutil.CreateTestEdge("a", "file", "b", "file"),
		testutil.CreateTestEdge("b", "file", "a", "file"),
	}

	violations := validator.Validate(nodes, edges)

	assert.Contains(t, violationMessages(violations), "graph contains a cycle")
}

func TestValidate_MissingRequiredInput(t *testing.T) {
	validator := NewValidator(newTestRegistry(t))

	// SignDoc requires a hash input; none is connected.
	nodes := []models.WorkflowNode{
		testutil.CreateTestNode(testutil.WithID("lonely-signer"), testutil.WithType("SignDoc")),
	}

	violations := validator.Validate(nodes, nil)

	require.Len(t, violations, 1)
	assert.Equal(t,
		`node "lonely-signer" is missing a connection to required input "hash"`,
		violations[0].Error())
}

func TestValidate_OneViolationPerMissingPort(t *testing.T) {
	validator := NewValidator(newTestRegistry(t))

	// Two disconnected nodes each with one required input.
	nodes := []models.WorkflowNode{
		testutil.CreateTestNode(testutil.WithID("s1"), testutil.WithType("SignDoc")),
		testutil.CreateTestNode(testutil.WithID("v1"), testutil.WithType("VeilDoc")),
	}

	violations := validator.Validate(nodes, nil)

	messages := violationMessages(violations)
	require.Len(t, messages, 2)
	assert.Contains(t, messages, `node "s1" is missing a connection to required input "hash"`)
	assert.Contains(t, messages, `node "v1" is missing a connection to required input "file"`)
}

func TestValidate_UnknownEdgeEndpoints(t *testing.T) {
	validator := NewValidator(newTestRegistry(t))

	nodes := []models.WorkflowNode{
		testutil.CreateTestNode(testutil.WithID("a")),
	}
	edges := []models.WorkflowEdge{
		{ID: "e1", Source: "ghost", SourceHandle: "hash", Target: "a", TargetHandle: "file"},
		{ID: "e2", Source: "a", SourceHandle: "hash", Target: "phantom", TargetHandle: "file"},
	}

	violations := validator.Validate(nodes, edges)

	messages := violationMessages(violations)
	assert.Contains(t, messages, `edge "e1" references unknown source node "ghost"`)
	assert.Contains(t, messages, `edge "e2" references unknown target node "phantom"`)
}

func TestValidate_DuplicateIncomingEdges(t *testing.T) {
	validator := NewValidator(newTestRegistry(t))

	nodes := []models.WorkflowNode{
		testutil.CreateTestNode(testutil.WithID("h1")),
		testutil.CreateTestNode(testutil.WithID("h2")),
		testutil.CreateTestNode(testutil.WithID("sign"), testutil.WithType("SignDoc")),
	}
	edges := []models.WorkflowEdge{
		testutil.CreateTestEdge("h1", "hash", "sign", "hash"),
		testutil.CreateTestEdge("h2", "hash", "sign", "hash"),
	}

	violations := validator.Validate(nodes, edges)

	assert.Contains(t, violationMessages(violations),
		`node "sign" input "hash" has multiple incoming edges`)
}

func TestValidate_UnknownTypeIsNotAViolation(t *testing.T) {
	validator := NewValidator(newTestRegistry(t))

	nodes := []models.WorkflowNode{
		testutil.CreateTestNode(testutil.WithID("mystery"), testutil.WithType("NotARealType")),
	}

	violations := validator.Validate(nodes, nil)

	assert.Empty(t, violations)
}

func TestValidate_ReportsAllViolations(t *testing.T) {
	validator := NewValidator(newTestRegistry(t))

	// Cycle, an unknown edge endpoint, and a disconnected required
	// input, all in one graph.
	nodes := []models.WorkflowNode{
		testutil.CreateTestNode(testutil.WithID("a")),
		testutil.CreateTestNode(testutil.WithID("b")),
		testutil.CreateTestNode(testutil.WithID("sign"), testutil.WithType("SignDoc")),
	}
	edges := []models.WorkflowEdge{
		testutil.CreateTestEdge("a", "file", "b", "file"),
		testutil.CreateTestEdge("b", "file", "a", "file"),
		{ID: "bad", Source: "ghost", SourceHandle: "x", Target: "a", TargetHandle: "other"},
	}

	violations := validator.Validate(nodes, edges)

	messages := violationMessages(violations)
	assert.Contains(t, messages, "graph contains a cycle")
	assert.Contains(t, messages, `edge "bad" references unknown source node "ghost"`)
	assert.Contains(t, messages, `node "sign" is missing a connection to required input "hash"`)
	assert.Len(t, messages, 3)
}
