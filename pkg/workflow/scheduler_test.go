package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veildoc/veilflow/pkg/models"
	"github.com/veildoc/veilflow/pkg/testutil"
)

func edge(source, target string) models.WorkflowEdge {
	return testutil.CreateTestEdge(source, "out", target, "in")
}

func nodesByID(ids ...string) []models.WorkflowNode {
	nodes := make([]models.WorkflowNode, 0, len(ids))
	for _, id := range ids {
		nodes = append(nodes, testutil.CreateTestNode(testutil.WithID(id)))
	}

	return nodes
}

func orderedIDs(nodes []models.WorkflowNode) []string {
	ids := make([]string, 0, len(nodes))
	for _, node := range nodes {
		ids = append(ids, node.ID)
	}

	return ids
}

func TestOrder_LinearChain(t *testing.T) {
	nodes := nodesByID("c", "a", "b")
	edges := []models.WorkflowEdge{
		edge("a", "b"),
		edge("b", "c"),
	}

	ordered, hasCycle := Order(nodes, edges)

	require.False(t, hasCycle)
	assert.Equal(t, []string{"a", "b", "c"}, orderedIDs(ordered))
}

func TestOrder_TieBreakFollowsDeclarationOrder(t *testing.T) {
	// Diamond: a feeds both b and c, both feed d. b and c become
	// eligible together; declaration order decides.
	nodes := nodesByID("a", "b", "c", "d")
	edges := []models.WorkflowEdge{
		edge("a", "b"),
		edge("a", "c"),
		edge("b", "d"),
		edge("c", "d"),
	}

	ordered, hasCycle := Order(nodes, edges)

	require.False(t, hasCycle)
	assert.Equal(t, []string{"a", "b", "c", "d"}, orderedIDs(ordered))

	// Same nodes, edges declared with a->c before a->b: c becomes
	// eligible first and the order flips.
	swapped := []models.WorkflowEdge{
		edge("a", "c"),
		edge("a", "b"),
		edge("b", "d"),
		edge("c", "d"),
	}

	ordered, hasCycle = Order(nodes, swapped)

	require.False(t, hasCycle)
	assert.Equal(t, []string{"a", "c", "b", "d"}, orderedIDs(ordered))
}

func TestOrder_Deterministic(t *testing.T) {
	nodes := nodesByID("n1", "n2", "n3", "n4", "n5")
	edges := []models.WorkflowEdge{
		edge("n1", "n3"),
		edge("n2", "n3"),
		edge("n3", "n5"),
		edge("n4", "n5"),
	}

	first, hasCycle := Order(nodes, edges)
	require.False(t, hasCycle)

	for range 20 {
		again, cyc := Order(nodes, edges)
		require.False(t, cyc)
		assert.Equal(t, orderedIDs(first), orderedIDs(again))
	}
}

func TestOrder_TopologicalValidity(t *testing.T) {
	nodes := nodesByID("e", "d", "c", "b", "a")
	edges := []models.WorkflowEdge{
		edge("a", "c"),
		edge("b", "c"),
		edge("c", "d"),
		edge("c", "e"),
	}

	ordered, hasCycle := Order(nodes, edges)
	require.False(t, hasCycle)
	require.Len(t, ordered, len(nodes))

	position := make(map[string]int, len(ordered))
	for i, node := range ordered {
		position[node.ID] = i
	}

	for _, e := range edges {
		assert.Less(t, position[e.Source], position[e.Target],
			"edge %s -> %s out of order", e.Source, e.Target)
	}
}

func TestOrder_CycleDetected(t *testing.T) {
	nodes := nodesByID("a", "b", "c")
	edges := []models.WorkflowEdge{
		edge("a", "b"),
		edge("b", "c"),
		edge("c", "a"),
	}

	ordered, hasCycle := Order(nodes, edges)

	assert.True(t, hasCycle)
	assert.Empty(t, ordered)
}

func TestOrder_PartialCycle(t *testing.T) {
	// a is free of the cycle between b and c, so it still orders.
	nodes := nodesByID("a", "b", "c")
	edges := []models.WorkflowEdge{
		edge("b", "c"),
		edge("c", "b"),
	}

	ordered, hasCycle := Order(nodes, edges)

	assert.True(t, hasCycle)
	assert.Equal(t, []string{"a"}, orderedIDs(ordered))
}

func TestOrder_IgnoresEdgesWithUnknownEndpoints(t *testing.T) {
	nodes := nodesByID("a", "b")
	edges := []models.WorkflowEdge{
		edge("a", "b"),
		edge("ghost", "b"),
		edge("a", "phantom"),
	}

	ordered, hasCycle := Order(nodes, edges)

	require.False(t, hasCycle)
	assert.Equal(t, []string{"a", "b"}, orderedIDs(ordered))
}

func TestOrder_NoEdges(t *testing.T) {
	nodes := nodesByID("z", "y", "x")

	ordered, hasCycle := Order(nodes, nil)

	require.False(t, hasCycle)
	assert.Equal(t, []string{"z", "y", "x"}, orderedIDs(ordered))
}
