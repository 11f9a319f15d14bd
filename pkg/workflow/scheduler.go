// Package workflow implements graph validation, topological scheduling
// and sequential execution of node graphs.
package workflow

import "github.com/veildoc/veilflow/pkg/models"

// Order computes a topological ordering of the graph using Kahn's
// algorithm. The queue is seeded and extended in node declaration
// order, so the result is deterministic: the same graph always yields
// the same sequence. The boolean is true when the graph contains a
// cycle, in which case the returned sequence omits the cyclic nodes.
func Order(nodes []models.WorkflowNode, edges []models.WorkflowEdge) ([]models.WorkflowNode, bool) {
	byID := make(map[string]models.WorkflowNode, len(nodes))
	inDegree := make(map[string]int, len(nodes))

	for _, node := range nodes {
		byID[node.ID] = node
		inDegree[node.ID] = 0
	}

	successors := make(map[string][]string, len(nodes))

	for _, edge := range edges {
		// Edges pointing outside the node set carry no scheduling
		// weight; the validator reports them separately.
		if _, ok := byID[edge.Source]; !ok {
			continue
		}

		if _, ok := byID[edge.Target]; !ok {
			continue
		}

		successors[edge.Source] = append(successors[edge.Source], edge.Target)
		inDegree[edge.Target]++
	}

	queue := make([]string, 0, len(nodes))
	for _, node := range nodes {
		if inDegree[node.ID] == 0 {
			queue = append(queue, node.ID)
		}
	}

	ordered := make([]models.WorkflowNode, 0, len(nodes))

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		ordered = append(ordered, byID[id])

		for _, successor := range successors[id] {
			inDegree[successor]--
			if inDegree[successor] == 0 {
				queue = append(queue, successor)
			}
		}
	}

	return ordered, len(ordered) < len(nodes)
}
