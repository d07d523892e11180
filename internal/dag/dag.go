// Package dag provides a directed acyclic graph over entity dependencies.
// Edges run from referenced entities to the dependents whose identifiers copy
// them. The graph is used for reporting and cycle diagnostics; the deferred
// pass scheduler itself runs in registration order.
package dag

import (
	"fmt"
	"sort"
)

// Node represents an entity in the graph.
type Node struct {
	// ID is the entity name.
	ID string
	// Data holds arbitrary node data.
	Data interface{}
}

// Graph is a directed acyclic graph of entity dependencies.
type Graph struct {
	nodes   map[string]*Node
	edges   map[string][]string // referenced -> dependents
	parents map[string][]string // dependent -> referenced entities
}

// NewGraph creates a new empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes:   make(map[string]*Node),
		edges:   make(map[string][]string),
		parents: make(map[string][]string),
	}
}

// AddNode adds a node to the graph. Adding an existing node updates its data.
func (g *Graph) AddNode(id string, data interface{}) {
	if _, exists := g.nodes[id]; !exists {
		g.nodes[id] = &Node{ID: id, Data: data}
		g.edges[id] = []string{}
		g.parents[id] = []string{}
		return
	}
	g.nodes[id].Data = data
}

// AddEdge adds a directed edge from a referenced entity to a dependent.
func (g *Graph) AddEdge(referencedID, dependentID string) error {
	if _, exists := g.nodes[referencedID]; !exists {
		return fmt.Errorf("referenced node %q does not exist", referencedID)
	}
	if _, exists := g.nodes[dependentID]; !exists {
		return fmt.Errorf("dependent node %q does not exist", dependentID)
	}
	if referencedID == dependentID {
		return fmt.Errorf("self-loop detected: %s", referencedID)
	}

	if !contains(g.edges[referencedID], dependentID) {
		g.edges[referencedID] = append(g.edges[referencedID], dependentID)
	}
	if !contains(g.parents[dependentID], referencedID) {
		g.parents[dependentID] = append(g.parents[dependentID], referencedID)
	}
	return nil
}

// GetParents returns the entities a node depends on.
func (g *Graph) GetParents(id string) []string { return g.parents[id] }

// GetChildren returns the dependents of a node.
func (g *Graph) GetChildren(id string) []string { return g.edges[id] }

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int {
	count := 0
	for _, children := range g.edges {
		count += len(children)
	}
	return count
}

// GetRoots returns nodes with no dependencies, sorted.
func (g *Graph) GetRoots() []string {
	var roots []string
	for id := range g.nodes {
		if len(g.parents[id]) == 0 {
			roots = append(roots, id)
		}
	}
	sort.Strings(roots)
	return roots
}

// HasCycle returns true if the graph contains a cycle, along with the cycle
// path.
func (g *Graph) HasCycle() (bool, []string) {
	visited := make(map[string]bool)
	recStack := make(map[string]bool)
	path := make(map[string]string)

	var cyclePath []string

	var dfs func(id string) bool
	dfs = func(id string) bool {
		visited[id] = true
		recStack[id] = true

		for _, childID := range g.edges[id] {
			if !visited[childID] {
				path[childID] = id
				if dfs(childID) {
					return true
				}
			} else if recStack[childID] {
				cyclePath = []string{childID}
				for curr := id; curr != childID; curr = path[curr] {
					cyclePath = append([]string{curr}, cyclePath...)
				}
				cyclePath = append([]string{childID}, cyclePath...)
				return true
			}
		}

		recStack[id] = false
		return false
	}

	for id := range g.nodes {
		if !visited[id] {
			if dfs(id) {
				return true, cyclePath
			}
		}
	}
	return false, nil
}

// TopologicalSort returns nodes in dependency order (referenced entities
// before dependents). Returns an error if the graph contains a cycle.
func (g *Graph) TopologicalSort() ([]*Node, error) {
	if hasCycle, cyclePath := g.HasCycle(); hasCycle {
		return nil, fmt.Errorf("cycle detected: %v", cyclePath)
	}

	visited := make(map[string]bool)
	var result []*Node

	var visit func(id string)
	visit = func(id string) {
		if visited[id] {
			return
		}
		visited[id] = true
		for _, parentID := range g.parents[id] {
			visit(parentID)
		}
		result = append(result, g.nodes[id])
	}

	// Sort node IDs first for deterministic order.
	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		visit(id)
	}
	return result, nil
}

func contains(slice []string, str string) bool {
	for _, s := range slice {
		if s == str {
			return true
		}
	}
	return false
}
