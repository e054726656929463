package services

import (
	"fmt"

	"bakehouse/pkg/domain/entities"
)

// CompositionValidator provides validation for composition graph integrity.
// It checks the whole graph ahead of planning; the decomposer additionally
// guards its own traversal with an ancestor-path check.
type CompositionValidator struct{}

// NewCompositionValidator creates a new composition validator.
func NewCompositionValidator() *CompositionValidator {
	return &CompositionValidator{}
}

// ValidationResult contains the results of composition graph validation.
type ValidationResult struct {
	HasCycles      bool
	CyclePaths     [][]entities.BundleID
	DuplicateEdges []entities.Composition
	EmptyBundles   []entities.BundleID
	Errors         []string
}

// Valid reports whether no defects were found.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// ValidateGraph performs validation on a set of bundles and their
// composition edges.
func (v *CompositionValidator) ValidateGraph(bundles []*entities.Bundle, edges []*entities.Composition) *ValidationResult {
	result := &ValidationResult{
		CyclePaths:     make([][]entities.BundleID, 0),
		DuplicateEdges: make([]entities.Composition, 0),
		EmptyBundles:   make([]entities.BundleID, 0),
		Errors:         make([]string, 0),
	}

	adjacency := v.buildAdjacency(edges)

	cycles := v.detectCycles(adjacency)
	result.HasCycles = len(cycles) > 0
	result.CyclePaths = cycles
	for _, cycle := range cycles {
		result.Errors = append(result.Errors, fmt.Sprintf("composition cycle detected: %v", cycle))
	}

	duplicates := v.detectDuplicateEdges(edges)
	result.DuplicateEdges = duplicates
	if len(duplicates) > 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("found %d duplicate composition edges", len(duplicates)))
	}

	// A bundle with no outgoing edges cannot be decomposed.
	hasEdges := make(map[entities.BundleID]bool)
	for _, edge := range edges {
		hasEdges[edge.ParentID] = true
	}
	for _, bundle := range bundles {
		if !hasEdges[bundle.ID] {
			result.EmptyBundles = append(result.EmptyBundles, bundle.ID)
			result.Errors = append(result.Errors, fmt.Sprintf("bundle %s has no contents", bundle.ID))
		}
	}

	return result
}

// buildAdjacency creates a map of parent -> child bundle relationships.
// Atomic children are terminal and cannot participate in a cycle.
func (v *CompositionValidator) buildAdjacency(edges []*entities.Composition) map[entities.BundleID][]entities.BundleID {
	adjacency := make(map[entities.BundleID][]entities.BundleID)

	for _, edge := range edges {
		if edge.Child.Kind != entities.BundleComponent {
			continue
		}

		children := adjacency[edge.ParentID]
		found := false
		for _, child := range children {
			if child == edge.Child.BundleID {
				found = true
				break
			}
		}
		if !found {
			adjacency[edge.ParentID] = append(children, edge.Child.BundleID)
		}
	}

	return adjacency
}

// detectCycles uses DFS to find cycles among bundle-to-bundle edges.
func (v *CompositionValidator) detectCycles(adjacency map[entities.BundleID][]entities.BundleID) [][]entities.BundleID {
	visited := make(map[entities.BundleID]bool)
	onStack := make(map[entities.BundleID]bool)
	cycles := make([][]entities.BundleID, 0)

	for parent := range adjacency {
		if !visited[parent] {
			path := make([]entities.BundleID, 0)
			v.dfsDetectCycle(parent, adjacency, visited, onStack, path, &cycles)
		}
	}

	return cycles
}

// dfsDetectCycle performs depth-first search to detect cycles.
func (v *CompositionValidator) dfsDetectCycle(
	current entities.BundleID,
	adjacency map[entities.BundleID][]entities.BundleID,
	visited map[entities.BundleID]bool,
	onStack map[entities.BundleID]bool,
	path []entities.BundleID,
	cycles *[][]entities.BundleID,
) {
	visited[current] = true
	onStack[current] = true
	path = append(path, current)

	for _, child := range adjacency[current] {
		if !visited[child] {
			v.dfsDetectCycle(child, adjacency, visited, onStack, path, cycles)
		} else if onStack[child] {
			cycleStart := -1
			for i, id := range path {
				if id == child {
					cycleStart = i
					break
				}
			}
			if cycleStart != -1 {
				cycle := make([]entities.BundleID, 0, len(path)-cycleStart+1)
				cycle = append(cycle, path[cycleStart:]...)
				cycle = append(cycle, child) // Close the cycle
				*cycles = append(*cycles, cycle)
			}
		}
	}

	onStack[current] = false
}

// detectDuplicateEdges finds edges sharing the same parent and child. Each
// repeat occurrence is reported once; the first occurrence is legitimate.
func (v *CompositionValidator) detectDuplicateEdges(edges []*entities.Composition) []entities.Composition {
	seen := make(map[string]bool)
	duplicates := make([]entities.Composition, 0)

	for _, edge := range edges {
		key := fmt.Sprintf("%s|%s|%s", edge.ParentID, edge.Child.Kind, edge.Child)
		if seen[key] {
			duplicates = append(duplicates, *edge)
		} else {
			seen[key] = true
		}
	}

	return duplicates
}
