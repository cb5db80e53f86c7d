package outline

// Node is a resolved range together with the ranges nested under it.
type Node struct {
	Range
	Children []*Node
}

// BuildTree nests a flat list of ranges by level. A range becomes the child
// of the closest preceding range with a smaller level; ranges with no such
// predecessor are roots.
func BuildTree(ranges []Range) []*Node {
	if len(ranges) == 0 {
		return nil
	}

	var stack []*Node
	var roots []*Node

	for _, r := range ranges {
		node := &Node{Range: r}

		// Pop nodes from stack until we find the parent level
		for len(stack) > 0 && stack[len(stack)-1].Level >= r.Level {
			stack = stack[:len(stack)-1]
		}

		if len(stack) == 0 {
			roots = append(roots, node)
		} else {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, node)
		}

		stack = append(stack, node)
	}

	return roots
}

// Walk visits a forest depth-first in outline order. depth is 0 for the
// given nodes and grows by one per level of nesting.
func Walk(nodes []*Node, fn func(n *Node, depth int)) {
	var visit func([]*Node, int)
	visit = func(level []*Node, depth int) {
		for _, n := range level {
			if n == nil {
				continue
			}
			fn(n, depth)
			visit(n.Children, depth+1)
		}
	}
	visit(nodes, 0)
}
