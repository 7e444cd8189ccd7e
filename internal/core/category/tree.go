// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

// Node is a category with its nested children.
type Node struct {
	*Category
	Children []*Node `json:"children"`
}

/*
BuildTree arranges categories into a forest.

Description: Roots are categories without a parent or whose parent is
missing. Sibling order follows the input order, so a List result yields
sortOrder-then-name ordering at every level.

Imports can create parent cycles (A → B → A). Such nodes are not reachable
from any root; each cycle is attached under its first member, which becomes
an extra root. Every category appears exactly once.
*/
func BuildTree(categories []*Category) []*Node {
	byID := make(map[string]*Category, len(categories))
	for _, category := range categories {
		byID[category.ID] = category
	}

	children := make(map[string][]*Category)
	var roots []*Category

	for _, category := range categories {
		if category.ParentID == nil {
			roots = append(roots, category)
			continue
		}
		if _, found := byID[*category.ParentID]; !found {
			roots = append(roots, category)
			continue
		}
		children[*category.ParentID] = append(children[*category.ParentID], category)
	}

	visited := make(map[string]bool, len(categories))

	var build func(category *Category) *Node
	build = func(category *Category) *Node {
		visited[category.ID] = true
		node := &Node{Category: category, Children: make([]*Node, 0)}

		for _, child := range children[category.ID] {
			if visited[child.ID] {
				continue
			}
			node.Children = append(node.Children, build(child))
		}
		return node
	}

	forest := make([]*Node, 0, len(roots))
	for _, root := range roots {
		forest = append(forest, build(root))
	}

	// Whatever is left sits on a cycle
	for _, category := range categories {
		if !visited[category.ID] {
			forest = append(forest, build(category))
		}
	}

	return forest
}

// isDescendant reports whether candidate lies in the subtree below id,
// walking parent links upward from candidate. The visited set stops the
// walk on existing cycles.
func isDescendant(categories []*Category, id, candidate string) bool {
	parentOf := make(map[string]string, len(categories))
	for _, category := range categories {
		if category.ParentID != nil {
			parentOf[category.ID] = *category.ParentID
		}
	}

	visited := make(map[string]bool)
	current := candidate

	for {
		parent, found := parentOf[current]
		if !found || visited[current] {
			return false
		}
		if parent == id {
			return true
		}
		visited[current] = true
		current = parent
	}
}
