// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func node(id string, parentID *string) *Category {
	return &Category{ID: id, Name: id, Slug: id, ParentID: parentID}
}

func ref(id string) *string { return &id }

func names(nodes []*Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID
	}
	return out
}

/*
TestBuildTree_Nesting keeps input order among siblings and nests children.
*/
func TestBuildTree_Nesting(t *testing.T) {
	forest := BuildTree([]*Category{
		node("b", nil),
		node("a", nil),
		node("b1", ref("b")),
		node("b2", ref("b")),
		node("b1x", ref("b1")),
	})

	require.Equal(t, []string{"b", "a"}, names(forest))
	assert.Equal(t, []string{"b1", "b2"}, names(forest[0].Children))
	assert.Equal(t, []string{"b1x"}, names(forest[0].Children[0].Children))
	assert.Empty(t, forest[1].Children)
}

/*
TestBuildTree_MissingParent promotes nodes whose parent is gone.
*/
func TestBuildTree_MissingParent(t *testing.T) {
	forest := BuildTree([]*Category{node("x", ref("deleted"))})
	assert.Equal(t, []string{"x"}, names(forest))
}

/*
TestBuildTree_Cycle terminates and emits every node once.
*/
func TestBuildTree_Cycle(t *testing.T) {
	forest := BuildTree([]*Category{
		node("root", nil),
		node("a", ref("b")),
		node("b", ref("a")),
		node("self", ref("self")),
		node("leaf", ref("a")),
	})

	seen := map[string]int{}
	var walk func(nodes []*Node)
	walk = func(nodes []*Node) {
		for _, n := range nodes {
			seen[n.ID]++
			walk(n.Children)
		}
	}
	walk(forest)

	assert.Equal(t, map[string]int{"root": 1, "a": 1, "b": 1, "self": 1, "leaf": 1}, seen)
	assert.Equal(t, []string{"root", "a", "self"}, names(forest))
}

/*
TestIsDescendant walks parent links and stops on cycles.
*/
func TestIsDescendant(t *testing.T) {
	categories := []*Category{
		node("top", nil),
		node("mid", ref("top")),
		node("low", ref("mid")),
		node("c1", ref("c2")),
		node("c2", ref("c1")),
	}

	assert.True(t, isDescendant(categories, "top", "low"))
	assert.True(t, isDescendant(categories, "top", "mid"))
	assert.False(t, isDescendant(categories, "low", "top"))
	assert.False(t, isDescendant(categories, "top", "c1"))
}
