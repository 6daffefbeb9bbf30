// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"errors"
	"fmt"
	"slices"

	"github.com/olegiv/scholarcms/internal/model"
)

// ErrIndexOutOfRange is returned when a move index falls outside its sibling group.
var ErrIndexOutOfRange = errors.New("index out of range for sibling group")

// Move index names, as reported in IndexError.Field.
const (
	FieldSourceIndex      = "sourceIndex"
	FieldDestinationIndex = "destinationIndex"
)

// IndexError reports which move index fell outside the group. It matches
// ErrIndexOutOfRange with errors.Is.
type IndexError struct {
	Field string
	Index int
	Size  int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s %d out of range for sibling group of %d", e.Field, e.Index, e.Size)
}

func (e *IndexError) Unwrap() error { return ErrIndexOutOfRange }

// BuildForest converts a flat list of one menu's items into a forest.
// Sibling lists are sorted by Order; ties keep input order. Items whose
// parent is not in the list are dropped, as is anything only reachable
// through them.
func BuildForest(items []model.MenuItem) []model.MenuNode {
	forest, _ := buildForest(items)
	return forest
}

// buildForest also returns the ids placed in the forest.
func buildForest(items []model.MenuItem) ([]model.MenuNode, map[int64]bool) {
	var roots []model.MenuItem
	children := make(map[int64][]model.MenuItem)
	for _, item := range items {
		if !item.ParentID.Valid {
			roots = append(roots, item)
			continue
		}
		children[item.ParentID.Int64] = append(children[item.ParentID.Int64], item)
	}
	sortByOrder(roots)
	for key := range children {
		sortByOrder(children[key])
	}

	visited := make(map[int64]bool, len(items))

	var build func(group []model.MenuItem) []model.MenuNode
	build = func(group []model.MenuItem) []model.MenuNode {
		nodes := make([]model.MenuNode, 0, len(group))
		for _, item := range group {
			if visited[item.ID] {
				continue
			}
			visited[item.ID] = true
			nodes = append(nodes, model.MenuNode{
				MenuItem: item,
				Children: build(children[item.ID]),
			})
		}
		return nodes
	}

	return build(roots), visited
}

// FilterByMenu returns the items belonging to menuID, in input order.
func FilterByMenu(items []model.MenuItem, menuID int64) []model.MenuItem {
	result := make([]model.MenuItem, 0, len(items))
	for _, item := range items {
		if item.MenuID == menuID {
			result = append(result, item)
		}
	}
	return result
}

// Siblings returns the sibling group under parentID (nil for roots) sorted
// by Order. Indices into this slice are the positions shown to editors.
func Siblings(items []model.MenuItem, parentID *int64) []model.MenuItem {
	var group []model.MenuItem
	for _, item := range items {
		if item.HasParent(parentID) {
			group = append(group, item)
		}
	}
	sortByOrder(group)
	return group
}

// Move describes a drag within one sibling group.
type Move struct {
	ParentID *int64
	From     int
	To       int
}

// ReorderPlan is the outcome of a move: the whole group with fresh orders
// and the subset whose order actually changed.
type ReorderPlan struct {
	Siblings []model.MenuItem
	Changed  []model.MenuItem
}

// PlanReorder moves the item at m.From to m.To within its sibling group and
// re-stamps the group with orders 0..k-1. Parents are left untouched.
func PlanReorder(items []model.MenuItem, m Move) (ReorderPlan, error) {
	group := Siblings(items, m.ParentID)
	if m.From < 0 || m.From >= len(group) {
		return ReorderPlan{}, &IndexError{Field: FieldSourceIndex, Index: m.From, Size: len(group)}
	}
	if m.To < 0 || m.To >= len(group) {
		return ReorderPlan{}, &IndexError{Field: FieldDestinationIndex, Index: m.To, Size: len(group)}
	}

	before := make(map[int64]int, len(group))
	for _, item := range group {
		before[item.ID] = item.Order
	}

	if m.From != m.To {
		moved := group[m.From]
		group = slices.Delete(group, m.From, m.From+1)
		group = slices.Insert(group, m.To, moved)
	}

	plan := ReorderPlan{Siblings: group}
	for i := range group {
		group[i].Order = i
		if m.From != m.To && before[group[i].ID] != i {
			plan.Changed = append(plan.Changed, group[i])
		}
	}

	return plan, nil
}

// DanglingItems returns items whose parent id does not exist in the list.
func DanglingItems(items []model.MenuItem) []model.MenuItem {
	ids := make(map[int64]bool, len(items))
	for _, item := range items {
		ids[item.ID] = true
	}

	var dangling []model.MenuItem
	for _, item := range items {
		if item.ParentID.Valid && !ids[item.ParentID.Int64] {
			dangling = append(dangling, item)
		}
	}
	return dangling
}

// UnreachableItems returns every item BuildForest leaves out: items with a
// dangling parent, their descendants and members of parent cycles. Input
// order is kept.
func UnreachableItems(items []model.MenuItem) []model.MenuItem {
	_, visited := buildForest(items)

	var lost []model.MenuItem
	for _, item := range items {
		if !visited[item.ID] {
			lost = append(lost, item)
		}
	}
	return lost
}

// WouldCycle reports whether making newParentID the parent of itemID would
// put itemID among its own ancestors.
func WouldCycle(items []model.MenuItem, itemID, newParentID int64) bool {
	parents := make(map[int64]int64, len(items))
	for _, item := range items {
		if item.ParentID.Valid {
			parents[item.ID] = item.ParentID.Int64
		}
	}

	seen := make(map[int64]bool)
	for cur := newParentID; ; {
		if cur == itemID {
			return true
		}
		if seen[cur] {
			// pre-existing cycle that does not involve itemID
			return false
		}
		seen[cur] = true
		next, ok := parents[cur]
		if !ok {
			return false
		}
		cur = next
	}
}

// Descendants returns the ids of every item below rootID, depth first.
func Descendants(items []model.MenuItem, rootID int64) []int64 {
	children := make(map[int64][]int64)
	for _, item := range items {
		if item.ParentID.Valid {
			children[item.ParentID.Int64] = append(children[item.ParentID.Int64], item.ID)
		}
	}

	var result []int64
	seen := map[int64]bool{rootID: true}
	var walk func(id int64)
	walk = func(id int64) {
		for _, child := range children[id] {
			if seen[child] {
				continue
			}
			seen[child] = true
			result = append(result, child)
			walk(child)
		}
	}
	walk(rootID)
	return result
}

func sortByOrder(items []model.MenuItem) {
	slices.SortStableFunc(items, func(a, b model.MenuItem) int {
		return a.Order - b.Order
	})
}
