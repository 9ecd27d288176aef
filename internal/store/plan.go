package store

import (
	"fmt"

	"github.com/marqueehq/marquee/internal/models"
)

// GeneratedListSlug derives the deterministic slug addressing the generated
// list for a tag. Including the numeric tag id keeps the slug stable across
// process restarts with no coordination.
func GeneratedListSlug(tag *models.IdentityTag) string {
	return fmt.Sprintf("%s-spotlight-%d", tag.Slug, tag.ID)
}

// PositionUpdate moves an existing membership row to a new position.
type PositionUpdate struct {
	RowID    int64
	Position int
}

// PositionCreate adds an item to the list at a position.
type PositionCreate struct {
	ItemID   int64
	Position int
}

// ReconcilePlan is the set of membership mutations that turn the current
// rows of a list into the desired ordered item set.
type ReconcilePlan struct {
	Deletes []int64 // membership row ids whose item left the desired set
	Moves   []PositionUpdate
	Creates []PositionCreate
}

// Empty reports whether applying the plan would mutate nothing.
func (p ReconcilePlan) Empty() bool {
	return len(p.Deletes) == 0 && len(p.Moves) == 0 && len(p.Creates) == 0
}

// PlanReconcile diffs the current membership rows of one list against the
// desired ordered item ids. Rows whose item is absent from desired are
// deleted; rows that survive keep their identity (and annotations) and are
// repositioned only when their position changed; missing items are created
// at their position. Positions are assigned densely from 1 in desired
// order. Duplicate desired ids keep their first occurrence.
func PlanReconcile(current []models.MediaListItem, desired []int64) ReconcilePlan {
	var plan ReconcilePlan

	byItem := make(map[int64]models.MediaListItem, len(current))
	for _, row := range current {
		byItem[row.ItemID] = row
	}

	wanted := make(map[int64]struct{}, len(desired))
	position := 0
	for _, itemID := range desired {
		if _, dup := wanted[itemID]; dup {
			continue
		}
		wanted[itemID] = struct{}{}
		position++

		if row, ok := byItem[itemID]; ok {
			if row.Position != position {
				plan.Moves = append(plan.Moves, PositionUpdate{RowID: row.ID, Position: position})
			}
			continue
		}
		plan.Creates = append(plan.Creates, PositionCreate{ItemID: itemID, Position: position})
	}

	for _, row := range current {
		if _, keep := wanted[row.ItemID]; !keep {
			plan.Deletes = append(plan.Deletes, row.ID)
		}
	}
	return plan
}
