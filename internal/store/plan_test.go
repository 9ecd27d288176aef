package store

import (
	"testing"

	"github.com/marqueehq/marquee/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(id, itemID int64, position int) models.MediaListItem {
	return models.MediaListItem{ID: id, ListID: 1, ItemID: itemID, Position: position}
}

func TestPlanReconcile_DeleteMoveCreate(t *testing.T) {
	// List holds [A@1, B@2]; new desired order is [B, C].
	current := []models.MediaListItem{row(10, 100, 1), row(11, 101, 2)}
	plan := PlanReconcile(current, []int64{101, 102})

	assert.Equal(t, []int64{10}, plan.Deletes, "A left the desired set")
	require.Len(t, plan.Moves, 1)
	assert.Equal(t, PositionUpdate{RowID: 11, Position: 1}, plan.Moves[0], "B moves to position 1")
	require.Len(t, plan.Creates, 1)
	assert.Equal(t, PositionCreate{ItemID: 102, Position: 2}, plan.Creates[0], "C is created at position 2")
}

func TestPlanReconcile_UnchangedIsNoOp(t *testing.T) {
	current := []models.MediaListItem{row(10, 100, 1), row(11, 101, 2), row(12, 102, 3)}
	plan := PlanReconcile(current, []int64{100, 101, 102})
	assert.True(t, plan.Empty())
}

func TestPlanReconcile_EmptyDesiredDeletesEverything(t *testing.T) {
	current := []models.MediaListItem{row(10, 100, 1), row(11, 101, 2)}
	plan := PlanReconcile(current, nil)
	assert.ElementsMatch(t, []int64{10, 11}, plan.Deletes)
	assert.Empty(t, plan.Moves)
	assert.Empty(t, plan.Creates)
}

func TestPlanReconcile_FreshListCreatesDenseSequence(t *testing.T) {
	plan := PlanReconcile(nil, []int64{7, 8, 9})
	require.Len(t, plan.Creates, 3)
	for i, create := range plan.Creates {
		assert.Equal(t, i+1, create.Position)
	}
	assert.Empty(t, plan.Deletes)
	assert.Empty(t, plan.Moves)
}

func TestPlanReconcile_PositionsStayDense(t *testing.T) {
	// Rows carry stale, gappy positions; the plan must rewrite them to 1..N.
	current := []models.MediaListItem{row(10, 100, 4), row(11, 101, 9)}
	plan := PlanReconcile(current, []int64{100, 101})

	positions := map[int64]int{}
	for _, move := range plan.Moves {
		positions[move.RowID] = move.Position
	}
	assert.Equal(t, map[int64]int{10: 1, 11: 2}, positions)
}

func TestPlanReconcile_DuplicateDesiredKeepsFirstOccurrence(t *testing.T) {
	plan := PlanReconcile(nil, []int64{100, 101, 100})
	require.Len(t, plan.Creates, 2)
	assert.Equal(t, PositionCreate{ItemID: 100, Position: 1}, plan.Creates[0])
	assert.Equal(t, PositionCreate{ItemID: 101, Position: 2}, plan.Creates[1])
}

func TestGeneratedListSlug(t *testing.T) {
	tag := &models.IdentityTag{ID: 42, Slug: "trans-joy"}
	assert.Equal(t, "trans-joy-spotlight-42", GeneratedListSlug(tag))
	// Deterministic: same tag always addresses the same list.
	assert.Equal(t, GeneratedListSlug(tag), GeneratedListSlug(tag))
}
