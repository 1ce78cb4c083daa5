// Package rotation holds the pure ordering logic for a circle's payout
// rotation: members are ranked by position, moved one step at a time, and
// the result is persisted elsewhere as 1-based positions.
package rotation

import (
	"sort"

	"github.com/ajoroapp/ajoro-backend/internal/models"
)

// unassigned sorts after every real position.
const unassigned = 1 << 30

type Direction int

const (
	Up Direction = iota
	Down
)

// Order returns a new slice sorted ascending by position. Members without a
// position keep their relative input order at the end (stable sort).
func Order(members []models.CircleMember) []models.CircleMember {
	out := make([]models.CircleMember, len(members))
	copy(out, members)
	sort.SliceStable(out, func(i, j int) bool {
		return posOf(out[i]) < posOf(out[j])
	})
	return out
}

// Move swaps the member at index with its immediate neighbor. Moving up at
// the top or down at the bottom is a no-op; there is no wraparound.
func Move(members []models.CircleMember, index int, dir Direction) []models.CircleMember {
	out := make([]models.CircleMember, len(members))
	copy(out, members)
	switch dir {
	case Up:
		if index <= 0 || index >= len(out) {
			return out
		}
		out[index], out[index-1] = out[index-1], out[index]
	case Down:
		if index < 0 || index >= len(out)-1 {
			return out
		}
		out[index], out[index+1] = out[index+1], out[index]
	}
	return out
}

// Reset recomputes the baseline ordering from the original, unmodified list.
func Reset(original []models.CircleMember) []models.CircleMember {
	return Order(original)
}

func posOf(m models.CircleMember) int {
	if m.Position == nil {
		return unassigned
	}
	return *m.Position
}
