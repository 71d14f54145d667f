package t2048

// ChangeKind identifies a structural change to the board.
type ChangeKind int

const (
	ChangeMove  ChangeKind = iota // Tile slid From -> To
	ChangeMerge                   // Tile at From was absorbed by the tile at To
	ChangeSpawn                   // New tile appeared at To
)

// String returns the change kind name.
func (k ChangeKind) String() string {
	switch k {
	case ChangeMove:
		return "move"
	case ChangeMerge:
		return "merge"
	case ChangeSpawn:
		return "spawn"
	default:
		return "unknown"
	}
}

// Change records one structural change made during a move cycle, so a
// presentation layer can follow tiles without re-deriving the move.
type Change struct {
	Kind  ChangeKind
	From  Pos // Equal to To for spawns
	To    Pos
	Value int // Tile value after the change (doubled value for merges)
}

// Highlights summarizes a change list by final cell: cells holding a
// freshly merged tile and cells holding a freshly spawned tile.
// Moves are followed so a merged tile that slid afterwards is found at
// its resting cell.
func Highlights(changes []Change) (merged, spawned map[Pos]bool) {
	merged = make(map[Pos]bool)
	spawned = make(map[Pos]bool)

	for _, ch := range changes {
		switch ch.Kind {
		case ChangeMerge:
			merged[ch.To] = true
		case ChangeMove:
			if merged[ch.From] {
				delete(merged, ch.From)
				merged[ch.To] = true
			}
		case ChangeSpawn:
			spawned[ch.To] = true
		}
	}
	return merged, spawned
}

// CountKind returns how many changes of the given kind are in the list.
func CountKind(changes []Change, kind ChangeKind) int {
	n := 0
	for _, ch := range changes {
		if ch.Kind == kind {
			n++
		}
	}
	return n
}
