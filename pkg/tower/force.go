package tower

import "errors"

var (
	// ErrPathEmpty is returned when a path has no nodes.
	ErrPathEmpty = errors.New("tower: path is empty")
	// ErrPathWrongSource is returned when a path's first node isn't the
	// expected source.
	ErrPathWrongSource = errors.New("tower: path does not start at source")
	// ErrPathNotConnected is returned when consecutive path nodes are not
	// neighbors on the connectivity lattice.
	ErrPathNotConnected = errors.New("tower: path is not a connected chain of neighbors")
	// ErrPathTooFar is returned when a path's end-to-end distance exceeds
	// its max edge distance.
	ErrPathTooFar = errors.New("tower: path exceeds max edge distance")
	// ErrPathNotMaterialized is returned when a path visits a cell the
	// supplied View cannot account for.
	ErrPathNotMaterialized = errors.New("tower: path visits an unreachable cell")
)

// View answers whether a chunk dispatcher considers a TowerId reachable:
// the minimal read-only surface ValidatePath needs, kept here (rather than
// depending on a chunk package) to avoid an import cycle between pkg/tower
// and the chunk dispatcher that embeds it.
type View interface {
	Contains(id TowerId) bool
}

// Path is a canonicalized sequence of TowerIds describing a supply line or
// a force's route, each one a lattice neighbor of the last.
type Path struct {
	Nodes []TowerId
}

// Destination returns the path's final node.
func (p Path) Destination() TowerId {
	return p.Nodes[len(p.Nodes)-1]
}

// ValidatePath checks that nodes forms a connected chain starting at source,
// that every node is known to view (when view is non-nil), and that the
// end-to-end distance does not exceed maxEdgeDistance (when non-nil: nil
// means unbounded). It returns a canonicalized Path on success.
func ValidatePath(nodes []TowerId, view View, source TowerId, maxEdgeDistance *uint32) (Path, error) {
	if len(nodes) == 0 {
		return Path{}, ErrPathEmpty
	}
	if nodes[0] != source {
		return Path{}, ErrPathWrongSource
	}
	for i := 1; i < len(nodes); i++ {
		if !isNeighbor(nodes[i-1], nodes[i]) {
			return Path{}, ErrPathNotConnected
		}
	}
	if view != nil {
		for _, id := range nodes {
			if !view.Contains(id) {
				return Path{}, ErrPathNotMaterialized
			}
		}
	}
	path := Path{Nodes: nodes}
	if maxEdgeDistance != nil {
		if source.Distance(path.Destination()) > *maxEdgeDistance {
			return Path{}, ErrPathTooFar
		}
	}
	return path, nil
}

func isNeighbor(a, b TowerId) bool {
	for _, n := range a.Neighbors() {
		if n == b {
			return true
		}
	}
	return false
}

// Force is a body of units in transit along a Path, owned by a player.
type Force struct {
	PlayerId PlayerId
	Units    Units
	Path     Path
}

// Destination returns the tower this force is traveling toward.
func (f Force) Destination() TowerId {
	return f.Path.Destination()
}
