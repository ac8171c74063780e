package maplib

// Visibility is the three-valued fog-of-war state of a single tile for a
// single team.
type Visibility int

const (
	Hidden Visibility = iota
	Explored
	Visible
)

// FogOfWar tracks per-tile visibility for one team. A tile that was ever
// Visible can never return to Hidden; it only degrades to Explored.
type FogOfWar struct {
	Width, Height int
	grid          []Visibility
}

// NewFogOfWar creates an all-Hidden grid of the given size.
func NewFogOfWar(width, height int) *FogOfWar {
	return &FogOfWar{Width: width, Height: height, grid: make([]Visibility, width*height)}
}

func (f *FogOfWar) idx(x, y int) int { return y*f.Width + x }

func (f *FogOfWar) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < f.Width && y < f.Height
}

// At returns the visibility state of a tile; out-of-bounds reads as Hidden.
func (f *FogOfWar) At(x, y int) Visibility {
	if !f.inBounds(x, y) {
		return Hidden
	}
	return f.grid[f.idx(x, y)]
}

// IsVisible reports whether a tile is currently Visible.
func (f *FogOfWar) IsVisible(x, y int) bool { return f.At(x, y) == Visible }

// IsExplored reports whether a tile has ever been seen (Explored or
// Visible).
func (f *FogOfWar) IsExplored(x, y int) bool { return f.At(x, y) >= Explored }

// VisionSource is anything that reveals fog around itself: a living entity
// at (X,Y) with a vision radius in tiles.
type VisionSource struct {
	X, Y   float64
	Vision int
}

// Update demotes every currently-Visible tile to Explored, then reveals a
// Euclidean disc (dx²+dy² ≤ r²) around every source. Returns the tiles that
// transitioned Hidden→Visible this call, which a renderer can use for
// reveal effects; the simulation itself ignores them.
func (f *FogOfWar) Update(sources []VisionSource) [][2]int {
	for i, v := range f.grid {
		if v == Visible {
			f.grid[i] = Explored
		}
	}

	var newlyVisible [][2]int
	for _, s := range sources {
		cx, cy := int(s.X), int(s.Y)
		r := s.Vision
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if dx*dx+dy*dy > r*r {
					continue
				}
				nx, ny := cx+dx, cy+dy
				if !f.inBounds(nx, ny) {
					continue
				}
				i := f.idx(nx, ny)
				if f.grid[i] != Visible {
					if f.grid[i] == Hidden {
						newlyVisible = append(newlyVisible, [2]int{nx, ny})
					}
					f.grid[i] = Visible
				}
			}
		}
	}
	return newlyVisible
}
