package component

// Shape is the bounding shape used for collision. Only whole-tile bodies exist.
type Shape uint8

const (
	ShapeTile Shape = iota
)

// Collision marks an entity as solid. Two enabled bodies may not share a tile.
type Collision struct {
	Enabled bool
	Shape   Shape
}

// EnergyLevel tracks an entity's stored energy.
type EnergyLevel struct {
	Current uint32
	Max     uint32
}

// MineableNode tags a world resource deposit and the kind it yields.
type MineableNode struct {
	Kind ResourceKind
}
