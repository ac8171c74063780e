package core

import "math"

// EntityID stably identifies an entity for the lifetime of a game. IDs are
// never reused, even after the entity they named is removed.
type EntityID uint64

// Team identifies a side. Team 1 is always human-controlled, Team 2 is
// always the AI opponent (see engine/systems/ai.go).
type Team int

const (
	TeamHuman    Team = 1
	TeamOpponent Team = 2
)

// Kind tags the concrete variant an Entity carries. Systems pattern-match on
// Kind instead of relying on a virtual dispatch hierarchy.
type Kind int

const (
	KindWorker Kind = iota
	KindSoldier
	KindBase
	KindBarracks
)

func (k Kind) String() string {
	switch k {
	case KindWorker:
		return "Worker"
	case KindSoldier:
		return "Soldier"
	case KindBase:
		return "Base"
	case KindBarracks:
		return "Barracks"
	default:
		return "Unknown"
	}
}

// Entity is the shared surface every tagged variant below implements. There
// is no dynamic-dispatch hierarchy: systems type-switch on the concrete
// *Unit / *Building pointer when they need variant-specific fields.
type Entity interface {
	ID() EntityID
	TeamID() Team
	Pos() (float64, float64)
	HP() int
	MaxHP() int
	Alive() bool
	EntityKind() Kind
}

// WorkerState enumerates the worker gather/build state machine.
type WorkerState int

const (
	WorkerIdle WorkerState = iota
	WorkerMovingToMineral
	WorkerGathering
	WorkerReturning
	WorkerBuilding
)

// BuildTarget names a building a worker has been ordered to construct.
type BuildTarget struct {
	Kind Kind
	X, Y float64
}

// Unit is the tagged variant for mobile entities (Worker, Soldier).
type Unit struct {
	id      EntityID
	team    Team
	X, Y    float64
	HPCur   int
	HPMax   int
	IsAlive bool

	Kind Kind // KindWorker or KindSoldier

	Speed       float64
	Vision      int
	Destination *[2]float64
	Path        []PathPoint
	Target      *EntityID
	Angle       float64 // facing, degrees, 0 = +X

	// stuck detection (movement system)
	StuckTimer   float64
	LastStuckX   float64
	LastStuckY   float64
	HasStuckMark bool

	// Worker-only fields
	CarryCapacity      int
	Carrying           int
	GatherTarget       *int // MineralPatch ID
	BuildTarget        *BuildTarget
	WState             WorkerState
	WaitingForMinerals bool

	// Soldier-only fields
	Damage         int
	AttackRange    float64
	AttackCooldown float64
	CooldownLeft   float64
}

// PathPoint is one waypoint in a computed grid path.
type PathPoint struct {
	X, Y int
}

func (u *Unit) ID() EntityID            { return u.id }
func (u *Unit) TeamID() Team            { return u.team }
func (u *Unit) Pos() (float64, float64) { return u.X, u.Y }
func (u *Unit) HP() int                 { return u.HPCur }
func (u *Unit) MaxHP() int              { return u.HPMax }
func (u *Unit) Alive() bool             { return u.IsAlive }
func (u *Unit) EntityKind() Kind        { return u.Kind }

// TakeDamage reduces HP, clamping at 0 and flipping Alive when lethal.
func (u *Unit) TakeDamage(amount int) {
	u.HPCur -= amount
	if u.HPCur <= 0 {
		u.HPCur = 0
		u.IsAlive = false
	}
}

// DistanceTo returns the Euclidean distance from the unit to a point.
func (u *Unit) DistanceTo(x, y float64) float64 {
	dx := x - u.X
	dy := y - u.Y
	return math.Hypot(dx, dy)
}

// Building is the tagged variant for static production structures (Base,
// Barracks).
type Building struct {
	id      EntityID
	team    Team
	X, Y    float64
	HPCur   int
	HPMax   int
	IsAlive bool

	Kind   Kind // KindBase or KindBarracks
	Vision int

	ProductionQueue    []Kind
	ProductionProgress float64
	WaitingForMinerals bool
	RallyPoint         *[2]float64
}

const MaxProductionQueue = 5

func (b *Building) ID() EntityID            { return b.id }
func (b *Building) TeamID() Team            { return b.team }
func (b *Building) Pos() (float64, float64) { return b.X, b.Y }
func (b *Building) HP() int                 { return b.HPCur }
func (b *Building) MaxHP() int              { return b.HPMax }
func (b *Building) Alive() bool             { return b.IsAlive }
func (b *Building) EntityKind() Kind        { return b.Kind }

func (b *Building) TakeDamage(amount int) {
	b.HPCur -= amount
	if b.HPCur <= 0 {
		b.HPCur = 0
		b.IsAlive = false
	}
}

// CurrentProduction returns the unit kind at the head of the queue, if any.
func (b *Building) CurrentProduction() (Kind, bool) {
	if len(b.ProductionQueue) == 0 {
		return 0, false
	}
	return b.ProductionQueue[0], true
}

// QueueProduction appends a unit kind to the queue. Returns false (no side
// effect) if the queue is already at MaxProductionQueue.
func (b *Building) QueueProduction(kind Kind) bool {
	if len(b.ProductionQueue) >= MaxProductionQueue {
		return false
	}
	b.ProductionQueue = append(b.ProductionQueue, kind)
	return true
}

// CompleteProduction pops the queue head and resets progress.
func (b *Building) CompleteProduction() (Kind, bool) {
	if len(b.ProductionQueue) == 0 {
		return 0, false
	}
	k := b.ProductionQueue[0]
	b.ProductionQueue = b.ProductionQueue[1:]
	b.ProductionProgress = 0
	return k, true
}

// ProducedKind returns which unit kind a building kind produces.
func ProducedKind(buildingKind Kind) Kind {
	if buildingKind == KindBarracks {
		return KindSoldier
	}
	return KindWorker
}
