package core

// EventType identifies a published event kind.
type EventType int

const (
	EvtSpawn EventType = iota
	EvtDeath
	EvtResourceCollected
	EvtGatheringStarted
	EvtProductionStarted
	EvtProductionCompleted
	EvtBuildingConstructionStart
	EvtBuildingPlaced
	EvtAttack
	EvtBaseUnderAttack
	EvtMineDepleted
	EvtInsufficientMinerals
	EvtWorkerWaitingForMinerals
	EvtUnitReady
	EvtCommand
	EvtAIDecision
)

// Event wraps a typed payload with the event kind, so subscribers never have
// to re-query the world to interpret it. Tick holds the tick the event
// occurred on for Spawn events; other publishers leave it zero.
type Event struct {
	Type    EventType
	Tick    uint64
	Payload interface{}
}

// Payload shapes, one per EventType. Field names are stable API surface for
// subscribers (renderer, audio, diagnostics).

type SpawnPayload struct {
	EntityID EntityID
	Kind     Kind
	Team     Team
	X, Y     float64
}

type DeathPayload struct {
	EntityID EntityID
	Kind     Kind
	Team     Team
	KillerID *EntityID
}

type ResourceCollectedPayload struct {
	WorkerID EntityID
	Team     Team
	Amount   int
}

type GatheringStartedPayload struct {
	WorkerID EntityID
	PatchID  int
}

type ProductionStartedPayload struct {
	BuildingID EntityID
	Kind       Kind
}

type ProductionCompletedPayload struct {
	BuildingID EntityID
	Kind       Kind
	NewUnitID  EntityID
}

type BuildingConstructionStartPayload struct {
	WorkerID EntityID
	Kind     Kind
	X, Y     float64
}

type BuildingPlacedPayload struct {
	BuildingID EntityID
	BuilderID  EntityID
	Kind       Kind
	Team       Team
	X, Y       float64
}

type AttackPayload struct {
	AttackerID EntityID
	TargetID   EntityID
	Damage     int
}

type BaseUnderAttackPayload struct {
	BaseID EntityID
	Team   Team
}

type MineDepletedPayload struct {
	PatchID int
}

type InsufficientMineralsPayload struct {
	Team Team
	Need int
	Have int
}

type WorkerWaitingForMineralsPayload struct {
	WorkerID EntityID
}

type UnitReadyPayload struct {
	UnitID EntityID
	Kind   Kind
	Name   string
	Rank   string // empty for non-Soldiers
}

type CommandPayload struct {
	UnitID EntityID
	Desc   string
}

type AIDecisionPayload struct {
	Team   Team
	State  string
	Detail string
}

// EventHandler receives an Event synchronously during Publish.
type EventHandler func(Event)

// EventBus is a synchronous, typed publish/subscribe registry owned by a
// single Simulation instance, so multiple concurrent simulations never
// share handler state. Publish invokes every handler registered for that
// type, in registration order, on the calling goroutine, before returning.
// A handler publishing further events is allowed; nested publishes of a
// different type dispatch immediately, while nested publishes of the same
// type are deferred until the outer publish's handler loop finishes, so a
// handler never re-enters its own dispatch loop.
type EventBus struct {
	handlers map[EventType][]EventHandler
	dispatching map[EventType]bool
	pending     []Event
	debug       bool
}

// NewEventBus creates an empty bus. debug controls whether a handler panic
// propagates to the publisher (debug builds) or is swallowed so remaining
// handlers still run (release builds).
func NewEventBus(debug bool) *EventBus {
	return &EventBus{
		handlers:    make(map[EventType][]EventHandler),
		dispatching: make(map[EventType]bool),
		debug:       debug,
	}
}

// On registers a handler for an event type. Handlers fire in registration
// order.
func (b *EventBus) On(t EventType, h EventHandler) {
	b.handlers[t] = append(b.handlers[t], h)
}

// Publish dispatches e to every handler registered for e.Type, synchronously,
// before returning. If called re-entrantly for the same event type from
// within one of that type's own handlers, the new event is queued and
// drained once the outer dispatch for that type completes, instead of
// recursing.
func (b *EventBus) Publish(e Event) {
	if b.dispatching[e.Type] {
		b.pending = append(b.pending, e)
		return
	}
	b.dispatching[e.Type] = true
	b.dispatchNow(e)
	b.dispatching[e.Type] = false

	// Drain anything queued by nested publishes of the same type during the
	// loop above.
	for {
		var next *Event
		for i := range b.pending {
			if b.pending[i].Type == e.Type {
				ev := b.pending[i]
				next = &ev
				b.pending = append(b.pending[:i], b.pending[i+1:]...)
				break
			}
		}
		if next == nil {
			break
		}
		b.Publish(*next)
	}
}

func (b *EventBus) dispatchNow(e Event) {
	for _, h := range b.handlers[e.Type] {
		b.invoke(h, e)
	}
}

func (b *EventBus) invoke(h EventHandler, e Event) {
	if b.debug {
		h(e)
		return
	}
	defer func() {
		_ = recover()
	}()
	h(e)
}
