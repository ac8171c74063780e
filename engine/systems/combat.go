package systems

import "github.com/1siamBot/microcraft/engine/core"

const baseAttackCooldownWindow = 10.0 // seconds between BaseUnderAttack alerts per base

// CombatState carries per-world mutable combat bookkeeping that doesn't
// belong on any single entity: the last-notified time for each base's
// BaseUnderAttack rate limit. The limit is per base, not per attacker, so
// simultaneous attackers trigger a single notification.
type CombatState struct {
	lastBaseAlert map[core.EntityID]float64
}

// NewCombatState creates empty bookkeeping.
func NewCombatState() *CombatState {
	return &CombatState{lastBaseAlert: make(map[core.EntityID]float64)}
}

// RunCombat acquires targets, applies damage on cooldown, and publishes
// Attack/BaseUnderAttack/Death events. Deaths are collected during the loop
// and published only after every soldier has acted, so a unit's own death
// this tick can't change iteration order mid-loop.
func RunCombat(w *core.World, cs *CombatState, dt float64) {
	type pendingDeath struct {
		target   core.Entity
		killer   core.EntityID
	}
	var deaths []pendingDeath

	for _, u := range w.Units(0) {
		if u.Kind != core.KindSoldier || !u.Alive() {
			continue
		}
		if u.CooldownLeft > 0 {
			u.CooldownLeft -= dt
		}

		if u.Target == nil || !targetAlive(w, *u.Target) {
			u.Target = findNearestEnemy(w, u, u.AttackRange*2)
		}
		if u.Target == nil {
			continue
		}

		target, _ := w.Entity(*u.Target)
		tx, ty := target.Pos()
		dist := u.DistanceTo(tx, ty)

		if dist > u.AttackRange {
			u.Destination = &[2]float64{tx, ty}
			continue
		}
		u.Destination = nil

		if u.CooldownLeft > 0 {
			continue
		}

		dealDamage(target, u.Damage)
		u.CooldownLeft = u.AttackCooldown

		if w.Bus != nil {
			w.Bus.Publish(core.Event{Type: core.EvtAttack, Payload: core.AttackPayload{
				AttackerID: u.ID(), TargetID: target.ID(), Damage: u.Damage,
			}})
		}

		if b, ok := target.(*core.Building); ok && b.Kind == core.KindBase {
			last, seen := cs.lastBaseAlert[b.ID()]
			if !seen || w.GameTime-last >= baseAttackCooldownWindow {
				cs.lastBaseAlert[b.ID()] = w.GameTime
				if w.Bus != nil {
					w.Bus.Publish(core.Event{Type: core.EvtBaseUnderAttack, Payload: core.BaseUnderAttackPayload{
						BaseID: b.ID(), Team: b.TeamID(),
					}})
				}
			}
		}

		if !target.Alive() {
			killer := u.ID()
			deaths = append(deaths, pendingDeath{target: target, killer: killer})
		}
	}

	for _, d := range deaths {
		if w.Bus != nil {
			killer := d.killer
			w.Bus.Publish(core.Event{Type: core.EvtDeath, Payload: core.DeathPayload{
				EntityID: d.target.ID(), Kind: d.target.EntityKind(), Team: d.target.TeamID(), KillerID: &killer,
			}})
		}
	}
}

func dealDamage(e core.Entity, amount int) {
	switch v := e.(type) {
	case *core.Unit:
		v.TakeDamage(amount)
	case *core.Building:
		v.TakeDamage(amount)
	}
}

func targetAlive(w *core.World, id core.EntityID) bool {
	e, ok := w.Entity(id)
	return ok && e.Alive()
}

// findNearestEnemy returns the nearest live enemy entity to u within range,
// or nil. Ties break by stable entity order (w.AllEntities() is
// insertion-ordered).
func findNearestEnemy(w *core.World, u *core.Unit, rangeLimit float64) *core.EntityID {
	var best core.Entity
	bestDist := -1.0
	for _, e := range w.AllEntities() {
		if e.TeamID() == u.TeamID() || !e.Alive() {
			continue
		}
		ex, ey := e.Pos()
		dx := ex - u.X
		dy := ey - u.Y
		d := dx*dx + dy*dy
		if d > rangeLimit*rangeLimit {
			continue
		}
		if best == nil || d < bestDist {
			best = e
			bestDist = d
		}
	}
	if best == nil {
		return nil
	}
	id := best.ID()
	return &id
}
