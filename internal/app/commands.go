// internal/app/commands.go
package app

import (
	"errors"
	"grill-defense/internal/component"
	"grill-defense/internal/defs"
	"grill-defense/internal/event"
	"grill-defense/internal/system"
	"math"
)

// Command rejections. A rejected command leaves the session untouched.
var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrSlotOccupied      = errors.New("slot is occupied")
	ErrSlotEmpty         = errors.New("slot is empty")
	ErrNoSuchSlot        = errors.New("no such slot")
	ErrUnknownType       = errors.New("unknown type")
	ErrNotForSale        = errors.New("unit is not for sale")
	ErrNotSellable       = errors.New("unit cannot be sold")
	ErrMaxLevel          = errors.New("unit is at max level")
	ErrSkillUnavailable  = errors.New("skill not available for this unit")
	ErrSkillUnlocked     = errors.New("skill already unlocked")
	ErrLevelTooLow       = errors.New("unit level too low for skill")
	ErrNoSkillPoints     = errors.New("not enough skill points")
	ErrNothingToReset    = errors.New("no skills to reset")
	ErrNotEnoughHeat     = errors.New("not enough heat")
	ErrWrongPhase        = system.ErrWrongPhase
)

// PlaceUnit buys a unit of the given type into an empty slot.
func (g *Game) PlaceUnit(lane, index int, unitType string) error {
	if !g.Phase().Playing() {
		return ErrWrongPhase
	}
	slot, ok := g.world.Slot(lane, index)
	if !ok {
		return ErrNoSuchSlot
	}
	def, ok := g.Lib.Unit(unitType)
	if !ok {
		return ErrUnknownType
	}
	if def.Unique {
		return ErrNotForSale
	}
	if !slot.Empty() {
		return ErrSlotOccupied
	}
	if g.world.Player.Money < def.Cost {
		return ErrInsufficientFunds
	}

	g.world.Player.Money -= def.Cost
	g.placeUnit(slot, unitType)
	return nil
}

func (g *Game) placeUnit(slot *component.Slot, unitType string) *component.Unit {
	def := g.Lib.Units[unitType]
	u := component.NewUnit(g.world.NewEntity(), unitType, def.HP, g.now)
	slot.Unit = u
	g.EventDispatcher.Dispatch(event.Event{Type: event.UnitPlaced, Data: event.UnitData{ID: u.ID, Type: u.Type, Lane: slot.Lane, Slot: slot.Index, Level: u.Level}})
	return u
}

// occupied returns the slot and its unit or a rejection.
func (g *Game) occupied(lane, index int) (*component.Slot, *component.Unit, error) {
	slot, ok := g.world.Slot(lane, index)
	if !ok {
		return nil, nil, ErrNoSuchSlot
	}
	if slot.Empty() {
		return nil, nil, ErrSlotEmpty
	}
	return slot, slot.Unit, nil
}

// UpgradeCost возвращает цену следующего уровня с учётом скидки.
func (g *Game) UpgradeCost(u *component.Unit) int {
	def := g.Lib.Units[u.Type]
	cost := float64(def.Cost) * math.Pow(g.Settings.UpgradeCostMultiplier, float64(u.Level))
	for _, sk := range g.Lib.SkillsFor(u.Type) {
		if sk.Effect == defs.EffectDiscount && u.HasSkill(sk.ID) {
			cost *= 1 - sk.Value
		}
	}
	return int(math.Floor(cost))
}

// UpgradeUnit покупает уровень юниту. Здоровье растёт пропорционально максимуму.
func (g *Game) UpgradeUnit(lane, index int) error {
	if !g.Phase().Playing() {
		return ErrWrongPhase
	}
	slot, u, err := g.occupied(lane, index)
	if err != nil {
		return err
	}
	if u.Level >= g.Settings.MaxLevel {
		return ErrMaxLevel
	}
	cost := g.UpgradeCost(u)
	if g.world.Player.Money < cost {
		return ErrInsufficientFunds
	}

	g.world.Player.Money -= cost
	u.Level++
	if u.Level%g.Settings.SkillPointInterval == 0 {
		u.SkillPoints++
	}
	g.refreshMaxHP(u)

	g.EventDispatcher.Dispatch(event.Event{Type: event.UnitLeveled, Data: event.UnitData{ID: u.ID, Type: u.Type, Lane: slot.Lane, Slot: slot.Index, Level: u.Level}})
	g.requestEffect(event.EffectLevelUp, slot)
	return nil
}

// refreshMaxHP пересчитывает максимум и сохраняет долю здоровья.
func (g *Game) refreshMaxHP(u *component.Unit) {
	oldMax := u.MaxHP
	u.MaxHP = system.UnitMaxHP(g.Lib, &g.Settings, u)
	if oldMax > 0 {
		u.HP *= u.MaxHP / oldMax
	}
	if u.HP > u.MaxHP {
		u.HP = u.MaxHP
	}
}

// SellUnit removes a unit and refunds part of its price.
func (g *Game) SellUnit(lane, index int) error {
	if !g.Phase().Playing() {
		return ErrWrongPhase
	}
	slot, u, err := g.occupied(lane, index)
	if err != nil {
		return err
	}
	def := g.Lib.Units[u.Type]
	if def.Unique {
		return ErrNotSellable
	}

	refund := int(math.Floor(float64(def.Cost) * g.Settings.SellRefund))
	g.world.Player.Money += refund
	slot.Unit = nil
	g.EventDispatcher.Dispatch(event.Event{Type: event.UnitSold, Data: event.UnitData{ID: u.ID, Type: u.Type, Lane: slot.Lane, Slot: slot.Index, Level: u.Level}})
	g.EventDispatcher.Dispatch(event.Event{Type: event.CoinDropped, Data: event.CoinData{Value: refund, Lane: slot.Lane, X: g.world.SlotCenter(slot.Index)}})
	return nil
}

// UnlockSkill spends skill points on one of the unit's skills.
func (g *Game) UnlockSkill(lane, index int, skillID string) error {
	if !g.Phase().Playing() {
		return ErrWrongPhase
	}
	slot, u, err := g.occupied(lane, index)
	if err != nil {
		return err
	}

	var skill *defs.SkillDefinition
	for _, sk := range g.Lib.SkillsFor(u.Type) {
		if sk.ID == skillID {
			skill = &sk
			break
		}
	}
	switch {
	case skill == nil:
		return ErrSkillUnavailable
	case u.HasSkill(skillID):
		return ErrSkillUnlocked
	case u.Level < skill.UnlockLevel:
		return ErrLevelTooLow
	case u.SkillPoints < skill.Cost:
		return ErrNoSkillPoints
	}

	u.Skills[skillID] = true
	u.SkillPoints -= skill.Cost
	u.SpentSkillPoints += skill.Cost
	if skill.Effect == defs.EffectHPBoost {
		g.refreshMaxHP(u)
	}

	g.requestSound(event.SoundSkillUnlock, u.Type)
	g.requestEffect(event.EffectLevelUp, slot)
	return nil
}

// ResetSkills locks every skill of the unit again and refunds the spent points.
func (g *Game) ResetSkills(lane, index int) error {
	if !g.Phase().Playing() {
		return ErrWrongPhase
	}
	_, u, err := g.occupied(lane, index)
	if err != nil {
		return err
	}
	if u.SpentSkillPoints == 0 {
		return ErrNothingToReset
	}
	if g.world.Player.Money < g.Settings.SkillResetCost {
		return ErrInsufficientFunds
	}

	g.world.Player.Money -= g.Settings.SkillResetCost
	u.SkillPoints += u.SpentSkillPoints
	u.SpentSkillPoints = 0
	clear(u.Skills)
	g.refreshMaxHP(u)
	return nil
}

// ActivateOverheat спускает полную шкалу жара: все атаки вдвое чаще на время.
func (g *Game) ActivateOverheat() error {
	if !g.Phase().Playing() {
		return ErrWrongPhase
	}
	p := &g.world.Player
	if p.Heat < g.Settings.MaxHeat {
		return ErrNotEnoughHeat
	}
	p.Heat = 0
	p.OverheatUntil = g.now + g.Settings.OverheatMs
	g.requestSound(event.SoundSkill, "")
	return nil
}

// Revive восстанавливает игрока после поражения за деньги и отталкивает врагов.
func (g *Game) Revive() error {
	if !g.PhaseSystem.Can(system.EventRevive) {
		return ErrWrongPhase
	}
	p := &g.world.Player
	if p.Money < g.Settings.ReviveCost {
		return ErrInsufficientFunds
	}

	p.Money -= g.Settings.ReviveCost
	p.HP = p.MaxHP
	for _, e := range g.world.Enemies {
		e.X = math.Min(e.X+g.Settings.RevivePushback, g.Settings.SpawnX)
	}
	return g.PhaseSystem.Fire(system.EventRevive)
}

// NextWave начинает следующую волну после победы: бонус, полное здоровье,
// чистая доска со свежим капитаном.
func (g *Game) NextWave() error {
	if !g.PhaseSystem.Can(system.EventAdvance) {
		return ErrWrongPhase
	}
	p := &g.world.Player
	p.Money += g.Settings.WaveBonusBase + g.Settings.WaveBonusStep*p.Wave
	p.Wave++
	p.HP = p.MaxHP
	p.Heat = math.Max(0, p.Heat-g.Settings.NextWaveHeatDrain)
	p.OverheatUntil = 0

	g.world.ClearBoard()
	g.placeCaptain()
	g.WaveSystem.Reset(g.now)
	g.UnitSystem.Reset(g.now)
	return g.PhaseSystem.Fire(system.EventAdvance)
}

// Pause freezes the session.
func (g *Game) Pause() error {
	return g.PhaseSystem.Fire(system.EventPause)
}

// Resume continues a paused session.
func (g *Game) Resume() error {
	return g.PhaseSystem.Fire(system.EventResume)
}

func (g *Game) requestEffect(kind string, slot *component.Slot) {
	g.EventDispatcher.Dispatch(event.Event{Type: event.EffectRequested, Data: event.EffectData{Kind: kind, Lane: slot.Lane, X: g.world.SlotCenter(slot.Index)}})
}

func (g *Game) requestSound(kind event.SoundKind, unitType string) {
	g.EventDispatcher.Dispatch(event.Event{Type: event.SoundRequested, Data: event.SoundData{Kind: kind, UnitType: unitType}})
}
