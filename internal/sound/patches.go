// internal/sound/patches.go
package sound

import (
	"grill-defense/internal/event"
	"time"
)

const ms = time.Millisecond

var kindPatches = map[event.SoundKind][]note{
	event.SoundDamage: {
		{wave: WaveSaw, from: 100, to: 100, duration: 100 * ms, volume: 0.2},
		{wave: WaveSquare, from: 80, to: 80, duration: 200 * ms, volume: 0.2},
	},
	event.SoundEnemyDeath: {{wave: WaveSaw, from: 300, to: 50, duration: 100 * ms, volume: 0.1}},
	event.SoundReflect:    {{wave: WaveSquare, from: 800, to: 1200, duration: 100 * ms, volume: 0.05}},
	event.SoundAutoUpgrade: {
		{wave: WaveSine, from: 523.25, to: 523.25, duration: 100 * ms, volume: 0.1},
		{wave: WaveSine, from: 659.25, to: 659.25, duration: 100 * ms, volume: 0.1, delay: 50 * ms},
		{wave: WaveSine, from: 783.99, to: 783.99, duration: 100 * ms, volume: 0.1, delay: 100 * ms},
		{wave: WaveSine, from: 1046.5, to: 1046.5, duration: 100 * ms, volume: 0.1, delay: 150 * ms},
	},
	event.SoundSkillUnlock: {
		{wave: WaveSine, from: 1318.51, to: 1318.51, duration: 100 * ms, volume: 0.1},
		{wave: WaveSine, from: 1661.22, to: 1661.22, duration: 300 * ms, volume: 0.1, delay: 100 * ms},
	},
	event.SoundSkill:     {{wave: WaveTriangle, from: 400, to: 900, duration: 250 * ms, volume: 0.08}},
	event.SoundExplosion: {{wave: WaveSaw, from: 100, to: 20, duration: 300 * ms, volume: 0.15}},
	event.SoundCoin: {
		{wave: WaveSquare, from: 987.77, to: 987.77, duration: 60 * ms, volume: 0.04},
		{wave: WaveSquare, from: 1318.51, to: 1318.51, duration: 120 * ms, volume: 0.04, delay: 60 * ms},
	},
	event.SoundVictory: {
		{wave: WaveTriangle, from: 523.25, to: 523.25, duration: 200 * ms, volume: 0.1},
		{wave: WaveTriangle, from: 659.25, to: 659.25, duration: 200 * ms, volume: 0.1, delay: 150 * ms},
		{wave: WaveTriangle, from: 783.99, to: 783.99, duration: 400 * ms, volume: 0.1, delay: 300 * ms},
	},
	event.SoundDefeat: {
		{wave: WaveSaw, from: 440, to: 420, duration: 500 * ms, volume: 0.1},
		{wave: WaveSaw, from: 380, to: 360, duration: 500 * ms, volume: 0.1, delay: 600 * ms},
		{wave: WaveSaw, from: 320, to: 300, duration: 800 * ms, volume: 0.1, delay: 1200 * ms},
	},
}

// Голоса выстрелов по типу юнита.
var attackPatches = map[string][]note{
	"CHILI":      {{wave: WaveSquare, from: 800, to: 300, duration: 100 * ms, volume: 0.05}},
	"KING_CHILI": {{wave: WaveSaw, from: 900, to: 400, duration: 100 * ms, volume: 0.06}},
	"BEEF":       {{wave: WaveTriangle, from: 150, to: 50, duration: 150 * ms, volume: 0.1}},
	"KING_BEEF":  {{wave: WaveSquare, from: 120, to: 40, duration: 150 * ms, volume: 0.12}},
	"GOD_BEEF":   {{wave: WaveSaw, from: 100, to: 20, duration: 300 * ms, volume: 0.15}},
	"CORN":       {{wave: WaveSine, from: 600, to: 800, duration: 50 * ms, volume: 0.05}},
	"SAUSAGE":    {{wave: WaveSaw, from: 800, to: 100, duration: 200 * ms, volume: 0.05}},
	"MUSHROOM":   {{wave: WaveSaw, from: 100, to: 300, duration: 200 * ms, volume: 0.05}},
	"SHRIMP":     {{wave: WaveTriangle, from: 300, to: 500, duration: 150 * ms, volume: 0.05}},
	"SQUID":      {{wave: WaveSquare, from: 200, to: 100, duration: 100 * ms, volume: 0.05}},
	"PINEAPPLE": {
		{wave: WaveSine, from: 1200, to: 1200, duration: 100 * ms, volume: 0.05},
		{wave: WaveSine, from: 1600, to: 1600, duration: 100 * ms, volume: 0.05},
	},
	"MARSHMALLOW": {{wave: WaveSine, from: 400, to: 600, duration: 300 * ms, volume: 0.05}},
}

var defaultAttack = []note{{wave: WaveTriangle, from: 300, to: 200, duration: 100 * ms, volume: 0.05}}

// patchFor возвращает ноты для запроса или nil, если звук не известен.
func patchFor(kind event.SoundKind, unitType string) []note {
	if kind == event.SoundAttack {
		if p, ok := attackPatches[unitType]; ok {
			return p
		}
		return defaultAttack
	}
	return kindPatches[kind]
}
