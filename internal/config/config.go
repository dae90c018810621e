// internal/config/config.go
package config

import "image/color"

const (
	ScreenWidth       = 1200
	ScreenHeight      = 760
	MaxDeltaTime      = 0.06
	ClickDebounceTime = 100

	// Нормализованная длина дорожки: 0 у игрока, 100 у точки появления.
	LaneLength      = 100.0
	ProjectileExitX = 110.0
	FrameMs         = 16.0 // базовый кадр для масштабирования скоростей

	BoardOffsetX = 140.0
	BoardOffsetY = 90.0
	BoardWidth   = 1000.0
	LaneHeight   = 110.0

	HUDHeight     = 70
	ShopRowHeight = 24

	UnitRadius       = 16.0
	EnemyRadius      = 13.0
	ProjectileRadius = 4.0
	CoinRadius       = 6.0

	EffectLifetimeMs = 600.0
	TextLifetimeMs   = 900.0
	HighlightMs      = 150.0
)

var (
	BackgroundColor = color.RGBA{28, 22, 20, 255}
	LaneColor       = color.RGBA{60, 45, 38, 255}
	LaneAltColor    = color.RGBA{70, 52, 42, 255}
	SlotStroke      = color.RGBA{120, 96, 80, 255}
	SelectedStroke  = color.RGBA{250, 210, 80, 255}
	TextLightColor  = color.RGBA{240, 240, 240, 255}
	HPBarBack       = color.RGBA{40, 40, 40, 220}
	HPBarUnit       = color.RGBA{80, 210, 90, 255}
	HPBarEnemy      = color.RGBA{220, 60, 60, 255}
	EnemyColor      = color.RGBA{120, 110, 105, 255}
	BossColor       = color.RGBA{150, 20, 30, 255}
	PhasingColor    = color.RGBA{160, 160, 220, 90}
	ProjectileColor = color.RGBA{255, 200, 60, 255}
	CoinColor       = color.RGBA{250, 204, 21, 255}
	HighlightColor  = color.RGBA{255, 255, 255, 200}
	StunColor       = color.RGBA{120, 180, 255, 255}
	OverheatColor   = color.RGBA{255, 80, 20, 255}
	PauseOverlay    = color.RGBA{0, 0, 0, 128}

	// Цвета семейств для отрисовки юнитов.
	FamilyColors = map[string]color.RGBA{
		"BEEF":         {180, 60, 50, 255},
		"CHILI":        {230, 40, 30, 255},
		"GARLIC":       {235, 230, 210, 255},
		"CORN":         {245, 210, 60, 255},
		"SAUSAGE":      {200, 90, 70, 255},
		"MUSHROOM":     {150, 110, 80, 255},
		"ONION":        {170, 100, 190, 255},
		"GREEN_PEPPER": {70, 170, 70, 255},
		"SHRIMP":       {250, 140, 110, 255},
		"CHICKEN":      {220, 160, 90, 255},
		"SQUID":        {230, 200, 220, 255},
		"PINEAPPLE":    {250, 200, 40, 255},
		"MARSHMALLOW":  {250, 240, 250, 255},
		"HAZARD":       {110, 130, 40, 255},
		"SUPREME":      {90, 220, 250, 255},
		"BONUS":        {240, 150, 200, 255},
		"SEASONING":    {255, 170, 0, 255},
	}
)
