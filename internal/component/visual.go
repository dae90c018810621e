// internal/component/visual.go
package component

// VisualEffect короткоживущий эффект для отрисовки: вспышка, текст или монета.
type VisualEffect struct {
	Kind      string
	Text      string
	Lane      int
	X         float64
	CreatedAt float64
	ExpiresAt float64
}

// Expired reports whether the effect should be removed at time now.
func (v *VisualEffect) Expired(now float64) bool {
	return now >= v.ExpiresAt
}

// Progress returns how much of the lifetime has passed, in [0, 1].
func (v *VisualEffect) Progress(now float64) float64 {
	total := v.ExpiresAt - v.CreatedAt
	if total <= 0 {
		return 1
	}
	p := (now - v.CreatedAt) / total
	if p > 1 {
		return 1
	}
	return p
}
