// internal/utils/prng.go
package utils

import (
	"grill-defense/internal/defs"
	"math/rand"
	"time"
)

// RandomSource единственный источник случайности симуляции.
type RandomSource interface {
	Intn(n int) int
	Float64() float64
}

// PRNGService это обертка над стандартным генератором случайных чисел Go,
// которая позволяет использовать предсказуемый (seeded) рандом во всей игре.
type PRNGService struct {
	rng *rand.Rand
}

// NewPRNGService создает новый экземпляр сервиса с указанным сидом.
// Если сид равен 0, используется текущее время.
func NewPRNGService(seed int64) *PRNGService {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	source := rand.NewSource(seed)
	return &PRNGService{
		rng: rand.New(source),
	}
}

// Intn возвращает случайное целое число в диапазоне [0, n).
func (s *PRNGService) Intn(n int) int {
	return s.rng.Intn(n)
}

// Float64 возвращает случайное число с плавающей точкой в диапазоне [0.0, 1.0).
func (s *PRNGService) Float64() float64 {
	return s.rng.Float64()
}

// ChooseWeighted выполняет взвешенный случайный выбор из таблицы появления.
// Он суммирует все веса, выбирает случайное число в этом диапазоне,
// а затем находит элемент, которому соответствует это число.
func ChooseWeighted(rng RandomSource, entries []defs.SpawnEntry) string {
	if len(entries) == 0 {
		return ""
	}

	totalWeight := 0
	for _, entry := range entries {
		totalWeight += entry.Weight
	}

	if totalWeight <= 0 {
		return entries[0].EnemyID
	}

	r := rng.Intn(totalWeight)
	upto := 0
	for _, entry := range entries {
		if upto+entry.Weight > r {
			return entry.EnemyID
		}
		upto += entry.Weight
	}

	return entries[len(entries)-1].EnemyID
}

// Shuffle перемешивает n элементов алгоритмом Фишера-Йетса через источник rng.
func Shuffle(rng RandomSource, n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		swap(i, j)
	}
}

// ScriptedSource отдаёт заранее заданные значения, затем значения по умолчанию.
// Используется в тестах для воспроизводимых бросков.
type ScriptedSource struct {
	Floats       []float64
	Ints         []int
	DefaultFloat float64
	DefaultInt   int
}

// Intn returns the next scripted int reduced into [0, n).
func (s *ScriptedSource) Intn(n int) int {
	v := s.DefaultInt
	if len(s.Ints) > 0 {
		v, s.Ints = s.Ints[0], s.Ints[1:]
	}
	if n <= 0 {
		return 0
	}
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// Float64 returns the next scripted float.
func (s *ScriptedSource) Float64() float64 {
	if len(s.Floats) > 0 {
		v := s.Floats[0]
		s.Floats = s.Floats[1:]
		return v
	}
	return s.DefaultFloat
}
