// internal/types/types.go
package types

// EntityID уникальный идентификатор юнита, врага или снаряда.
type EntityID uint64
