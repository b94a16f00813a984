// internal/pipeline/priority.go
package pipeline

import (
	"fmt"
	"strings"
)

type PriorityLevel string

const (
	PriorityNone    PriorityLevel = ""
	PriorityLow     PriorityLevel = "low"
	PriorityMedium  PriorityLevel = "medium"
	PriorityHigh    PriorityLevel = "high"
	PriorityExtreme PriorityLevel = "extreme"
)

// PriorityConfig: лимит и цена compute units для уровня приоритета.
type PriorityConfig struct {
	ComputeUnits uint32 // Number of compute units
	PriorityFee  uint64 // Priority fee in micro-lamports
}

var priorityProfiles = map[PriorityLevel]PriorityConfig{
	PriorityLow: {
		ComputeUnits: 60_000,
		PriorityFee:  100_000,
	},
	PriorityMedium: {
		ComputeUnits: 60_000,
		PriorityFee:  1_000_000,
	},
	PriorityHigh: {
		ComputeUnits: 80_000,
		PriorityFee:  5_000_000,
	},
	PriorityExtreme: {
		ComputeUnits: 100_000,
		PriorityFee:  20_000_000,
	},
}

// ParsePriorityLevel принимает имя уровня без учёта регистра. Пустая строка: без пресета.
func ParsePriorityLevel(s string) (PriorityLevel, error) {
	level := PriorityLevel(strings.ToLower(strings.TrimSpace(s)))
	if level == PriorityNone {
		return PriorityNone, nil
	}
	if _, ok := priorityProfiles[level]; !ok {
		return PriorityNone, fmt.Errorf("unknown priority level: %s", s)
	}
	return level, nil
}

// WithPriority возвращает план с лимитом и ценой compute units из профиля.
// PriorityNone оставляет план без изменений.
func (p Plan) WithPriority(level PriorityLevel) (Plan, error) {
	if level == PriorityNone {
		return p, nil
	}
	cfg, ok := priorityProfiles[level]
	if !ok {
		return p, fmt.Errorf("unknown priority level: %s", level)
	}
	p.ComputeUnitLimit = cfg.ComputeUnits
	p.ComputeUnitPrice = cfg.PriorityFee
	return p, nil
}
