package component

// Health tracks an entity's hit points.
type Health struct {
	Maximum int
	Current int
}

// NewHealth returns a full Health.
func NewHealth(maximum int) *Health {
	if maximum < 0 {
		maximum = 0
	}
	return &Health{Maximum: maximum, Current: maximum}
}

// WithCurrent sets the current health, capped at Maximum.
func (h *Health) WithCurrent(current int) *Health {
	switch {
	case current >= h.Maximum:
		h.Current = h.Maximum
	case current < 0:
		h.Current = 0
	default:
		h.Current = current
	}
	return h
}

var HealthComponent = NewComponent[Health]()

// Damage is a pending one-shot damage request, consumed by the health system.
type Damage struct {
	Value int
}

var DamageComponent = NewComponent[Damage]()

// DamageFactor is how much damage an entity deals on contact.
type DamageFactor struct {
	Value int
}

var DamageFactorComponent = NewComponent[DamageFactor]()

// Heal is a pending one-shot heal request, consumed by the health system.
type Heal struct {
	Value int
}

var HealComponent = NewComponent[Heal]()

// HealFactor is how much an entity heals whoever collects it.
type HealFactor struct {
	Value int
}

var HealFactorComponent = NewComponent[HealFactor]()
