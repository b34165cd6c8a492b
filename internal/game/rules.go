package game

import "time"

// Rules are the timing knobs of a session.
type Rules struct {
	// GravityUnit is the drop period at level 1; level n falls n times faster.
	GravityUnit time.Duration
	// MaxSpeedLevel caps the gravity speed-up. Levels past it keep its period.
	MaxSpeedLevel int
	LockDelay     time.Duration
}

func DefaultRules() Rules {
	return Rules{
		GravityUnit:   time.Second,
		MaxSpeedLevel: 20,
		LockDelay:     time.Second,
	}
}

func (r Rules) GravityPeriod(level int) time.Duration {
	if level < 1 {
		level = 1
	}
	if r.MaxSpeedLevel > 0 && level > r.MaxSpeedLevel {
		level = r.MaxSpeedLevel
	}
	return r.GravityUnit / time.Duration(level)
}
