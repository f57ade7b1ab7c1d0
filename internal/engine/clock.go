package engine

import "time"

// Clock supplies the current time to the engine. Injected so tests can move
// events past their end time without sleeping.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func SystemClock() Clock { return systemClock{} }
