package datewindow

import "time"

// Clock entrega "ahora" en la zona horaria del usuario.
// Se inyecta en los services para que los tests fijen el tiempo.
type Clock struct {
	Now      func() time.Time
	Location *time.Location
}

func SystemClock(loc *time.Location) Clock {
	return Clock{Now: time.Now, Location: loc}
}

// FixedClock sirve para tests.
func FixedClock(t time.Time) Clock {
	return Clock{
		Now:      func() time.Time { return t },
		Location: t.Location(),
	}
}

func (c Clock) Current() time.Time {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	t := now()
	if c.Location != nil {
		t = t.In(c.Location)
	}
	return t
}

func (c Clock) Today() Date {
	return Today(c.Current())
}
