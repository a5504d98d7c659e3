package hddtemp

// Unit is the temperature unit reported by the daemon.
type Unit int

const (
	Celsius Unit = iota
	Fahrenheit
)

// unitTokens is shared by ParseUnit and String so both directions agree.
var unitTokens = []struct {
	token byte
	unit  Unit
}{
	{'C', Celsius},
	{'F', Fahrenheit},
}

// ParseUnit reads a unit from the first byte of token. Anything after the
// first byte is ignored, so "Cx" parses as Celsius.
func ParseUnit(token string) (Unit, error) {
	if token == "" {
		return Celsius, &TokenError{Kind: "unit", Token: token}
	}
	for _, entry := range unitTokens {
		if token[0] == entry.token {
			return entry.unit, nil
		}
	}
	return Celsius, &TokenError{Kind: "unit", Token: token}
}

func (u Unit) String() string {
	for _, entry := range unitTokens {
		if entry.unit == u {
			return string(entry.token)
		}
	}
	return "?"
}

// Celsius converts value expressed in u to degrees Celsius.
func (u Unit) Celsius(value float64) float64 {
	if u == Fahrenheit {
		return (value - 32) * 5 / 9
	}
	return value
}
