package hddtemp

// Result classifies whether a device line carries a temperature reading.
// The zero value is ResultKnown.
type Result int

const (
	ResultKnown Result = iota
	ResultError
	ResultNotApplicable
	ResultUnknown
	ResultNoSensor
	ResultDriveSleep
)

// resultTokens follows the order the daemon declares its codes in.
// ResultKnown has the empty token and is never produced by ParseResult.
var resultTokens = []struct {
	token  string
	label  string
	result Result
}{
	{"ERR", "error", ResultError},
	{"NA", "not_applicable", ResultNotApplicable},
	{"UNK", "unknown", ResultUnknown},
	{"", "known", ResultKnown},
	{"NOS", "no_sensor", ResultNoSensor},
	{"SLP", "drive_sleep", ResultDriveSleep},
}

// ParseResult maps an error token from a `*` row to its Result.
// Only the five non-Known tokens are accepted.
func ParseResult(token string) (Result, error) {
	if token != "" {
		for _, entry := range resultTokens {
			if entry.token == token {
				return entry.result, nil
			}
		}
	}
	return ResultKnown, &TokenError{Kind: "result", Token: token}
}

// String returns the protocol token. ResultKnown formats as "".
func (r Result) String() string {
	for _, entry := range resultTokens {
		if entry.result == r {
			return entry.token
		}
	}
	return "?"
}

// Label returns a stable lowercase name for metrics and JSON output.
func (r Result) Label() string {
	for _, entry := range resultTokens {
		if entry.result == r {
			return entry.label
		}
	}
	return "invalid"
}

// Results lists every kind in protocol order.
func Results() []Result {
	out := make([]Result, 0, len(resultTokens))
	for _, entry := range resultTokens {
		out = append(out, entry.result)
	}
	return out
}
