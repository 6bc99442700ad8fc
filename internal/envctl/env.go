package envctl

import "os"

// Environment variable names recognized by the Anthropic CLI tooling these
// presets configure. They must match verbatim.
const (
	EnvAuthToken      = "ANTHROPIC_AUTH_TOKEN"
	EnvBaseURL        = "ANTHROPIC_BASE_URL"
	EnvModel          = "ANTHROPIC_MODEL"
	EnvSmallFastModel = "ANTHROPIC_SMALL_FAST_MODEL"
)

// Keys lists the recognized variables in display order.
var Keys = []string{EnvAuthToken, EnvBaseURL, EnvModel, EnvSmallFastModel}

// Variable is one recognized key and its current value in some scope.
// Set distinguishes "present but empty" from "absent".
type Variable struct {
	Key   string
	Value string
	Set   bool
}

// Snapshot is a read-only view of the recognized keys, in Keys order. It is
// a live query result, never persisted.
type Snapshot []Variable

// Get returns the variable for key, if key is recognized.
func (s Snapshot) Get(key string) (Variable, bool) {
	for _, v := range s {
		if v.Key == key {
			return v, true
		}
	}
	return Variable{}, false
}

// ReadCurrent queries the recognized keys from the process environment.
// Pure read, no side effects.
func ReadCurrent() Snapshot {
	return SnapshotFrom(os.LookupEnv)
}

// SnapshotFrom builds a Snapshot using lookup instead of os.LookupEnv.
func SnapshotFrom(lookup func(string) (string, bool)) Snapshot {
	snap := make(Snapshot, 0, len(Keys))
	for _, k := range Keys {
		val, ok := lookup(k)
		snap = append(snap, Variable{Key: k, Value: val, Set: ok})
	}
	return snap
}
