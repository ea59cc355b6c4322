package session

// State is the position of a session in its edit lifecycle.
type State int

const (
	// Empty means no source image has been loaded.
	Empty State = iota
	// Loaded means a source is present but not yet inverted.
	Loaded
	// Baseline means the inverted image is rendered with no correction.
	Baseline
	// Corrected means a non-zero correction is applied to the baseline.
	Corrected
)

var stateNames = [...]string{
	Empty:     "Empty",
	Loaded:    "Loaded",
	Baseline:  "Baseline",
	Corrected: "Corrected",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "Unknown"
	}
	return stateNames[s]
}

// Inverted reports whether a baseline exists in this state.
func (s State) Inverted() bool {
	return s == Baseline || s == Corrected
}

// Status returns the user-facing message shown while in state s.
func (s State) Status() string {
	switch s {
	case Empty:
		return "System Ready. Please Upload Target Image."
	case Loaded:
		return "Target Acquired. Initiate Inversion."
	case Baseline, Corrected:
		return "Success! Inversion Complete."
	default:
		return msgFailure
	}
}
