// Package migrate models schema migrations: safety-classified steps,
// ordered plans, and a pure diff engine that compares two schema
// definitions and produces the plan transforming one into the other.
package migrate

// Safety classifies how risky a migration step is. Severity is ordered
// Safe < RequiresConfirmation < Destructive.
type Safety int

const (
	// Safe steps can be applied automatically.
	Safe Safety = iota
	// RequiresConfirmation steps may fail or lose precision under
	// specific existing data.
	RequiresConfirmation
	// Destructive steps cause guaranteed data loss.
	Destructive
)

func (s Safety) String() string {
	switch s {
	case Safe:
		return "safe"
	case RequiresConfirmation:
		return "requires_confirmation"
	case Destructive:
		return "destructive"
	default:
		return "unknown"
	}
}

// Max returns the more severe of the two classifications.
func (s Safety) Max(other Safety) Safety {
	if other > s {
		return other
	}
	return s
}
