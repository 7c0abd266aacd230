package bytecode

// Unit is one compiled program unit: a *Module or a *Script. The set of
// implementations is closed.
type Unit interface {
	// Name returns the unit's name.
	Name() string

	isUnit()
}
