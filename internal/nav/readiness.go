package nav

// Readiness tracks the three loading conditions that must clear before the
// first page renders.
type Readiness struct {
	IdentityLoading     bool
	AppInitializing     bool
	TranslationsLoading bool
}

// NewReadiness returns a gate with every condition still pending.
func NewReadiness() Readiness {
	return Readiness{
		IdentityLoading:     true,
		AppInitializing:     true,
		TranslationsLoading: true,
	}
}

// Ready reports whether all loading conditions have cleared.
func (r Readiness) Ready() bool {
	return !r.IdentityLoading && !r.AppInitializing && !r.TranslationsLoading
}
