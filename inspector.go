package promreg

// Inspector provides an optional capability of family metadata inspection.
// Implementations should return defensive copies.
// Snapshot semantics: best-effort at call time.
// Methods must be safe for concurrent use.
type Inspector interface {
	// FamilyWithMeta returns the metadata for a registered metric name and a
	// flag of whether it was found.
	FamilyWithMeta(name string) (FamilyMeta, bool)

	// ListFamilies returns enumeration for admin/debug UIs, in family
	// creation order.
	ListFamilies() []FamilyMeta
}

// FamilyMeta is a snapshot of one family's shared metadata.
type FamilyMeta struct {
	Name      string
	Kind      Kind
	Help      string
	Buckets   []float64 // histogram only
	Quantiles []float64 // summary only
	Window    int       // summary only
	Series    int       // number of live instances
}

// FamilyWithMeta implements Inspector for Registry.
func (r *Registry) FamilyWithMeta(name string) (FamilyMeta, bool) {
	if r.cfg.sanitize != nil {
		name = r.cfg.sanitize(name)
	}
	r.mu.RLock()
	f, ok := r.families[name]
	r.mu.RUnlock()
	if !ok {
		return FamilyMeta{}, false
	}
	return familyMeta(f), true
}

// ListFamilies implements Inspector for Registry. Families whose last
// instance was unregistered are still listed with Series 0; they emit no
// lines until re-populated.
func (r *Registry) ListFamilies() []FamilyMeta {
	families := r.familiesSnapshot()
	out := make([]FamilyMeta, 0, len(families))
	for _, f := range families {
		out = append(out, familyMeta(f))
	}
	return out
}

func familyMeta(f *family) FamilyMeta {
	m := FamilyMeta{
		Name:   f.name,
		Kind:   f.kind,
		Help:   f.help,
		Window: f.window,
		Series: f.seriesCount(),
	}
	if len(f.buckets) > 0 {
		m.Buckets = append([]float64(nil), f.buckets...)
	}
	if len(f.quantiles) > 0 {
		m.Quantiles = append([]float64(nil), f.quantiles...)
	}
	return m
}
