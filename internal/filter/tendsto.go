package filter

// Tendsto reports whether f converges along m from source filter src to
// target filter dst: the pushforward of src lies below dst. Equivalently,
// every member of dst pulls back to a member of src.
//
// Convergence composes: Tendsto(f, F, G) and Tendsto(g, G, H) imply
// Tendsto(g∘f, F, H), purely from monotonicity and functoriality of Map and
// transitivity of Leq. This single fact subsumes every composition-of-limits
// statement expressible in the lab.
func Tendsto(m *Mapping, src, dst *Filter) (bool, error) {
	pushed, err := Map(m, src)
	if err != nil {
		return false, err
	}
	return Leq(pushed, dst)
}
