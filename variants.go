package kinetic

import "sort"

// Variant is a named target with an optional transition of its own.
type Variant struct {
	Target     *Target
	Transition *Transition
}

// Variants maps variant names to targets, so animate and while_* options
// can name a state instead of spelling out values.
type Variants map[string]Variant

// Names returns the variant names sorted.
func (v Variants) Names() []string {
	out := make([]string, 0, len(v))
	for k := range v {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Resolve merges the named variants left to right; later names win per
// property. The transition is the last named variant's that has one. ok is
// false if any name is unknown; known names still merge.
func (v Variants) Resolve(names ...string) (t *Target, tr *Transition, ok bool) {
	t = NewTarget()
	ok = true
	for _, n := range names {
		vr, found := v[n]
		if !found {
			ok = false
			continue
		}
		t = t.Merge(vr.Target)
		if vr.Transition != nil {
			tr = vr.Transition
		}
	}
	return t, tr, ok
}

// StartVariant animates el toward the named variants of vs. The variant's
// own transition wins over tr.
func (e *Engine) StartVariant(el *Element, vs Variants, tr Transition, opts StartOptions, names ...string) *Animation {
	t, vtr, ok := vs.Resolve(names...)
	if !ok {
		e.logWarn("unknown variant", "element", el.id, "variants", names)
	}
	if vtr != nil {
		tr = *vtr
	}
	return e.StartWith(el, t, tr, opts)
}
