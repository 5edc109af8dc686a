package kinetic

// TargetRef is a literal target or the name of a variant. A non-empty
// Variant wins.
type TargetRef struct {
	Target  *Target
	Variant string
}

// Lit refers to a literal target.
func Lit(t *Target) TargetRef { return TargetRef{Target: t} }

// Named refers to a variant by name.
func Named(variant string) TargetRef { return TargetRef{Variant: variant} }

// IsZero reports whether r refers to nothing.
func (r TargetRef) IsZero() bool { return r.Variant == "" && r.Target == nil }

func (r TargetRef) resolve(vs Variants) (*Target, *Transition) {
	if r.Variant == "" {
		return r.Target, nil
	}
	t, tr, _ := vs.Resolve(r.Variant)
	return t, tr
}

// MotionProps is the declarative configuration of an animated element.
type MotionProps struct {
	// Initial is written before the first animate target.
	Initial TargetRef
	// Animate produces the target the element animates toward reactively.
	Animate Producer
	// AnimateVariant names the animate variant reactively; used when
	// Animate is nil.
	AnimateVariant func() string
	// Exit is run by Exit and by presence removal.
	Exit TargetRef
	// Transition is the default transition; per-property overrides go in
	// Transition.Properties.
	Transition Transition

	WhileHover  TargetRef
	WhileTap    TargetRef
	WhileFocus  TargetRef
	WhileDrag   TargetRef
	WhileInView TargetRef

	Drag     *DragConfig
	Gestures GestureConfig
	Variants Variants

	// Layout opts in to FLIP animations through Relayout.
	Layout bool
}

func (p MotionProps) gestural() bool {
	return p.Drag != nil || !p.WhileHover.IsZero() || !p.WhileTap.IsZero() ||
		!p.WhileFocus.IsZero() || !p.WhileDrag.IsZero() || !p.WhileInView.IsZero()
}

// Motion is a mounted animated element: the reactive binding, gesture
// recognizer and bridge wired together. Unmount releases everything.
type Motion struct {
	engine *Engine
	el     *Element
	props  MotionProps

	binding *Binding
	rec     *Recognizer
	bridge  *Bridge
	detach  func()
	exit    *Animation

	unmounted bool
}

// Mount wires props onto el. runner delivers change notifications for
// reactive animate targets; nil animates once at mount.
func Mount(e *Engine, el *Element, props MotionProps, runner EffectRunner) *Motion {
	m := &Motion{engine: e, el: el, props: props}
	initial, _ := props.Initial.resolve(props.Variants)

	produce := props.Animate
	if produce == nil && props.AnimateVariant != nil {
		produce = func() (*Target, *Transition) {
			t, tr, ok := props.Variants.Resolve(props.AnimateVariant())
			if !ok {
				e.logWarn("unknown animate variant", "element", el.id)
			}
			return t, tr
		}
	}
	if produce != nil {
		m.binding = Bind(e, el, produce, runner, BindOptions{
			Transition: props.Transition,
			Initial:    initial,
		})
	} else if initial.Len() > 0 {
		e.Set(el, initial)
	}

	if props.gestural() {
		m.rec = NewRecognizer(props.Gestures)
		m.rec.SetLogger(e.logger)
		m.detach = m.rec.Attach(el.Sink())
		if store := e.store; store != nil {
			m.rec.OnGesture(func(ev GestureEvent) { store.EmitGesture(el.id, ev) })
		}
		ov := Overrides{}
		ov.Hover, _ = props.WhileHover.resolve(props.Variants)
		ov.Tap, _ = props.WhileTap.resolve(props.Variants)
		ov.Focus, _ = props.WhileFocus.resolve(props.Variants)
		ov.Drag, _ = props.WhileDrag.resolve(props.Variants)
		ov.InView, _ = props.WhileInView.resolve(props.Variants)
		m.bridge = NewBridge(e, el, m.rec, BridgeOptions{
			Overrides:  ov,
			Transition: props.Transition,
			Drag:       props.Drag,
		})
	}
	return m
}

// Element returns the mounted element.
func (m *Motion) Element() *Element { return m.el }

// Binding returns the animate binding, or nil.
func (m *Motion) Binding() *Binding { return m.binding }

// Recognizer returns the gesture recognizer, or nil without gestures.
func (m *Motion) Recognizer() *Recognizer { return m.rec }

// Bridge returns the gesture bridge, or nil without gestures.
func (m *Motion) Bridge() *Bridge { return m.bridge }

// SetFocused toggles the while_focus override.
func (m *Motion) SetFocused(focused bool) {
	if m.bridge != nil {
		m.bridge.SetFocused(focused)
	}
}

// SetInView toggles the while_in_view override.
func (m *Motion) SetInView(inView bool) {
	if m.bridge != nil {
		m.bridge.SetInView(inView)
	}
}

// Child returns a presence child for key carrying the motion's initial,
// current animate and exit targets.
func (m *Motion) Child(key string) Child {
	c := Child{Key: key, Element: m.el}
	c.Initial, _ = m.props.Initial.resolve(m.props.Variants)
	c.Exit, _ = m.props.Exit.resolve(m.props.Variants)
	if m.binding != nil {
		c.Animate = m.binding.Target()
	}
	return c
}

// Exit stops the binding and gestures and runs the exit target. done runs
// once the exit completes, or immediately without an exit target.
func (m *Motion) Exit(done func()) *Animation {
	m.stopInputs()
	t, tr := m.props.Exit.resolve(m.props.Variants)
	if t.Len() == 0 {
		if done != nil {
			done()
		}
		return nil
	}
	ttr := m.props.Transition
	if tr != nil {
		ttr = *tr
	}
	m.exit = m.engine.Start(m.el, t, ttr)
	if done != nil {
		m.exit.OnComplete(done)
	}
	return m.exit
}

// Measure snapshots the layout box for a later Relayout.
func (m *Motion) Measure() LayoutSnapshot { return MeasureLayout(m.el) }

// Relayout animates from snap to the current box when Layout is set.
func (m *Motion) Relayout(snap LayoutSnapshot) *Animation {
	if !m.props.Layout {
		return nil
	}
	return snap.Play(m.engine, m.props.Transition)
}

func (m *Motion) stopInputs() {
	if m.binding != nil {
		m.binding.Dispose()
	}
	if m.bridge != nil {
		m.bridge.Dispose()
	}
	if m.detach != nil {
		m.detach()
		m.detach = nil
	}
}

// Unmount disposes the binding, gestures and every animation on the
// element.
func (m *Motion) Unmount() {
	if m.unmounted {
		return
	}
	m.unmounted = true
	m.stopInputs()
	m.engine.StopElement(m.el)
}
