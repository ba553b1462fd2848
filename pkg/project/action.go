package project

// Action is one undoable edit: a pair of effects over the whole project.
// Effects replay the same primitives used for normal editing and silently
// do nothing if the objects they reference are gone.
type Action struct {
	forward  func(*Project)
	backward func(*Project)
}

// NewAction builds an action from its two effects.
func NewAction(forward, backward func(*Project)) *Action {
	return &Action{forward: forward, backward: backward}
}

// Forward re-applies the edit.
func (a *Action) Forward(p *Project) {
	if a != nil && a.forward != nil {
		a.forward(p)
	}
}

// Backward reverts the edit.
func (a *Action) Backward(p *Project) {
	if a != nil && a.backward != nil {
		a.backward(p)
	}
}

// Composite joins actions into one history entry. Forward runs them in
// order, Backward runs their inverses in reverse order. Nil entries are
// dropped.
func Composite(actions ...*Action) *Action {
	steps := make([]*Action, 0, len(actions))
	for _, a := range actions {
		if a != nil {
			steps = append(steps, a)
		}
	}
	if len(steps) == 1 {
		return steps[0]
	}
	return NewAction(
		func(p *Project) {
			for _, a := range steps {
				a.Forward(p)
			}
		},
		func(p *Project) {
			for i := len(steps) - 1; i >= 0; i-- {
				steps[i].Backward(p)
			}
		},
	)
}
