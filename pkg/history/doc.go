/*
Package history keeps the undo and redo stacks of an editing session.

Every structural edit and setter in package project returns an *project.Action.
Recording it here makes it undoable; Undo and Redo replay the action's
effects against the same project. A new Record drops the redo stack, and
consecutive edits are never merged.

	m := history.NewManager(history.WithLogger(logger))
	act, _ := p.SetLayerName(layer, "ink")
	m.Record(ctx, act)
	m.Undo(ctx, p)
*/
package history
