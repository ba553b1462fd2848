/*
Package project holds the Project aggregate and every mutation on it.

All edits go through methods that both perform the change and return an
*Action able to replay or revert it:

	box, act, err := p.AddFrame(layer, 12)
	if err != nil {
		return err
	}
	history.Record(act)

Field setters capture the previous value; structural edits (add, delete,
transfer) capture enough to restore identities and child order. Deletes
cascade to owned objects and still return a single Action.
*/
package project
