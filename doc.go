/*
Package cipollino is the object graph, undo history and on-disk format of the
Cipollino 2D animation editor.

A project is a tree of folders holding graphics (layers, frames, strokes,
sound instances), palettes and audio files. Every object lives in a typed
store and is referred to by handle; edits return reversible actions that the
history records.

# Usage

	ed, err := cipollino.Open(ctx, "my-film")
	if err != nil {
		log.Fatal(err)
	}
	for _, w := range ed.Report.Warnings() {
		log.Println(w)
	}

	err = ed.Session.Edit(ctx, func(p *project.Project) (*project.Action, error) {
		_, act, err := p.AddGraphic(p.RootFolder(), "Walk")
		return act, err
	})

	if _, err := ed.Save(ctx); err != nil {
		log.Fatal(err)
	}

# On disk

Each folder is a directory. Graphics and palettes are YAML files named after
the asset (".cipgfx", ".cippal"); audio files are referenced by content hash
from the "proj.cip" descriptor, so renaming them outside the editor is safe.
*/
package cipollino
