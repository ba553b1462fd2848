package cli

import (
	"context"
	"fmt"

	"github.com/aretw0/cipollino"
	"github.com/aretw0/cipollino/internal/presentation/tui"
	"github.com/aretw0/cipollino/pkg/domain"
	"github.com/aretw0/cipollino/pkg/editor"
)

// RunImport moves files into a folder of the project in o.Dir, loads them
// and saves the project. Files that fail are reported and skipped.
func RunImport(ctx context.Context, o Options, folderPath string, files []string) error {
	o = o.withDefaults()
	ed, err := cipollino.Open(ctx, o.Dir, o.editorOptions()...)
	if err != nil {
		return err
	}

	var (
		folder  domain.Ptr[domain.Folder]
		findErr error
	)
	ed.Session.With(func(st *editor.State) {
		folder, findErr = findFolder(st.Project, folderPath)
	})
	if findErr != nil {
		return findErr
	}

	failed := 0
	for _, src := range files {
		dest, err := ed.Import(ctx, src, folder)
		if err != nil {
			failed++
			o.Logger.Warn("import failed", "src", src, "error", err)
			fmt.Fprintf(o.Err, "%s: %v\n", src, err)
			continue
		}
		printSystemMessage(o.Out, "Imported %s", dest)
	}

	report, err := ed.Save(ctx)
	if err != nil {
		return err
	}
	if err := report.Err(); err != nil {
		return err
	}
	tui.PrintWarnings(o.Err, ed.Report)
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to import", failed, len(files))
	}
	return nil
}
