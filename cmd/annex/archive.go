package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"kastelo.dev/annex"
	"kastelo.dev/annex/store"
)

func openArchive(ctx context.Context) (store.Archive, error) {
	a, err := store.Open(ctx, store.Config{Kind: *archiveKind, DSN: *archiveDSN})
	if err != nil {
		return nil, err
	}
	if err := a.EnsureSchema(ctx); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

func archiveSave(ctx context.Context, path string) error {
	doc, err := loadSource(path, sourceOptions{})
	if err != nil {
		return err
	}
	a, err := openArchive(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	id, err := a.SaveSnapshot(ctx, doc)
	if err != nil {
		return err
	}
	slog.Info("Saved snapshot", "id", id, "source", doc.Source, "rows", len(doc.Rows))
	return nil
}

func archiveList(ctx context.Context, source string) error {
	a, err := openArchive(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	snaps, err := a.ListSnapshots(ctx, source)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTAKEN\tROWS\tSOURCE")
	for _, s := range snaps {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", s.ID, s.TakenAt.Local().Format(time.DateTime), s.Rows, s.Source)
	}
	return tw.Flush()
}

// archiveShow prints a snapshot, or the diff to it from another one when
// against is set.
func archiveShow(ctx context.Context, id, against int64) error {
	a, err := openArchive(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	snap, err := a.LoadSnapshot(ctx, id)
	if err != nil {
		return err
	}
	if against == 0 {
		fmt.Printf("# %d %s %s\n", snap.ID, snap.Source, snap.TakenAt.Local().Format(time.DateTime))
		fmt.Print(annex.Render(snap.Document))
		return nil
	}

	base, err := a.LoadSnapshot(ctx, against)
	if err != nil {
		return err
	}
	fmt.Print(annex.Diff(snap.Source, base.Document, snap.Document))
	return nil
}
