package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/aretw0/scribe/pkg/core"
)

const timeLayout = "2006-01-02 15:04:05"

func printList(w io.Writer, files []core.FileRecord) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FILENAME\tSIZE\tCREATED\tMODIFIED")
	for _, f := range files {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", f.Name, f.Size, formatTime(&f.CreatedAt), formatTime(f.ModifiedAt))
	}
	tw.Flush()
}

func printInfo(w io.Writer, rec core.FileRecord) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FILENAME\tSIZE\tCREATED\tUSERID")
	fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", rec.Name, rec.Size, formatTime(&rec.CreatedAt), formatOwner(rec.OwnerID))
	tw.Flush()
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Local().Format(timeLayout)
}

func formatOwner(id *int) string {
	if id == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *id)
}
