package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dmitrijs2005/recordvault/internal/models"
)

const dateLayout = "2006-01-02"

func writeRecords(w io.Writer, items []models.Record) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTITLE\tPAGE\tCREATED")
	for _, r := range items {
		created := ""
		if r.CreatedDate != nil {
			created = r.CreatedDate.Format(dateLayout)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", r.ID, r.Name, r.Title, r.Page, created)
	}
	_ = tw.Flush()
}

func writePatients(w io.Writer, items []models.PatientRecord) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tDIAGNOSIS\tCREATED")
	for _, p := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", p.ID, p.Name, p.Diagnosis, p.CreatedAt.Format(dateLayout))
	}
	_ = tw.Flush()
}
