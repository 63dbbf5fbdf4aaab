package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/recordvault/internal/backup"
	"github.com/dmitrijs2005/recordvault/internal/buildinfo"
	"github.com/dmitrijs2005/recordvault/internal/models"
	"github.com/dmitrijs2005/recordvault/internal/seed"
)

// ErrUsage marks a malformed command line.
var ErrUsage = errors.New("usage error")

// RunStandalone handles the commands that need no store. It reports false
// when args name any other command.
func RunStandalone(w io.Writer, args []string) bool {
	if len(args) == 0 {
		return false
	}
	switch args[0] {
	case "version":
		buildinfo.PrintBuildData(w)
	case "help":
		printHelp(w)
	default:
		return false
	}
	return true
}

// Run executes one command. args[0] is the command name.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: no command given (try help)", ErrUsage)
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "seed":
		return a.seed(ctx)
	case "page":
		return a.page(ctx, rest)
	case "patients":
		return a.patientPage(ctx, rest)
	case "count":
		return a.count(ctx, rest)
	case "add":
		return a.add(ctx, rest)
	case "addpatient":
		return a.addPatient(ctx, rest)
	case "export":
		return a.export(ctx)
	case "import":
		return a.importSnapshot(ctx, rest)
	case "shell":
		return a.shell(ctx)
	case "version", "help":
		RunStandalone(a.out, args)
		return nil
	default:
		return fmt.Errorf("%w: unknown command %q", ErrUsage, cmd)
	}
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "Available commands: seed, page, patients, count, add, addpatient, export, import, shell, version, help")
}

func (a *App) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrUsage, fs.Name(), err)
	}
	return nil
}

func (a *App) seed(ctx context.Context) error {
	records, err := seed.IfEmpty[models.Record](ctx, seed.RecordTarget{Records: a.records},
		seed.Range(1, a.config.SeedPages), a.config.SeedRecordsPerPage, seed.RecordFactory)
	if err != nil {
		return err
	}
	patients, err := seed.IfEmpty[models.PatientRecord](ctx, seed.PatientTarget{Patients: a.patients},
		[]int{0}, a.config.SeedPatients, seed.PatientFactory)
	if err != nil {
		return err
	}

	a.logger.Info(ctx, "seed finished", "records", records, "patients", patients)
	fmt.Fprintf(a.out, "seeded %d records and %d patients\n", records, patients)
	return nil
}

func (a *App) page(ctx context.Context, args []string) error {
	fs := a.flagSet("page")
	page := fs.Int("p", 1, "page number")
	term := fs.String("q", "", "search term (name or title)")
	if err := parse(fs, args); err != nil {
		return err
	}

	items, err := a.records.GetPage(ctx, *page, *term)
	if err != nil {
		return err
	}
	writeRecords(a.out, items)
	fmt.Fprintf(a.out, "%d record(s) on page %d\n", len(items), *page)
	return nil
}

func (a *App) patientPage(ctx context.Context, args []string) error {
	fs := a.flagSet("patients")
	term := fs.String("q", "", "search term (name or diagnosis)")
	page := fs.Int("p", 1, "page number")
	size := fs.Int("n", a.config.PatientPageSize, "page size")
	if err := parse(fs, args); err != nil {
		return err
	}

	items, err := a.patients.GetPatientPage(ctx, *term, *page, *size)
	if err != nil {
		return err
	}
	total, err := a.patients.Count(ctx, *term)
	if err != nil {
		return err
	}

	writePatients(a.out, items)
	fmt.Fprintf(a.out, "page %d of %d, %d patient(s) total\n", *page, pageCount(total, *size), total)
	return nil
}

func (a *App) count(ctx context.Context, args []string) error {
	fs := a.flagSet("count")
	term := fs.String("q", "", "search term (name or diagnosis)")
	if err := parse(fs, args); err != nil {
		return err
	}

	n, err := a.patients.Count(ctx, *term)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, n)
	return nil
}

func (a *App) add(ctx context.Context, args []string) error {
	fs := a.flagSet("add")
	page := fs.Int("p", 1, "page number")
	title := fs.String("t", "", "title")
	body := fs.String("b", "", "body")
	if err := parse(fs, args); err != nil {
		return err
	}

	name := strings.Join(fs.Args(), " ")
	if name == "" && *title == "" {
		return fmt.Errorf("%w: add needs a name or a title", ErrUsage)
	}

	now := time.Now()
	err := a.records.InsertMany(ctx, []models.Record{{
		Name: name, Title: *title, Body: *body, Page: *page, CreatedDate: &now,
	}})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "record added to page %d\n", *page)
	return nil
}

func (a *App) addPatient(ctx context.Context, args []string) error {
	fs := a.flagSet("addpatient")
	diagnosis := fs.String("d", "", "diagnosis")
	body := fs.String("b", "", "notes")
	if err := parse(fs, args); err != nil {
		return err
	}

	name := strings.Join(fs.Args(), " ")
	if name == "" || *diagnosis == "" {
		return fmt.Errorf("%w: addpatient needs a name and -d diagnosis", ErrUsage)
	}

	err := a.patients.InsertMany(ctx, []models.PatientRecord{{
		Name: name, Diagnosis: *diagnosis, Body: *body, CreatedAt: time.Now(),
	}})
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "patient added")
	return nil
}

func (a *App) export(ctx context.Context) error {
	p, err := a.objectStore()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, a.config.ExportTimeout)
	defer cancel()

	exp := &backup.Exporter{Source: a.store, Presigner: p, Prefix: a.config.S3Prefix, HTTP: a.http, Logger: a.logger}
	key, err := exp.Export(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "snapshot uploaded: %s\n", key)
	return nil
}

func (a *App) importSnapshot(ctx context.Context, args []string) error {
	fs := a.flagSet("import")
	key := fs.String("k", "", "object key of a snapshot in S3")
	if err := parse(fs, args); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, a.config.ExportTimeout)
	defer cancel()

	im := &backup.Importer{Target: a.store, HTTP: a.http, Logger: a.logger, Workers: a.config.Workers}

	var (
		n   int
		err error
	)
	switch {
	case *key != "":
		if im.Presigner, err = a.objectStore(); err != nil {
			return err
		}
		n, err = im.ImportObject(ctx, *key)
	case fs.NArg() == 1:
		f, openErr := os.Open(fs.Arg(0))
		if openErr != nil {
			return openErr
		}
		defer f.Close()
		n, err = im.Import(ctx, f)
	default:
		return fmt.Errorf("%w: import <file> or import -k <key>", ErrUsage)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "imported %d row(s)\n", n)
	return nil
}

func pageCount(total, size int) int {
	if total == 0 {
		return 0
	}
	return (total + size - 1) / size
}
