package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/daksh3010/newsdash/internal/enrich"
	"github.com/daksh3010/newsdash/internal/export"
	"github.com/daksh3010/newsdash/internal/filter"
	"github.com/daksh3010/newsdash/pkg/httpclient"
)

// criteriaFlags collects the filter flags shared by fetch, summary, and
// export.
type criteriaFlags struct {
	keyword string
	author  string
	typ     string
	start   string
	end     string
}

func (f *criteriaFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.keyword, "keyword", "", "case-insensitive substring match on titles")
	cmd.Flags().StringVar(&f.author, "author", filter.All, "exact author match")
	cmd.Flags().StringVar(&f.typ, "type", filter.All, "article type: News, Blog, or all")
	cmd.Flags().StringVar(&f.start, "start", "", "inclusive lower publish-date bound (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.end, "end", "", "inclusive upper publish-date bound (YYYY-MM-DD)")
}

func (f *criteriaFlags) criteria() (filter.Criteria, error) {
	c := filter.Criteria{
		Keyword: f.keyword,
		Author:  f.author,
		Type:    f.typ,
	}

	parse := func(raw string) (*time.Time, error) {
		if raw == "" {
			return nil, nil
		}
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", raw)
		}
		return &t, nil
	}

	var err error
	if c.Start, err = parse(f.start); err != nil {
		return filter.Criteria{}, err
	}
	if c.End, err = parse(f.end); err != nil {
		return filter.Criteria{}, err
	}
	return c, nil
}

// newFetchCmd loads pages into the session and prints the filtered view.
func newFetchCmd(configPath *string) *cobra.Command {
	var (
		pages    int
		doEnrich bool
		flags    criteriaFlags
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Load article pages and print the filtered view",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx, *configPath)
			if err != nil {
				return err
			}
			defer a.close()

			criteria, err := flags.criteria()
			if err != nil {
				return err
			}
			a.service.SetCriteria(criteria)

			for i := 0; i < pages && a.service.HasMore(); i++ {
				if err := a.service.LoadNext(ctx); err != nil {
					fmt.Fprintln(os.Stderr, "Warning:", err)
				}
			}

			view := a.service.FilteredView()
			if doEnrich {
				enricher := enrich.New(httpclient.NewRestyClient(a.cfg.HTTPTimeout()), 0, a.log)
				view = enricher.Enrich(ctx, view)
			}

			for _, art := range view {
				date := art.PublishedRaw
				if art.HasPublishedAt() {
					date = art.PublishedAt.Format("2006-01-02")
				}
				fmt.Printf("[%s] %s - %s (%s)\n    %s\n", art.Type, art.Title, art.Author, date, art.URL)
			}
			fmt.Printf("\n%d articles", len(view))
			if !a.service.HasMore() {
				fmt.Print(" (sources exhausted)")
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().IntVar(&pages, "pages", 1, "number of pages to load")
	cmd.Flags().BoolVar(&doEnrich, "enrich", false, "scrape article pages to recover missing bylines and descriptions")
	flags.register(cmd)

	return cmd
}

// newSummaryCmd prints the per-author payout table and grand total.
func newSummaryCmd(configPath *string) *cobra.Command {
	var (
		pages int
		flags criteriaFlags
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the per-author payout summary for the filtered view",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx, *configPath)
			if err != nil {
				return err
			}
			defer a.close()

			criteria, err := flags.criteria()
			if err != nil {
				return err
			}
			a.service.SetCriteria(criteria)

			for i := 0; i < pages && a.service.HasMore(); i++ {
				if err := a.service.LoadNext(ctx); err != nil {
					fmt.Fprintln(os.Stderr, "Warning:", err)
				}
			}

			rows, err := a.service.Summary()
			if err != nil {
				return err
			}

			fmt.Printf("%-30s %10s %15s %15s\n", "Author", "Articles", "Payout/Article", "Total Payout")
			for _, row := range rows {
				fmt.Printf("%-30s %10d %15s %15s\n",
					row.Author, row.ArticleCount,
					fmt.Sprintf("$%.2f", row.PayoutRate),
					fmt.Sprintf("$%.2f", row.TotalPayout))
			}

			total, err := a.service.GrandTotal()
			if err != nil {
				return err
			}
			fmt.Printf("\nGrand total: $%.2f\n", total)
			return nil
		},
	}

	cmd.Flags().IntVar(&pages, "pages", 1, "number of pages to load")
	flags.register(cmd)

	return cmd
}

// newExportCmd writes the filtered view to a CSV or PDF file.
func newExportCmd(configPath *string) *cobra.Command {
	var (
		pages  int
		format string
		outDir string
		flags  criteriaFlags
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the filtered view as CSV or PDF",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx, *configPath)
			if err != nil {
				return err
			}
			defer a.close()

			criteria, err := flags.criteria()
			if err != nil {
				return err
			}
			a.service.SetCriteria(criteria)

			for i := 0; i < pages && a.service.HasMore(); i++ {
				if err := a.service.LoadNext(ctx); err != nil {
					fmt.Fprintln(os.Stderr, "Warning:", err)
				}
			}

			var (
				data []byte
				name string
			)
			switch format {
			case "csv":
				data, err = a.service.ExportCSV(ctx)
				name = export.CSVFileName
			case "pdf":
				data, err = a.service.ExportPDF(ctx)
				name = export.PDFFileName
			default:
				return fmt.Errorf("unknown format %q: expected csv or pdf", format)
			}
			if err != nil {
				return err
			}

			path := filepath.Join(outDir, name)
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("write export file: %w", err)
			}

			fmt.Printf("Wrote %s (%d bytes)\n", path, len(data))
			return nil
		},
	}

	cmd.Flags().IntVar(&pages, "pages", 1, "number of pages to load")
	cmd.Flags().StringVar(&format, "format", "csv", "export format: csv or pdf")
	cmd.Flags().StringVar(&outDir, "out", "", "output directory (default current)")
	flags.register(cmd)

	return cmd
}

// newRateCmd reads or updates the persisted payout rate.
func newRateCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rate [value]",
		Short: "Show or set the persisted payout rate",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer a.close()

			if len(args) == 0 {
				rate, err := a.service.Rate()
				if err != nil {
					return err
				}
				fmt.Printf("Payout rate: $%.2f per article\n", rate)
				return nil
			}

			rate, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid rate %q: %w", args[0], err)
			}
			if err := a.service.SetRate(rate); err != nil {
				return err
			}
			fmt.Printf("Payout rate set to $%.2f per article\n", rate)
			return nil
		},
	}

	return cmd
}
