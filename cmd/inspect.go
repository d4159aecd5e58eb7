package cmd

import (
	"database/sql"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/iksnae/support-analytics/internal"
	"github.com/spf13/cobra"
)

var (
	inspectSampleRows int
)

// requiredColumns are the columns the SQLite source selects from each table
var requiredColumns = map[string][]string{
	internal.CollectionConversations: {"id", "phone_number", "contact_name", "created_at", "updated_at", "message_count", "has_issues"},
	internal.CollectionMessages:      {"id", "conversation_id", "content", "timestamp", "sender_type", "category", "sentiment"},
	internal.CollectionIssues:        {"id", "conversation_id", "message_id", "category", "description", "severity", "status", "created_at", "resolved_at"},
}

var expectedTables = []string{
	internal.CollectionConversations,
	internal.CollectionMessages,
	internal.CollectionIssues,
}

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect [database-path]",
	Short: "Check a SQLite export against the expected tables",
	Long: `Inspect a SQLite export of the support tables.

For conversations, messages and issues this shows:
  • Whether the table exists and how many rows it has
  • Its columns, flagging any the sqlite source needs but cannot find
  • Sample rows

Without an argument the configured sqlite.path is inspected.

Examples:
  support-analytics inspect ./support.db
  support-analytics inspect --sample 0     # schema only`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var dbPath string
		if len(args) > 0 {
			dbPath = args[0]
		} else {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			dbPath = cfg.SQLite.Path
		}
		if dbPath == "" {
			return &internal.ConfigError{Key: "sqlite.path", Err: internal.ErrMissingField}
		}

		return inspectDatabase(cmd.OutOrStdout(), dbPath)
	},
}

// tableReport is what inspect learned about one expected table
type tableReport struct {
	name    string
	present bool
	rows    int
	columns []columnInfo
	missing []string
}

type columnInfo struct {
	name       string
	typ        string
	notNull    bool
	primaryKey bool
}

// inspectDatabase reports on every expected table and fails if any table or
// required column is missing
func inspectDatabase(w io.Writer, dbPath string) error {
	db, err := internal.OpenDatabase(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	present, err := listTables(db)
	if err != nil {
		return fmt.Errorf("failed to list tables: %w", err)
	}

	_, _ = fmt.Fprintf(w, "📋 Database: %s\n", dbPath)
	_, _ = fmt.Fprintf(w, "📊 Found %d table(s)\n\n", len(present))

	reports := make([]tableReport, 0, len(expectedTables))
	for _, name := range expectedTables {
		report := tableReport{name: name, present: present[name]}
		if report.present {
			if err := describeTable(db, &report); err != nil {
				return fmt.Errorf("failed to inspect %s: %w", name, err)
			}
		}
		reports = append(reports, report)
	}

	writeTableSummary(w, reports)

	var problems []string
	for _, report := range reports {
		if !report.present {
			problems = append(problems, report.name)
			continue
		}
		_, _ = fmt.Fprintln(w)
		writeTableDetail(w, report)
		if inspectSampleRows > 0 && report.rows > 0 {
			if err := writeSampleRows(w, db, report, inspectSampleRows); err != nil {
				_, _ = fmt.Fprintf(w, "⚠️  Error reading sample rows: %v\n", err)
			}
		}
		for _, col := range report.missing {
			problems = append(problems, report.name+"."+col)
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("missing table(s) or column(s): %s", strings.Join(problems, ", "))
	}
	return nil
}

func listTables(db *sql.DB) (map[string]bool, error) {
	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%'`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	tables := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables[name] = true
	}
	return tables, rows.Err()
}

// describeTable fills in row count, columns and missing required columns.
// Table names only ever come from expectedTables.
func describeTable(db *sql.DB, report *tableReport) error {
	if err := db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", report.name)).Scan(&report.rows); err != nil {
		return fmt.Errorf("failed to count rows: %w", err)
	}

	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", report.name))
	if err != nil {
		return fmt.Errorf("failed to read schema: %w", err)
	}
	defer func() { _ = rows.Close() }()

	have := make(map[string]bool)
	for rows.Next() {
		var (
			col          columnInfo
			cid          int
			notNull, pk  int
			defaultValue sql.NullString
		)
		if err := rows.Scan(&cid, &col.name, &col.typ, &notNull, &defaultValue, &pk); err != nil {
			return err
		}
		col.notNull = notNull == 1
		col.primaryKey = pk > 0
		report.columns = append(report.columns, col)
		have[col.name] = true
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, name := range requiredColumns[report.name] {
		if !have[name] {
			report.missing = append(report.missing, name)
		}
	}
	return nil
}

func writeTableSummary(w io.Writer, reports []tableReport) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "  Table\tStatus\tRows")
	for _, r := range reports {
		status := successStyle.Render("ok")
		switch {
		case !r.present:
			status = errorStyle.Render("missing")
		case len(r.missing) > 0:
			status = warningStyle.Render(fmt.Sprintf("%d column(s) missing", len(r.missing)))
		}
		_, _ = fmt.Fprintf(tw, "  %s\t%s\t%d\n", r.name, status, r.rows)
	}
	_ = tw.Flush()
}

func writeTableDetail(w io.Writer, r tableReport) {
	_, _ = fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("📦 %s (%d rows)", r.name, r.rows)))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, col := range r.columns {
		var flags []string
		if col.primaryKey {
			flags = append(flags, "PRIMARY KEY")
		}
		if col.notNull {
			flags = append(flags, "NOT NULL")
		}
		_, _ = fmt.Fprintf(tw, "  %s\t%s\t%s\n", col.name, col.typ, strings.Join(flags, " "))
	}
	for _, name := range r.missing {
		_, _ = fmt.Fprintf(tw, "  %s\t%s\t\n", name, errorStyle.Render("missing"))
	}
	_ = tw.Flush()
}

func writeSampleRows(w io.Writer, db *sql.DB, r tableReport, limit int) error {
	names := make([]string, len(r.columns))
	for i, col := range r.columns {
		names[i] = col.name
	}

	rows, err := db.Query(fmt.Sprintf("SELECT %s FROM %s LIMIT %d", strings.Join(names, ", "), r.name, limit))
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	_, _ = fmt.Fprintf(w, "\n  Sample rows (up to %d):\n", limit)
	values := make([]any, len(names))
	ptrs := make([]any, len(names))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for n := 1; rows.Next(); n++ {
		if err := rows.Scan(ptrs...); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(w, "  Row %d:\n", n)
		tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
		for i, name := range names {
			_, _ = fmt.Fprintf(tw, "    %s:\t%s\n", name, sampleValue(values[i]))
		}
		_ = tw.Flush()
	}
	return rows.Err()
}

func sampleValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "<NULL>"
	case []byte:
		return internal.TruncateDescription(oneLine(string(val)), 80)
	default:
		return internal.TruncateDescription(oneLine(fmt.Sprint(val)), 80)
	}
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().IntVar(&inspectSampleRows, "sample", 3, "Number of sample rows to show per table")
}
