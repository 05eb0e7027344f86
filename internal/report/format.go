package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"importfix/internal/classify"
)

// Format is an output encoding for summaries.
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTOML  Format = "toml"
	FormatHuman Format = "human"
)

// ParseFormat parses a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatYAML, FormatTOML, FormatHuman:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "":
		return FormatHuman, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", s)
	}
}

// Classification is the result of classifying specifiers from one file.
type Classification struct {
	File    string            `json:"file" yaml:"file" toml:"file"`
	Results []classify.Result `json:"results" yaml:"results" toml:"results"`
}

// Write renders v in the given format. Human output is defined for *Summary
// and *Classification; other values fall back to JSON.
func Write(w io.Writer, v any, format Format) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return enc.Close()
	case FormatTOML:
		data, err := toml.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal TOML: %w", err)
		}
		_, err = w.Write(data)
		return err
	case FormatHuman:
		switch val := v.(type) {
		case *Summary:
			return writeHuman(w, val)
		case *Classification:
			return writeClassification(w, val)
		default:
			return writeJSON(w, v)
		}
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func writeHuman(w io.Writer, s *Summary) error {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)

	title := "Import rewrite"
	if s.DryRun {
		title += " (dry run)"
	}
	bold.Fprintf(w, "%s  run %s\n", title, s.RunID)

	fmt.Fprintf(w, "Scanned %s files (%s) in %s, %d dependencies known\n",
		humanize.Comma(int64(s.FilesScanned)),
		humanize.Bytes(s.BytesScanned),
		time.Duration(s.DurationMs)*time.Millisecond,
		s.Dependencies)

	verb := "Changed"
	if s.DryRun {
		verb = "Would change"
	}
	switch {
	case s.FilesChanged == 0:
		green.Fprintln(w, "All imports are canonical")
	default:
		yellow.Fprintf(w, "%s %d %s, %d %s rewritten\n",
			verb,
			s.FilesChanged, plural(s.FilesChanged, "file", "files"),
			s.SpecifiersRewritten, plural(s.SpecifiersRewritten, "import", "imports"))
	}

	if len(s.Changes) > 0 {
		tbl := table.NewWriter()
		tbl.SetStyle(table.StyleLight)
		tbl.AppendHeader(table.Row{"File", "Line", "Original", "Replacement", "Category"})
		for _, c := range s.Changes {
			for _, m := range c.Mappings {
				tbl.AppendRow(table.Row{c.Path, m.Line, m.Original, m.Replacement, m.Category})
			}
		}
		fmt.Fprintln(w, tbl.Render())
	}

	if len(s.Errors) > 0 {
		red.Fprintf(w, "%d %s failed\n", s.FilesFailed, plural(s.FilesFailed, "file", "files"))
		tbl := table.NewWriter()
		tbl.SetStyle(table.StyleLight)
		tbl.AppendHeader(table.Row{"File", "Code", "Message"})
		for _, e := range s.Errors {
			tbl.AppendRow(table.Row{e.Path, e.Code, e.Message})
		}
		fmt.Fprintln(w, tbl.Render())
	}

	for _, c := range s.Changes {
		if c.Diff != "" {
			fmt.Fprint(w, c.Diff)
		}
	}

	return nil
}

func writeClassification(w io.Writer, c *Classification) error {
	fmt.Fprintf(w, "Imports of %s\n", c.File)

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Specifier", "Category", "Canonical"})
	for _, r := range c.Results {
		canonical := r.Replacement
		if !r.Changed() {
			canonical = r.Specifier
		}
		tbl.AppendRow(table.Row{r.Specifier, r.Category, canonical})
	}
	_, err := fmt.Fprintln(w, tbl.Render())
	return err
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
