// internal/models/report.go
package models

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-json"
	"github.com/mwiater/modelmap/internal/catalog"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255"))
	globalStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	partialStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// WriteHeader prints the subscription and the scan banner.
func WriteHeader(w io.Writer, subscription string, mode catalog.Mode, regionCount int) {
	fmt.Fprintf(w, "Subscription: %s\n\n", subscription)
	fmt.Fprintf(w, "Scanning %d locations for %s...\n\n", regionCount, mode.Label())
}

// WriteReport prints the model table, the per-region breakdown of partial
// models when detailed is set, and the trailing total.
func WriteReport(w io.Writer, r Report, detailed bool) {
	if len(r.Summaries) == 0 {
		fmt.Fprintf(w, "No %s found.\n", r.Mode.Label())
		return
	}

	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Found %d model(s):", len(r.Summaries))))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %-35s %-15s %-20s %s\n", "Model", "Format", "Versions", "Locations")
	fmt.Fprintf(w, "  %s %s %s %s\n", strings.Repeat("-", 35), strings.Repeat("-", 15), strings.Repeat("-", 20), strings.Repeat("-", 20))

	for _, s := range r.Summaries {
		versions := strings.Join(s.Entry.VersionLabels(), ", ")
		label := partialStyle.Render(s.Coverage.Label)
		if s.Coverage.Global {
			label = globalStyle.Render(s.Coverage.Label)
		}
		fmt.Fprintf(w, "  %-35s %-15s %-20s %s\n", s.Key.Name, s.Key.Format, versions, label)
	}

	if detailed {
		writeBreakdown(w, r.Summaries)
	}

	fmt.Fprintf(w, "\nTotal: %d model(s) across %d locations\n", len(r.Summaries), len(r.Regions))
}

// writeBreakdown lists every version and region of the models that are not global.
func writeBreakdown(w io.Writer, summaries []catalog.Summary) {
	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 90))
	fmt.Fprintln(w, "Detailed location breakdown (models not available in all regions):")
	fmt.Fprintln(w)

	partial := catalog.Partial(summaries)
	if len(partial) == 0 {
		fmt.Fprintln(w, "  All models are available in every region.")
		return
	}
	for _, s := range partial {
		fmt.Fprintf(w, "  %s (%s)\n", s.Key.Name, s.Key.Format)
		breakdown := s.Breakdown
		if breakdown == nil {
			breakdown = catalog.Breakdown(s.Entry)
		}
		for _, v := range breakdown {
			fmt.Fprintf(w, "    %s: %s\n", v.Version, strings.Join(v.Regions, ", "))
		}
	}
}

type jsonModel struct {
	Name      string              `json:"name"`
	Format    string              `json:"format"`
	Versions  map[string][]string `json:"versions"`
	SKUs      []string            `json:"skus"`
	Regions   []string            `json:"regions"`
	Global    bool                `json:"global"`
	Locations string              `json:"locations"`
}

type jsonReport struct {
	Subscription string      `json:"subscription"`
	Mode         string      `json:"mode"`
	Regions      []string    `json:"regions"`
	Models       []jsonModel `json:"models"`
	Total        int         `json:"total"`
}

// MarshalReport renders the report as indented JSON.
func MarshalReport(r Report) ([]byte, error) {
	out := jsonReport{
		Subscription: r.Subscription,
		Mode:         string(r.Mode),
		Regions:      r.Regions,
		Models:       make([]jsonModel, 0, len(r.Summaries)),
		Total:        len(r.Summaries),
	}
	for _, s := range r.Summaries {
		versions := make(map[string][]string, len(s.Entry.Versions))
		for _, v := range s.Entry.VersionLabels() {
			versions[v] = s.Entry.RegionsFor(v)
		}
		out.Models = append(out.Models, jsonModel{
			Name:      s.Key.Name,
			Format:    s.Key.Format,
			Versions:  versions,
			SKUs:      s.Entry.SKUNames(),
			Regions:   s.Coverage.Regions,
			Global:    s.Coverage.Global,
			Locations: s.Coverage.Label,
		})
	}
	return json.MarshalIndent(out, "", "  ")
}

// WriteJSON writes the report as indented JSON followed by a newline.
func WriteJSON(w io.Writer, r Report) error {
	data, err := MarshalReport(r)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
