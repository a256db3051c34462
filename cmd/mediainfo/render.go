package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/prometheus/client_golang/prometheus"
	"gopkg.in/yaml.v3"

	"github.com/thesyncim/mediainfo"
)

var (
	pathStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	streamStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

type renderFunc func(w io.Writer, results []mediainfo.Result) error

func rendererFor(format string) (renderFunc, error) {
	switch format {
	case "text", "":
		return renderText, nil
	case "json":
		return renderJSON, nil
	case "yaml":
		return renderYAML, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// fileOutput is the serialized form of one result.
type fileOutput struct {
	Path    string             `json:"path" yaml:"path"`
	Streams []mediainfo.Stream `json:"streams,omitempty" yaml:"streams,omitempty"`
	Error   string             `json:"error,omitempty" yaml:"error,omitempty"`
}

func toOutput(results []mediainfo.Result) []fileOutput {
	out := make([]fileOutput, len(results))
	for i, r := range results {
		out[i].Path = r.Path
		if r.Report != nil {
			out[i].Streams = r.Report.Streams
		}
		if r.Err != nil {
			out[i].Error = r.Err.Error()
		}
	}
	return out
}

func renderJSON(w io.Writer, results []mediainfo.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toOutput(results))
}

func renderYAML(w io.Writer, results []mediainfo.Result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toOutput(results)); err != nil {
		return err
	}
	return enc.Close()
}

func renderText(w io.Writer, results []mediainfo.Result) error {
	var b strings.Builder
	for i, r := range results {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(pathStyle.Render(r.Path))
		b.WriteString("\n")
		if r.Err != nil {
			b.WriteString(errorStyle.Render("  error: " + r.Err.Error()))
			b.WriteString("\n")
			continue
		}
		for _, s := range r.Report.Streams {
			title := s.Kind.String()
			if s.Kind != mediainfo.StreamGeneral {
				title = fmt.Sprintf("%s #%d", title, s.Index+1)
			}
			b.WriteString(streamStyle.Render(title))
			b.WriteString("\n")
			writeFields(&b, s.Fields)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeFields(b *strings.Builder, fields map[string]string) {
	keys := make([]string, 0, len(fields))
	width := 0
	for k := range fields {
		keys = append(keys, k)
		width = max(width, len(k))
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(b, "  %s  %s\n", keyStyle.Render(fmt.Sprintf("%-*s", width, k)), fields[k])
	}
}

// writeStats prints the gathered counters and gauges, one per line.
func writeStats(w io.Writer, reg prometheus.Gatherer) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var labels []string
			for _, lp := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
			}
			name := mf.GetName()
			if len(labels) > 0 {
				name += "{" + strings.Join(labels, ",") + "}"
			}
			var value float64
			switch {
			case m.GetCounter() != nil:
				value = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				value = m.GetGauge().GetValue()
			default:
				continue
			}
			if _, err := fmt.Fprintf(w, "%s %g\n", name, value); err != nil {
				return err
			}
		}
	}
	return nil
}
