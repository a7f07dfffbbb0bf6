package reporting

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/pszt/botbench/internal/models"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// FormatMarkdown renders all reports as a single Markdown document.
func FormatMarkdown(title string, matchups []*models.MatchupReport, timings []*models.TimingReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", title)

	if len(matchups) > 0 {
		b.WriteString("## Matchups\n\n")
		for _, r := range matchups {
			st := ComputePairStats(r)
			fmt.Fprintf(&b, "### %s vs %s\n\n", r.First, r.Second)
			fmt.Fprintf(&b, "| depth | %s won | %s won |\n", r.First, r.Second)
			b.WriteString("|---:|---:|---:|\n")
			for _, row := range r.Rows {
				fmt.Fprintf(&b, "| %d | %d | %d |\n", row.Depth, row.FirstWins, row.SecondWins)
			}
			fmt.Fprintf(&b, "\n%s\n\n", InterpretPair(st))
		}
	}

	if len(timings) > 0 {
		depths := timingDepths(timings)
		b.WriteString("## Average move time (µs)\n\n")
		b.WriteString("| heuristic |")
		for _, d := range depths {
			fmt.Fprintf(&b, " %d |", d)
		}
		b.WriteString("\n|---|" + strings.Repeat("---:|", len(depths)) + "\n")
		for _, r := range timings {
			fmt.Fprintf(&b, "| %s |", r.Heuristic)
			for _, d := range depths {
				cell := "-"
				for _, row := range r.Rows {
					if row.Depth == d {
						cell = fmt.Sprint(int64(row.AvgMoveTime))
					}
				}
				fmt.Fprintf(&b, " %s |", cell)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		for _, r := range timings {
			fmt.Fprintf(&b, "- %s\n", InterpretGrowth(r))
		}
	}

	return b.String()
}

// RenderHTML converts the Markdown report into a standalone HTML page.
func RenderHTML(title string, matchups []*models.MatchupReport, timings []*models.TimingReport) ([]byte, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))

	var body bytes.Buffer
	if err := md.Convert([]byte(FormatMarkdown(title, matchups, timings)), &body); err != nil {
		return nil, fmt.Errorf("rendering HTML report: %w", err)
	}

	var page bytes.Buffer
	fmt.Fprintf(&page, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n", html.EscapeString(title))
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.Bytes(), nil
}
