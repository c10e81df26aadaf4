package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"framepick/internal/pipeline"
)

const (
	ansiBlue  = "\x1b[34m"
	ansiReset = "\x1b[0m"
)

// renderSummary formats the per-frame selection table plus run totals.
func renderSummary(report *pipeline.Report, colorize bool) string {
	var b strings.Builder

	heading := fmt.Sprintf("%s: selected %d of %d analyzed frames across %d scenes",
		report.Video, report.TotalSelected, report.TotalAnalyzed, report.TotalScenes)
	if colorize {
		heading = ansiBlue + heading + ansiReset
	}
	b.WriteString(heading)
	b.WriteString("\n")

	if len(report.Candidates) == 0 {
		b.WriteString("no frames selected")
		return b.String()
	}

	rows := make([][]string, 0, len(report.Candidates))
	for _, c := range report.Candidates {
		rows = append(rows, []string{
			fmt.Sprintf("%d", c.SceneIndex),
			fmt.Sprintf("%d", c.FrameNumber),
			fmt.Sprintf("%.2fs", c.Timestamp),
			string(c.FrameCategory),
			string(c.Composition),
			fmt.Sprintf("%.1f", c.SharpnessScore),
			strings.Join(c.SelectionReasons, ", "),
		})
	}
	b.WriteString(renderTable(
		[]string{"Scene", "Frame", "Time", "Category", "Composition", "Sharpness", "Reasons"},
		rows,
		[]columnAlignment{alignRight, alignRight, alignRight, alignLeft, alignLeft, alignRight, alignLeft},
	))

	if len(report.AudioEvents) > 0 {
		b.WriteString(fmt.Sprintf("\naudio events: %d", len(report.AudioEvents)))
	}
	return b.String()
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
