package cmd

import (
	"fmt"
	"io"

	"github.com/OpenTraceLab/OpenTraceLaser/pkg/pathdata"
	"github.com/spf13/cobra"
)

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <svg_file>",
		Short: "Summarise an emitted laser SVG",
		Long: `Reads an SVG produced by generate and lists its elements. Path elements
are parsed back into polygons and reported with their outline, hole and
point counts.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.OutOrStdout(), args[0])
		},
	}
}

func runInspect(out io.Writer, path string) error {
	doc, err := pathdata.ReadSVGFile(path)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "File: %s\n", path)
	fmt.Fprintf(out, "  Size: %s x %s\n", doc.Width, doc.Height)
	fmt.Fprintf(out, "  ViewBox: %s\n", doc.ViewBox)
	fmt.Fprintf(out, "  Elements: %d\n\n", len(doc.Elements))

	fmt.Fprintf(out, "%4s  %-8s %-8s %-8s %8s %6s %7s\n", "#", "Element", "Stroke", "Fill", "Outlines", "Holes", "Points")
	counts := make(map[string]int)
	for i, el := range doc.Elements {
		counts[el.Name]++
		outlines, holes, points := "-", "-", "-"
		if el.Path != nil {
			ps := el.Path.PolygonSet()
			h := 0
			for j := 0; j < ps.OutlineCount(); j++ {
				h += ps.HoleCount(j)
			}
			outlines = fmt.Sprint(ps.OutlineCount())
			holes = fmt.Sprint(h)
			points = fmt.Sprint(el.Path.PointCount())
		}
		fmt.Fprintf(out, "%4d  %-8s %-8s %-8s %8s %6s %7s\n",
			i+1, el.Name, orDash(el.Attr("stroke")), orDash(el.Attr("fill")), outlines, holes, points)
	}

	fmt.Fprintf(out, "\nTotals:")
	for _, name := range []string{"path", "line", "rect", "circle", "ellipse"} {
		if n := counts[name]; n > 0 {
			fmt.Fprintf(out, " %s=%d", name, n)
		}
	}
	fmt.Fprintln(out)
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
