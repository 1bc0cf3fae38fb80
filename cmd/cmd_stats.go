package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mlouielu/sionna-utils/paths"
)

func newStatsCmd() *cobra.Command {
	var modeName string

	cmd := &cobra.Command{
		Use:   "stats DUMP",
		Short: "Print per-path statistics of a solver dump (.npz)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := paths.ParseMagMode(modeName)
			if err != nil {
				return err
			}

			p, err := paths.Load(args[0])
			if err != nil {
				return err
			}
			return printStats(p, mode)
		},
	}

	cmd.Flags().StringVar(&modeName, "mode", "max", "Magnitude reduction mode (max, min, mean, median)")
	return cmd
}

func printStats(p *paths.Paths, mode paths.MagMode) error {
	depths, err := pathDepths(p)
	if err != nil {
		return err
	}

	valid, err := paths.AllValid(p)
	if err != nil {
		return err
	}

	mags, err := paths.AMagReduced(p, mode)
	if err != nil {
		return err
	}

	n := len(valid)
	if len(depths) < n {
		n = len(depths)
	}
	if len(mags) < n {
		n = len(mags)
	}

	header := []string{"PATH", "MAX DEPTH", "ALL VALID", "|A| (" + mode.String() + ")"}
	rows := make([][]string, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, []string{
			strconv.Itoa(i),
			strconv.Itoa(depths[i]),
			strconv.FormatBool(valid[i]),
			strconv.FormatFloat(mags[i], 'g', 6, 64),
		})
	}

	if term.IsTerminal(int(os.Stdout.Fd())) {
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader(header)
		table.SetBorder(false)
		table.AppendBulk(rows)
		table.Render()
		return nil
	}

	for _, row := range rows {
		for i, cell := range row {
			if i > 0 {
				fmt.Print("\t")
			}
			fmt.Print(cell)
		}
		fmt.Println()
	}
	return nil
}

// pathDepths reduces per-link interaction counts to the deepest value seen
// for each path.
func pathDepths(p *paths.Paths) ([]int, error) {
	t, err := paths.Depths(p)
	if err != nil {
		return nil, err
	}

	data := t.Data().([]int)
	shape := t.Shape()
	nPaths := shape[len(shape)-1]
	out := make([]int, nPaths)
	for i, d := range data {
		if d > out[i%nPaths] {
			out[i%nPaths] = d
		}
	}
	return out, nil
}
