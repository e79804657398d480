package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newOddsCmd(opts *rootOptions) *cobra.Command {
	var (
		tickets int
		exact   bool
	)
	cmd := &cobra.Command{
		Use:   "odds",
		Short: "Print match probabilities",
		Long: `Print, for m from 6 down to 1, the chance that the best of --tickets tickets
matches at least m drawn numbers. Tickets are modelled as independent, so the
figures are an approximation. With --exact, print the chance that a single
ticket matches exactly r numbers.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd.Context(), opts.limits)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if exact {
				dist := s.validation.ExactOdds()
				if opts.jsonOutput {
					return writeJSON(out, dist)
				}
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "HITS\tPROBABILITY\tONE IN")
				for _, d := range dist {
					fmt.Fprintf(tw, "%d\t%.10g\t%.0f\n", d.Hits, d.Probability, d.OneIn)
				}
				return tw.Flush()
			}

			dist, err := s.validation.Odds(tickets)
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return writeJSON(out, dist)
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "AT LEAST\tPROBABILITY")
			for _, d := range dist {
				fmt.Fprintf(tw, "%d\t%.10g\n", d.AtLeast, d.Probability)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVarP(&tickets, "tickets", "k", 1, "Number of tickets played")
	cmd.Flags().BoolVar(&exact, "exact", false, "Print the exact-hit distribution of one ticket")
	return cmd
}
