package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/ArowuTest/lottogen-backend/internal/models"
	"github.com/ArowuTest/lottogen-backend/internal/utils"
	"github.com/spf13/cobra"
)

func newValidateCmd(opts *rootOptions) *cobra.Command {
	var (
		flags     generationFlags
		draw      string
		jolly     string
		superstar string
		jackpot   float64
	)
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Generate tickets and score them against a draw",
		Example: `  lottoctl validate -n 50 --seed weekly --draw 3,14,27,45,60,88 --jolly 9 --jackpot 85000000`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			numbers, err := utils.ParseNumberList(draw)
			if err != nil {
				return fmt.Errorf("--draw: %w", err)
			}
			d := models.Draw{Numbers: numbers}
			if d.Jolly, err = utils.ParseOptionalInt(jolly); err != nil {
				return fmt.Errorf("--jolly: %w", err)
			}
			if d.Superstar, err = utils.ParseOptionalInt(superstar); err != nil {
				return fmt.Errorf("--superstar: %w", err)
			}
			if err := d.Validate(); err != nil {
				return err
			}

			ctx := cmd.Context()
			s, err := newSession(ctx, opts.limits)
			if err != nil {
				return err
			}
			coll, err := s.generate(ctx, &flags, nil)
			if err != nil {
				return err
			}
			req := models.ValidateRequest{Draw: d}
			if cmd.Flags().Changed("jackpot") {
				req.JackpotValue = &jackpot
			}
			report, err := s.validation.ValidateCollection(ctx, coll.ID, req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return writeJSON(out, report)
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TICKET\tHITS\tMATCHED\tJOLLY\tSUPERSTAR\tTIER\tPRIZE")
			for _, r := range report.Results {
				fmt.Fprintf(tw, "%s\t%d\t%v\t%t\t%t\t%s\t%.2f\n", r.Key, r.Hits, r.Matched, r.JollyHit, r.SuperstarHit, r.Tier, r.EstimatedPrize)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintln(out)
			for _, tier := range models.AllTiers {
				fmt.Fprintf(out, "tier %-4s %d\n", tier, report.TierCounts[tier])
			}
			fmt.Fprintf(out, "winners %d, estimated payout %.2f\n", report.Winners, report.TotalPayout)
			return nil
		},
	}
	flags.register(cmd, 10)
	cmd.Flags().StringVar(&draw, "draw", "", "Comma-separated drawn numbers (exactly 6)")
	cmd.Flags().StringVar(&jolly, "jolly", "", "Jolly number")
	cmd.Flags().StringVar(&superstar, "superstar", "", "Superstar number")
	cmd.Flags().Float64Var(&jackpot, "jackpot", 0, "Jackpot value for tier 6")
	_ = cmd.MarkFlagRequired("draw")
	return cmd
}
