package cli

import (
	"io"

	"github.com/ArowuTest/lottogen-backend/internal/export"
	"github.com/spf13/cobra"
)

func newGenerateCmd(opts *rootOptions) *cobra.Command {
	var (
		flags    generationFlags
		format   string
		progress bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate unique tickets and print them",
		Example: `  lottoctl generate -n 20 --seed weekly --exclude 13,17
  lottoctl generate -n 5 --include 7 --any-of 40,50,60 --format csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				f = export.FormatJSON
			}

			ctx := cmd.Context()
			s, err := newSession(ctx, opts.limits)
			if err != nil {
				return err
			}
			var progressOut io.Writer
			if progress {
				progressOut = cmd.ErrOrStderr()
			}
			coll, err := s.generate(ctx, &flags, progressOut)
			if err != nil {
				return err
			}
			return export.Write(cmd.OutOrStdout(), f, export.Records(coll))
		},
	}
	flags.register(cmd, 10)
	cmd.Flags().StringVarP(&format, "format", "f", string(export.FormatTXT), "Output format: txt, csv or json")
	cmd.Flags().BoolVar(&progress, "progress", false, "Report progress on stderr")
	return cmd
}
