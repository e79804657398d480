// Package cli implements lottoctl, a command-line front end that runs the
// generator and the probability engine in-process against in-memory storage.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ArowuTest/lottogen-backend/internal/models"
	"github.com/ArowuTest/lottogen-backend/internal/repositories/memory"
	"github.com/ArowuTest/lottogen-backend/internal/services"
	"github.com/ArowuTest/lottogen-backend/internal/utils"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

type rootOptions struct {
	jsonOutput bool
	verbose    bool
	limits     models.GenerationLimits
}

// NewRootCmd builds the lottoctl command tree
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "lottoctl",
		Short: "lottoctl generates unique 6-of-90 tickets and reports their odds",
		Long: `lottoctl generates unique 6-of-90 tickets under include/exclude rules,
validates them against a draw and prints match probabilities.

Tickets live only for the duration of one command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if opts.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
	}
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log generator activity to stderr")
	cmd.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "Output command results in JSON format")
	cmd.PersistentFlags().IntVar(&opts.limits.FillGuard, "fill-guard", 0, "Draws allowed while filling one ticket (0 = default)")
	cmd.PersistentFlags().IntVar(&opts.limits.AnyOfGuard, "any-of-guard", 0, "Restarts allowed when the any-of rule fails (0 = default)")
	cmd.PersistentFlags().IntVar(&opts.limits.NonceGuard, "nonce-guard", 0, "Reseeds allowed per ticket on a collision (0 = default)")

	cmd.AddCommand(newGenerateCmd(opts), newOddsCmd(opts), newValidateCmd(opts))
	return cmd
}

// Execute runs lottoctl and exits non-zero on error
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// generationFlags are shared by every command that produces tickets
type generationFlags struct {
	count   int
	seed    string
	exclude string
	include string
	anyOf   string
}

func (f *generationFlags) register(cmd *cobra.Command, defaultCount int) {
	cmd.Flags().IntVarP(&f.count, "count", "n", defaultCount, "Number of tickets to generate")
	cmd.Flags().StringVar(&f.seed, "seed", "", "Seed for reproducible output (empty = system entropy)")
	cmd.Flags().StringVar(&f.exclude, "exclude", "", "Comma-separated numbers no ticket may contain")
	cmd.Flags().StringVar(&f.include, "include", "", "Comma-separated numbers every ticket must contain")
	cmd.Flags().StringVar(&f.anyOf, "any-of", "", "Comma-separated numbers of which every ticket must contain one")
}

func (f *generationFlags) request() (models.GenerationRequest, error) {
	var req models.GenerationRequest
	var err error
	if req.Constraints.Exclude, err = utils.ParseNumberList(f.exclude); err != nil {
		return req, fmt.Errorf("--exclude: %w", err)
	}
	if req.Constraints.MustInclude, err = utils.ParseNumberList(f.include); err != nil {
		return req, fmt.Errorf("--include: %w", err)
	}
	if req.Constraints.MustIncludeAnyOf, err = utils.ParseNumberList(f.anyOf); err != nil {
		return req, fmt.Errorf("--any-of: %w", err)
	}
	req.Count = f.count
	req.Seed = f.seed
	return req, nil
}

// cliCollectionID is the collection identity every run generates into, so
// a seed reproduces the same tickets from one run to the next.
var cliCollectionID = primitive.ObjectID{11: 1}

// session is one in-memory run of the generation stack
type session struct {
	collections *memory.CollectionRepository
	generation  services.GenerationService
	validation  services.ValidationService
}

func newSession(ctx context.Context, limits models.GenerationLimits) (*session, error) {
	collections := memory.NewCollectionRepository()
	settingsRepo := memory.NewSystemSettingsRepository(models.SystemSettings{Limits: limits})
	generation, err := services.NewGenerationService(ctx, collections, settingsRepo)
	if err != nil {
		return nil, err
	}
	settings := services.NewSystemSettingsService(settingsRepo)
	return &session{
		collections: collections,
		generation:  generation,
		validation:  services.NewValidationService(generation, settings),
	}, nil
}

// generate creates a collection and fills it per f
func (s *session) generate(ctx context.Context, f *generationFlags, progress io.Writer) (*models.Collection, error) {
	req, err := f.request()
	if err != nil {
		return nil, err
	}
	coll := &models.Collection{ID: cliCollectionID, Name: "lottoctl"}
	if err := s.collections.Create(ctx, coll); err != nil {
		return nil, err
	}
	var report func(done, total int)
	if progress != nil {
		report = func(done, total int) {
			fmt.Fprintf(progress, "\rgenerated %d/%d", done, total)
			if done == total {
				fmt.Fprintln(progress)
			}
		}
	}
	return s.generation.Generate(ctx, coll.ID, req, report)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
