package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alfredoptarigan/candidate-intake/internal/bootstrap"
	"alfredoptarigan/candidate-intake/internal/config"
	"alfredoptarigan/candidate-intake/internal/logger"
	"alfredoptarigan/candidate-intake/internal/services"
)

// intakeFactory returns the service used to process the submission and a
// cleanup function for its clients.
type intakeFactory func(ctx context.Context) (services.IntakeService, func(), error)

type ingestOptions struct {
	file       string
	name       string
	email      string
	linkedin   string
	skills     string
	experience string
}

func main() {
	if err := newRootCmd(defaultIntakeFactory).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(factory intakeFactory) *cobra.Command {
	opts := &ingestOptions{}

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Run a local résumé PDF through the candidate intake pipeline",
		Long: "ingest extracts the résumé text, stores its embedding under the candidate's email " +
			"and prints the evaluation as JSON, exactly like POST /api/upload.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(cmd.Context(), cmd.OutOrStdout(), factory, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.file, "file", "f", "", "path to the résumé PDF")
	flags.StringVarP(&opts.email, "email", "e", "", "candidate email, used as the record key")
	flags.StringVar(&opts.name, "name", "", "candidate full name")
	flags.StringVar(&opts.linkedin, "linkedin", "", "LinkedIn profile URL")
	flags.StringVar(&opts.skills, "skills", "", "free-text skills")
	flags.StringVar(&opts.experience, "experience", "", "free-text experience summary")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func runIngest(ctx context.Context, out io.Writer, factory intakeFactory, opts *ingestOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	resume, err := os.ReadFile(opts.file)
	if err != nil {
		return fmt.Errorf("failed to read résumé: %w", err)
	}

	intake, cleanup, err := factory(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	resp, err := intake.Process(ctx, services.Submission{
		Name:       opts.name,
		Email:      opts.email,
		LinkedIn:   opts.linkedin,
		Skills:     opts.skills,
		Experience: opts.experience,
		Resume:     resume,
	})
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(resp)
}

func defaultIntakeFactory(ctx context.Context) (services.IntakeService, func(), error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	zapLog, err := logger.New(cfg.IsDevelopment(), cfg.Server.LogJSON)
	if err != nil {
		return nil, nil, err
	}

	deps, err := bootstrap.Build(ctx, cfg, zapLog)
	if err != nil {
		zapLog.Error("❌ Failed to initialize services", zap.Error(err))
		return nil, nil, err
	}

	cleanup := func() {
		deps.Close()
		zapLog.Sync()
	}
	return deps.Intake, cleanup, nil
}
