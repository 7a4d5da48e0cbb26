package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/fmpart/fmpart/internal/netlist"
	"github.com/fmpart/fmpart/internal/partition"
	"github.com/fmpart/fmpart/internal/repository"
	"github.com/fmpart/fmpart/internal/report"
	"github.com/fmpart/fmpart/internal/storage"
	"github.com/fmpart/fmpart/pkg/config"
	"github.com/fmpart/fmpart/pkg/utils"
)

var (
	outputFlag    string
	balanceFlag   float64
	maxPassesFlag int
	runUUIDFlag   string
)

// partitionCmd represents the partition command.
var partitionCmd = &cobra.Command{
	Use:   "partition <input> [output]",
	Short: "Partition a netlist into two balanced parts",
	Long: `Reads a netlist in the cell/net grammar, runs Fiduccia-Mattheyses
passes until no further improvement is found, and writes the resulting
cut size and cell assignment in the result grammar.`,
	Example: `  fmpart partition ./circuit.net ./circuit.out
  fmpart partition ./circuit.net -o ./circuit.out --balance 0.45`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runPartition,
}

func init() {
	rootCmd.AddCommand(partitionCmd)

	partitionCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output result file (alternative to the positional form)")
	partitionCmd.Flags().Float64Var(&balanceFlag, "balance", 0, "Override the balance factor read from the input file")
	partitionCmd.Flags().IntVar(&maxPassesFlag, "max-passes", 0, "Cap the number of FM passes (0 = use config default, unbounded if that is also 0)")
	partitionCmd.Flags().StringVar(&runUUIDFlag, "uuid", "", "Run UUID for history persistence (auto-generated if empty)")
}

func runPartition(cmd *cobra.Command, args []string) error {
	log := GetLogger()
	cfg := GetConfig()

	inputPath := args[0]
	outputPath := outputFlag
	if len(args) > 1 {
		outputPath = args[1]
	}
	if outputPath == "" {
		return fmt.Errorf("output path is required: pass it positionally or with -o/--output")
	}

	startTime := time.Now()
	timer := utils.NewTimer("partition", utils.WithLogger(log))

	var parsed *netlist.Result
	_, parseErr := timer.TimeFuncWithError("parse", func() error {
		in, err := os.Open(inputPath)
		if err != nil {
			return fmt.Errorf("failed to open input file: %w", err)
		}
		defer in.Close()

		parsed, err = netlist.Parse(in)
		return err
	})
	if parseErr != nil {
		return parseErr
	}

	bf := parsed.BalanceFactor
	if balanceFlag > 0 {
		bf = balanceFlag
	}
	if cfg != nil && maxPassesFlag == 0 {
		maxPassesFlag = cfg.Partition.MaxPasses
	}

	log.Info("=== fmpart partition ===")
	log.Info("Input file:      %s", inputPath)
	log.Info("Output file:     %s", outputPath)
	log.Info("Cells:           %d", parsed.Hypergraph.NumCells())
	log.Info("Nets:            %d", parsed.Hypergraph.NumNets())
	log.Info("Balance factor:  %.4f", bf)

	sess, err := partition.NewSession(parsed.Hypergraph, bf,
		partition.WithLogger(log),
		partition.WithMaxPasses(maxPassesFlag),
	)
	if err != nil {
		return err
	}

	var res *partition.Result
	_, runErr := timer.TimeFuncWithError("fm-passes", func() error {
		res, err = sess.Run(cmd.Context())
		return err
	})
	if runErr != nil {
		return fmt.Errorf("partitioning failed: %w", runErr)
	}
	elapsed := timer.GetDuration("fm-passes")

	log.Info("")
	log.Info("=== Result ===")
	log.Info("Cut size:   %d -> %d", res.InitialCut, res.CutSize)
	log.Info("Part sizes: %d / %d", res.PartSizeA, res.PartSizeB)
	log.Info("Passes:     %d", res.Passes)
	log.Info("Elapsed:    %s", elapsed)

	_, writeErr := timer.TimeFuncWithError("write-result", func() error {
		if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil && filepath.Dir(outputPath) != "." {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		return report.NewWriter().WriteToFile(res, outputPath)
	})
	if writeErr != nil {
		return fmt.Errorf("failed to write result file: %w", writeErr)
	}

	runUUID := runUUIDFlag
	if runUUID == "" {
		runUUID = fmt.Sprintf("run-%s", startTime.Format("20060102-150405"))
	}

	if cfg != nil {
		persistRun(cmd.Context(), log, cfg, runUUID, inputPath, bf, res, elapsed)
		exportResult(cmd.Context(), log, cfg, outputPath)
	}

	timer.PrintSummary()
	return nil
}

// persistRun saves the run's outcome to the configured database, if run
// history persistence is enabled. Failures are logged, not fatal: history
// is an optional side effect of a successful partition.
func persistRun(ctx context.Context, log utils.Logger, cfg *config.Config, runUUID, inputPath string, bf float64, res *partition.Result, elapsed time.Duration) {
	if !cfg.Partition.PersistRunHistory {
		return
	}

	db, err := repository.NewGormDB(&repository.DBConfig{
		Type:     cfg.Database.Type,
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		Database: cfg.Database.Database,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		MaxConns: cfg.Database.MaxConns,
	})
	if err != nil {
		log.Warn("run history persistence disabled: failed to connect to database: %v", err)
		return
	}
	repos := repository.NewRepositories(db, cfg.Database.Type, cfg.Partition.Version)
	defer repos.Close()

	run := &repository.Run{
		RunUUID:        runUUID,
		InputFile:      inputPath,
		BalanceFactor:  bf,
		InitialCutSize: res.InitialCut,
		FinalCutSize:   res.CutSize,
		PartSizeA:      res.PartSizeA,
		PartSizeB:      res.PartSizeB,
		Passes:         res.Passes,
		ElapsedMS:      elapsed.Milliseconds(),
	}
	if err := repos.Run.SaveRun(ctx, run); err != nil {
		log.Warn("failed to persist run history: %v", err)
	}
}

// exportResult uploads the written result file to object storage, if
// result export is enabled.
func exportResult(ctx context.Context, log utils.Logger, cfg *config.Config, outputPath string) {
	if !cfg.Partition.ExportResultToStore {
		return
	}

	store, err := storage.NewStorage(&cfg.Storage)
	if err != nil {
		log.Warn("result export disabled: failed to initialize storage: %v", err)
		return
	}
	if err := store.UploadFile(ctx, filepath.Base(outputPath), outputPath); err != nil {
		log.Warn("failed to upload result file: %v", err)
	}
}
