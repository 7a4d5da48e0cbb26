package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fmpart/fmpart/internal/netlist"
	"github.com/fmpart/fmpart/internal/partition"
	"github.com/fmpart/fmpart/internal/report"
	"github.com/fmpart/fmpart/pkg/parallel"
	"github.com/fmpart/fmpart/pkg/utils"
)

var (
	outputDirFlag string
	workersFlag   int
	batchBalance  float64
)

// runCmd represents the batch run command.
var runCmd = &cobra.Command{
	Use:   "run <input...>",
	Short: "Partition every listed netlist file concurrently",
	Long: `run accepts one or more netlist files or directories. Directories
are expanded to every *.net file they directly contain. Each file is
parsed and partitioned in its own Fiduccia-Mattheyses session; sessions
run concurrently across a bounded worker pool, but each session itself
runs its passes single-threaded.`,
	Example: `  fmpart-batch run ./netlists --output-dir ./results
  fmpart-batch run a.net b.net c.net -o ./results --workers 4`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&outputDirFlag, "output-dir", "o", "", "Directory to write result files into (required)")
	runCmd.Flags().IntVar(&workersFlag, "workers", 0, "Number of concurrent sessions (0 = use config default)")
	runCmd.Flags().Float64Var(&batchBalance, "balance", 0, "Override the balance factor read from each input file")
}

// batchJob is a single input file resolved to partition.
type batchJob struct {
	inputPath  string
	outputPath string
}

// batchOutcome is the result of running a single batchJob.
type batchOutcome struct {
	job     batchJob
	res     *partition.Result
	elapsed time.Duration
	err     error
}

func runBatch(cmd *cobra.Command, args []string) error {
	log := GetLogger()
	cfg := GetConfig()

	if outputDirFlag == "" {
		return fmt.Errorf("--output-dir is required")
	}
	if err := os.MkdirAll(outputDirFlag, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	inputs, err := resolveInputs(args)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no .net input files found among: %s", strings.Join(args, ", "))
	}

	jobs := make([]batchJob, len(inputs))
	for i, in := range inputs {
		name := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
		jobs[i] = batchJob{
			inputPath:  in,
			outputPath: filepath.Join(outputDirFlag, name+".out"),
		}
	}

	workers := workersFlag
	if workers <= 0 && cfg != nil {
		workers = cfg.Batch.WorkerCount
	}

	log.Info("=== fmpart-batch run ===")
	log.Info("Input files: %d", len(jobs))
	log.Info("Workers:     %d", workers)
	log.Info("Output dir:  %s", outputDirFlag)

	poolCfg := parallel.DefaultPoolConfig().WithWorkers(workers).WithMetrics()
	pool := parallel.NewWorkerPool[batchJob, batchOutcome](poolCfg)

	tracker := parallel.NewProgressTracker(int64(len(jobs)), func(completed, total int64) {
		log.Info("progress: %d/%d", completed, total)
	}, 2*time.Second)
	tracker.Start(cmd.Context())
	defer tracker.Stop()

	results := pool.ExecuteFunc(cmd.Context(), jobs, func(ctx context.Context, job batchJob) (batchOutcome, error) {
		outcome := runOne(ctx, log, job, batchBalance)
		tracker.Increment()
		return outcome, nil
	})

	var failures int
	for _, r := range results {
		if r.Result.err != nil {
			failures++
			log.Error("%s: %v", r.Result.job.inputPath, r.Result.err)
			continue
		}
		res := r.Result.res
		log.Info("%s -> %s: cut %d->%d, parts %d/%d, %s",
			r.Result.job.inputPath, r.Result.job.outputPath,
			res.InitialCut, res.CutSize, res.PartSizeA, res.PartSizeB, r.Result.elapsed)
	}

	metrics := pool.Metrics()
	log.Info("")
	log.Info("=== Summary ===")
	log.Info("Succeeded: %d", len(jobs)-failures)
	log.Info("Failed:    %d", failures)
	log.Info("Session time: avg %s, min %s, max %s", metrics.AvgTaskTime, metrics.MinTaskTime, metrics.MaxTaskTime)

	if failures > 0 {
		return fmt.Errorf("%d of %d partitioning runs failed", failures, len(jobs))
	}
	return nil
}

// runOne parses and partitions a single input file, writing its result
// alongside the other concurrently-running jobs.
func runOne(ctx context.Context, log utils.Logger, job batchJob, balanceOverride float64) batchOutcome {
	in, err := os.Open(job.inputPath)
	if err != nil {
		return batchOutcome{job: job, err: fmt.Errorf("failed to open input file: %w", err)}
	}
	defer in.Close()

	parsed, err := netlist.Parse(in)
	if err != nil {
		return batchOutcome{job: job, err: err}
	}

	bf := parsed.BalanceFactor
	if balanceOverride > 0 {
		bf = balanceOverride
	}

	sess, err := partition.NewSession(parsed.Hypergraph, bf, partition.WithLogger(log))
	if err != nil {
		return batchOutcome{job: job, err: err}
	}

	start := time.Now()
	res, err := sess.Run(ctx)
	elapsed := time.Since(start)
	if err != nil {
		return batchOutcome{job: job, elapsed: elapsed, err: fmt.Errorf("partitioning failed: %w", err)}
	}

	if err := report.NewWriter().WriteToFile(res, job.outputPath); err != nil {
		return batchOutcome{job: job, res: res, elapsed: elapsed, err: fmt.Errorf("failed to write result file: %w", err)}
	}

	return batchOutcome{job: job, res: res, elapsed: elapsed}
}

// resolveInputs expands directories in args to the *.net files they
// directly contain and passes plain file paths through unchanged.
func resolveInputs(args []string) ([]string, error) {
	var inputs []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", arg, err)
		}
		if !info.IsDir() {
			inputs = append(inputs, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory %s: %w", arg, err)
		}
		for _, e := range entries {
			if e.IsDir() || filepath.Ext(e.Name()) != ".net" {
				continue
			}
			inputs = append(inputs, filepath.Join(arg, e.Name()))
		}
	}
	sort.Strings(inputs)
	return inputs, nil
}
