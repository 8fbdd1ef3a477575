// Package cmd provides the command-line interface of cachesim.
package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/cachesim/datarecording"
	"github.com/sarchlab/cachesim/mem/cache"
	"github.com/sarchlab/cachesim/mem/trace"
	"github.com/sarchlab/cachesim/monitoring"
)

type options struct {
	setBits         int
	numWays         int
	blockBits       int
	traceFile       string
	verbose         bool
	recordPath      string
	cpuProfile      string
	dumpState       string
	reportResources bool
	maxNumLines     uint64
}

var opts options

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cachesim -s <num> -E <num> -b <num> -t <file>",
	Short: "Replay a memory trace against a set-associative cache model.",
	Long: `cachesim replays a memory access trace against a software model of ` +
		`a set-associative LRU cache and reports the number of hits, misses ` +
		`and evictions.`,
	Example: `  cachesim -s 4 -E 1 -b 4 -t traces/trace01.dat
  cachesim -v -s 8 -E 2 -b 4 -t traces/trace01.dat`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.SilenceUsage = true

		if err := run(opts, cmd.OutOrStdout()); err != nil {
			atexit.Fatalf("Error: %v", err)
		}
	},
}

func init() {
	flags := rootCmd.Flags()
	flags.IntVarP(&opts.setBits, "set-bits", "s", -1,
		"Number of set index bits.")
	flags.IntVarP(&opts.numWays, "lines", "E", -1,
		"Number of lines per set.")
	flags.IntVarP(&opts.blockBits, "block-bits", "b", -1,
		"Number of block offset bits.")
	flags.StringVarP(&opts.traceFile, "trace", "t", "",
		"Trace file.")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false,
		"Print the outcome of every access.")
	flags.StringVar(&opts.recordPath, "record", "",
		"Record every access into the SQLite database <path>.sqlite3.")
	flags.StringVar(&opts.cpuProfile, "cpu-profile", "",
		"Write a CPU profile of the run to this file.")
	flags.StringVar(&opts.dumpState, "dump-state", "",
		"Write a JSON snapshot of the final cache to this file.")
	flags.BoolVar(&opts.reportResources, "report-resources", false,
		"Log the CPU and memory usage of the process after the run.")
	flags.Uint64Var(&opts.maxNumLines, "max-lines", cache.DefaultMaxNumLines,
		"Refuse caches with more lines than this.")

	for _, name := range []string{"set-bits", "lines", "block-bits", "trace"} {
		if err := rootCmd.MarkFlagRequired(name); err != nil {
			panic(err)
		}
	}
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	env, err := loadEnv()
	if err != nil {
		log.Printf("Warning: %v", err)
	}

	applyEnv(env)

	err = rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

// applyEnv overrides flag defaults. It runs before the flags are parsed, so
// flags given on the command line still win.
func applyEnv(env envConfig) {
	if env.RecordPath != "" {
		opts.recordPath = env.RecordPath
	}

	if env.Verbose {
		opts.verbose = true
	}

	if env.MaxNumLines != 0 {
		opts.maxNumLines = env.MaxNumLines
	}
}

func run(o options, out io.Writer) error {
	c, err := cache.MakeBuilder().
		WithSetBits(o.setBits).
		WithNumWays(o.numWays).
		WithBlockBits(o.blockBits).
		WithMaxNumLines(o.maxNumLines).
		Build("Cache")
	if err != nil {
		return err
	}

	file, err := os.Open(o.traceFile)
	if err != nil {
		return fmt.Errorf("opening trace: %w", err)
	}
	defer file.Close()

	interpreter := trace.NewInterpreter(c)

	if o.verbose {
		tracer := trace.NewVerboseTracer(log.New(out, "", 0))
		trace.Attach(tracer, interpreter, c)
	}

	if o.recordPath != "" {
		recorder, err := datarecording.New(o.recordPath)
		if err != nil {
			return err
		}
		defer recorder.Close()

		trace.Attach(trace.NewDBTracer(recorder), interpreter, c)
	}

	var profiler *monitoring.CPUProfiler
	if o.cpuProfile != "" {
		profiler, err = monitoring.StartCPUProfile()
		if err != nil {
			return err
		}
	}

	runErr := interpreter.Run(trace.NewReader(file))

	if profiler != nil {
		if err := stopProfile(profiler, o.cpuProfile); err != nil {
			return err
		}
	}

	if runErr != nil {
		return runErr
	}

	printSummary(out, c.Stats())

	if o.dumpState != "" {
		if err := dumpState(c, o.dumpState); err != nil {
			return err
		}
	}

	if o.reportResources {
		reportResources(interpreter.Summary())
	}

	return nil
}

func printSummary(out io.Writer, stats cache.Statistics) {
	fmt.Fprintf(out, "hits:%d misses:%d evictions:%d\n",
		stats.Hits, stats.Misses, stats.Evictions)
}

func stopProfile(profiler *monitoring.CPUProfiler, path string) error {
	prof, err := profiler.Stop()
	if err != nil {
		return fmt.Errorf("collecting cpu profile: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := monitoring.WriteProfile(f, prof); err != nil {
		return err
	}

	log.Printf("CPU profile with %d samples written to %s",
		monitoring.TotalSamples(prof), path)

	return nil
}

func dumpState(c *cache.Comp, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return monitoring.DumpState(f, c.Snapshot(), -1)
}

func reportResources(summary trace.Summary) {
	usage, err := monitoring.ReadResourceUsage()
	if err != nil {
		log.Printf("Warning: cannot read resource usage: %v", err)
		return
	}

	log.Printf("records: %d (skipped %d), accesses: %d, "+
		"cpu: %.1f%%, rss: %d bytes",
		summary.Records, summary.Skipped(), summary.Accesses,
		usage.CPUPercent, usage.MemorySize)
}
