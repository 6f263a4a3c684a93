package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/jcorbin/gofunge/internal/flushio"
	"github.com/jcorbin/gofunge/internal/ip"
	"github.com/jcorbin/gofunge/internal/logio"
	"github.com/jcorbin/gofunge/internal/settings"
)

const versionString = "gofunge 0.1.0"

func main() {
	log := &logio.Logger{Output: os.Stderr}
	code := run(context.Background(), log, os.Args[1:], os.Stdin, os.Stdout)
	if lc := log.ExitCode(); code == 0 {
		code = lc
	}
	os.Exit(code)
}

var errUsage = errors.New("usage: gofunge [flags] program.b98 [args...]")

// run is the whole command line interpreter, returning its exit code:
// the one given to q, or non-zero after logging an error.
func run(ctx context.Context, log *logio.Logger, args []string, stdin io.Reader, stdout io.Writer) int {
	fs := flag.NewFlagSet("gofunge", flag.ContinueOnError)
	fs.SetOutput(&logio.Writer{Logf: log.Leveledf("")})

	var (
		set          = settings.Default()
		standard     = set.Standard
		noPrints     bool
		listPrints   bool
		sandbox      bool
		trace        int
		warnings     bool
		configFile   string
		timeout      time.Duration
		snapshotFile string
		showVersion  bool
	)
	fs.BoolVar(&noPrints, "F", false, "disable all fingerprints")
	fs.BoolVar(&listPrints, "f", false, "list available fingerprints and exit")
	fs.BoolVar(&sandbox, "S", false, "sandbox: refuse fingerprints that reach outside the interpreter")
	fs.Var(&standard, "s", "language standard: 93, 98 or 108")
	fs.IntVar(&trace, "t", 0, "trace level 0-3")
	fs.BoolVar(&warnings, "W", false, "log warnings")
	fs.StringVar(&configFile, "config", "", "TOML settings file")
	fs.DurationVar(&timeout, "timeout", 0, "time limit for the program")
	fs.StringVar(&snapshotFile, "snapshot", "", "write a CBOR snapshot of the IPs here when the program ends")
	fs.BoolVar(&showVersion, "V", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if showVersion {
		fmt.Fprintln(stdout, versionString)
		return 0
	}

	if configFile != "" {
		var err error
		if set, err = settings.Load(configFile); err != nil {
			log.ErrorIf(err)
			return 1
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "F":
			set.Fingerprints = !noPrints
		case "S":
			set.Sandbox = sandbox
		case "s":
			set.Standard = standard
		case "t":
			set.Trace = trace
		case "W":
			set.Warnings = warnings
		}
	})
	if err := set.Validate(); err != nil {
		log.ErrorIf(err)
		return 1
	}

	if listPrints {
		vm := New(WithSettings(set))
		for _, fp := range vm.Fingerprints() {
			fmt.Fprintf(stdout, "%v 0x%08x %v\n", fp.Name, int64(fp.ID()), fp.Description)
		}
		return 0
	}

	if fs.NArg() < 1 {
		log.ErrorIf(errUsage)
		return 1
	}

	out := flushio.NewWriteFlusher(stdout)
	if f, ok := stdout.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		out = flushio.LineFlushing(out)
	}

	log.Levels = map[string]bool{"WARN": set.Warnings}
	opts := []VMOption{
		WithSettings(set),
		WithInput(stdin),
		WithOutput(out),
		WithArgs(fs.Args()...),
		WithEnviron(os.Environ()),
		WithWarnf(log.Leveledf("WARN")),
	}
	if set.Trace > 0 {
		opts = append(opts, WithLogf(log.Leveledf("TRACE")))
	}
	vm := New(opts...)
	defer vm.Close()

	if err := vm.LoadFile(fs.Arg(0)); err != nil {
		log.ErrorIf(err)
		return 1
	}

	if timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	err := runWatched(ctx, vm)

	if snapshotFile != "" {
		log.ErrorIf(writeSnapshot(snapshotFile, vm.Snapshot()))
	}

	if err != nil {
		log.ErrorIf(err)
		if set.Trace > 0 {
			dw := &logio.Writer{Logf: log.Leveledf("DUMP")}
			vm.Dump(dw)
			dw.Flush()
		}
		return 1
	}
	return vm.ExitCode()
}

// runWatched runs vm alongside a signal watcher; an interrupt or terminate
// signal cancels the run.
func runWatched(ctx context.Context, vm *VM) error {
	eg, ctx := errgroup.WithContext(ctx)
	ctx, cancel := context.WithCancel(ctx)
	eg.Go(func() error {
		defer cancel()
		return vm.Run(ctx)
	})
	eg.Go(func() error {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigs)
		select {
		case sig := <-sigs:
			return fmt.Errorf("received %v", sig)
		case <-ctx.Done():
			return nil
		}
	})
	return eg.Wait()
}

func writeSnapshot(name string, snap *ip.Snapshot) error {
	data, err := ip.MarshalSnapshot(snap)
	if err != nil {
		return err
	}
	return os.WriteFile(name, data, 0o644)
}
