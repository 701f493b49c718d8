package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type command struct {
	summary string
	run     func(args []string, stdout io.Writer, log *zap.Logger) error
}

var commands = map[string]command{
	"info":    {"Print header fields and voiced-frame statistics", runInfo},
	"build":   {"Build a frq file from a JSON manifest", runBuild},
	"edit":    {"Apply one editing operation to a frq file", runEdit},
	"average": {"Recompute the cached average frequency", runAverage},
	"compare": {"Compare two frq files frame by frame", runCompare},
	"stats":   {"Summarize many frq files in parallel", runStats},
	"icon":    {"Convert a PNG/JPEG picture into a voicebank BMP icon", runIcon},
}

func main() {
	verbose := flag.Bool("v", false, "Enable debug logging")
	flag.Usage = usage
	flag.Parse()

	log := newLogger(*verbose)
	defer func() { _ = log.Sync() }()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}
	name := flag.Arg(0)
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", name)
		usage()
		os.Exit(2)
	}
	if err := cmd.run(flag.Args()[1:], os.Stdout, log); err != nil {
		die(log, name, err)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: frq-tool [-v] <command> [flags]\n\nCommands:\n")
	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(os.Stderr, "  %-8s %s\n", n, commands[n].summary)
	}
}

func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

func die(log *zap.Logger, cmd string, err error) {
	log.Error("command failed", zap.String("command", cmd), zap.Error(err))
	_ = log.Sync()
	os.Exit(1)
}
