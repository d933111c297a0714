// Command cryptopals runs the Cryptopals challenge solutions.
//
// With no arguments every implemented challenge runs, set by set, each
// printing a boxed title and its result. Diagnostics go to stderr and are
// selected with CRYPTOPALS_LOG:
//
//	CRYPTOPALS_LOG=cryptopals=debug go run ./cmd/cryptopals
//	CRYPTOPALS_LOG=cryptopals=info,cryptopals/set1=debug go run ./cmd/cryptopals -set 1
//
// # Usage
//
//	go run ./cmd/cryptopals [-set N] [-challenge N] [-config PATH]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Farzy/cryptopals"
	"github.com/Farzy/cryptopals/set1"
	"github.com/Farzy/cryptopals/set2"
	"github.com/Farzy/cryptopals/set3"
)

var log = cryptopals.NewLogger(cryptopals.ModuleName + "/main")

var sets = []struct {
	number int
	first  int
	last   int
	run    func(context.Context, *cryptopals.Env, int) error
}{
	{set1.Set, 1, 8, set1.Run},
	{set2.Set, 9, 16, set2.Run},
	{set3.Set, 17, 24, set3.Run},
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run returns the process exit status: 0 on success, 1 if a challenge
// failed, 2 for bad flags or configuration.
func run(args []string, stderr io.Writer) int {
	flags := flag.NewFlagSet("cryptopals", flag.ContinueOnError)
	flags.SetOutput(stderr)
	var (
		setFlag       = flags.Int("set", 0, "Run only this challenge set (1-3)")
		challengeFlag = flags.Int("challenge", 0, "Run only this challenge (1-24)")
		configPath    = flags.String("config", "", "Configuration file of key=value; lines")
	)
	if err := flags.Parse(args); err != nil {
		return 2
	}

	if _, err := cryptopals.LogInitFromEnv(); err != nil {
		fmt.Fprintf(stderr, "Error: %s: %v\n", cryptopals.LogEnvVar, err)
		return 2
	}

	cfg, err := cryptopals.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading configuration: %v\n", err)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := cryptopals.NewEnv(cfg)
	log.Infof("Run %s starting", cryptopals.RunID())

	ran := false
	failed := false
	for _, s := range sets {
		if *setFlag != 0 && *setFlag != s.number {
			continue
		}
		if *challengeFlag != 0 && (*challengeFlag < s.first || *challengeFlag > s.last) {
			continue
		}
		ran = true
		if err := s.run(ctx, env, *challengeFlag); err != nil {
			log.Errorf("Set %d: %v", s.number, err)
			failed = true
		}
		if ctx.Err() != nil {
			break
		}
	}
	if !ran {
		fmt.Fprintf(stderr, "Error: no challenge matches -set %d -challenge %d\n", *setFlag, *challengeFlag)
		return 2
	}

	for _, snap := range env.Metrics.Snapshot() {
		log.Infof("Oracle %s: %d queries, average %v, max %v", snap.Oracle, snap.Queries, snap.AvgLatency, snap.MaxLatency)
	}
	if n := env.Metrics.BytesFetched(); n > 0 {
		log.Infof("Downloaded %d bytes", n)
	}
	if failed {
		return 1
	}
	return 0
}
