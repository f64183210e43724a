// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/tliron/commonlog"

	"espresso/internal/espresso"
	"espresso/pla"
)

func main() {
	var (
		exact     = flag.Bool("exact", false, "exact minimum cube count instead of the heuristic loop")
		fast      = flag.Bool("fast", false, "single EXPAND/IRREDUNDANT pass")
		strong    = flag.Bool("strong", false, "iterate the gasp escape until it stops improving")
		simplify  = flag.Bool("simplify", false, "one cheap cleanup pass")
		check     = flag.Bool("check", false, "verify the cover triple and exit")
		swap      = flag.Bool("swap", false, "minimize the OFF-set instead")
		unwrap    = flag.Bool("unwrap", false, "split multi-output cubes before minimizing")
		recompute = flag.Bool("recompute", false, "derive the ON-set from the DC- and OFF-sets")
		timeoutS  = flag.Int("timeout", 0, "soft deadline in seconds, 0 for none")
		verbose   = flag.Bool("v", false, "debug trace logging")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Println("Usage: espresso-cli [flags] <file.pla>")
		flag.PrintDefaults()
		os.Exit(1)
	}
	path := flag.Arg(0)

	verbosity := 0
	if *verbose {
		verbosity = 1
	}
	commonlog.Configure(verbosity, nil)

	in, err := pla.ParseFile(path)
	if err != nil {
		color.Red("Failed to parse %s: %s", path, err)
		os.Exit(1)
	}

	ctx := espresso.NewContext()
	if *timeoutS > 0 {
		ctx = ctx.WithDeadline(time.Now().Add(time.Duration(*timeoutS) * time.Second))
	}

	if *check {
		if err := espresso.Check(ctx, in.F, in.D, in.R); err != nil {
			color.Red("Check failed: %s", err)
			os.Exit(1)
		}
		color.Green("Cover triple is consistent")
		return
	}

	opts := espresso.DefaultOptions()
	if *fast {
		opts.Strategy = espresso.StrategyFast
	}
	if *strong {
		opts.Strategy = espresso.StrategyStrong
	}
	opts.SwapOnOff = *swap
	opts.UnwrapOnset = *unwrap
	opts.RecomputeOnset = *recompute

	var result = in.F
	switch {
	case *simplify:
		result, err = espresso.Simplify(ctx, in.F, in.D, in.R)
	case *exact:
		result, err = espresso.MinimizeExact(ctx, in.F, in.D, in.R, opts)
	default:
		result, err = espresso.MinimizeHeuristic(ctx, in.F, in.D, in.R, opts)
	}
	if err != nil {
		if espresso.IsKind(err, espresso.SoftTimeout) || espresso.IsKind(err, espresso.LimitExceeded) {
			color.Yellow("Search truncated: %s", err)
		} else {
			color.Red("Minimization failed: %s", err)
			os.Exit(1)
		}
	}

	// Only the minimized ON-set is printed; the DC rows did their job.
	out := &pla.PLA{
		Lay:       in.Lay,
		F:         result,
		Type:      "fd",
		InLabels:  in.InLabels,
		OutLabels: in.OutLabels,
	}
	fmt.Print(pla.Format(out))
}
