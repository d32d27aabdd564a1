//go:build android

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/vellobench"
	"github.com/gogpu/vellobench/internal/platform"
)

// timingsDir is where the SVG corpus is pushed with adb.
const timingsDir = "/data/local/tmp/svgs/timings"

// main ignores arguments: on a device the benchmark is launched from a
// shell with a fixed workload.
func main() {
	log.SetFlags(0)
	vellobench.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))
	if err := platform.RaisePriority(); err != nil {
		vellobench.Logger().Warn("vellobench: could not raise priority", "err", err)
	}

	ctx := context.Background()
	fmt.Printf("vellobench: measuring %s stage\n", vellobench.StageRaster)
	err := vellobench.Run(ctx, vellobench.Cli{
		Stage:   vellobench.StageRaster,
		Command: vellobench.TestScenesArgs{Matches: "mmark,longpathdash"},
		Options: vellobench.DefaultOptions(),
	})
	if err != nil {
		log.Fatalf("vellobench: %v", err)
	}

	fmt.Println("vellobench: measuring timings SVGs")
	err = vellobench.Run(ctx, vellobench.Cli{
		Stage:   vellobench.StageRaster,
		Command: vellobench.SvgArgs{Directory: timingsDir},
		Options: vellobench.DefaultOptions(),
	})
	if err != nil {
		log.Fatalf("vellobench: %v", err)
	}
}
