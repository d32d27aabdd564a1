//go:build !android

// Command vellobench benchmarks the gg GPU vector graphics renderer.
//
//	vellobench [--stage STAGE] vello-test-scenes [-m LIST]
//	vellobench [--stage STAGE] svg DIRECTORY [-m LIST]
package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/gogpu/vellobench/internal/cli"
)

func main() {
	log.SetFlags(0)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.Execute(ctx, version, commit, date); err != nil {
		stop()
		log.Fatalf("vellobench: %v", err)
	}
}
