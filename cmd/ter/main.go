// SPDX-License-Identifier: MIT

// Command ter integrates the 1D shallow-water equations.
//
//	ter -config configs/dam_break.yaml -scheme rk2 -flux hll
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/YoshaTogame/TER/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := app.RunContext(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
