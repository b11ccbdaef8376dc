// Copyright 2025 go-qnnpack Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/ajroetker/go-qnnpack/qnn"
	"github.com/ajroetker/go-qnnpack/qnn/contrib/fc"
	"github.com/ajroetker/go-qnnpack/qnn/contrib/workerpool"
)

func benchCmd() *cli.Command {
	var (
		inputChannels  int64
		outputChannels int64
		batch          int64
		runs           int64
		workers        int64
		concurrent     int64
	)

	return &cli.Command{
		Name:  "bench",
		Usage: "Micro-benchmark the quantized fully-connected operator",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:        "ic",
				Usage:       "input channels",
				Value:       1024,
				Destination: &inputChannels,
			},
			&cli.Int64Flag{
				Name:        "oc",
				Usage:       "output channels",
				Value:       1024,
				Destination: &outputChannels,
			},
			&cli.Int64Flag{
				Name:        "batch",
				Usage:       "batch size per run",
				Value:       64,
				Destination: &batch,
			},
			&cli.Int64Flag{
				Name:        "runs",
				Usage:       "timed runs",
				Value:       20,
				Destination: &runs,
			},
			&cli.Int64Flag{
				Name:        "workers",
				Usage:       "worker pool size (0 = GOMAXPROCS)",
				Value:       0,
				Destination: &workers,
			},
			&cli.Int64Flag{
				Name:        "concurrent",
				Usage:       "concurrently executing descriptors sharing one weight matrix",
				Value:       1,
				Destination: &concurrent,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runBench(int(inputChannels), int(outputChannels), int(batch), int(runs), int(workers), int(concurrent))
		},
	}
}

func runBench(ic, oc, batch, runs, workers, concurrent int) error {
	params := qnn.Initialize()
	fmt.Printf("level=%s mr=%d nr=%d kr=%d\n",
		params.Level, params.Q8Conv.MR, params.Q8Conv.NR, params.Q8Conv.KR)

	rng := rand.New(rand.NewSource(1))
	cfg := fc.Config{
		InputChannels:   ic,
		OutputChannels:  oc,
		InputZeroPoint:  128,
		InputScale:      0.02,
		KernelZeroPoint: 128,
		KernelScale:     0.005,
		Kernel:          make([]uint8, oc*ic),
		Bias:            make([]int32, oc),
		OutputZeroPoint: 128,
		OutputScale:     1.0,
		OutputMin:       0,
		OutputMax:       255,
	}
	for i := range cfg.Kernel {
		cfg.Kernel[i] = uint8(rng.Intn(256))
	}
	for i := range cfg.Bias {
		cfg.Bias[i] = int32(rng.Intn(1<<12) - 1<<11)
	}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	pool := workerpool.New(workers)
	defer pool.Close()

	input := make([]uint8, batch*ic)
	for i := range input {
		input[i] = uint8(rng.Intn(256))
	}

	if concurrent < 1 {
		concurrent = 1
	}

	// One descriptor per concurrently executing batch; the dense weight
	// matrix is shared read-only through cfg.
	start := time.Now()
	var g errgroup.Group
	for range concurrent {
		g.Go(func() error {
			op, err := fc.Create(params, cfg)
			if err != nil {
				return err
			}
			output := make([]uint8, batch*oc)
			if err := op.Setup(params, batch, input, ic, output, oc, pool); err != nil {
				return err
			}
			for range runs {
				if err := op.Run(); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	elapsed := time.Since(start)

	totalOps := 2 * int64(ic) * int64(oc) * int64(batch) * int64(runs) * int64(concurrent)
	perRun := elapsed / time.Duration(runs*concurrent)
	gops := float64(totalOps) / elapsed.Seconds() / 1e9

	fmt.Printf("%dx%d batch=%d runs=%d concurrent=%d workers=%d\n",
		ic, oc, batch, runs, concurrent, workers)
	fmt.Printf("elapsed=%v per_run=%v throughput=%.2f GOPS\n", elapsed, perRun, gops)
	return nil
}
