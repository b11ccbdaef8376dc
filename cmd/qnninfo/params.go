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
	"runtime"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/ajroetker/go-qnnpack/qnn"
)

func paramsCmd() *cli.Command {
	return &cli.Command{
		Name:  "params",
		Usage: "Print the detected capability parameter table as JSON",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			report := struct {
				GOOS   string      `json:"goos"`
				GOARCH string      `json:"goarch"`
				NumCPU int         `json:"num_cpu"`
				Params *qnn.Params `json:"params"`
			}{
				GOOS:   runtime.GOOS,
				GOARCH: runtime.GOARCH,
				NumCPU: runtime.NumCPU(),
				Params: qnn.Initialize(),
			}

			out, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
}
