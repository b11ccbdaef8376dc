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

package qnn

import "testing"

func TestInitializeDetectsHost(t *testing.T) {
	p := Initialize()
	if p == nil {
		t.Fatal("Initialize returned nil")
	}
	if !p.Valid() {
		t.Fatalf("Initialize returned invalid params: %+v", p)
	}
	if p.Level == "" {
		t.Error("Level is empty")
	}
	if p.Q8Conv.MR == 0 || p.Q8Conv.NR == 0 || p.Q8Conv.KR == 0 {
		t.Errorf("zero tile size in %+v", p.Q8Conv)
	}
}

func TestInitializeReturnsSharedHandle(t *testing.T) {
	if Initialize() != Initialize() {
		t.Error("Initialize returned different handles across calls")
	}
}

func TestParamsValid(t *testing.T) {
	testCases := []struct {
		name   string
		params *Params
		want   bool
	}{
		{"nil", nil, false},
		{"zero_value", &Params{}, false},
		{"initialized_without_tiles", &Params{Initialized: true}, false},
		{"missing_kr", &Params{Q8Conv: Q8ConvParams{MR: 4, NR: 4}, Initialized: true}, false},
		{"not_marked_initialized", &Params{Q8Conv: Q8ConvParams{MR: 4, NR: 4, KR: 1}}, false},
		{"complete", &Params{Q8Conv: Q8ConvParams{MR: 4, NR: 4, KR: 1}, Initialized: true}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.params.Valid(); got != tc.want {
				t.Errorf("Valid() = %v, want %v", got, tc.want)
			}
		})
	}
}
