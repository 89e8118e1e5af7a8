/*
Copyright 2022 Cortex Labs, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package portal

import (
	"github.com/cortexlabs/qrun/pkg/consts"
	"github.com/cortexlabs/qrun/pkg/types/api"
)

type Config struct {
	Workspaces api.Workspaces
	// Token is the expected bearer token; empty accepts any request
	Token string
	// QueuedPolls is how many result requests a new job answers with queued before it starts running
	QueuedPolls int
	// MaxJobs bounds the stored jobs; the oldest are forgotten and then reported as unknown
	MaxJobs        int
	MaxQubits      int
	MaxRepetitions int
	Seed           int64
}

func DefaultConfig() Config {
	return Config{
		Workspaces: api.Workspaces{
			{
				ID: consts.DefaultWorkspaceID,
				Resources: []api.Resource{
					{ID: consts.DefaultResourceID, Name: "Offline ideal simulator", Type: api.ResourceTypeSimulator},
					{ID: "offline_simulator_noise", Name: "Offline noisy simulator", Type: api.ResourceTypeSimulator},
				},
			},
		},
		QueuedPolls:    1,
		MaxJobs:        1000,
		MaxQubits:      20,
		MaxRepetitions: 2000,
		Seed:           1,
	}
}

func (config *Config) Validate() error {
	if len(config.Workspaces) == 0 {
		return ErrorInvalidConfig("at least one workspace is required")
	}
	if config.QueuedPolls < 0 {
		return ErrorInvalidConfig("queued polls must not be negative")
	}
	if config.MaxJobs <= 0 {
		return ErrorInvalidConfig("max jobs must be positive")
	}
	if config.MaxQubits <= 0 {
		return ErrorInvalidConfig("max qubits must be positive")
	}
	if config.MaxRepetitions <= 0 {
		return ErrorInvalidConfig("max repetitions must be positive")
	}
	return nil
}
