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

package cmd

import (
	"fmt"

	"github.com/cortexlabs/qrun/pkg/lib/errors"
	s "github.com/cortexlabs/qrun/pkg/lib/strings"
)

const (
	ErrQubitsRequired       = "cli.qubits_required"
	ErrInvalidCircuitFile   = "cli.invalid_circuit_file"
	ErrInvalidJobID         = "cli.invalid_job_id"
	ErrInvalidMemoryMapFlag = "cli.invalid_memory_map_flag"
	ErrJobNotInHistory      = "cli.job_not_in_history"
	ErrNoWorkspacesMatch    = "cli.no_workspaces_match"
)

func ErrorQubitsRequired(path string) error {
	return errors.WithStack(&errors.Error{
		Kind:    ErrQubitsRequired,
		Message: fmt.Sprintf("%s holds a bare operation list; pass the number of qubits with --qubits", path),
	})
}

func ErrorInvalidCircuitFile(path string, reason string) error {
	return errors.WithStack(&errors.Error{
		Kind:    ErrInvalidCircuitFile,
		Message: fmt.Sprintf("%s: %s", path, reason),
	})
}

func ErrorInvalidJobID(provided string) error {
	return errors.WithStack(&errors.Error{
		Kind:    ErrInvalidJobID,
		Message: fmt.Sprintf("%s is not a valid job id (expected a uuid)", s.UserStr(provided)),
	})
}

func ErrorInvalidMemoryMapFlag(provided string) error {
	return errors.WithStack(&errors.Error{
		Kind:    ErrInvalidMemoryMapFlag,
		Message: fmt.Sprintf("invalid memory map entry %s (expected QUBIT:BIT, e.g. 0:1)", s.UserStr(provided)),
	})
}

func ErrorJobNotInHistory(jobID string) error {
	return errors.WithStack(&errors.Error{
		Kind:    ErrJobNotInHistory,
		Message: fmt.Sprintf("job %s was not submitted from this machine, so its circuits are unknown; its status can still be shown without --counts", jobID),
	})
}

func ErrorNoWorkspacesMatch() error {
	return errors.WithStack(&errors.Error{
		Kind:    ErrNoWorkspacesMatch,
		Message: "no workspaces or resources match the given filters",
	})
}
