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
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cortexlabs/qrun/pkg/circuit"
	"github.com/cortexlabs/qrun/pkg/lib/errors"
	"github.com/cortexlabs/qrun/pkg/lib/files"
	libjson "github.com/cortexlabs/qrun/pkg/lib/json"
	"github.com/cortexlabs/qrun/pkg/types/api"
)

type circuitFileEntry struct {
	NumberOfQubits int             `json:"number_of_qubits"`
	QuantumCircuit json.RawMessage `json:"quantum_circuit"`
	Repetitions    int             `json:"repetitions"`
}

type circuitFile struct {
	Circuits []circuitFileEntry `json:"circuits"`
}

type circuitFileOptions struct {
	Label     string
	Shots     int
	Qubits    int
	Decompose bool
	// Radians means the angles in the file are in radians rather than units of pi
	Radians bool
}

func readSubmissionFile(path string, opts circuitFileOptions) (api.JobSubmission, error) {
	absPath := files.UserRelToAbsPath(path)
	fileBytes, err := files.ReadFileBytes(absPath)
	if err != nil {
		return api.JobSubmission{}, err
	}
	return parseSubmission(files.ReplacePathWithTilde(absPath), fileBytes, opts)
}

// parseSubmission accepts either a bare operation list (one circuit, sized by the flags)
// or an object {"circuits": [{"number_of_qubits", "quantum_circuit", "repetitions"}, ...]}.
// Angles may be outside the wire domains; they are normalized before submitting.
func parseSubmission(path string, fileBytes []byte, opts circuitFileOptions) (api.JobSubmission, error) {
	var entries []circuitFileEntry

	trimmed := bytes.TrimSpace(fileBytes)
	switch {
	case bytes.HasPrefix(trimmed, []byte("[")):
		if opts.Qubits <= 0 {
			return api.JobSubmission{}, ErrorQubitsRequired(path)
		}
		entries = []circuitFileEntry{{NumberOfQubits: opts.Qubits, QuantumCircuit: trimmed, Repetitions: opts.Shots}}
	case bytes.HasPrefix(trimmed, []byte("{")):
		var file circuitFile
		if err := libjson.UnmarshalStrict(trimmed, &file); err != nil {
			return api.JobSubmission{}, ErrorInvalidCircuitFile(path, errors.Message(err))
		}
		entries = file.Circuits
	default:
		return api.JobSubmission{}, ErrorInvalidCircuitFile(path, "expected a json list of operations or an object with a \"circuits\" list")
	}

	if len(entries) == 0 {
		return api.JobSubmission{}, ErrorInvalidCircuitFile(path, "no circuits found")
	}

	enc := circuit.NewEncoder(circuit.Options{DecomposeEntangling: opts.Decompose})

	circuits := make([]api.QuantumCircuit, len(entries))
	for i, entry := range entries {
		if entry.NumberOfQubits <= 0 {
			entry.NumberOfQubits = opts.Qubits
		}
		if entry.Repetitions <= 0 {
			entry.Repetitions = opts.Shots
		}

		ops, err := api.DecodeCircuit(entry.QuantumCircuit)
		if err != nil {
			return api.JobSubmission{}, errors.Wrap(err, path, fmt.Sprintf("circuit %d", i))
		}
		if opts.Radians {
			ops = opsFromRadians(ops)
		}

		circuits[i], err = circuit.NewQuantumCircuit(enc, ops, entry.NumberOfQubits, entry.Repetitions)
		if err != nil {
			return api.JobSubmission{}, errors.Wrap(err, path, fmt.Sprintf("circuit %d", i))
		}
	}

	return circuit.Batch(opts.Label, circuits...)
}

func opsFromRadians(ops []api.Operation) []api.Operation {
	converted := make([]api.Operation, len(ops))
	for i, op := range ops {
		switch op := op.(type) {
		case api.GateRZ:
			op.Phi = circuit.FromRadians(op.Phi)
			converted[i] = op
		case api.GateR:
			op.Phi = circuit.FromRadians(op.Phi)
			op.Theta = circuit.FromRadians(op.Theta)
			converted[i] = op
		case api.GateRXX:
			op.Theta = circuit.FromRadians(op.Theta)
			converted[i] = op
		default:
			converted[i] = op
		}
	}
	return converted
}

// parseMemoryMap reads "0:1,1:0" (qubit:classical bit); an empty string is the identity map
func parseMemoryMap(str string, numberOfQubits int) (map[int]int, error) {
	memoryMap := map[int]int{}
	if strings.TrimSpace(str) == "" {
		for i := 0; i < numberOfQubits; i++ {
			memoryMap[i] = i
		}
		return memoryMap, nil
	}

	for _, pair := range strings.Split(str, ",") {
		parts := strings.Split(strings.TrimSpace(pair), ":")
		if len(parts) != 2 {
			return nil, ErrorInvalidMemoryMapFlag(pair)
		}
		qubit, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, ErrorInvalidMemoryMapFlag(pair)
		}
		bit, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, ErrorInvalidMemoryMapFlag(pair)
		}
		memoryMap[qubit] = bit
	}
	return memoryMap, nil
}

type outcomeCount struct {
	Outcome string
	Count   int
}

// sortedCounts orders by count, most frequent first, then by outcome
func sortedCounts(counts map[string]int) []outcomeCount {
	sorted := make([]outcomeCount, 0, len(counts))
	for outcome, count := range counts {
		sorted = append(sorted, outcomeCount{Outcome: outcome, Count: count})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Count != sorted[j].Count {
			return sorted[i].Count > sorted[j].Count
		}
		return sorted[i].Outcome < sorted[j].Outcome
	})
	return sorted
}
