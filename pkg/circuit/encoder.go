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

package circuit

import (
	"strconv"
	"time"

	"github.com/cortexlabs/qrun/pkg/lib/hash"
	"github.com/cortexlabs/qrun/pkg/types/api"
	"github.com/patrickmn/go-cache"
)

// Encoder turns operation lists into validated wire circuits. It is safe for concurrent use.
type Encoder struct {
	opts  Options
	cache *cache.Cache
}

func NewEncoder(opts Options) *Encoder {
	return &Encoder{opts: opts}
}

// NewCachedEncoder memoizes encoded circuits by content for ttl
func NewCachedEncoder(opts Options, ttl time.Duration) *Encoder {
	return &Encoder{
		opts:  opts,
		cache: cache.New(ttl, 2*ttl),
	}
}

func (e *Encoder) Options() Options {
	return e.opts
}

// Encode validates ops against numberOfQubits and normalizes every angle into its wire domain.
// Indices in returned violations refer to ops.
func (e *Encoder) Encode(ops []api.Operation, numberOfQubits int) (api.Circuit, error) {
	if err := validateSize(len(ops), numberOfQubits); err != nil {
		return nil, err
	}

	key := e.cacheKey(ops, numberOfQubits)
	if key != "" {
		if cached, found := e.cache.Get(key); found {
			return cloneCircuit(cached.(api.Circuit)), nil
		}
	}

	for i, op := range ops {
		if err := validateStructure(i, op, len(ops), numberOfQubits); err != nil {
			return nil, err
		}
	}

	normalized, err := Normalize(ops, e.opts)
	if err != nil {
		return nil, err
	}
	if len(normalized) > api.MaxOperations {
		return nil, ErrorTooManyOperations(len(normalized))
	}
	if err := Validate(normalized, numberOfQubits); err != nil {
		return nil, err
	}

	encoded := api.Circuit(normalized)
	if key != "" {
		e.cache.Set(key, cloneCircuit(encoded), cache.DefaultExpiration)
	}
	return encoded, nil
}

func (e *Encoder) cacheKey(ops []api.Operation, numberOfQubits int) string {
	if e.cache == nil {
		return ""
	}
	// fails for non-finite angles, which are then encoded (and rejected) without the cache
	opsHash, err := hash.JSON(ops)
	if err != nil {
		return ""
	}
	return hash.Strings(opsHash, strconv.Itoa(numberOfQubits), strconv.FormatBool(e.opts.DecomposeEntangling))
}

func cloneCircuit(c api.Circuit) api.Circuit {
	clone := make(api.Circuit, len(c))
	for i, op := range c {
		if rxx, ok := op.(api.GateRXX); ok {
			rxx.Qubits = append([]int(nil), rxx.Qubits...)
			op = rxx
		}
		clone[i] = op
	}
	return clone
}

// Decode parses a wire circuit and validates it without normalizing
func Decode(data []byte, numberOfQubits int) (api.Circuit, error) {
	c, err := api.DecodeCircuit(data)
	if err != nil {
		return nil, err
	}
	if err := Validate(c, numberOfQubits); err != nil {
		return nil, err
	}
	return c, nil
}
