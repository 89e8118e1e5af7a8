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

package table

import (
	"fmt"
	"strings"

	"github.com/cortexlabs/qrun/pkg/lib/console"
	s "github.com/cortexlabs/qrun/pkg/lib/strings"
)

type KeyValuePairOpts struct {
	Delimiter string // defaults to ":"
	NumSpaces int    // defaults to 1
	BoldKeys  bool
}

type KeyValuePairs struct {
	kvs []kv
}

type kv struct {
	k interface{}
	v interface{}
}

func (kvs *KeyValuePairs) Add(key interface{}, value interface{}) {
	kvs.kvs = append(kvs.kvs, kv{k: key, v: value})
}

func (kvs KeyValuePairs) String(opts KeyValuePairOpts) string {
	if opts.Delimiter == "" {
		opts.Delimiter = ":"
	}
	if opts.NumSpaces <= 0 {
		opts.NumSpaces = 1
	}

	var maxLen int
	for _, pair := range kvs.kvs {
		if keyLen := len(s.ObjFlatNoQuotes(pair.k)); keyLen > maxLen {
			maxLen = keyLen
		}
	}

	var b strings.Builder
	for _, pair := range kvs.kvs {
		keyStr := s.ObjFlatNoQuotes(pair.k)
		spaces := strings.Repeat(" ", maxLen-len(keyStr)+opts.NumSpaces)
		if opts.BoldKeys {
			keyStr = console.Bold(keyStr)
		}
		b.WriteString(keyStr + opts.Delimiter + spaces + s.ObjFlatNoQuotes(pair.v) + "\n")
	}

	return b.String()
}

func (kvs KeyValuePairs) Print(opts KeyValuePairOpts) {
	fmt.Print(kvs.String(opts))
}
