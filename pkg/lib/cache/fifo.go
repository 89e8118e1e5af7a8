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

package cache

import (
	"gopkg.in/karalabe/cookiejar.v2/collections/deque"
)

// Fifo remembers the last size keys; adding beyond that forgets the oldest one. It is not safe for concurrent use.
type Fifo struct {
	size  int
	seen  map[string]struct{}
	order *deque.Deque
}

func NewFifoCache(cacheSize int) Fifo {
	return Fifo{
		size:  cacheSize,
		seen:  map[string]struct{}{},
		order: deque.New(),
	}
}

func (c *Fifo) Has(key string) bool {
	_, ok := c.seen[key]
	return ok
}

func (c *Fifo) Len() int {
	return c.order.Size()
}

// Add returns the key that was evicted to make room, if any. Adding a known key is a no-op.
func (c *Fifo) Add(key string) (string, bool) {
	if c.Has(key) {
		return "", false
	}

	var evicted string
	var ok bool
	if c.size > 0 && c.order.Size() >= c.size {
		evicted = c.order.PopLeft().(string)
		delete(c.seen, evicted)
		ok = true
	}

	c.seen[key] = struct{}{}
	c.order.PushRight(key)
	return evicted, ok
}
