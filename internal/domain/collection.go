/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import "spatialcanvas/internal/vector"

// Collection is an id-keyed widget store that remembers insertion order.
// Values are stored by value; Get and All return copies.
type Collection struct {
	order []string
	byID  map[string]Widget
}

// NewCollection builds a collection from ws. Later duplicates replace earlier ones.
func NewCollection(ws ...Widget) *Collection {
	c := &Collection{byID: make(map[string]Widget, len(ws))}
	for _, w := range ws {
		c.Put(w)
	}
	return c
}

func (c *Collection) Len() int { return len(c.order) }

func (c *Collection) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

func (c *Collection) Get(id string) (Widget, bool) {
	w, ok := c.byID[id]
	return w, ok
}

// Put inserts w, or replaces the entry with the same id in place.
func (c *Collection) Put(w Widget) {
	if _, ok := c.byID[w.ID]; !ok {
		c.order = append(c.order, w.ID)
	}
	c.byID[w.ID] = w
}

// Remove deletes id and reports whether it was present.
func (c *Collection) Remove(id string) bool {
	if _, ok := c.byID[id]; !ok {
		return false
	}
	delete(c.byID, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

// IDs returns ids in insertion order.
func (c *Collection) IDs() []string { return append([]string(nil), c.order...) }

// All returns the widgets in insertion order.
func (c *Collection) All() []Widget {
	out := make([]Widget, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// Clone returns a deep copy whose widgets share nothing with c.
func (c *Collection) Clone() *Collection {
	n := &Collection{order: append([]string(nil), c.order...), byID: make(map[string]Widget, len(c.byID))}
	for id, w := range c.byID {
		n.byID[id] = w.Clone()
	}
	return n
}

// Bounds returns the union of all widget rectangles and false when empty.
func (c *Collection) Bounds(def vector.Size) (vector.Rect, bool) {
	var r vector.Rect
	for i, id := range c.order {
		b := c.byID[id].Bounds(def)
		if i == 0 {
			r = b
			continue
		}
		r = r.Union(b)
	}
	return r, len(c.order) > 0
}
