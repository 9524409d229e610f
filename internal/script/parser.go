/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */
package script

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	gojsonschema "github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"spatialcanvas/internal/keymap"
)

//go:embed schema.json
var schemaJSON []byte

// Schema returns the JSON schema replay scripts are validated against.
func Schema() []byte { return append([]byte(nil), schemaJSON...) }

// ErrInvalid is wrapped by every parse or validation failure.
var ErrInvalid = errors.New("invalid replay script")

var schemaLoader = gojsonschema.NewBytesLoader(schemaJSON)

// Parse validates and decodes a YAML or JSON replay script. On failure the returned
// error wraps ErrInvalid and the slice lists every problem found.
func Parse(data []byte) (Script, []Error, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		e := Error{Message: err.Error()}
		return Script{}, []Error{e}, fmt.Errorf("%w: %s", ErrInvalid, e.Message)
	}
	if doc == nil {
		e := Error{Message: "empty document"}
		return Script{}, []Error{e}, fmt.Errorf("%w: %s", ErrInvalid, e.Message)
	}
	if errs := Validate(doc); len(errs) > 0 {
		return Script{}, errs, fmt.Errorf("%w: %d problem(s), first: %s", ErrInvalid, len(errs), errs[0].Error())
	}
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		e := Error{Message: err.Error()}
		return Script{}, []Error{e}, fmt.Errorf("%w: %s", ErrInvalid, e.Message)
	}
	if errs := checkChords(s); len(errs) > 0 {
		return Script{}, errs, fmt.Errorf("%w: %s", ErrInvalid, errs[0].Error())
	}
	return s, nil, nil
}

// checkChords rejects key steps whose chord would fail at run time.
func checkChords(s Script) []Error {
	var out []Error
	for i, st := range s.Steps {
		if st.Op != OpKey {
			continue
		}
		if _, err := keymap.ParseChord(st.Chord); err != nil {
			out = append(out, Error{Step: i + 1, Field: "chord", Message: err.Error()})
		}
	}
	return out
}

// ParseFile reads and parses path.
func ParseFile(path string) (Script, []Error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, nil, fmt.Errorf("read script %s: %w", path, err)
	}
	return Parse(data)
}

// Validate checks a generic decoded document against the schema.
func Validate(doc any) []Error {
	res, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return []Error{{Message: err.Error()}}
	}
	if res.Valid() {
		return nil
	}
	out := make([]Error, 0, len(res.Errors()))
	for _, re := range res.Errors() {
		step, field := locate(re.Field())
		out = append(out, Error{Step: step, Field: field, Message: re.Description()})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Step < out[j].Step })
	return out
}

// locate turns a schema path such as "steps.2.chord" into step 3, field "chord".
func locate(path string) (int, string) {
	if path == "(root)" {
		return 0, ""
	}
	parts := strings.Split(path, ".")
	if len(parts) >= 2 && parts[0] == "steps" {
		if n, err := strconv.Atoi(parts[1]); err == nil {
			return n + 1, strings.Join(parts[2:], ".")
		}
	}
	return 0, path
}
