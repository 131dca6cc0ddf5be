// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadConfig reads host settings from a YAML document such as:
//
//	numberBase: 16
//	maxParenDepth: 64
//	memDumpBytes: 128
//
// Keys that are absent keep their current values. Unknown keys and invalid
// values are errors, in which case no setting is changed.
func (h *Host) LoadConfig(r io.Reader) error {
	s := *h.settings

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("config: %w", err)
	}
	if err := s.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	*h.settings = s
	return nil
}

// LoadConfigFile reads host settings from a YAML file.
func (h *Host) LoadConfigFile(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return h.LoadConfig(file)
}
