// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package transfer

import (
	_ "embed"
	"fmt"
)

//go:embed seed.yaml
var seedYAML []byte

// SeedSnapshot decodes the embedded sample catalog.
func SeedSnapshot() (*Snapshot, error) {
	snapshot, err := DecodeYAML(seedYAML)
	if err != nil {
		return nil, fmt.Errorf("transfer: seed data: %w", err)
	}
	return snapshot, nil
}
