// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package transfer_test

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain fails the package if an export leaves reader goroutines behind.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
