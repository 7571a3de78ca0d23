// Copyright (c) 2026 The GoRide Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package license_test checks the MPL notices of the Go sources.
package license_test

import (
	"bufio"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const projectNotice = "// Copyright (c) 2026 The GoRide Authors"

// upstream lists the sources which are modified versions of files
// published by another copyright holder, so their notice is retained.
var upstream = map[string]string{
	"pkg/adapter/hash/scram/scram.go":          "// Copyright (c) 2024 Behnam Momeni",
	"pkg/adapter/config/settings/duration.go":  "// Copyright (c) 2024 Behnam Momeni",
	"pkg/adapter/config/config.go":             "// Copyright (c) 2024 Behnam Momeni",
	"pkg/adapter/restful/gin/routes/routes.go": "// Copyright (c) 2024 Behnam Momeni",
	"pkg/core/log/log.go":                      "// Copyright (c) 2024 Behnam Momeni",
	"pkg/core/log/attrs.go":                    "// Copyright (c) 2024 Behnam Momeni",
	"pkg/core/scram/scram.go":                  "// Copyright (c) 2024 Behnam Momeni",
	"internal/test/dbcontainer/dbcontainer.go": "// Copyright (c) 2024 Behnam Momeni",
}

var mplLines = []string{
	"// This Source Code Form is subject to the terms of the Mozilla Public",
	"// License, v. 2.0. If a copy of the MPL was not distributed with this",
	"// file, You can obtain one at https://mozilla.org/MPL/2.0/.",
}

func header(t *testing.T, path string) []string {
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	var lines []string
	s := bufio.NewScanner(f)
	for len(lines) < 4 && s.Scan() {
		lines = append(lines, s.Text())
	}
	require.NoError(t, s.Err())
	return lines
}

func TestCopyrightNotices(t *testing.T) {
	root, err := filepath.Abs(filepath.Join("..", "..", ".."))
	require.NoError(t, err)
	seen := map[string]bool{}
	for _, dir := range []string{"cmd", "internal", "pkg"} {
		err := filepath.WalkDir(
			filepath.Join(root, dir),
			func(path string, d fs.DirEntry, err error) error {
				if err != nil || d.IsDir() || !strings.HasSuffix(path, ".go") {
					return err
				}
				rel, err := filepath.Rel(root, path)
				if err != nil {
					return err
				}
				rel = filepath.ToSlash(rel)
				lines := header(t, path)
				if len(lines) == 0 || !strings.HasPrefix(lines[0], "// Copyright") {
					return nil
				}
				want, ok := upstream[rel]
				if !ok {
					want = projectNotice
				}
				seen[rel] = true
				assert.Equal(t, want, lines[0], rel)
				assert.Equal(t, mplLines, lines[1:], rel)
				return nil
			},
		)
		require.NoError(t, err)
	}
	for rel := range upstream {
		assert.True(t, seen[rel], "%s must keep its upstream notice", rel)
	}
}
