// Copyright (c) 2026 The GoRide Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package log_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goride/goride/pkg/core/log"
	"github.com/goride/goride/pkg/core/model"
)

func captureLogs(t *testing.T, level slog.Level) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{
		AddSource: true,
		Level:     level,
	})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return buf
}

func TestContextAttrs(t *testing.T) {
	buf := captureLogs(t, slog.LevelInfo)
	ctx := log.WithAttrs(context.Background(), slog.String("request_id", "r1"))
	ctx = log.WithAttrs(ctx, slog.Int("attempt", 2))
	log.Info(ctx, "fetched", log.Err("err", nil))
	log.Debug(ctx, "hidden")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "fetched", rec["msg"])
	assert.Equal(t, "r1", rec["request_id"])
	assert.EqualValues(t, 2, rec["attempt"])
	assert.Equal(t, "no-error", rec["err"])
	src, ok := rec["source"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, src["file"], "log_test.go")
}

func TestWithAttrsKeepsParent(t *testing.T) {
	parent := log.WithAttrs(context.Background(), slog.String("a", "1"))
	_ = log.WithAttrs(parent, slog.String("b", "2"))
	assert.Len(t, log.Attrs(parent), 1)
	assert.Same(t, parent, log.WithAttrs(parent))
	assert.Empty(t, log.Attrs(context.Background()))
}

func TestQueryAttr(t *testing.T) {
	buf := captureLogs(t, slog.LevelDebug)
	loc := "dha"
	sort := model.SortPriceLow
	q := model.FilterState{Location: &loc, SortKey: &sort}
	log.Warn(context.Background(), "query", log.Query("q", q),
		log.Err("err", errors.New("boom")))

	var rec struct {
		Q   map[string]string `json:"q"`
		Err string            `json:"err"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, map[string]string{"location": "dha", "sort": "price-low"}, rec.Q)
	assert.Equal(t, "boom", rec.Err)
}
