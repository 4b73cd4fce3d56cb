// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package foreach

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/collector/pdata/pcommon"
	"go.opentelemetry.io/collector/pdata/plog"
	"go.opentelemetry.io/collector/pdata/ptrace"
)

func makeTraces(names ...[]string) ptrace.Traces {
	traces := ptrace.NewTraces()
	for i, group := range names {
		rs := traces.ResourceSpans().AppendEmpty()
		rs.Resource().Attributes().UpsertInt("index", int64(i))
		spans := rs.ScopeSpans().AppendEmpty().Spans()
		for _, name := range group {
			spans.AppendEmpty().SetName(name)
		}
	}
	return traces
}

func TestSpansWithResource(t *testing.T) {
	traces := makeTraces([]string{"a"}, []string{"b", "c"})

	var names []string
	indexes := make(map[string]int64)
	SpansWithResource(traces, func(rs pcommon.Map, span ptrace.Span) {
		v, ok := rs.Get("index")
		assert.True(t, ok)
		names = append(names, span.Name())
		indexes[span.Name()] = v.IntVal()
	})
	assert.Equal(t, []string{"a", "b", "c"}, names)
	assert.Equal(t, map[string]int64{"a": 0, "b": 1, "c": 1}, indexes)
	assert.Equal(t, 3, Count(traces))
}

func TestLogsWithResource(t *testing.T) {
	logs := plog.NewLogs()
	for i, group := range [][]string{{"x", "y"}, {"z"}} {
		rl := logs.ResourceLogs().AppendEmpty()
		rl.Resource().Attributes().UpsertInt("index", int64(i))
		records := rl.ScopeLogs().AppendEmpty().LogRecords()
		for _, body := range group {
			records.AppendEmpty().Body().SetStringVal(body)
		}
	}

	var bodies []string
	indexes := make(map[string]int64)
	LogsWithResource(logs, func(rs pcommon.Map, logRecord plog.LogRecord) {
		v, ok := rs.Get("index")
		assert.True(t, ok)
		bodies = append(bodies, logRecord.Body().StringVal())
		indexes[logRecord.Body().StringVal()] = v.IntVal()
	})
	assert.Equal(t, []string{"x", "y", "z"}, bodies)
	assert.Equal(t, map[string]int64{"x": 0, "y": 0, "z": 1}, indexes)
	assert.Equal(t, 3, Count(logs))
	assert.Equal(t, 0, Count("unknown"))
}
