// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package exporter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/collector/pdata/plog"
	"go.opentelemetry.io/collector/pdata/ptrace"

	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/attrprocessor/define"
)

func TestExportPropagatesSinkError(t *testing.T) {
	sinkErr := errors.New("sink unavailable")
	sink := SinkFunc(func(record *define.Record) error {
		return sinkErr
	})

	err := Export(sink, &define.Record{RecordType: define.RecordTraces, Data: ptrace.NewTraces()})
	assert.Equal(t, sinkErr, err)
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	record := &define.Record{RecordType: define.RecordLogs, Data: plog.NewLogs()}

	assert.NoError(t, Export(r, record))
	records := r.Records()
	require.Len(t, records, 1)
	assert.Same(t, record, records[0])

	r.Reset()
	assert.Empty(t, r.Records())
}

func TestJSONSink(t *testing.T) {
	traces := ptrace.NewTraces()
	span := traces.ResourceSpans().AppendEmpty().ScopeSpans().AppendEmpty().Spans().AppendEmpty()
	span.SetName("svcA")
	span.Attributes().UpsertString("testKey", "testValue")

	logs := plog.NewLogs()
	logs.ResourceLogs().AppendEmpty().ScopeLogs().AppendEmpty().LogRecords().AppendEmpty().
		Attributes().UpsertString("logKey", "logValue")

	buf := &bytes.Buffer{}
	sink := NewJSONSink(buf)
	require.NoError(t, sink.Export(&define.Record{RecordType: define.RecordTraces, Data: traces}))
	require.NoError(t, sink.Export(&define.Record{RecordType: define.RecordLogs, Data: logs}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	got, err := ptrace.NewJSONUnmarshaler().UnmarshalTraces([]byte(lines[0]))
	require.NoError(t, err)
	assert.Equal(t, 1, got.SpanCount())
	assert.Contains(t, lines[0], "svcA")
	assert.Contains(t, lines[1], "logValue")

	err = sink.Export(&define.Record{RecordType: define.RecordUndefined})
	assert.Error(t, err)
}
