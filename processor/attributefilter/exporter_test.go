// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package attributefilter

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/attrprocessor/define"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/attrprocessor/exporter"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/attrprocessor/internal/testkits"
)

func TestNewExporterRejectsInvalidConfig(t *testing.T) {
	_, err := NewExporter(Config{ID: "empty"}, exporter.NewRecorder())
	require.Error(t, err)

	ce, ok := errors.Cause(err).(*ConfigError)
	require.True(t, ok)
	assert.Equal(t, "empty", ce.ID)
	assert.Equal(t, "actions", ce.Field)

	_, err = NewExporter(Config{
		Include: &MatchProperties{MatchType: MatchTypeRegexp, SpanNames: []string{"***"}},
		Actions: []Action{{Action: ActionDelete, Key: "k"}},
	}, exporter.NewRecorder())
	assert.Error(t, err)
}

func TestExporterForwardsOnce(t *testing.T) {
	recorder := exporter.NewRecorder()
	e, err := NewExporter(Config{
		ID:      "forward",
		Include: &MatchProperties{SpanNames: []string{"svcA"}},
		Actions: []Action{{Action: ActionUpdate, Key: "testKey", Value: "redacted"}},
	}, recorder)
	require.NoError(t, err)

	traces := testkits.MakeTraces(
		testkits.Span{Name: "svcA", Attrs: map[string]any{"testKey": "secret"}},
		testkits.Span{Name: "svcB", Attrs: map[string]any{"testKey": "secret"}},
	)
	record := &define.Record{RecordType: define.RecordTraces, Data: traces}
	require.NoError(t, e.Export(record))

	records := recorder.Records()
	require.Len(t, records, 1)
	assert.Same(t, record, records[0])
	assert.Equal(t, 2, traces.SpanCount())
	testkits.AssertAttrsStringKeyVal(t, testkits.SpanAt(traces, 0).Attributes(), "testKey", "redacted")
	testkits.AssertAttrsStringKeyVal(t, testkits.SpanAt(traces, 1).Attributes(), "testKey", "secret")
}

func TestExporterPropagatesSinkError(t *testing.T) {
	sinkErr := errors.New("downstream closed")

	var calls int
	e, err := NewExporter(Config{
		Actions: []Action{{Action: ActionInsert, Key: "k", Value: "v"}},
	}, exporter.SinkFunc(func(record *define.Record) error {
		calls++
		return sinkErr
	}))
	require.NoError(t, err)

	traces := testkits.MakeTraces(testkits.Span{Name: "a"})
	err = e.Export(&define.Record{RecordType: define.RecordTraces, Data: traces})
	assert.Equal(t, sinkErr, err)
	assert.Equal(t, 1, calls)
	testkits.AssertAttrsStringKeyVal(t, testkits.FirstSpan(traces).Attributes(), "k", "v")
}
