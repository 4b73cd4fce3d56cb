// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package testkits

import (
	"github.com/spf13/cast"
	"go.opentelemetry.io/collector/pdata/pcommon"
	"go.opentelemetry.io/collector/pdata/plog"
	"go.opentelemetry.io/collector/pdata/ptrace"

	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/attrprocessor/define"
)

// Span 描述测试用 span 的名称与属性
type Span struct {
	Name  string
	Attrs map[string]any
	IsLog bool
}

// MakeTraces 按顺序构造位于同一个 ScopeSpans 下的 spans
func MakeTraces(spans ...Span) ptrace.Traces {
	traces := ptrace.NewTraces()
	ss := traces.ResourceSpans().AppendEmpty().ScopeSpans().AppendEmpty().Spans()
	for _, s := range spans {
		span := ss.AppendEmpty()
		span.SetName(s.Name)
		PutAttrs(span.Attributes(), s.Attrs)
		if s.IsLog {
			span.Attributes().UpsertBool(define.AttributeLogMarker, true)
		}
	}
	return traces
}

// MakeLogs 按顺序构造 log records 每个元素为一条记录的属性
func MakeLogs(attrs ...map[string]any) plog.Logs {
	logs := plog.NewLogs()
	records := logs.ResourceLogs().AppendEmpty().ScopeLogs().AppendEmpty().LogRecords()
	for _, m := range attrs {
		PutAttrs(records.AppendEmpty().Attributes(), m)
	}
	return logs
}

func FirstSpan(traces ptrace.Traces) ptrace.Span {
	return traces.ResourceSpans().At(0).ScopeSpans().At(0).Spans().At(0)
}

func FirstLogRecord(logs plog.Logs) plog.LogRecord {
	return logs.ResourceLogs().At(0).ScopeLogs().At(0).LogRecords().At(0)
}

// SpanAt 返回首个 ScopeSpans 下第 i 个 span
func SpanAt(traces ptrace.Traces, i int) ptrace.Span {
	return traces.ResourceSpans().At(0).ScopeSpans().At(0).Spans().At(i)
}

// PutAttrs 写入常见标量类型 未知类型按字符串处理
func PutAttrs(attrs pcommon.Map, m map[string]any) {
	for k, v := range m {
		switch val := v.(type) {
		case string:
			attrs.UpsertString(k, val)
		case int:
			attrs.UpsertInt(k, int64(val))
		case int64:
			attrs.UpsertInt(k, val)
		case float64:
			attrs.UpsertDouble(k, val)
		case bool:
			attrs.UpsertBool(k, val)
		default:
			attrs.UpsertString(k, cast.ToString(val))
		}
	}
}
