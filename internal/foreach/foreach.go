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
	"go.opentelemetry.io/collector/pdata/pcommon"
	"go.opentelemetry.io/collector/pdata/plog"
	"go.opentelemetry.io/collector/pdata/ptrace"
)

// SpansWithResource 按批次顺序遍历所有 span 并携带其所属 resource 的属性
func SpansWithResource(traces ptrace.Traces, f func(rs pcommon.Map, span ptrace.Span)) {
	resourceSpansSlice := traces.ResourceSpans()
	for i := 0; i < resourceSpansSlice.Len(); i++ {
		resourceSpans := resourceSpansSlice.At(i)
		rs := resourceSpans.Resource().Attributes()
		scopeSpansSlice := resourceSpans.ScopeSpans()
		for j := 0; j < scopeSpansSlice.Len(); j++ {
			spans := scopeSpansSlice.At(j).Spans()
			for k := 0; k < spans.Len(); k++ {
				f(rs, spans.At(k))
			}
		}
	}
}

// LogsWithResource 按批次顺序遍历所有 log record 并携带其所属 resource 的属性
func LogsWithResource(logs plog.Logs, f func(rs pcommon.Map, logRecord plog.LogRecord)) {
	resourceLogsSlice := logs.ResourceLogs()
	for i := 0; i < resourceLogsSlice.Len(); i++ {
		resourceLogs := resourceLogsSlice.At(i)
		rs := resourceLogs.Resource().Attributes()
		scopeLogsSlice := resourceLogs.ScopeLogs()
		for j := 0; j < scopeLogsSlice.Len(); j++ {
			logRecords := scopeLogsSlice.At(j).LogRecords()
			for k := 0; k < logRecords.Len(); k++ {
				f(rs, logRecords.At(k))
			}
		}
	}
}

// Count 返回批次内 span 或 log record 的数量 其余类型返回 0
func Count(data any) int {
	switch v := data.(type) {
	case ptrace.Traces:
		return v.SpanCount()
	case plog.Logs:
		return v.LogRecordCount()
	}
	return 0
}
