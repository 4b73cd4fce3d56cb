// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package define

import (
	"strings"
)

const (
	MonitoringNamespace = "bk_collector"

	// AttributeLogMarker 标记 span 为日志形态的属性 值为 bool 类型
	AttributeLogMarker = "bk.internal.log"
)

type RecordType string

func (r RecordType) S() string { return string(r) }

const (
	RecordUndefined     RecordType = "undefined"
	RecordTraces        RecordType = "traces"
	RecordLogs          RecordType = "logs"
	RecordTracesDerived RecordType = "traces.derived"
	RecordLogsDerived   RecordType = "logs.derived"
)

// IntoRecordType 将字符串描述转换为 RecordType 并返回是否为 Derived 类型
func IntoRecordType(s string) (RecordType, bool) {
	var t RecordType
	switch s {
	case RecordTraces.S():
		t = RecordTraces
	case RecordLogs.S():
		t = RecordLogs
	case RecordTracesDerived.S():
		t = RecordTracesDerived
	case RecordLogsDerived.S():
		t = RecordLogsDerived
	default:
		t = RecordUndefined
	}
	return t, strings.HasSuffix(s, ".derived")
}

// Record 是 Processor 链传输的数据类型
//
// Data 类型取决于 RecordType
// RecordTraces -> ptrace.Traces
// RecordLogs   -> plog.Logs
type Record struct {
	RecordType RecordType
	Token      Token
	Data       any
}

func (r *Record) Unwrap() {
	switch r.RecordType {
	case RecordTracesDerived:
		r.RecordType = RecordTraces
	case RecordLogsDerived:
		r.RecordType = RecordLogs
	}
}

// Token 描述了 Record 归属的应用 用于选择子配置
type Token struct {
	Original string
}
