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
	"io"
	"sync"

	"github.com/pkg/errors"
	"go.opentelemetry.io/collector/pdata/plog"
	"go.opentelemetry.io/collector/pdata/ptrace"

	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/attrprocessor/define"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/attrprocessor/internal/logger"
)

// Sink 接收处理完成的批次数据
type Sink interface {
	Export(record *define.Record) error
}

type SinkFunc func(record *define.Record) error

func (f SinkFunc) Export(record *define.Record) error {
	return f(record)
}

// Export 将 record 交给 sink 并记录发送结果 sink 返回的错误原样返回
func Export(sink Sink, record *define.Record) error {
	err := sink.Export(record)
	if err != nil {
		DefaultMetricMonitor.IncExportFailedCounter(record.RecordType)
		logger.Warnf("failed to export %s record, token=%s: %v", record.RecordType, record.Token.Original, err)
		return err
	}

	DefaultMetricMonitor.IncExportedCounter(record.RecordType)
	return nil
}

// Recorder 在内存中保存收到的批次
type Recorder struct {
	mut     sync.Mutex
	records []*define.Record
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Export(record *define.Record) error {
	r.mut.Lock()
	defer r.mut.Unlock()

	r.records = append(r.records, record)
	return nil
}

func (r *Recorder) Records() []*define.Record {
	r.mut.Lock()
	defer r.mut.Unlock()

	records := make([]*define.Record, len(r.records))
	copy(records, r.records)
	return records
}

func (r *Recorder) Reset() {
	r.mut.Lock()
	defer r.mut.Unlock()

	r.records = nil
}

// JSONSink 以 OTLP/JSON 格式逐行写出批次
type JSONSink struct {
	mut sync.Mutex
	w   io.Writer

	tracesMarshaler ptrace.Marshaler
	logsMarshaler   plog.Marshaler
}

func NewJSONSink(w io.Writer) *JSONSink {
	return &JSONSink{
		w:               w,
		tracesMarshaler: ptrace.NewJSONMarshaler(),
		logsMarshaler:   plog.NewJSONMarshaler(),
	}
}

func (s *JSONSink) Export(record *define.Record) error {
	b, err := s.marshal(record)
	if err != nil {
		return err
	}

	s.mut.Lock()
	defer s.mut.Unlock()

	if _, err = s.w.Write(append(b, '\n')); err != nil {
		return errors.Wrap(err, "write record")
	}
	return nil
}

func (s *JSONSink) marshal(record *define.Record) ([]byte, error) {
	switch record.RecordType {
	case define.RecordTraces:
		return s.tracesMarshaler.MarshalTraces(record.Data.(ptrace.Traces))
	case define.RecordLogs:
		return s.logsMarshaler.MarshalLogs(record.Data.(plog.Logs))
	}
	return nil, errors.Errorf("unsupported record type '%s'", record.RecordType)
}
