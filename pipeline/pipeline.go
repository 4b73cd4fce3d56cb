// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package pipeline

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/attrprocessor/define"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/attrprocessor/exporter"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/attrprocessor/internal/foreach"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/attrprocessor/internal/logger"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/attrprocessor/processor"
)

// Pipeline 流水线接口定义
type Pipeline interface {
	// Name 流水线名称
	Name() string

	// RecordType 流水线数据类型
	RecordType() define.RecordType

	// AllProcessors 返回所有 Processor
	AllProcessors() []string

	// Consume 依次执行所有 Processor 后将数据交给 sink
	Consume(record *define.Record) error
}

type pipeline struct {
	name       string
	recordType define.RecordType
	processors []processor.Instance
	sink       exporter.Sink
}

func NewPipeline(name string, rtype define.RecordType, sink exporter.Sink, ps ...processor.Instance) Pipeline {
	return &pipeline{
		name:       name,
		recordType: rtype,
		processors: ps,
		sink:       sink,
	}
}

func (p *pipeline) Name() string                  { return p.name }
func (p *pipeline) RecordType() define.RecordType { return p.recordType }

func (p *pipeline) String() string {
	return fmt.Sprintf("Name=%s, RecordType=%v, Processors=%v", p.Name(), p.RecordType(), p.AllProcessors())
}

func (p *pipeline) AllProcessors() []string {
	ps := make([]string, 0, len(p.processors))
	for _, v := range p.processors {
		ps = append(ps, v.ID())
	}
	return ps
}

// Consume 派生出的 Record 在原始 Record 之后交给 sink
func (p *pipeline) Consume(record *define.Record) error {
	var derived []*define.Record
	for _, inst := range p.processors {
		r, err := inst.Process(record)
		if err != nil {
			return errors.Wrapf(err, "pipeline %s processor %s", p.name, inst.ID())
		}
		if r != nil {
			r.Unwrap()
			derived = append(derived, r)
		}
	}

	logger.Debugf("pipeline %s consumed %d items, derived %d records", p.name, foreach.Count(record.Data), len(derived))
	if err := exporter.Export(p.sink, record); err != nil {
		return err
	}
	for _, r := range derived {
		if err := exporter.Export(p.sink, r); err != nil {
			return err
		}
	}
	return nil
}
