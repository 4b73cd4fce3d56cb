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
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/attrprocessor/define"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/attrprocessor/exporter"
)

// Exporter 处理批次后转交给下游 sink
type Exporter struct {
	processor *attributeFilter
	next      exporter.Sink
}

// NewExporter 配置非法时返回 *ConfigError 不会构造实例
func NewExporter(conf Config, next exporter.Sink) (*Exporter, error) {
	p, err := newAttributeFilter(nil, &conf, nil)
	if err != nil {
		return nil, err
	}
	return &Exporter{processor: p, next: next}, nil
}

// Export 就地修改 record 后将同一批次转交 sink 且仅转交一次
func (e *Exporter) Export(record *define.Record) error {
	if _, err := e.processor.Process(record); err != nil {
		return err
	}
	return exporter.Export(e.next, record)
}
