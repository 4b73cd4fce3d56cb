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
	"github.com/pkg/errors"
	"go.opentelemetry.io/collector/pdata/pcommon"
	"go.opentelemetry.io/collector/pdata/plog"
	"go.opentelemetry.io/collector/pdata/ptrace"
	conventions "go.opentelemetry.io/collector/semconv/v1.8.0"
	"go.uber.org/atomic"

	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/attrprocessor/confengine"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/attrprocessor/define"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/attrprocessor/internal/foreach"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/attrprocessor/internal/logger"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/attrprocessor/processor"
)

func init() {
	processor.Register(define.ProcessorAttributeFilter, NewFactory)
}

func NewFactory(conf map[string]any, customized []processor.SubConfigProcessor) (processor.Processor, error) {
	f, err := newFactory(conf, customized)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func newFactory(conf map[string]any, customized []processor.SubConfigProcessor) (*attributeFilter, error) {
	c, err := decodeConfig(conf)
	if err != nil {
		return nil, err
	}
	return newAttributeFilter(conf, c, customized)
}

func newAttributeFilter(conf map[string]any, c *Config, customized []processor.SubConfigProcessor) (*attributeFilter, error) {
	configs := confengine.NewTierConfig()

	global, err := c.compile()
	if err != nil {
		return nil, err
	}
	configs.SetGlobal(global)

	for _, custom := range customized {
		cfg, err := decodeConfig(custom.Config.Config)
		if err == nil {
			var compiled *compiledConfig
			if compiled, err = cfg.compile(); err == nil {
				if configs.Set(custom.Token, custom.Type, custom.ID, compiled) {
					continue
				}
				err = errors.Errorf("unknown sub config type '%s'", custom.Type)
			}
		}
		return nil, errors.Wrapf(err, "token '%s' %s/%s", custom.Token, custom.Type, custom.ID)
	}

	p := &attributeFilter{CommonProcessor: processor.NewCommonProcessor(conf, customized)}
	p.configs.Store(configs)
	return p, nil
}

type attributeFilter struct {
	processor.CommonProcessor
	configs atomic.Pointer[confengine.TierConfig] // type: *compiledConfig
}

func (p *attributeFilter) Name() string {
	return define.ProcessorAttributeFilter
}

func (p *attributeFilter) IsDerived() bool {
	return false
}

func (p *attributeFilter) Reload(config map[string]any, customized []processor.SubConfigProcessor) {
	f, err := newFactory(config, customized)
	if err != nil {
		logger.Errorf("failed to reload processor: %v", err)
		return
	}

	p.CommonProcessor = f.CommonProcessor
	p.configs.Store(f.configs.Load())
}

// resourceIdentity 返回 resource 上的服务名和实例 ID 用于选择服务级别和实例级别的子配置
func resourceIdentity(rs pcommon.Map) (string, string) {
	var service, instance string
	if v, ok := rs.Get(conventions.AttributeServiceName); ok {
		service = v.AsString()
	}
	if v, ok := rs.Get(conventions.AttributeServiceInstanceID); ok {
		instance = v.AsString()
	}
	return service, instance
}

func (p *attributeFilter) Process(record *define.Record) (*define.Record, error) {
	configs := p.configs.Load()
	token := record.Token.Original

	var handled, matched int
	handle := func(rs pcommon.Map, name string, isLog bool, attrs pcommon.Map) {
		handled++
		service, instance := resourceIdentity(rs)
		config := configs.Get(token, service, instance).(*compiledConfig)
		if !config.inScope(name, isLog, attrs) {
			return
		}
		matched++
		applyActions(attrs, config.actions)
	}

	switch record.RecordType {
	case define.RecordTraces:
		foreach.SpansWithResource(record.Data.(ptrace.Traces), func(rs pcommon.Map, span ptrace.Span) {
			attrs := span.Attributes()
			handle(rs, span.Name(), isLogShaped(attrs), attrs)
		})

	case define.RecordLogs:
		foreach.LogsWithResource(record.Data.(plog.Logs), func(rs pcommon.Map, logRecord plog.LogRecord) {
			handle(rs, "", true, logRecord.Attributes())
		})

	default:
		config := configs.GetByToken(token).(*compiledConfig)
		logger.Debugf("attribute_filter(%s) skip record type '%s'", config.id, record.RecordType)
		return nil, nil
	}

	DefaultMetricMonitor.AddHandledCounter(handled, record.RecordType)
	DefaultMetricMonitor.AddMatchedCounter(matched, record.RecordType)
	return nil, nil
}
