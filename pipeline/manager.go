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
	"sync"

	"github.com/pkg/errors"

	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/attrprocessor/confengine"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/attrprocessor/define"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/attrprocessor/exporter"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/attrprocessor/internal/logger"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/attrprocessor/processor"
)

// parseProcessors 解析 Processors 配置 任一 processor 构建失败即返回错误
func parseProcessors(conf *confengine.Config, subConfigs map[string][]processor.SubConfigProcessor) (map[string]processor.Instance, error) {
	var processorConfigs processor.Configs
	if err := conf.UnpackChild(define.ConfigFieldProcessor, &processorConfigs); err != nil {
		return nil, err
	}

	processors := map[string]processor.Instance{}
	for i := 0; i < len(processorConfigs); i++ {
		cfg := processorConfigs[i]
		logger.Debugf("processor config: %+v", cfg)

		if cfg.Name == "" {
			return nil, errors.Errorf("empty processor name is illegal: %+v", cfg)
		}
		if _, ok := processors[cfg.Name]; ok {
			return nil, errors.Errorf("duplicated processor name: %v", cfg.Name)
		}

		createFunc := processor.GetProcessorCreator(cfg.Name)
		if createFunc == nil {
			return nil, errors.Errorf("unknown processor type: %v", cfg.Name)
		}

		p, err := createFunc(cfg.Config, subConfigs[cfg.Name])
		if err != nil {
			return nil, errors.Wrapf(err, "failed to create processor %s", cfg.Name)
		}
		processors[cfg.Name] = processor.NewInstance(cfg.Name, p)
	}
	return processors, nil
}

// parsePipelines 解析 pipelines 配置
func parsePipelines(conf *confengine.Config, processors map[string]processor.Instance, sink exporter.Sink) (map[define.RecordType]Pipeline, error) {
	var pipelineConf Configs
	if err := conf.UnpackChild(define.ConfigFieldPipeline, &pipelineConf); err != nil {
		return nil, err
	}

	pipelines := map[define.RecordType]Pipeline{}
	for i := 0; i < len(pipelineConf); i++ {
		plc := pipelineConf[i]
		logger.Infof("pipeline config: %+v", plc)

		pl, err := buildPipeline(plc, processors, sink)
		if err != nil {
			DefaultMetricMonitor.IncBuiltFailedCounter(plc.Name, plc.Type)
			return nil, err
		}

		// 每个 pipelines 类型只能有唯一 pipeline
		if _, ok := pipelines[pl.RecordType()]; ok {
			DefaultMetricMonitor.IncBuiltFailedCounter(plc.Name, plc.Type)
			return nil, errors.Errorf("duplicated pipeline type: %v", pl.RecordType())
		}

		DefaultMetricMonitor.IncBuiltSuccessCounter(plc.Name, plc.Type)
		logger.Infof("build pipeline %v", pl)
		pipelines[pl.RecordType()] = pl
	}
	return pipelines, nil
}

func buildPipeline(plc Config, processors map[string]processor.Instance, sink exporter.Sink) (Pipeline, error) {
	if plc.Name == "" {
		return nil, errors.Errorf("empty pipeline name is illegal: %+v", plc)
	}

	rtype, derived := define.IntoRecordType(plc.Type)
	if rtype == define.RecordUndefined {
		return nil, errors.Errorf("pipeline %s: unknown record type '%s'", plc.Name, plc.Type)
	}

	instances := make([]processor.Instance, 0, len(plc.Processors))
	for _, name := range plc.Processors {
		p, ok := processors[name]
		if !ok {
			return nil, errors.Errorf("pipeline %s: unknown processor '%s'", plc.Name, name)
		}

		// 仅做 warning 提示
		if derived && p.IsDerived() {
			logger.Warnf("derived record type do not allow derived processor: %v", p.Name())
		}
		instances = append(instances, p)
	}
	return NewPipeline(plc.Name, rtype, sink, instances...), nil
}

// parseProcessorSubConfigs 解析 processor 子配置
func parseProcessorSubConfigs(configs []*confengine.Config) map[string][]processor.SubConfigProcessor {
	ps := make(map[string][]processor.SubConfigProcessor)
	for _, c := range configs {
		var subConf processor.SubConfig
		if err := c.Unpack(&subConf); err != nil {
			logger.Errorf("failed to unpack subconfig, err: %v", err)
			continue
		}
		if subConf.Type != define.ConfigTypeSubConfig {
			continue
		}
		if subConf.Token == "" {
			logger.Warnf("ignore empty token in subconfig: %+v", subConf)
			continue
		}

		for _, p := range subConf.Default.Processor {
			ps[p.Name] = append(ps[p.Name], processor.SubConfigProcessor{
				Token:  subConf.Token,
				Type:   define.SubConfigFieldDefault,
				Config: p,
			})
		}
		for _, srv := range subConf.Service {
			for _, s := range srv.Processor {
				ps[s.Name] = append(ps[s.Name], processor.SubConfigProcessor{
					Token:  subConf.Token,
					ID:     srv.ID,
					Type:   define.SubConfigFieldService,
					Config: s,
				})
			}
		}
		for _, inst := range subConf.Instance {
			for _, i := range inst.Processor {
				ps[i.Name] = append(ps[i.Name], processor.SubConfigProcessor{
					Token:  subConf.Token,
					ID:     inst.ID,
					Type:   define.SubConfigFieldInstance,
					Config: i,
				})
			}
		}
	}
	return ps
}

// Manager 管理 processor 实例以及各数据类型的流水线
type Manager struct {
	mut        sync.RWMutex
	sink       exporter.Sink
	processors map[string]processor.Instance
	pipelines  map[define.RecordType]Pipeline
}

func parseManagerConfig(conf *confengine.Config, sink exporter.Sink, subConfigs []*confengine.Config) (*Manager, error) {
	processors, err := parseProcessors(conf, parseProcessorSubConfigs(subConfigs))
	if err != nil {
		return nil, err
	}
	pipelines, err := parsePipelines(conf, processors, sink)
	if err != nil {
		return nil, err
	}

	return &Manager{
		sink:       sink,
		processors: processors,
		pipelines:  pipelines,
	}, nil
}

// New 根据主配置以及子配置构建 Manager 处理完成的数据交由 sink
func New(conf *confengine.Config, sink exporter.Sink, subConfigs ...*confengine.Config) (*Manager, error) {
	return parseManagerConfig(conf, sink, subConfigs)
}

// Reload 重载配置 已存在的 processor 原地重载 失败时保留原有配置
func (mgr *Manager) Reload(conf *confengine.Config, subConfigs ...*confengine.Config) error {
	newManager, err := parseManagerConfig(conf, mgr.sink, subConfigs)
	if err != nil {
		return errors.Wrap(err, "pipeline Manager reload error")
	}

	mgr.mut.Lock()
	defer mgr.mut.Unlock()

	processors := make(map[string]processor.Instance)
	for k, p := range newManager.processors {
		inst, ok := mgr.processors[k]
		if !ok {
			processors[k] = p
			continue
		}
		inst.Reload(p.MainConfig(), p.SubConfigs())
		processors[k] = inst
	}
	pipelines, err := parsePipelines(conf, processors, mgr.sink)
	if err != nil {
		return errors.Wrap(err, "pipeline Manager reload error")
	}

	// 清理已移除的 processor
	for k, inst := range mgr.processors {
		if _, ok := processors[k]; !ok {
			inst.Clean()
		}
	}
	mgr.processors = processors
	mgr.pipelines = pipelines
	return nil
}

func (mgr *Manager) GetProcessor(name string) processor.Instance {
	mgr.mut.RLock()
	defer mgr.mut.RUnlock()

	return mgr.processors[name]
}

func (mgr *Manager) GetPipeline(rtype define.RecordType) Pipeline {
	mgr.mut.RLock()
	defer mgr.mut.RUnlock()

	return mgr.pipelines[rtype]
}

// Consume 按 RecordType 选择流水线处理 record
func (mgr *Manager) Consume(record *define.Record) error {
	pl := mgr.GetPipeline(record.RecordType)
	if pl == nil {
		return errors.Errorf("no pipeline for record type '%s'", record.RecordType)
	}
	return pl.Consume(record)
}
