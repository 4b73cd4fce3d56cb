// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package confengine

import (
	"github.com/elastic/go-ucfg/yaml"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/attrprocessor/define"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/attrprocessor/internal/logger"
)

var (
	loadConfigSuccessTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: define.MonitoringNamespace,
			Name:      "engine_load_config_success_total",
			Help:      "Engine load config successfully total",
		},
	)

	loadConfigFailedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: define.MonitoringNamespace,
			Name:      "engine_load_config_failed_total",
			Help:      "Engine load config failed total",
		},
	)
)

var DefaultMetricMonitor = &metricMonitor{}

type metricMonitor struct{}

func (m *metricMonitor) IncLoadConfigSuccessCounter() {
	loadConfigSuccessTotal.Inc()
}

func (m *metricMonitor) IncLoadConfigFailedCounter() {
	loadConfigFailedTotal.Inc()
}

func LoadConfigPath(path string) (*Config, error) {
	config, err := yaml.NewConfigWithFile(path, configOpts...)
	if err != nil {
		DefaultMetricMonitor.IncLoadConfigFailedCounter()
		return nil, err
	}

	logger.Debugf("load config file '%v'", path)
	DefaultMetricMonitor.IncLoadConfigSuccessCounter()
	return New(config), nil
}

func LoadConfigContent(content string) (*Config, error) {
	config, err := yaml.NewConfig([]byte(content), configOpts...)
	if err != nil {
		DefaultMetricMonitor.IncLoadConfigFailedCounter()
		return nil, err
	}

	DefaultMetricMonitor.IncLoadConfigSuccessCounter()
	return New(config), nil
}

func MustLoadConfigContent(content string) *Config {
	config, err := LoadConfigContent(content)
	if err != nil {
		panic(err)
	}
	return config
}
