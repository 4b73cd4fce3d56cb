// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package main

import (
	"github.com/spf13/cobra"

	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/attrprocessor/confengine"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/attrprocessor/define"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/attrprocessor/exporter"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/attrprocessor/internal/logger"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/attrprocessor/pipeline"
	_ "github.com/TencentBlueKing/bkmonitor-datalink/pkg/attrprocessor/processor/attributefilter"
)

var (
	configPath     string
	subConfigPaths []string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "attrprocessor",
	Short: "Attribute rule engine for traces and logs",
	Long:  `Apply include/exclude filtered attribute actions to OTLP traces and logs.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "attrprocessor.yaml", "rule config file")
	rootCmd.PersistentFlags().StringSliceVar(&subConfigPaths, "subconfig", nil, "token level subconfig files")
}

// loadConfigs 加载主配置与子配置 并根据 logging 配置初始化日志
func loadConfigs(path string, subPaths []string) (*confengine.Config, []*confengine.Config, error) {
	conf, err := confengine.LoadConfigPath(path)
	if err != nil {
		return nil, nil, err
	}

	opt := logger.Options{Stdout: true, Format: "console", Level: "warn"}
	if conf.Has(define.ConfigFieldLogging) {
		if err := conf.UnpackChild(define.ConfigFieldLogging, &opt); err != nil {
			return nil, nil, err
		}
	}
	logger.SetOptions(opt)

	subConfigs := make([]*confengine.Config, 0, len(subPaths))
	for _, p := range subPaths {
		sub, err := confengine.LoadConfigPath(p)
		if err != nil {
			return nil, nil, err
		}
		subConfigs = append(subConfigs, sub)
	}
	return conf, subConfigs, nil
}

func newManager(sink exporter.Sink) (*pipeline.Manager, error) {
	conf, subConfigs, err := loadConfigs(configPath, subConfigPaths)
	if err != nil {
		return nil, err
	}
	return pipeline.New(conf, sink, subConfigs...)
}
