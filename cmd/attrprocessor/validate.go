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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/attrprocessor/define"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/attrprocessor/exporter"
)

// validateCmd 校验规则配置 构建失败时返回错误
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate rule config",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := newManager(exporter.NewRecorder())
		if err != nil {
			return err
		}

		for _, rtype := range []define.RecordType{define.RecordTraces, define.RecordLogs} {
			if pl := mgr.GetPipeline(rtype); pl != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", pl.Name(), pl.AllProcessors())
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), "config ok")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
