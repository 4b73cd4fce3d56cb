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
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/collector/pdata/plog"
	"go.opentelemetry.io/collector/pdata/ptrace"

	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/attrprocessor/define"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/attrprocessor/exporter"
)

var (
	inputPath  string
	outputPath string
	recordType string
	token      string
)

// runCmd 读取 OTLP/JSON 文件 处理后以 OTLP/JSON 写出
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Apply rules to an OTLP/JSON file",
	RunE: func(cmd *cobra.Command, args []string) error {
		record, err := readRecord(inputPath, recordType)
		if err != nil {
			return err
		}
		record.Token = define.Token{Original: token}

		// 配置校验通过后才打开输出文件
		var sink *exporter.JSONSink
		mgr, err := newManager(exporter.SinkFunc(func(r *define.Record) error {
			return sink.Export(r)
		}))
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if outputPath != "" && outputPath != "-" {
			f, err := os.Create(outputPath)
			if err != nil {
				return err
			}
			defer f.Close()
			w = f
		}
		sink = exporter.NewJSONSink(w)
		return mgr.Consume(record)
	},
}

func init() {
	runCmd.Flags().StringVarP(&inputPath, "input", "i", "-", "OTLP/JSON input file, '-' for stdin")
	runCmd.Flags().StringVarP(&outputPath, "output", "o", "-", "output file, '-' for stdout")
	runCmd.Flags().StringVarP(&recordType, "type", "t", define.RecordTraces.S(), "record type: traces or logs")
	runCmd.Flags().StringVar(&token, "token", "", "token used to select subconfig rules")
	rootCmd.AddCommand(runCmd)
}

func readRecord(path, typ string) (*define.Record, error) {
	var b []byte
	var err error
	if path == "-" {
		b, err = io.ReadAll(os.Stdin)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	return decodeRecord(b, typ)
}

func decodeRecord(b []byte, typ string) (*define.Record, error) {
	rtype, _ := define.IntoRecordType(typ)
	switch rtype {
	case define.RecordTraces:
		traces, err := ptrace.NewJSONUnmarshaler().UnmarshalTraces(b)
		if err != nil {
			return nil, errors.Wrap(err, "unmarshal traces")
		}
		return &define.Record{RecordType: rtype, Data: traces}, nil

	case define.RecordLogs:
		logs, err := plog.NewJSONUnmarshaler().UnmarshalLogs(b)
		if err != nil {
			return nil, errors.Wrap(err, "unmarshal logs")
		}
		return &define.Record{RecordType: rtype, Data: logs}, nil
	}
	return nil, errors.Errorf("unsupported record type '%s'", typ)
}
