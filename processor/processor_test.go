// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package processor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/attrprocessor/define"
)

type noopProcessor struct {
	CommonProcessor
}

func (p *noopProcessor) Name() string { return "noop" }

func (p *noopProcessor) IsDerived() bool { return false }

func (p *noopProcessor) Process(*define.Record) (*define.Record, error) { return nil, nil }

func (p *noopProcessor) Reload(config map[string]any, customized []SubConfigProcessor) {
	p.CommonProcessor = NewCommonProcessor(config, customized)
}

func TestCommonProcessor(t *testing.T) {
	p := NewCommonProcessor(nil, nil)
	assert.Nil(t, p.MainConfig())
	assert.Nil(t, p.SubConfigs())
	p.Clean()
}

func TestRegisterCreateFunc(t *testing.T) {
	Register("NoopFuncForTest", func(config map[string]any, customized []SubConfigProcessor) (Processor, error) {
		return nil, nil
	})
	assert.Panics(t, func() {
		Register("NoopFuncForTest", nil)
	})

	fn := GetProcessorCreator("NoopFuncForTest/id")
	p, err := fn(nil, nil)
	assert.Nil(t, p)
	assert.Nil(t, err)

	assert.Nil(t, GetProcessorCreator("NotExistForTest/id"))

	inst := NewInstance("id1", p)
	assert.Equal(t, "id1", inst.ID())
}

func TestMustCreateFactory(t *testing.T) {
	content := `
processor:
  - name: "noop/common"
    config:
      keys: ["k1", "k2"]
`
	psc := MustLoadConfigs(content)
	assert.Len(t, psc, 1)
	assert.Equal(t, "noop/common", psc[0].Name)

	obj := MustCreateFactory(content, func(config map[string]any, customized []SubConfigProcessor) (Processor, error) {
		return &noopProcessor{CommonProcessor: NewCommonProcessor(config, customized)}, nil
	})
	assert.Equal(t, "noop", obj.Name())
	assert.Len(t, obj.MainConfig()["keys"], 2)

	obj.Reload(nil, nil)
	assert.Nil(t, obj.MainConfig())

	assert.Panics(t, func() {
		MustLoadConfigs("pipeline: []")
	})
}
