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
	"github.com/elastic/go-ucfg"

	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/attrprocessor/define"
)

var configOpts = []ucfg.Option{
	ucfg.PathSep("."),
}

// Config 封装 ucfg.Config 统一使用 "." 作为路径分隔符
type Config struct {
	conf *ucfg.Config
}

func New(conf *ucfg.Config) *Config {
	return &Config{conf: conf}
}

// Has 判断路径 s 是否存在 解析出错时视为不存在
func (c *Config) Has(s string) bool {
	ok, err := c.conf.Has(s, -1, configOpts...)
	return err == nil && ok
}

func (c *Config) Child(s string) (*Config, error) {
	content, err := c.conf.Child(s, -1, configOpts...)
	if err != nil {
		return nil, err
	}
	return New(content), nil
}

func (c *Config) Unpack(to any) error {
	return c.conf.Unpack(to, configOpts...)
}

func (c *Config) UnpackChild(s string, to any) error {
	child, err := c.Child(s)
	if err != nil {
		return err
	}
	return child.Unpack(to)
}

// TierConfig 按 token 维护分层配置 查找顺序为
//
// 1) instance	实例级别子配置（SubConfigFieldInstance）
// 2) service	服务级别子配置（SubConfigFieldService）
// 3) default	token 默认子配置（SubConfigFieldDefault）
// 4) global	主配置
//
// TierConfig 构建完成后只读 可被并发访问
type TierConfig struct {
	global    any
	defaults  map[string]any
	services  map[tierKey]any
	instances map[tierKey]any
}

type tierKey struct {
	token string
	id    string
}

func NewTierConfig() *TierConfig {
	return &TierConfig{
		defaults:  map[string]any{},
		services:  map[tierKey]any{},
		instances: map[tierKey]any{},
	}
}

// Set 按子配置类型登记 未知类型会被忽略并返回 false
func (tc *TierConfig) Set(token, typ, id string, val any) bool {
	switch typ {
	case define.SubConfigFieldDefault:
		tc.defaults[token] = val
	case define.SubConfigFieldService:
		tc.services[tierKey{token: token, id: id}] = val
	case define.SubConfigFieldInstance:
		tc.instances[tierKey{token: token, id: id}] = val
	default:
		return false
	}
	return true
}

func (tc *TierConfig) SetGlobal(val any) {
	tc.global = val
}

func (tc *TierConfig) GetByToken(token string) any {
	return tc.Get(token, "", "")
}

func (tc *TierConfig) Get(token, serviceID, instanceID string) any {
	if instanceID != "" {
		if v, ok := tc.instances[tierKey{token: token, id: instanceID}]; ok {
			return v
		}
	}
	if serviceID != "" {
		if v, ok := tc.services[tierKey{token: token, id: serviceID}]; ok {
			return v
		}
	}
	if v, ok := tc.defaults[token]; ok {
		return v
	}
	return tc.global
}
