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
	"crypto/sha1"
	"encoding/hex"

	"go.opentelemetry.io/collector/pdata/pcommon"

	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/attrprocessor/internal/patterns"
)

type compiledAction struct {
	action        string
	key           string
	hasValue      bool
	value         string
	fromAttribute string
	pattern       *patterns.Pattern
	groups        []string
}

func (a compiledAction) apply(attrs pcommon.Map) {
	switch a.action {
	case ActionInsert:
		if _, ok := attrs.Get(a.key); ok {
			return
		}
		if a.hasValue {
			attrs.InsertString(a.key, a.value)
			return
		}
		if src, ok := attrs.Get(a.fromAttribute); ok {
			attrs.Insert(a.key, src)
		}

	case ActionUpdate:
		if _, ok := attrs.Get(a.key); !ok {
			return
		}
		if a.hasValue {
			attrs.UpdateString(a.key, a.value)
			return
		}
		if src, ok := attrs.Get(a.fromAttribute); ok {
			attrs.Update(a.key, src)
		}

	case ActionDelete:
		attrs.Remove(a.key)

	case ActionHash:
		if v, ok := attrs.Get(a.key); ok {
			attrs.UpsertString(a.key, hashValue(v))
		}

	case ActionExtract:
		v, ok := attrs.Get(a.key)
		if !ok {
			return
		}
		captured, ok := a.pattern.FindNamed(v.AsString(), a.groups)
		if !ok {
			return
		}
		for _, name := range a.groups {
			if s, ok := captured[name]; ok {
				attrs.UpsertString(name, s)
			}
		}
	}
}

// hashValue 返回值字符串形式的 SHA-1 十六进制摘要
func hashValue(v pcommon.Value) string {
	sum := sha1.Sum([]byte(v.AsString()))
	return hex.EncodeToString(sum[:])
}

// applyActions 按配置顺序依次执行 后续动作可见之前的修改
func applyActions(attrs pcommon.Map, actions []compiledAction) {
	for _, action := range actions {
		action.apply(attrs)
	}
}
