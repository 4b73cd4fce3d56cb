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
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"go.opentelemetry.io/collector/pdata/pcommon"

	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/attrprocessor/define"
	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/attrprocessor/internal/patterns"
)

type matcher struct {
	names      map[string]struct{}
	patterns   []*patterns.Pattern
	predicates []predicate
}

type predicate struct {
	key      string
	hasValue bool
	value    string
	pattern  *patterns.Pattern
}

// newMatcher 未配置时返回 nil
func newMatcher(mp *MatchProperties) (*matcher, error) {
	if mp == nil {
		return nil, nil
	}

	regexpMode := false
	switch mp.MatchType {
	case "", MatchTypeStrict:
	case MatchTypeRegexp:
		regexpMode = true
	default:
		return nil, &fieldError{field: "match_type", err: errors.Errorf("unknown match type '%s'", mp.MatchType)}
	}

	m := &matcher{}
	for i, name := range mp.SpanNames {
		if !regexpMode {
			if m.names == nil {
				m.names = make(map[string]struct{})
			}
			m.names[name] = struct{}{}
			continue
		}
		p, err := patterns.Compile(name)
		if err != nil {
			return nil, &fieldError{field: fmt.Sprintf("span_names[%d]", i), err: err}
		}
		m.patterns = append(m.patterns, p)
	}

	for i, attr := range mp.Attributes {
		pred := predicate{key: attr.Key}
		if attr.Value != nil {
			s, err := cast.ToStringE(attr.Value)
			if err != nil {
				return nil, &fieldError{field: fmt.Sprintf("attributes[%d].value", i), err: err}
			}
			pred.hasValue = true
			pred.value = s
			if regexpMode {
				p, err := patterns.Compile(s)
				if err != nil {
					return nil, &fieldError{field: fmt.Sprintf("attributes[%d].value", i), err: err}
				}
				pred.pattern = p
			}
		}
		m.predicates = append(m.predicates, pred)
	}
	return m, nil
}

func (m *matcher) hasNames() bool {
	return len(m.names) > 0 || len(m.patterns) > 0
}

// matches 名称条件与属性条件同时配置时需同时满足 均未配置时恒为 true
func (m *matcher) matches(name string, isLog bool, attrs pcommon.Map) bool {
	if m.hasNames() && !m.matchName(name, isLog) {
		return false
	}
	return m.matchAttributes(attrs)
}

// matchName 日志形态的记录永远不满足名称条件
func (m *matcher) matchName(name string, isLog bool) bool {
	if isLog {
		return false
	}
	if _, ok := m.names[name]; ok {
		return true
	}
	for _, p := range m.patterns {
		if p.MatchString(name) {
			return true
		}
	}
	return false
}

func (m *matcher) matchAttributes(attrs pcommon.Map) bool {
	for _, pred := range m.predicates {
		v, ok := attrs.Get(pred.key)
		if !ok {
			return false
		}
		if !pred.hasValue {
			continue
		}

		s := v.AsString()
		if pred.pattern != nil {
			if !pred.pattern.MatchString(s) {
				return false
			}
			continue
		}
		if s != pred.value {
			return false
		}
	}
	return true
}

// isLogShaped 判断 span 是否携带日志标记
func isLogShaped(attrs pcommon.Map) bool {
	v, ok := attrs.Get(define.AttributeLogMarker)
	if !ok {
		return false
	}
	return v.Type() == pcommon.ValueTypeBool && v.BoolVal()
}

// inScope include 未配置或命中 且 exclude 未配置或未命中
func (c *compiledConfig) inScope(name string, isLog bool, attrs pcommon.Map) bool {
	if c.include != nil && !c.include.matches(name, isLog, attrs) {
		return false
	}
	if c.exclude != nil && c.exclude.matches(name, isLog, attrs) {
		return false
	}
	return true
}
