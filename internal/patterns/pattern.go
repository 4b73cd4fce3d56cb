// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package patterns

import (
	"fmt"
	"regexp"
)

// InvalidPatternError 正则表达式无法编译
type InvalidPatternError struct {
	Source string
	Err    error
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Source, e.Err)
}

func (e *InvalidPatternError) Unwrap() error {
	return e.Err
}

// Pattern 是编译后的正则表达式 匹配时要求完整匹配输入
//
// Pattern 构建后只读 可被并发使用
type Pattern struct {
	source string
	re     *regexp.Regexp
}

// Compile 编译 src 并以完整匹配的语义包装
func Compile(src string) (*Pattern, error) {
	// 先校验原始表达式 避免 `a)(b` 这类在包装后才合法的输入
	if _, err := regexp.Compile(src); err != nil {
		return nil, &InvalidPatternError{Source: src, Err: err}
	}

	re, err := regexp.Compile("^(?:" + src + ")$")
	if err != nil {
		return nil, &InvalidPatternError{Source: src, Err: err}
	}
	return &Pattern{source: src, re: re}, nil
}

// MustCompile 同 Compile 编译失败时 panic
func MustCompile(src string) *Pattern {
	p, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Pattern) Source() string {
	return p.source
}

func (p *Pattern) String() string {
	return p.source
}

// MatchString 判断 s 是否完整匹配
func (p *Pattern) MatchString(s string) bool {
	return p.re.MatchString(s)
}

// HasGroup 判断编译后的表达式是否包含命名分组 name
func (p *Pattern) HasGroup(name string) bool {
	return p.re.SubexpIndex(name) >= 0
}

// FindNamed 完整匹配 s 并返回 names 中各命名分组捕获的内容
//
// 未参与匹配的分组不会出现在结果中
func (p *Pattern) FindNamed(s string, names []string) (map[string]string, bool) {
	loc := p.re.FindStringSubmatchIndex(s)
	if loc == nil {
		return nil, false
	}

	captured := make(map[string]string, len(names))
	for _, name := range names {
		idx := p.re.SubexpIndex(name)
		if idx < 0 {
			continue
		}
		start, end := loc[2*idx], loc[2*idx+1]
		if start < 0 {
			continue
		}
		captured[name] = s[start:end]
	}
	return captured, true
}
