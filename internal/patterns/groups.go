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
	"strings"
)

// GroupNames 从正则表达式源码中按出现顺序解析命名分组
//
// 支持 (?<name>...) 以及 (?P<name>...) 两种写法
// 转义字符 字符集合 [...] 以及 \Q...\E 引用段内的括号不会被识别为分组
// 解析只依赖文本 不要求表达式可编译
func GroupNames(src string) []string {
	var names []string
	inClass := false

	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case c == '\\' && !inClass && strings.HasPrefix(src[i:], `\Q`):
			// \Q 之后直到 \E 均为字面量 缺少 \E 时持续到末尾
			end := strings.Index(src[i+2:], `\E`)
			if end < 0 {
				return names
			}
			i += 2 + end + 1

		case c == '\\':
			i++ // 跳过被转义的字符

		case inClass:
			if c == ']' {
				inClass = false
			}

		case c == '[':
			inClass = true
			// 紧随 [ 或 [^ 的 ] 属于字符集合本身
			if i+1 < len(src) && src[i+1] == '^' {
				i++
			}
			if i+1 < len(src) && src[i+1] == ']' {
				i++
			}

		case c == '(':
			name, next, ok := parseGroupName(src, i+1)
			if ok {
				names = append(names, name)
				i = next
			}
		}
	}
	return names
}

// parseGroupName 解析 pos 位置起的 ?<name> 或 ?P<name> 返回名称以及 > 的位置
func parseGroupName(src string, pos int) (string, int, bool) {
	rest := src[pos:]
	switch {
	case strings.HasPrefix(rest, "?P<"):
		pos += 3
	case strings.HasPrefix(rest, "?<"):
		// (?<= 与 (?<! 为断言而非命名分组
		if len(rest) > 2 && (rest[2] == '=' || rest[2] == '!') {
			return "", 0, false
		}
		pos += 2
	default:
		return "", 0, false
	}

	end := strings.IndexByte(src[pos:], '>')
	if end <= 0 {
		return "", 0, false
	}
	name := src[pos : pos+end]
	if !isGroupName(name) {
		return "", 0, false
	}
	return name, pos + end, true
}

func isGroupName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '_' && !(c >= 'a' && c <= 'z') && !(c >= 'A' && c <= 'Z') && !(c >= '0' && c <= '9') {
			return false
		}
	}
	return true
}
