// Tencent is pleased to support the open source community by making
// 蓝鲸智云 - 监控平台 (BlueKing - Monitor) available.
// Copyright (C) 2022 THL A29 Limited, a Tencent company. All rights reserved.
// Licensed under the MIT License (the "License"); you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://opensource.org/licenses/MIT
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

/*
# AttributeFilter: 属性规则处理器

按 include / exclude 条件筛选 span 以及 log record 并对命中的记录依次执行属性动作

processor:
   - name: "attribute_filter/common"
     config:
       id: "common"
       # 筛选条件 match_type 支持 strict / regexp 默认 strict
       # span_names 与 attributes 同时配置时需同时满足
       # 日志形态的记录永远不满足 span_names 条件
       include:
         match_type: "strict"
         span_names: ["svcA", "svcB"]
       exclude:
         match_type: "strict"
         attributes:
           - key: "testKey"
             value: "testValue"
       # 动作按顺序执行 后续动作可见之前的修改
       actions:
         # 不存在时插入 value 与 from_attribute 二选一
         - action: "insert"
           key: "env"
           value: "prod"
         # 存在时覆盖
         - action: "update"
           key: "db.statement"
           from_attribute: "db.statement.redacted"
         - action: "delete"
           key: "password"
         # 替换为 SHA-1 十六进制摘要
         - action: "hash"
           key: "user.email"
         # 完整匹配后按命名分组写入新属性 原属性保持不变
         - action: "extract"
           key: "http.url"
           pattern: "^(?<http_protocol>.*)://(?<http_domain>.*)/(?<http_path>.*)"
*/

package attributefilter
