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
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/cast"

	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/attrprocessor/internal/patterns"
)

const (
	MatchTypeStrict = "strict"
	MatchTypeRegexp = "regexp"
)

const (
	ActionInsert  = "insert"
	ActionUpdate  = "update"
	ActionDelete  = "delete"
	ActionHash    = "hash"
	ActionExtract = "extract"
)

type Config struct {
	ID      string           `config:"id" mapstructure:"id"`
	Include *MatchProperties `config:"include" mapstructure:"include"`
	Exclude *MatchProperties `config:"exclude" mapstructure:"exclude"`
	Actions []Action         `config:"actions" mapstructure:"actions" validate:"dive"`
}

// MatchProperties 描述 include / exclude 的筛选条件
//
// MatchType 为空时按 strict 处理
type MatchProperties struct {
	MatchType  string      `config:"match_type" mapstructure:"match_type" validate:"omitempty,oneof=strict regexp"`
	SpanNames  []string    `config:"span_names" mapstructure:"span_names"`
	Attributes []Attribute `config:"attributes" mapstructure:"attributes" validate:"dive"`
}

// Attribute 未配置 Value 时仅要求 Key 存在
type Attribute struct {
	Key   string `config:"key" mapstructure:"key" validate:"required"`
	Value any    `config:"value" mapstructure:"value"`
}

type Action struct {
	Action        string `config:"action" mapstructure:"action" validate:"required,oneof=insert update delete hash extract"`
	Key           string `config:"key" mapstructure:"key" validate:"required"`
	Value         any    `config:"value" mapstructure:"value"`
	FromAttribute string `config:"from_attribute" mapstructure:"from_attribute"`
	Pattern       string `config:"pattern" mapstructure:"pattern"`
}

// ConfigError 配置校验失败 Field 指向出错的配置项
type ConfigError struct {
	ID    string
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("attribute_filter(%s) invalid config '%s': %v", e.ID, e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func (c *Config) newError(field string, err error) *ConfigError {
	return &ConfigError{ID: c.ID, Field: field, Err: err}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func decodeConfig(conf map[string]any) (*Config, error) {
	c := &Config{}
	if err := mapstructure.Decode(conf, c); err != nil {
		return nil, &ConfigError{ID: cast.ToString(conf["id"]), Field: "config", Err: err}
	}
	return c, nil
}

// Validate 校验配置 校验通过即可编译
func (c *Config) Validate() error {
	_, err := c.compile()
	return err
}

func (c *Config) validateStruct() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return c.newError("config", err)
	}

	fe := fieldErrors[0]
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	if fe.Param() != "" {
		return c.newError(field, errors.Errorf("failed on '%s=%s' rule, got '%v'", fe.Tag(), fe.Param(), fe.Value()))
	}
	return c.newError(field, errors.Errorf("failed on '%s' rule", fe.Tag()))
}

func (c *Config) compile() (*compiledConfig, error) {
	if len(c.Actions) == 0 {
		return nil, c.newError("actions", errors.New("at least one action required"))
	}
	if err := c.validateStruct(); err != nil {
		return nil, err
	}

	include, err := newMatcher(c.Include)
	if err != nil {
		return nil, c.wrapPatternError("include", err)
	}
	exclude, err := newMatcher(c.Exclude)
	if err != nil {
		return nil, c.wrapPatternError("exclude", err)
	}

	actions := make([]compiledAction, 0, len(c.Actions))
	for i, action := range c.Actions {
		ca, err := compileAction(action)
		if err != nil {
			return nil, c.wrapPatternError(fmt.Sprintf("actions[%d]", i), err)
		}
		actions = append(actions, ca)
	}

	return &compiledConfig{
		id:      c.ID,
		include: include,
		exclude: exclude,
		actions: actions,
	}, nil
}

// fieldError 记录编译阶段出错的子字段
type fieldError struct {
	field string
	err   error
}

func (e *fieldError) Error() string {
	return e.err.Error()
}

func (c *Config) wrapPatternError(prefix string, err error) *ConfigError {
	var fe *fieldError
	if errors.As(err, &fe) {
		return c.newError(prefix+"."+fe.field, fe.err)
	}
	return c.newError(prefix, err)
}

func compileAction(action Action) (compiledAction, error) {
	ca := compiledAction{
		action:        action.Action,
		key:           action.Key,
		fromAttribute: action.FromAttribute,
	}

	switch action.Action {
	case ActionInsert, ActionUpdate:
		hasValue := action.Value != nil
		hasFrom := action.FromAttribute != ""
		if hasValue == hasFrom {
			return ca, &fieldError{
				field: "value",
				err:   errors.Errorf("action '%s' on key '%s' requires exactly one of value and from_attribute", action.Action, action.Key),
			}
		}
		if hasValue {
			s, err := cast.ToStringE(action.Value)
			if err != nil {
				return ca, &fieldError{field: "value", err: err}
			}
			ca.value = s
			ca.hasValue = true
		}

	case ActionExtract:
		if action.Pattern == "" {
			return ca, &fieldError{field: "pattern", err: errors.Errorf("extract on key '%s' requires pattern", action.Key)}
		}
		p, err := patterns.Compile(action.Pattern)
		if err != nil {
			return ca, &fieldError{field: "pattern", err: err}
		}
		var groups []string
		for _, name := range patterns.GroupNames(action.Pattern) {
			if p.HasGroup(name) {
				groups = append(groups, name)
			}
		}
		if len(groups) == 0 {
			return ca, &fieldError{
				field: "pattern",
				err:   errors.Errorf("pattern %q declares no named groups", action.Pattern),
			}
		}
		ca.pattern = p
		ca.groups = groups
	}
	return ca, nil
}

// compiledConfig 构建后只读 可被并发使用
type compiledConfig struct {
	id      string
	include *matcher
	exclude *matcher
	actions []compiledAction
}
