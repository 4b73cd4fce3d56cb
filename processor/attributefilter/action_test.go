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
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/collector/pdata/pcommon"

	"github.com/TencentBlueKing/bkmonitor-datalink/pkg/attrprocessor/internal/testkits"
)

func applyTo(t *testing.T, attrs map[string]any, actions ...Action) pcommon.Map {
	c := &Config{ID: "test", Actions: actions}
	compiled, err := c.compile()
	assert.NoError(t, err)

	m := pcommon.NewMap()
	testkits.PutAttrs(m, attrs)
	applyActions(m, compiled.actions)
	return m
}

func TestActionInsert(t *testing.T) {
	t.Run("never overwrites", func(t *testing.T) {
		attrs := applyTo(t, map[string]any{"k": "v"},
			Action{Action: ActionInsert, Key: "k", Value: "v2"},
		)
		testkits.AssertAttrsEqual(t, attrs, map[string]any{"k": "v"})
	})

	t.Run("literal", func(t *testing.T) {
		attrs := applyTo(t, map[string]any{"other": 1},
			Action{Action: ActionInsert, Key: "k", Value: "v"},
			Action{Action: ActionInsert, Key: "port", Value: 8080},
		)
		testkits.AssertAttrsStringKeyVal(t, attrs, "k", "v", "port", "8080")
		testkits.AssertAttrsIntVal(t, attrs, "other", 1)
	})

	t.Run("from attribute", func(t *testing.T) {
		attrs := applyTo(t, map[string]any{"src": 42},
			Action{Action: ActionInsert, Key: "k", FromAttribute: "src"},
		)
		testkits.AssertAttrsIntVal(t, attrs, "k", 42)
		testkits.AssertAttrsIntVal(t, attrs, "src", 42)
	})

	t.Run("from missing attribute", func(t *testing.T) {
		attrs := applyTo(t, map[string]any{"other": "x"},
			Action{Action: ActionInsert, Key: "k", FromAttribute: "src"},
		)
		testkits.AssertAttrsEqual(t, attrs, map[string]any{"other": "x"})
	})
}

func TestActionUpdate(t *testing.T) {
	t.Run("requires presence", func(t *testing.T) {
		attrs := applyTo(t, map[string]any{"other": "x"},
			Action{Action: ActionUpdate, Key: "k", Value: "v"},
		)
		testkits.AssertAttrsNotFound(t, attrs, "k")
		assert.Equal(t, 1, attrs.Len())
	})

	t.Run("literal", func(t *testing.T) {
		attrs := applyTo(t, map[string]any{"k": 1},
			Action{Action: ActionUpdate, Key: "k", Value: "v"},
		)
		testkits.AssertAttrsStringKeyVal(t, attrs, "k", "v")
	})

	t.Run("from attribute", func(t *testing.T) {
		attrs := applyTo(t, map[string]any{"k": "old", "src": "new"},
			Action{Action: ActionUpdate, Key: "k", FromAttribute: "src"},
		)
		testkits.AssertAttrsStringKeyVal(t, attrs, "k", "new", "src", "new")
	})

	t.Run("from missing attribute", func(t *testing.T) {
		attrs := applyTo(t, map[string]any{"k": "old"},
			Action{Action: ActionUpdate, Key: "k", FromAttribute: "src"},
		)
		testkits.AssertAttrsEqual(t, attrs, map[string]any{"k": "old"})
	})
}

func TestActionOrder(t *testing.T) {
	attrs := applyTo(t, map[string]any{},
		Action{Action: ActionInsert, Key: "k", Value: "v1"},
		Action{Action: ActionUpdate, Key: "k", Value: "v2"},
	)
	testkits.AssertAttrsEqual(t, attrs, map[string]any{"k": "v2"})

	attrs = applyTo(t, map[string]any{},
		Action{Action: ActionUpdate, Key: "k", Value: "v2"},
		Action{Action: ActionInsert, Key: "k", Value: "v1"},
	)
	testkits.AssertAttrsEqual(t, attrs, map[string]any{"k": "v1"})
}

func TestActionDelete(t *testing.T) {
	attrs := applyTo(t, map[string]any{"testKey": "v", "TESTKEY": "V", "other": true},
		Action{Action: ActionDelete, Key: "testKey"},
		Action{Action: ActionDelete, Key: "testKey"},
		Action{Action: ActionDelete, Key: "missing"},
	)
	testkits.AssertAttrsEqual(t, attrs, map[string]any{"TESTKEY": "V", "other": true})
}

func TestActionHash(t *testing.T) {
	t.Run("string", func(t *testing.T) {
		attrs := applyTo(t, map[string]any{"k": "testValue"},
			Action{Action: ActionHash, Key: "k"},
		)
		testkits.AssertAttrsStringKeyVal(t, attrs, "k", "8b7b28d549a61f4260ec0c580e7172dbcbc19f77")
	})

	t.Run("non string", func(t *testing.T) {
		attrs := applyTo(t, map[string]any{"i": 123, "b": true},
			Action{Action: ActionHash, Key: "i"},
			Action{Action: ActionHash, Key: "b"},
		)
		testkits.AssertAttrsStringKeyVal(t, attrs,
			"i", "40bd001563085fc35165329ea1ff5c5ecbdbbeef",
			"b", "5ffe533b830f08a0326348a9160afafc8ada44db",
		)
	})

	t.Run("twice", func(t *testing.T) {
		attrs := applyTo(t, map[string]any{"k": "testValue"},
			Action{Action: ActionHash, Key: "k"},
			Action{Action: ActionHash, Key: "k"},
		)
		testkits.AssertAttrsStringKeyVal(t, attrs, "k", "4445d9b5340ce87a1b657aa57c318f220b3b9a58")
	})

	t.Run("absent", func(t *testing.T) {
		attrs := applyTo(t, map[string]any{"other": "x"},
			Action{Action: ActionHash, Key: "k"},
		)
		testkits.AssertAttrsEqual(t, attrs, map[string]any{"other": "x"})
	})
}

func TestActionExtract(t *testing.T) {
	const pattern = "^(?<a>.*)://(?<b>.*)/(?<c>.*)[?&](?<d>.*)"
	const url = "http://example.com/path?x=1,y=2"

	t.Run("matched", func(t *testing.T) {
		attrs := applyTo(t, map[string]any{"k": url, "a": "old"},
			Action{Action: ActionExtract, Key: "k", Pattern: pattern},
		)
		testkits.AssertAttrsEqual(t, attrs, map[string]any{
			"k": url,
			"a": "http",
			"b": "example.com",
			"c": "path",
			"d": "x=1,y=2",
		})
	})

	t.Run("not matched", func(t *testing.T) {
		attrs := applyTo(t, map[string]any{"k": "example.com", "a": "old"},
			Action{Action: ActionExtract, Key: "k", Pattern: pattern},
		)
		testkits.AssertAttrsEqual(t, attrs, map[string]any{"k": "example.com", "a": "old"})
	})

	t.Run("partial match is not a match", func(t *testing.T) {
		attrs := applyTo(t, map[string]any{"k": "svc-42-extra"},
			Action{Action: ActionExtract, Key: "k", Pattern: `svc-(?<id>\d+)`},
		)
		testkits.AssertAttrsNotFound(t, attrs, "id")
	})

	t.Run("absent", func(t *testing.T) {
		attrs := applyTo(t, map[string]any{"other": "x"},
			Action{Action: ActionExtract, Key: "k", Pattern: pattern},
		)
		testkits.AssertAttrsEqual(t, attrs, map[string]any{"other": "x"})
	})

	t.Run("non string value", func(t *testing.T) {
		attrs := applyTo(t, map[string]any{"port": 8080},
			Action{Action: ActionExtract, Key: "port", Pattern: `(?<major>\d{2})(?<minor>\d+)`},
		)
		testkits.AssertAttrsStringKeyVal(t, attrs, "major", "80", "minor", "80")
		testkits.AssertAttrsIntVal(t, attrs, "port", 8080)
	})
}
