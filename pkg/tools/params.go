// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package tools

import (
	"context"
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"

	"github.com/kraklabs/rosa/internal/contract"
)

// ParamListing is the payload of ListParams.
type ParamListing struct {
	Namespace string   `json:"namespace"`
	Total     int      `json:"total"`
	Params    []string `json:"ros_params"`
}

// ListParams lists parameter names under namespace, minus blacklisted ones.
// A name equal to the namespace itself is included.
func ListParams(ctx context.Context, env *Env, namespace string, blacklistPatterns []string) *ToolResult {
	bl, err := compileBlacklist(env.blacklist(blacklistPatterns))
	if err != nil {
		return NewError(KindInvalidArgument, err.Error())
	}
	ns := normalizeNamespace(namespace)

	names, err := env.Params.ParamNames(ctx)
	if err != nil {
		return errorFrom("Failed to get ROS parameters", err)
	}

	params := make([]string, 0, len(names))
	for _, name := range names {
		if name != ns && !inNamespace(name, ns) {
			continue
		}
		if bl.matches(name) {
			continue
		}
		params = append(params, name)
	}
	return NewResult(&ParamListing{Namespace: ns, Total: len(params), Params: params})
}

// GetParams reads each parameter. The first failure aborts the batch.
func GetParams(ctx context.Context, env *Env, params []string) *ToolResult {
	if res := requireNames("params", params); res != nil {
		return res
	}
	values := orderedmap.New[string, any]()
	for _, key := range params {
		if res := contract.ValidateResourceName(key); !res.OK {
			return NewErrorf(KindInvalidArgument, "Failed to get parameter '%s': %s", key, res.Message)
		}
		v, err := env.Params.GetParam(ctx, key)
		if err != nil {
			return errorFrom(fmt.Sprintf("Failed to get parameter '%s'", key), err)
		}
		values.Set(key, v)
	}
	return NewResult(values)
}

// ParamSetResult confirms a parameter write.
type ParamSetResult struct {
	Message string `json:"message"`
	Param   string `json:"param"`
	Value   any    `json:"value"`
}

// SetParam writes one parameter. value is parsed as YAML, the way rosparam
// does, so "3" becomes an int and "[1, 2]" a list; text that is not valid
// YAML is stored as a string. With rosaParam the key is placed under the
// reserved namespace.
func SetParam(ctx context.Context, env *Env, param, value string, rosaParam bool) *ToolResult {
	key := param
	if rosaParam {
		key = reservedKey(env.reservedNamespace(), param)
	}
	if res := contract.ValidateResourceName(key); !res.OK {
		return NewErrorf(KindInvalidArgument, "Failed to set parameter '%s' to '%s': %s. Try again!", key, value, res.Message)
	}

	parsed := parseParamValue(value)
	env.logger().Info("tools.param.set", "param", key, "value", value)
	if err := env.Params.SetParam(ctx, key, parsed); err != nil {
		return NewErrorf(kindOf(err), "Failed to set parameter '%s' to '%s': %v. Try again!", key, value, err)
	}
	return NewResult(&ParamSetResult{
		Message: fmt.Sprintf("Set parameter '%s' to '%s'.", key, value),
		Param:   key,
		Value:   parsed,
	})
}

// reservedKey places param under ns unless it is already there, collapsing
// doubled slashes.
func reservedKey(ns, param string) string {
	ns = normalizeNamespace(ns)
	if param == ns || strings.HasPrefix(param, ns+"/") {
		return param
	}
	key := ns + "/" + param
	for strings.Contains(key, "//") {
		key = strings.ReplaceAll(key, "//", "/")
	}
	return key
}

// parseParamValue decodes a YAML scalar or collection into values the
// parameter server can store. Empty and null input stay strings.
func parseParamValue(value string) any {
	var v any
	if err := yaml.Unmarshal([]byte(value), &v); err != nil || v == nil {
		return value
	}
	return normalizeYAML(v)
}

// normalizeYAML converts maps with non-string keys into string-keyed maps.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, item := range t {
			t[k] = normalizeYAML(item)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[fmt.Sprint(k)] = normalizeYAML(item)
		}
		return out
	case []any:
		for i, item := range t {
			t[i] = normalizeYAML(item)
		}
		return t
	default:
		return v
	}
}
