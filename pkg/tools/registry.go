// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package tools

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
)

// Tool is one agent-callable operation.
type Tool struct {
	Name        string
	Description string
	Params      []ParamSpec
	Run         func(ctx context.Context, env *Env, args Args) *ToolResult
}

var blacklistParam = ParamSpec{
	Name:        "blacklist",
	Type:        TypeArray,
	Description: "Regex patterns; any name they match is excluded",
}

var registry = []Tool{
	{
		Name: "rosgraph_get",
		Description: "Get the ROS graph as (publisher, topic, subscriber) tuples. " +
			"Node and topic patterns must match the start of the name, e.g. '.*node.*', 'node.*', '(.*a.*|.*b.*)'. " +
			"Avoid the topic pattern when searching for nodes.",
		Params: []ParamSpec{
			{Name: "namespace", Type: TypeString, Default: "/", Description: "Resolved ROS namespace to scope the graph by"},
			{Name: "node_pattern", Type: TypeString, Default: ".*", Description: "Regex the publisher or subscriber must match"},
			{Name: "topic_pattern", Type: TypeString, Default: ".*", Description: "Regex the topic must match"},
			blacklistParam,
			{Name: "exclude_self_connections", Type: TypeBoolean, Default: true, Description: "Drop connections whose publisher is also the subscriber"},
		},
		Run: func(ctx context.Context, env *Env, a Args) *ToolResult {
			return BuildGraph(ctx, env, GraphArgs{
				Namespace:              a.String("namespace"),
				NodePattern:            a.String("node_pattern"),
				TopicPattern:           a.String("topic_pattern"),
				Blacklist:              a.Strings("blacklist"),
				ExcludeSelfConnections: a.Bool("exclude_self_connections"),
			})
		},
	},
	{
		Name:        "rostopic_list",
		Description: "Returns a list of available ROS topics.",
		Params:      listParams("topics"),
		Run: func(ctx context.Context, env *Env, a Args) *ToolResult {
			return ListTopics(ctx, env, listArgs(a))
		},
	},
	{
		Name:        "rosnode_list",
		Description: "Returns a list of running ROS nodes and how many matched each filter.",
		Params:      listParams("nodes"),
		Run: func(ctx context.Context, env *Env, a Args) *ToolResult {
			return ListNodes(ctx, env, listArgs(a))
		},
	},
	{
		Name:        "rostopic_info",
		Description: "Returns the type, publishers and subscribers of specific ROS topics.",
		Params:      []ParamSpec{namesParam("topics", "ROS topic names")},
		Run: func(ctx context.Context, env *Env, a Args) *ToolResult {
			return TopicInfo(ctx, env, a.Strings("topics"))
		},
	},
	{
		Name:        "rosnode_info",
		Description: "Returns the URI, pid, publications, subscriptions and services of specific ROS nodes.",
		Params:      []ParamSpec{namesParam("nodes", "ROS node names")},
		Run: func(ctx context.Context, env *Env, a Args) *ToolResult {
			return NodeInfo(ctx, env, a.Strings("nodes"))
		},
	},
	{
		Name:        "rosservice_list",
		Description: "Returns a list of available ROS services.",
		Params: []ParamSpec{
			{Name: "node", Type: TypeString, Description: "Only services provided by this node"},
			{Name: "namespace", Type: TypeString, Description: "ROS namespace to scope services by"},
			{Name: "include_nodes", Type: TypeBoolean, Default: false, Description: "Return {service, nodes} entries"},
			{Name: "regex_pattern", Type: TypeString, Description: "Regex services must match"},
			{Name: "exclude_logging", Type: TypeBoolean, Default: true, Description: "Exclude logging services"},
			{Name: "exclude_rosapi", Type: TypeBoolean, Default: true, Description: "Exclude rosapi services"},
			{Name: "exclude_parameters", Type: TypeBoolean, Default: true, Description: "Exclude parameter services"},
			{Name: "exclude_pattern", Type: TypeString, Description: "Regex of services to exclude"},
			blacklistParam,
		},
		Run: func(ctx context.Context, env *Env, a Args) *ToolResult {
			return ListServices(ctx, env, ServiceListArgs{
				Node:              a.String("node"),
				Namespace:         a.String("namespace"),
				IncludeNodes:      a.Bool("include_nodes"),
				Pattern:           a.String("regex_pattern"),
				ExcludeLogging:    a.Bool("exclude_logging"),
				ExcludeRosapi:     a.Bool("exclude_rosapi"),
				ExcludeParameters: a.Bool("exclude_parameters"),
				ExcludePattern:    a.String("exclude_pattern"),
				Blacklist:         a.Strings("blacklist"),
			})
		},
	},
	{
		Name:        "rosservice_info",
		Description: "Returns the URI and providing nodes of specific ROS services.",
		Params:      []ParamSpec{namesParam("services", "ROS service names")},
		Run: func(ctx context.Context, env *Env, a Args) *ToolResult {
			return ServiceInfo(ctx, env, a.Strings("services"))
		},
	},
	{
		Name:        "rosmsg_info",
		Description: "Returns the definition of specific ROS message types.",
		Params:      []ParamSpec{namesParam("msg_type", "ROS message types, e.g. std_msgs/String")},
		Run: func(ctx context.Context, env *Env, a Args) *ToolResult {
			return MessageInfo(ctx, env, a.Strings("msg_type"))
		},
	},
	{
		Name:        "rossrv_info",
		Description: "Returns the definition of specific ROS service types.",
		Params: []ParamSpec{
			namesParam("srv_type", "ROS service types, e.g. std_srvs/Trigger"),
			{Name: "raw", Type: TypeBoolean, Default: false, Description: "Include comments and whitespace"},
		},
		Run: func(ctx context.Context, env *Env, a Args) *ToolResult {
			return ServiceTypeInfo(ctx, env, a.Strings("srv_type"), a.Bool("raw"))
		},
	},
	{
		Name:        "rosparam_list",
		Description: "Returns the ROS parameters available under a namespace.",
		Params: []ParamSpec{
			{Name: "namespace", Type: TypeString, Default: "/", Description: "ROS namespace to scope parameters by"},
			blacklistParam,
		},
		Run: func(ctx context.Context, env *Env, a Args) *ToolResult {
			return ListParams(ctx, env, a.String("namespace"), a.Strings("blacklist"))
		},
	},
	{
		Name:        "rosparam_get",
		Description: "Returns the value of one or more ROS parameters. Names must be fully resolved, without wildcards.",
		Params:      []ParamSpec{namesParam("params", "ROS parameter names")},
		Run: func(ctx context.Context, env *Env, a Args) *ToolResult {
			return GetParams(ctx, env, a.Strings("params"))
		},
	},
	{
		Name:        "rosparam_set",
		Description: "Sets the value of a ROS parameter.",
		Params: []ParamSpec{
			{Name: "param", Type: TypeString, Required: true, Description: "Name of the parameter to set"},
			{Name: "value", Type: TypeString, Required: true, Description: "Value to set, parsed as YAML"},
			{Name: "is_rosa_param", Type: TypeBoolean, Default: false, Description: "Set the parameter in the ROSA namespace"},
		},
		Run: func(ctx context.Context, env *Env, a Args) *ToolResult {
			return SetParam(ctx, env, a.String("param"), a.String("value"), a.Bool("is_rosa_param"))
		},
	},
	{
		Name:        "rospkg_list",
		Description: "Returns a list of ROS packages available on the system.",
		Params: []ParamSpec{
			{Name: "package_pattern", Type: TypeString, Default: ".*", Description: "Regex packages must match"},
			{Name: "ignore_msgs", Type: TypeBoolean, Default: true, Description: "Ignore packages whose name ends in 'msgs'"},
			blacklistParam,
		},
		Run: func(ctx context.Context, env *Env, a Args) *ToolResult {
			return ListPackages(ctx, env, PackageListArgs{
				Pattern:    a.String("package_pattern"),
				IgnoreMsgs: a.Bool("ignore_msgs"),
				Blacklist:  a.Strings("blacklist"),
			})
		},
	},
	{
		Name:        "rospkg_info",
		Description: "Returns the path, dependents and manifest of specific ROS packages.",
		Params:      []ParamSpec{namesParam("packages", "ROS package names")},
		Run: func(ctx context.Context, env *Env, a Args) *ToolResult {
			return PackageInfo(ctx, env, a.Strings("packages"))
		},
	},
	{
		Name:        "rospkg_roots",
		Description: "Returns the paths to the ROS package roots.",
		Run: func(ctx context.Context, env *Env, _ Args) *ToolResult {
			return PackageRoots(ctx, env)
		},
	},
	{
		Name:        "roslog_list",
		Description: "Returns the ROS log files, largest first.",
		Params: []ParamSpec{
			{Name: "min_size", Type: TypeInteger, Default: DefaultMinLogSize, Description: "Minimum size in bytes of a listed log"},
			blacklistParam,
		},
		Run: func(ctx context.Context, env *Env, a Args) *ToolResult {
			return ListLogs(ctx, env, a.Int("min_size"), a.Strings("blacklist"))
		},
	},
	{
		Name:        "roslog_get_log_directory",
		Description: "Returns the path to the ROS log directory.",
		Run: func(ctx context.Context, env *Env, _ Args) *ToolResult {
			return LogDirectory(ctx, env)
		},
	},
}

var registryIndex = func() map[string]int {
	idx := make(map[string]int, len(registry))
	for i, t := range registry {
		idx[t.Name] = i
	}
	return idx
}()

func listParams(kind string) []ParamSpec {
	return []ParamSpec{
		{Name: "pattern", Type: TypeString, Description: "Regex the " + kind + " must match"},
		{Name: "namespace", Type: TypeString, Description: "Resolved ROS namespace to scope " + kind + " by"},
		blacklistParam,
	}
}

func listArgs(a Args) ListArgs {
	return ListArgs{
		Pattern:   a.String("pattern"),
		Namespace: a.String("namespace"),
		Blacklist: a.Strings("blacklist"),
	}
}

func namesParam(name, desc string) ParamSpec {
	return ParamSpec{
		Name:        name,
		Type:        TypeArray,
		Required:    true,
		Description: desc + ". Smaller lists are better for performance.",
	}
}

// Registry returns every tool in a stable order.
func Registry() []Tool {
	out := make([]Tool, len(registry))
	copy(out, registry)
	return out
}

// Lookup finds a tool by name.
func Lookup(name string) (Tool, bool) {
	i, ok := registryIndex[name]
	if !ok {
		return Tool{}, false
	}
	return registry[i], true
}

// Call binds raw arguments and runs the named tool. It never panics and
// never returns nil: unknown tools, bad arguments and handler panics all
// come back as error results.
func Call(ctx context.Context, env *Env, name string, raw map[string]any) (result *ToolResult) {
	callID := uuid.NewString()
	logger := env.logger().With("call_id", callID, "tool", name)
	start := time.Now()

	tool, ok := Lookup(name)
	metricName := name
	if !ok {
		metricName = "unknown"
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error("tools.call.panic", "panic", r, "stack", string(debug.Stack()))
			result = NewErrorf(KindInternal, "tool %s failed: %v", name, r)
		}
		recordCall(metricName, result, time.Since(start))
		logger.Info("tools.call.done",
			"duration_ms", time.Since(start).Milliseconds(),
			"is_error", result.IsError,
			"kind", string(result.Kind),
		)
	}()

	logger.Info("tools.call.start", "args", len(raw))
	if !ok {
		return NewErrorf(KindInvalidArgument, "unknown tool %q", name)
	}
	args, err := bind(tool.Params, raw)
	if err != nil {
		return NewError(KindInvalidArgument, fmt.Sprintf("%s: %v", name, err))
	}
	result = tool.Run(ctx, env, args)
	if result == nil {
		result = NewErrorf(KindInternal, "tool %s returned no result", name)
	}
	return result
}
