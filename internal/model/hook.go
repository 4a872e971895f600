package model

import "strings"

// HookDescriptor requests tracing of one method.
type HookDescriptor struct {
	Method        MethodIdentity `yaml:"method"`
	LogName       bool           `yaml:"log_name"`
	LogParameters bool           `yaml:"log_parameters"`
	LogReturn     bool           `yaml:"log_return"`
}

// IsNoop reports whether every flag is off.
func (h HookDescriptor) IsNoop() bool {
	return !h.LogName && !h.LogParameters && !h.LogReturn
}

// Flags renders the enabled flags as "name,params,return" or "none".
func (h HookDescriptor) Flags() string {
	var parts []string

	if h.LogName {
		parts = append(parts, "name")
	}

	if h.LogParameters {
		parts = append(parts, "params")
	}

	if h.LogReturn {
		parts = append(parts, "return")
	}

	if len(parts) == 0 {
		return "none"
	}

	return strings.Join(parts, ",")
}

// DisplayKey renders the method identity followed by the enabled flags.
func (h HookDescriptor) DisplayKey() string {
	return h.Method.String() + " [" + h.Flags() + "]"
}
