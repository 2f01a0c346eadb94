package config

import (
	"os"

	"github.com/iancoleman/strcase"
	"github.com/klothoplatform/klotho-constructs/pkg/sanitization"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Validate reports every problem in the config rather than stopping at the first.
func (a Application) Validate() error {
	var errs error
	if a.EnvPrefix == "" {
		errs = multierr.Append(errs, errors.New("env_prefix is required"))
	}
	if len(a.Handlers) == 0 {
		errs = multierr.Append(errs, errors.New("at least one handler is required"))
	}
	if a.Scaling != nil && a.Scaling.MaximumConcurrency <= 0 {
		errs = multierr.Append(errs, errors.New("scaling.maximum_concurrency must be positive"))
	}
	if a.Datadog != nil {
		errs = appendWrapped(errs, a.Datadog.Validate(), "datadog")
	}
	errs = appendWrapped(errs, a.Defaults.Function.validate(a.BaseDir()), "defaults.function")

	ids := make(map[string]string, len(a.Handlers))
	ruleNames := make(map[string]string)
	for _, name := range a.HandlerNames() {
		handler := a.Handlers[name]
		if handler == nil {
			errs = multierr.Append(errs, errors.Errorf("handler %s is empty", name))
			continue
		}
		id := strcase.ToCamel(name)
		if id == "" {
			errs = multierr.Append(errs, errors.Errorf("handler name %q has no usable characters", name))
		} else if other, ok := ids[id]; ok {
			errs = multierr.Append(errs, errors.Errorf("handlers %s and %s both map to construct id %s", other, name, id))
		}
		ids[id] = name

		errs = appendWrapped(errs, handler.validate(a.Defaults, a.BaseDir()), "handler "+name)

		// rule names are only prefixed with env_prefix, so they must be unique across handlers
		for _, rule := range handler.Rules {
			ruleName := rule.Name
			if ruleName == "" && len(handler.Rules) == 1 {
				ruleName = id + "Rule"
			}
			if ruleName == "" {
				continue
			}
			if other, ok := ruleNames[ruleName]; ok && other != name {
				errs = multierr.Append(errs, errors.Errorf("handlers %s and %s both have a rule named %s", other, name, ruleName))
				continue
			}
			ruleNames[ruleName] = name
		}
	}
	return errs
}

func (h Handler) validate(defaults Defaults, baseDir string) error {
	var errs error
	switch len(h.Rules) {
	case 0:
		errs = multierr.Append(errs, errors.New("at least one rule is required"))
	case 1:
	default:
		names := make(map[string]struct{}, len(h.Rules))
		for i, rule := range h.Rules {
			if rule.Name == "" {
				errs = multierr.Append(errs, errors.Errorf("rule %d: name is required when there is more than one rule", i))
				continue
			}
			if _, ok := names[rule.Name]; ok {
				errs = multierr.Append(errs, errors.Errorf("rule %d: duplicate name %s", i, rule.Name))
			}
			names[rule.Name] = struct{}{}
		}
	}
	for i, rule := range h.Rules {
		if rule.EventBus == "" {
			errs = multierr.Append(errs, errors.Errorf("rule %d: event_bus is required", i))
		}
		if len(rule.Source) == 0 && len(rule.DetailType) == 0 && len(rule.Detail) == 0 {
			errs = multierr.Append(errs, errors.Errorf("rule %d: one of source, detail_type or detail is required", i))
		}
	}
	if h.Function.Code == "" && h.Function.InlineCode == "" && defaults.Function.Code == "" && defaults.Function.InlineCode == "" {
		errs = multierr.Append(errs, errors.New("function: code or inline_code is required"))
	}
	errs = appendWrapped(errs, h.Function.validate(baseDir), "function")
	return errs
}

// appendWrapped appends each error combined in err to errs, prefixed with msg.
func appendWrapped(errs, err error, msg string) error {
	for _, e := range multierr.Errors(err) {
		errs = multierr.Append(errs, errors.Wrap(e, msg))
	}
	return errs
}

// validate checks the function config without creating any CDK values. The code asset
// must exist, since it is only read once the function is synthesized.
func (f Function) validate(baseDir string) error {
	var errs error
	if f.Code != "" {
		if _, err := os.Stat(f.CodePath(baseDir)); err != nil {
			errs = multierr.Append(errs, errors.Wrap(err, "code"))
		}
	}
	if _, ok := runtimes[f.Runtime]; f.Runtime != "" && !ok {
		errs = multierr.Append(errs, errors.Errorf("unsupported runtime %q", f.Runtime))
	}
	if _, ok := architectures[f.Architecture]; f.Architecture != "" && !ok {
		errs = multierr.Append(errs, errors.Errorf("unsupported architecture %q", f.Architecture))
	}
	if _, ok := retentionDays[f.LogRetention]; f.LogRetention != 0 && !ok {
		errs = multierr.Append(errs, errors.Errorf("unsupported log retention of %d days", f.LogRetention))
	}
	if f.Code != "" && f.InlineCode != "" {
		errs = multierr.Append(errs, errors.New("only one of code and inline_code may be set"))
	}
	for key := range f.Environment {
		if !sanitization.EnvVarKeySanitizer.IsValid(key) {
			errs = multierr.Append(errs, errors.Errorf("invalid environment variable name %q (try %q)", key, sanitization.EnvVarKeySanitizer.Apply(key)))
		}
	}
	if f.MemorySize < 0 || f.TimeoutSeconds < 0 {
		errs = multierr.Append(errs, errors.New("memory_size and timeout_seconds must not be negative"))
	}
	return errs
}

func (d Datadog) Validate() error {
	var errs error
	switch d.ExtensionVersion {
	case "", "next":
	default:
		errs = multierr.Append(errs, errors.Errorf("unsupported extension_version %q", d.ExtensionVersion))
	}
	if d.ApiKeySecretArn == "" {
		errs = multierr.Append(errs, errors.New("api_key_secret_arn is required"))
	}
	return errs
}
