package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type (
	Application struct {
		AppName   string `json:"app" yaml:"app" toml:"app"`
		EnvPrefix string `json:"env_prefix" yaml:"env_prefix" toml:"env_prefix"`
		Region    string `json:"region,omitempty" yaml:"region,omitempty" toml:"region,omitempty"`
		Account   string `json:"account,omitempty" yaml:"account,omitempty" toml:"account,omitempty"`

		// Format is what format the file was originally in.
		Format string `json:"-" yaml:"-" toml:"-"`
		// Path is the file the config was read from. Relative code paths resolve against
		// its directory.
		Path string `json:"-" yaml:"-" toml:"-"`

		Datadog  *Datadog            `json:"datadog,omitempty" yaml:"datadog,omitempty" toml:"datadog,omitempty"`
		Scaling  *Scaling            `json:"scaling,omitempty" yaml:"scaling,omitempty" toml:"scaling,omitempty"`
		Defaults Defaults            `json:"defaults" yaml:"defaults" toml:"defaults"`
		Handlers map[string]*Handler `json:"handlers,omitempty" yaml:"handlers,omitempty" toml:"handlers,omitempty"`
	}

	Datadog struct {
		Site                  string `json:"site,omitempty" yaml:"site,omitempty" toml:"site,omitempty"`
		ApiKeySecretArn       string `json:"api_key_secret_arn,omitempty" yaml:"api_key_secret_arn,omitempty" toml:"api_key_secret_arn,omitempty"`
		NodeLayerVersion      int    `json:"node_layer_version,omitempty" yaml:"node_layer_version,omitempty" toml:"node_layer_version,omitempty"`
		PythonLayerVersion    int    `json:"python_layer_version,omitempty" yaml:"python_layer_version,omitempty" toml:"python_layer_version,omitempty"`
		ExtensionLayerVersion int    `json:"extension_layer_version,omitempty" yaml:"extension_layer_version,omitempty" toml:"extension_layer_version,omitempty"`
		// ExtensionVersion is "" or "next".
		ExtensionVersion     string `json:"extension_version,omitempty" yaml:"extension_version,omitempty" toml:"extension_version,omitempty"`
		Service              string `json:"service,omitempty" yaml:"service,omitempty" toml:"service,omitempty"`
		Env                  string `json:"env,omitempty" yaml:"env,omitempty" toml:"env,omitempty"`
		Tags                 string `json:"tags,omitempty" yaml:"tags,omitempty" toml:"tags,omitempty"`
		LogLevel             string `json:"log_level,omitempty" yaml:"log_level,omitempty" toml:"log_level,omitempty"`
		CaptureLambdaPayload bool   `json:"capture_lambda_payload,omitempty" yaml:"capture_lambda_payload,omitempty" toml:"capture_lambda_payload,omitempty"`
	}

	Scaling struct {
		MaximumConcurrency int `json:"maximum_concurrency" yaml:"maximum_concurrency" toml:"maximum_concurrency"`
	}

	// Defaults apply to every handler, below the handler's own settings.
	Defaults struct {
		ReadQueue       Queue       `json:"read_queue,omitempty" yaml:"read_queue,omitempty" toml:"read_queue,omitempty"`
		DeadLetterQueue Queue       `json:"dead_letter_queue,omitempty" yaml:"dead_letter_queue,omitempty" toml:"dead_letter_queue,omitempty"`
		EventSource     EventSource `json:"event_source,omitempty" yaml:"event_source,omitempty" toml:"event_source,omitempty"`
		Function        Function    `json:"function,omitempty" yaml:"function,omitempty" toml:"function,omitempty"`
	}

	Handler struct {
		ReadQueue       Queue       `json:"read_queue,omitempty" yaml:"read_queue,omitempty" toml:"read_queue,omitempty"`
		DeadLetterQueue Queue       `json:"dead_letter_queue,omitempty" yaml:"dead_letter_queue,omitempty" toml:"dead_letter_queue,omitempty"`
		EventSource     EventSource `json:"event_source,omitempty" yaml:"event_source,omitempty" toml:"event_source,omitempty"`
		Function        Function    `json:"function,omitempty" yaml:"function,omitempty" toml:"function,omitempty"`
		Rules           []Rule      `json:"rules" yaml:"rules" toml:"rules"`
	}

	Queue struct {
		Fifo                      *bool `json:"fifo,omitempty" yaml:"fifo,omitempty" toml:"fifo,omitempty"`
		ContentBasedDeduplication *bool `json:"content_based_deduplication,omitempty" yaml:"content_based_deduplication,omitempty" toml:"content_based_deduplication,omitempty"`
		VisibilityTimeoutSeconds  int   `json:"visibility_timeout_seconds,omitempty" yaml:"visibility_timeout_seconds,omitempty" toml:"visibility_timeout_seconds,omitempty"`
		RetentionPeriodSeconds    int   `json:"retention_period_seconds,omitempty" yaml:"retention_period_seconds,omitempty" toml:"retention_period_seconds,omitempty"`
		// RetryAttempts only applies to the read queue.
		RetryAttempts int `json:"retry_attempts,omitempty" yaml:"retry_attempts,omitempty" toml:"retry_attempts,omitempty"`
	}

	EventSource struct {
		BatchSize                int   `json:"batch_size,omitempty" yaml:"batch_size,omitempty" toml:"batch_size,omitempty"`
		MaxConcurrency           int   `json:"max_concurrency,omitempty" yaml:"max_concurrency,omitempty" toml:"max_concurrency,omitempty"`
		MaxBatchingWindowSeconds int   `json:"max_batching_window_seconds,omitempty" yaml:"max_batching_window_seconds,omitempty" toml:"max_batching_window_seconds,omitempty"`
		ReportBatchItemFailures  *bool `json:"report_batch_item_failures,omitempty" yaml:"report_batch_item_failures,omitempty" toml:"report_batch_item_failures,omitempty"`
	}

	Function struct {
		Runtime      string `json:"runtime,omitempty" yaml:"runtime,omitempty" toml:"runtime,omitempty"`
		Architecture string `json:"architecture,omitempty" yaml:"architecture,omitempty" toml:"architecture,omitempty"`
		Handler      string `json:"handler,omitempty" yaml:"handler,omitempty" toml:"handler,omitempty"`
		// Code is a directory or zip file bundled as the function asset.
		Code           string            `json:"code,omitempty" yaml:"code,omitempty" toml:"code,omitempty"`
		InlineCode     string            `json:"inline_code,omitempty" yaml:"inline_code,omitempty" toml:"inline_code,omitempty"`
		MemorySize     int               `json:"memory_size,omitempty" yaml:"memory_size,omitempty" toml:"memory_size,omitempty"`
		TimeoutSeconds int               `json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty" toml:"timeout_seconds,omitempty"`
		LogRetention   int               `json:"log_retention_days,omitempty" yaml:"log_retention_days,omitempty" toml:"log_retention_days,omitempty"`
		Environment    map[string]string `json:"environment,omitempty" yaml:"environment,omitempty" toml:"environment,omitempty"`
	}

	Rule struct {
		Name        string `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
		Description string `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
		// EventBus is the name of an existing event bus.
		EventBus   string                 `json:"event_bus" yaml:"event_bus" toml:"event_bus"`
		Source     []string               `json:"source,omitempty" yaml:"source,omitempty" toml:"source,omitempty"`
		DetailType []string               `json:"detail_type,omitempty" yaml:"detail_type,omitempty" toml:"detail_type,omitempty"`
		Detail     map[string]interface{} `json:"detail,omitempty" yaml:"detail,omitempty" toml:"detail,omitempty"`
		Disabled   bool                   `json:"disabled,omitempty" yaml:"disabled,omitempty" toml:"disabled,omitempty"`
	}
)

// ReadConfig reads the application config at fpath. The file is rendered as a
// text/template with the sprig functions before it is decoded, so values such as
// `{{ env "STAGE" | default "dev" }}` can be used.
func ReadConfig(fpath string) (Application, error) {
	var appCfg Application

	raw, err := os.ReadFile(fpath)
	if err != nil {
		return appCfg, err
	}
	content, err := render(filepath.Base(fpath), raw)
	if err != nil {
		return appCfg, errors.Wrapf(err, "could not render config %s", fpath)
	}

	switch filepath.Ext(fpath) {
	case ".json":
		err = json.NewDecoder(bytes.NewReader(content)).Decode(&appCfg)
		appCfg.Format = "json"

	case ".yaml", ".yml":
		err = yaml.NewDecoder(bytes.NewReader(content)).Decode(&appCfg)
		appCfg.Format = "yaml"

	case ".toml":
		err = toml.NewDecoder(bytes.NewReader(content)).Decode(&appCfg)
		appCfg.Format = "toml"

	default:
		err = errors.Errorf("unsupported config format %q", filepath.Ext(fpath))
	}
	if err != nil {
		return appCfg, errors.Wrapf(err, "could not decode config %s", fpath)
	}
	appCfg.Path = fpath
	return appCfg, nil
}

func render(name string, raw []byte) ([]byte, error) {
	tmpl, err := template.New(name).Funcs(sprig.TxtFuncMap()).Option("missingkey=error").Parse(string(raw))
	if err != nil {
		return nil, err
	}
	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, nil); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GetHandler returns the config of the handler named name.
func (a Application) GetHandler(name string) (Handler, bool) {
	h, ok := a.Handlers[name]
	if !ok || h == nil {
		return Handler{}, ok
	}
	return *h, true
}

// HandlerNames returns the handler names in a stable order.
func (a Application) HandlerNames() []string {
	names := make([]string, 0, len(a.Handlers))
	for name := range a.Handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BaseDir is the directory relative code paths are resolved against.
func (a Application) BaseDir() string {
	if a.Path == "" {
		return "."
	}
	return filepath.Dir(a.Path)
}
