package config

import (
	"path/filepath"

	"github.com/DataDog/datadog-cdk-constructs-go/ddcdkconstruct"
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsevents"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambdaeventsources"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslogs"
	"github.com/aws/aws-cdk-go/awscdk/v2/awssqs"
	"github.com/aws/jsii-runtime-go"
	"github.com/klothoplatform/klotho-constructs/pkg/constructs/sqslambda"
	"github.com/pkg/errors"
)

// EventBusLookup returns the event bus with the given name.
type EventBusLookup func(name string) awsevents.IEventBus

var (
	runtimes = map[string]func() awslambda.Runtime{
		"nodejs18.x":      awslambda.Runtime_NODEJS_18_X,
		"nodejs20.x":      awslambda.Runtime_NODEJS_20_X,
		"nodejs22.x":      awslambda.Runtime_NODEJS_22_X,
		"python3.11":      awslambda.Runtime_PYTHON_3_11,
		"python3.12":      awslambda.Runtime_PYTHON_3_12,
		"python3.13":      awslambda.Runtime_PYTHON_3_13,
		"java21":          awslambda.Runtime_JAVA_21,
		"provided.al2023": awslambda.Runtime_PROVIDED_AL2023,
	}

	architectures = map[string]func() awslambda.Architecture{
		"arm64":  awslambda.Architecture_ARM_64,
		"x86_64": awslambda.Architecture_X86_64,
	}

	retentionDays = map[int]awslogs.RetentionDays{
		1:    awslogs.RetentionDays_ONE_DAY,
		3:    awslogs.RetentionDays_THREE_DAYS,
		5:    awslogs.RetentionDays_FIVE_DAYS,
		7:    awslogs.RetentionDays_ONE_WEEK,
		14:   awslogs.RetentionDays_TWO_WEEKS,
		30:   awslogs.RetentionDays_ONE_MONTH,
		60:   awslogs.RetentionDays_TWO_MONTHS,
		90:   awslogs.RetentionDays_THREE_MONTHS,
		120:  awslogs.RetentionDays_FOUR_MONTHS,
		150:  awslogs.RetentionDays_FIVE_MONTHS,
		180:  awslogs.RetentionDays_SIX_MONTHS,
		365:  awslogs.RetentionDays_ONE_YEAR,
		400:  awslogs.RetentionDays_THIRTEEN_MONTHS,
		545:  awslogs.RetentionDays_EIGHTEEN_MONTHS,
		731:  awslogs.RetentionDays_TWO_YEARS,
		1827: awslogs.RetentionDays_FIVE_YEARS,
		3653: awslogs.RetentionDays_TEN_YEARS,
	}
)

func (q Queue) ToProps() awssqs.QueueProps {
	return awssqs.QueueProps{
		Fifo:                      q.Fifo,
		ContentBasedDeduplication: q.ContentBasedDeduplication,
		VisibilityTimeout:         seconds(q.VisibilityTimeoutSeconds),
		RetentionPeriod:           seconds(q.RetentionPeriodSeconds),
	}
}

func (q Queue) ToReadQueueProps() sqslambda.ReadQueueProps {
	return sqslambda.ReadQueueProps{
		QueueProps:    q.ToProps(),
		RetryAttempts: number(q.RetryAttempts),
	}
}

func (es EventSource) ToProps() awslambdaeventsources.SqsEventSourceProps {
	return awslambdaeventsources.SqsEventSourceProps{
		BatchSize:               number(es.BatchSize),
		MaxConcurrency:          number(es.MaxConcurrency),
		MaxBatchingWindow:       seconds(es.MaxBatchingWindowSeconds),
		ReportBatchItemFailures: es.ReportBatchItemFailures,
	}
}

// ToProps converts the function config. A relative Code path is resolved against baseDir.
func (f Function) ToProps(baseDir string) (awslambda.FunctionProps, error) {
	props := awslambda.FunctionProps{
		Handler:    optional(f.Handler),
		MemorySize: number(f.MemorySize),
		Timeout:    seconds(f.TimeoutSeconds),
	}
	if f.Runtime != "" {
		runtime, ok := runtimes[f.Runtime]
		if !ok {
			return props, errors.Errorf("unsupported runtime %q", f.Runtime)
		}
		props.Runtime = runtime()
	}
	if f.Architecture != "" {
		arch, ok := architectures[f.Architecture]
		if !ok {
			return props, errors.Errorf("unsupported architecture %q", f.Architecture)
		}
		props.Architecture = arch()
	}
	if f.LogRetention != 0 {
		retention, ok := retentionDays[f.LogRetention]
		if !ok {
			return props, errors.Errorf("unsupported log retention of %d days", f.LogRetention)
		}
		props.LogRetention = retention
	}
	switch {
	case f.Code != "" && f.InlineCode != "":
		return props, errors.New("only one of code and inline_code may be set")
	case f.Code != "":
		props.Code = awslambda.Code_FromAsset(jsii.String(f.CodePath(baseDir)), nil)
	case f.InlineCode != "":
		props.Code = awslambda.Code_FromInline(jsii.String(f.InlineCode))
	}
	if len(f.Environment) > 0 {
		env := make(map[string]*string, len(f.Environment))
		for k, v := range f.Environment {
			env[k] = jsii.String(v)
		}
		props.Environment = &env
	}
	return props, nil
}

// CodePath is Code resolved against baseDir.
func (f Function) CodePath(baseDir string) string {
	if f.Code == "" || filepath.IsAbs(f.Code) {
		return f.Code
	}
	return filepath.Join(baseDir, f.Code)
}

func (r Rule) EventPattern() *awsevents.EventPattern {
	pattern := &awsevents.EventPattern{}
	if len(r.Source) > 0 {
		pattern.Source = jsii.Strings(r.Source...)
	}
	if len(r.DetailType) > 0 {
		pattern.DetailType = jsii.Strings(r.DetailType...)
	}
	if len(r.Detail) > 0 {
		detail := r.Detail
		pattern.Detail = &detail
	}
	return pattern
}

func (r Rule) ToProps(buses EventBusLookup) sqslambda.RuleProps {
	props := sqslambda.RuleProps{
		Name: r.Name,
		RuleProps: awsevents.RuleProps{
			Description:  optional(r.Description),
			EventPattern: r.EventPattern(),
		},
	}
	if r.EventBus != "" && buses != nil {
		props.EventBus = buses(r.EventBus)
	}
	if r.Disabled {
		props.Enabled = jsii.Bool(false)
	}
	return props
}

// ToProps converts the handler config to the props of an EventBridgeSqsLambda.
func (h Handler) ToProps(envPrefix, baseDir string, buses EventBusLookup) (*sqslambda.EventBridgeSqsLambdaProps, error) {
	fn, err := h.Function.ToProps(baseDir)
	if err != nil {
		return nil, errors.Wrap(err, "function")
	}
	dlq := h.DeadLetterQueue.ToProps()
	readQueue := h.ReadQueue.ToReadQueueProps()
	eventSource := h.EventSource.ToProps()

	rules := make([]sqslambda.RuleProps, len(h.Rules))
	for i, rule := range h.Rules {
		rules[i] = rule.ToProps(buses)
	}

	return &sqslambda.EventBridgeSqsLambdaProps{
		EnvPrefix:            envPrefix,
		DeadLetterQueueProps: &dlq,
		ReadQueueProps:       &readQueue,
		Rules:                rules,
		FunctionProps:        &fn,
		EventSourceProps:     &eventSource,
	}, nil
}

// ToSqsLambdaDefaults converts the defaults section to static EventBridgeSqsLambda defaults.
func (d Defaults) ToSqsLambdaDefaults(baseDir string) (sqslambda.Defaults, error) {
	fn, err := d.Function.ToProps(baseDir)
	if err != nil {
		return sqslambda.Defaults{}, errors.Wrap(err, "defaults function")
	}
	return sqslambda.Defaults{
		DeadLetterQueue: d.DeadLetterQueue.ToProps(),
		ReadQueue:       d.ReadQueue.ToReadQueueProps(),
		EventSource:     d.EventSource.ToProps(),
		Function:        fn,
	}, nil
}

func (d Datadog) ToProps() *ddcdkconstruct.DatadogLambdaProps {
	props := &ddcdkconstruct.DatadogLambdaProps{
		Site:                  optional(d.Site),
		ApiKeySecretArn:       optional(d.ApiKeySecretArn),
		NodeLayerVersion:      number(d.NodeLayerVersion),
		PythonLayerVersion:    number(d.PythonLayerVersion),
		ExtensionLayerVersion: number(d.ExtensionLayerVersion),
		Service:               optional(d.Service),
		Env:                   optional(d.Env),
		Tags:                  optional(d.Tags),
		LogLevel:              optional(d.LogLevel),
	}
	if d.CaptureLambdaPayload {
		props.CaptureLambdaPayload = jsii.Bool(true)
	}
	return props
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return jsii.String(s)
}

func number(n int) *float64 {
	if n == 0 {
		return nil
	}
	return jsii.Number(float64(n))
}

func seconds(n int) awscdk.Duration {
	if n == 0 {
		return nil
	}
	return awscdk.Duration_Seconds(jsii.Number(float64(n)))
}
