// Package stack builds the CDK stack of an application config.
package stack

import (
	"github.com/DataDog/datadog-cdk-constructs-go/ddcdkconstruct"
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsevents"
	"github.com/aws/jsii-runtime-go"
	"github.com/iancoleman/strcase"
	"github.com/klothoplatform/klotho-constructs/pkg/config"
	"github.com/klothoplatform/klotho-constructs/pkg/constructs/datadog"
	"github.com/klothoplatform/klotho-constructs/pkg/constructs/sqslambda"
	"github.com/klothoplatform/klotho-constructs/pkg/logging"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Result struct {
	Stack awscdk.Stack
	// Handlers by their config name.
	Handlers   map[string]*sqslambda.EventBridgeSqsLambda
	EventBuses map[string]awsevents.IEventBus
	// Datadog is nil unless the config has a datadog section.
	Datadog ddcdkconstruct.DatadogLambda
}

// StackName is the id of the stack built for cfg, for example "DevShop".
func StackName(cfg config.Application) string {
	return strcase.ToCamel(cfg.EnvPrefix + "_" + cfg.AppName)
}

// Build adds the stack described by cfg to app. The config defaults are in effect as
// static EventBridgeSqsLambda defaults only while the handlers are created.
func Build(app awscdk.App, cfg config.Application) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	log := zap.L().Named("stack")

	defaults, err := cfg.Defaults.ToSqsLambdaDefaults(cfg.BaseDir())
	if err != nil {
		return nil, err
	}
	restore := sqslambda.SetDefaults(defaults)
	defer restore()

	stackProps := &awscdk.StackProps{}
	if cfg.Account != "" || cfg.Region != "" {
		stackProps.Env = &awscdk.Environment{
			Account: optional(cfg.Account),
			Region:  optional(cfg.Region),
		}
	}
	res := &Result{
		Stack:      awscdk.NewStack(app, jsii.String(StackName(cfg)), stackProps),
		Handlers:   make(map[string]*sqslambda.EventBridgeSqsLambda, len(cfg.Handlers)),
		EventBuses: make(map[string]awsevents.IEventBus),
	}
	log.Debug("Building stack", logging.ConstructField(res.Stack), zap.Int("handlers", len(cfg.Handlers)))

	for _, name := range cfg.HandlerNames() {
		handler, _ := cfg.GetHandler(name)
		props, err := handler.ToProps(cfg.EnvPrefix, cfg.BaseDir(), res.eventBus)
		if err != nil {
			return nil, errors.Wrapf(err, "handler %s", name)
		}
		construct, err := sqslambda.NewEventBridgeSqsLambda(res.Stack, strcase.ToCamel(name), props)
		if err != nil {
			return nil, errors.Wrapf(err, "handler %s", name)
		}
		res.Handlers[name] = construct
		log.Debug("Added handler", zap.String("handler", name), logging.ConstructField(construct))
	}

	if cfg.Datadog != nil {
		res.Datadog = ddcdkconstruct.NewDatadogLambda(res.Stack, jsii.String("Datadog"), cfg.Datadog.ToProps())
		awscdk.Aspects_Of(res.Stack).Add(datadog.NewAddDatadogToLambdasAspect(datadog.AddDatadogToLambdasAspectProps{
			Datadog:          res.Datadog,
			ExtensionVersion: datadog.ExtensionVersion(cfg.Datadog.ExtensionVersion),
		}), nil)
	}
	if cfg.Scaling != nil {
		awscdk.Aspects_Of(res.Stack).Add(sqslambda.NewLambdaMaxScalingAspect(sqslambda.LambdaMaxScalingAspectProps{
			MaximumConcurrency: float64(cfg.Scaling.MaximumConcurrency),
		}), nil)
	}
	return res, nil
}

// eventBus imports the named bus once per stack.
func (r *Result) eventBus(name string) awsevents.IEventBus {
	if bus, ok := r.EventBuses[name]; ok {
		return bus
	}
	bus := awsevents.EventBus_FromEventBusName(r.Stack, jsii.String(strcase.ToCamel(name)+"EventBus"), jsii.String(name))
	r.EventBuses[name] = bus
	return bus
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return jsii.String(s)
}
