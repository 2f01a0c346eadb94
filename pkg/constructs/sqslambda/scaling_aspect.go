package sqslambda

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/klothoplatform/klotho-constructs/pkg/logging"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

const DefaultMaximumConcurrency = 10

type (
	LambdaMaxScalingAspectProps struct {
		// MaximumConcurrency is the highest allowed scaling config of an event source
		// mapping. Zero means DefaultMaximumConcurrency.
		MaximumConcurrency float64
	}

	// LambdaMaxScalingAspect adds an error annotation to every event source mapping whose
	// maximum concurrency is unset or above MaximumConcurrency. Annotations do not stop
	// synthesis; the CDK CLI refuses to deploy a stack carrying errors.
	LambdaMaxScalingAspect struct {
		MaximumConcurrency float64
	}

	scalingConfig struct {
		MaximumConcurrency *float64 `mapstructure:"maximumConcurrency"`
	}
)

func NewLambdaMaxScalingAspect(props LambdaMaxScalingAspectProps) *LambdaMaxScalingAspect {
	maximum := props.MaximumConcurrency
	if maximum <= 0 {
		maximum = DefaultMaximumConcurrency
	}
	return &LambdaMaxScalingAspect{MaximumConcurrency: maximum}
}

// Message is the text of the error annotation.
func (a *LambdaMaxScalingAspect) Message() string {
	return fmt.Sprintf("Lambdas must have a maximumConcurrency no more than %v", a.MaximumConcurrency)
}

func (a *LambdaMaxScalingAspect) Visit(node constructs.IConstruct) {
	mapping, ok := node.(awslambda.EventSourceMapping)
	if !ok {
		return
	}
	cfn, ok := mapping.Node().DefaultChild().(awslambda.CfnEventSourceMapping)
	if !ok {
		return
	}

	concurrency, set := maximumConcurrency(mapping, cfn)
	if set && concurrency > 0 && concurrency <= a.MaximumConcurrency {
		return
	}
	zap.L().Named("aspect.scaling").Debug("Event source mapping exceeds maximum concurrency",
		logging.ConstructField(node),
		zap.Float64("maximum", a.MaximumConcurrency),
		zap.Float64("actual", concurrency),
	)
	awscdk.Annotations_Of(node).AddError(jsii.String(a.Message()))
}

// maximumConcurrency reads the scaling config of the L1 mapping. The config may be a
// struct or an arbitrary (token) value, so it is resolved against the stack first.
func maximumConcurrency(scope constructs.IConstruct, cfn awslambda.CfnEventSourceMapping) (float64, bool) {
	raw := cfn.ScalingConfig()
	if raw == nil {
		return 0, false
	}
	if sc, ok := raw.(*awslambda.CfnEventSourceMapping_ScalingConfigProperty); ok {
		if sc == nil || sc.MaximumConcurrency == nil {
			return 0, false
		}
		return *sc.MaximumConcurrency, true
	}

	var sc scalingConfig
	if err := mapstructure.Decode(awscdk.Stack_Of(scope).Resolve(raw), &sc); err != nil {
		zap.L().Named("aspect.scaling").Debug("Could not decode scaling config", logging.ConstructField(scope), zap.Error(err))
		return 0, false
	}
	if sc.MaximumConcurrency == nil {
		return 0, false
	}
	return *sc.MaximumConcurrency, true
}
