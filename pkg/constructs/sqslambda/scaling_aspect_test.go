package sqslambda

import (
	"testing"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/assertions"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsevents"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/aws-cdk-go/awscdk/v2/awssqs"
	"github.com/aws/jsii-runtime-go"
	"github.com/stretchr/testify/assert"
)

func Test_LambdaMaxScalingAspect(t *testing.T) {
	tests := []struct {
		name        string
		maximum     float64
		concurrency *float64
		wantError   bool
	}{
		{
			name:        "over the threshold",
			maximum:     3,
			concurrency: jsii.Number(5),
			wantError:   true,
		},
		{
			name:        "at the threshold",
			maximum:     5,
			concurrency: jsii.Number(5),
		},
		{
			name:        "default threshold",
			concurrency: jsii.Number(10),
		},
		{
			name:        "over the default threshold",
			concurrency: jsii.Number(11),
			wantError:   true,
		},
		{
			name:      "unset",
			maximum:   5,
			wantError: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, stack := newTestStack()

			fn := awslambda.NewFunction(stack, jsii.String("Fn"), &awslambda.FunctionProps{
				Runtime: awslambda.Runtime_NODEJS_20_X(),
				Handler: jsii.String("index.handler"),
				Code:    awslambda.Code_FromInline(jsii.String("exports.handler = async () => {}")),
			})
			queue := awssqs.NewQueue(stack, jsii.String("Queue"), nil)
			mappingProps := &awslambda.EventSourceMappingOptions{
				EventSourceArn: queue.QueueArn(),
			}
			if tt.concurrency != nil {
				mappingProps.MaxConcurrency = tt.concurrency
			}
			fn.AddEventSourceMapping(jsii.String("Mapping"), mappingProps)

			aspect := NewLambdaMaxScalingAspect(LambdaMaxScalingAspectProps{MaximumConcurrency: tt.maximum})
			awscdk.Aspects_Of(app).Add(aspect, nil)

			annotations := assertions.Annotations_FromStack(stack)
			if tt.wantError {
				annotations.HasError(jsii.String("*"), aspect.Message())
			} else {
				annotations.HasNoError(jsii.String("*"), aspect.Message())
			}
		})
	}
}

func Test_LambdaMaxScalingAspectOnConstruct(t *testing.T) {
	app, stack := newTestStack()
	bus := awsevents.EventBus_FromEventBusName(stack, jsii.String("EventBus"), jsii.String("mybus"))
	_, err := NewEventBridgeSqsLambda(stack, "TestConstruct", &EventBridgeSqsLambdaProps{
		EnvPrefix:     "mytest",
		Rules:         []RuleProps{{RuleProps: myEventRule(bus, "MyEvent", "bar")}},
		FunctionProps: inlineFunction(),
	})
	assert.NoError(t, err)

	aspect := NewLambdaMaxScalingAspect(LambdaMaxScalingAspectProps{MaximumConcurrency: 4})
	awscdk.Aspects_Of(app).Add(aspect, nil)

	assertions.Annotations_FromStack(stack).HasError(jsii.String("*"), "Lambdas must have a maximumConcurrency no more than 4")
}

func Test_NewLambdaMaxScalingAspect(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(float64(DefaultMaximumConcurrency), NewLambdaMaxScalingAspect(LambdaMaxScalingAspectProps{}).MaximumConcurrency)
	assert.Equal(float64(DefaultMaximumConcurrency), NewLambdaMaxScalingAspect(LambdaMaxScalingAspectProps{MaximumConcurrency: -1}).MaximumConcurrency)
	assert.Equal(float64(20), NewLambdaMaxScalingAspect(LambdaMaxScalingAspectProps{MaximumConcurrency: 20}).MaximumConcurrency)
	assert.Equal("Lambdas must have a maximumConcurrency no more than 10", NewLambdaMaxScalingAspect(LambdaMaxScalingAspectProps{}).Message())
}
