package sqslambda

import (
	"fmt"

	awsnames "github.com/klothoplatform/klotho-constructs/pkg/sanitization/aws"
)

// Construct id suffixes of the children of an EventBridgeSqsLambda.
const (
	deadLetterQueueSuffix = "DLQueue"
	readQueueSuffix       = "Queue"
	ruleSuffix            = "Rule"
	lambdaSuffix          = "Lambda"
)

func prefixed(envPrefix, name string) string {
	return fmt.Sprintf("%s-%s", envPrefix, name)
}

// QueueName is the physical name of the queue with construct id id+suffix.
func QueueName(envPrefix, id, suffix string, fifo bool) string {
	return awsnames.SqsQueueName(prefixed(envPrefix, id+suffix), fifo)
}

// FunctionName is the physical name of the handler function of the construct id.
func FunctionName(envPrefix, id string) string {
	return awsnames.LambdaFunctionSanitizer.Apply(prefixed(envPrefix, id+lambdaSuffix))
}

// RuleName is the physical name of an EventBridge rule.
func RuleName(envPrefix, name string) string {
	return awsnames.EventBridgeRuleSanitizer.Apply(prefixed(envPrefix, name))
}
