package sqslambda

import (
	"sync"

	"github.com/aws/aws-cdk-go/awscdk/v2/awsevents"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambdaeventsources"
	"github.com/aws/aws-cdk-go/awscdk/v2/awssqs"
)

// Defaults are applied to every EventBridgeSqsLambda built while they are set. They sit
// between the built-in defaults and the props passed to NewEventBridgeSqsLambda.
type Defaults struct {
	DeadLetterQueue awssqs.QueueProps
	ReadQueue       ReadQueueProps
	EventSource     awslambdaeventsources.SqsEventSourceProps
	Rule            awsevents.RuleProps
	Function        awslambda.FunctionProps
}

var (
	defaultsMu sync.RWMutex
	defaults   Defaults
)

// CurrentDefaults returns the defaults in effect.
func CurrentDefaults() Defaults {
	defaultsMu.RLock()
	defer defaultsMu.RUnlock()
	return defaults
}

// SetDefaults replaces the defaults in effect and returns a function restoring the
// previous ones.
//
//	restore := sqslambda.SetDefaults(d)
//	defer restore()
func SetDefaults(d Defaults) (restore func()) {
	defaultsMu.Lock()
	prev := defaults
	defaults = d
	defaultsMu.Unlock()

	return func() {
		defaultsMu.Lock()
		defaults = prev
		defaultsMu.Unlock()
	}
}

// ResetDefaults clears the defaults, leaving only the built-in ones.
func ResetDefaults() {
	SetDefaults(Defaults{})
}
