// Package datadog instruments the Lambda functions of a construct tree with Datadog.
package datadog

//go:generate mockgen -source=./instrumenter.go --destination=./mock_instrumenter_test.go --package=datadog

import (
	"github.com/DataDog/datadog-cdk-constructs-go/ddcdkconstruct"
	"github.com/aws/constructs-go/constructs/v10"
)

// Instrumenter adds the Datadog layers and handler redirection to functions.
// *ddcdkconstruct.DatadogLambda satisfies it.
type Instrumenter interface {
	Props() *ddcdkconstruct.DatadogLambdaProps
	AddLambdaFunctions(lambdaFunctions *[]interface{}, construct constructs.Construct)
}

var _ Instrumenter = ddcdkconstruct.DatadogLambda(nil)
