package datadog

import (
	"sync"

	"github.com/DataDog/datadog-cdk-constructs-go/ddcdkconstruct"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/klothoplatform/klotho-constructs/pkg/logging"
	"go.uber.org/zap"
)

// ExtensionVersion selects a Datadog extension release channel.
type ExtensionVersion string

const ExtensionVersionNext ExtensionVersion = "next"

const (
	EnvExtensionVersion = "DD_EXTENSION_VERSION"
	EnvVersion          = "DD_VERSION"
	EnvService          = "DD_SERVICE"
	EnvEnv              = "DD_ENV"
	EnvTags             = "DD_TAGS"
)

type (
	AddDatadogToLambdasAspectProps struct {
		Datadog          Instrumenter
		ExtensionVersion ExtensionVersion
	}

	// AddDatadogToLambdasAspect registers every awslambda.Function it visits with the
	// Datadog instrumenter. Without an extension layer the Datadog construct does not set
	// the unified service tags itself, so the aspect sets them as environment variables.
	AddDatadogToLambdasAspect struct {
		Datadog          Instrumenter
		ExtensionVersion ExtensionVersion

		mu      sync.Mutex
		visited map[string]struct{}
	}
)

func NewAddDatadogToLambdasAspect(props AddDatadogToLambdasAspectProps) *AddDatadogToLambdasAspect {
	return &AddDatadogToLambdasAspect{
		Datadog:          props.Datadog,
		ExtensionVersion: props.ExtensionVersion,
		visited:          make(map[string]struct{}),
	}
}

func (a *AddDatadogToLambdasAspect) Visit(node constructs.IConstruct) {
	fn, ok := node.(awslambda.Function)
	if !ok {
		return
	}
	if !a.markVisited(*fn.Node().Path()) {
		return
	}
	log := zap.L().Named("aspect.datadog").With(logging.ConstructField(node))

	if a.ExtensionVersion != "" {
		fn.AddEnvironment(jsii.String(EnvExtensionVersion), jsii.String(string(a.ExtensionVersion)), nil)
	}

	props := a.Datadog.Props()
	if props == nil {
		props = &ddcdkconstruct.DatadogLambdaProps{}
	}
	if props.ExtensionLayerVersion == nil {
		fn.AddEnvironment(jsii.String(EnvVersion), fn.CurrentVersion().ToString(), nil)
		for name, value := range map[string]*string{
			EnvService: props.Service,
			EnvEnv:     props.Env,
			EnvTags:    props.Tags,
		} {
			if value != nil && *value != "" {
				fn.AddEnvironment(jsii.String(name), value, nil)
			}
		}
	}

	a.Datadog.AddLambdaFunctions(&[]interface{}{fn}, nil)
	log.Debug("Added Datadog to function", zap.Bool("extension_layer", props.ExtensionLayerVersion != nil))
}

// markVisited reports whether path is visited for the first time. Aspects may run more
// than once over the same tree when constructs are added during synthesis.
func (a *AddDatadogToLambdasAspect) markVisited(path string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.visited == nil {
		a.visited = make(map[string]struct{})
	}
	if _, ok := a.visited[path]; ok {
		return false
	}
	a.visited[path] = struct{}{}
	return true
}
