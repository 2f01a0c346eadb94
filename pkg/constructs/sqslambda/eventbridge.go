// Package sqslambda provides the EventBridgeSqsLambda construct, which routes events from
// EventBridge rules into an SQS queue (with a dead-letter queue) consumed by a Lambda
// function, together with an aspect that caps the function's SQS-driven concurrency.
package sqslambda

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsevents"
	"github.com/aws/aws-cdk-go/awscdk/v2/awseventstargets"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambdaeventsources"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslogs"
	"github.com/aws/aws-cdk-go/awscdk/v2/awssqs"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/klothoplatform/klotho-constructs/pkg/logging"
	"github.com/klothoplatform/klotho-constructs/pkg/propsutil"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	DefaultRetryAttempts  = 10
	DefaultMaxConcurrency = 5
	DefaultBatchSize      = 10
	DefaultMemorySize     = 256
	DefaultTimeoutSeconds = 10

	nodeOptionsEnv = "NODE_OPTIONS"
	nodeOptions    = "--enable-source-maps"
)

var (
	ErrNoRules           = errors.New("at least one rule is required")
	ErrUnnamedRule       = errors.New("every rule must be named when more than one rule is given")
	ErrMissingEventBus   = errors.New("rule has no event bus")
	ErrMissingPattern    = errors.New("rule has no event pattern")
	ErrMissingCode       = errors.New("function has no code")
	ErrDuplicateRuleName = errors.New("duplicate rule name")
	ErrDuplicateRuleID   = errors.New("construct id already in use")
)

type (
	EventBridgeSqsLambdaProps struct {
		// EnvPrefix prefixes the physical name of every resource.
		EnvPrefix            string
		DeadLetterQueueProps *awssqs.QueueProps
		ReadQueueProps       *ReadQueueProps
		// Rules must not be empty. A single rule may be unnamed; with more than one every
		// rule needs a Name.
		Rules            []RuleProps
		FunctionProps    *awslambda.FunctionProps
		EventSourceProps *awslambdaeventsources.SqsEventSourceProps
	}

	ReadQueueProps struct {
		awssqs.QueueProps
		// RetryAttempts is how many times a message is received before it moves to the
		// dead-letter queue. Defaults to DefaultRetryAttempts.
		RetryAttempts *float64
	}

	RuleProps struct {
		// Name is used for the construct id (Name+"Rule") and the rule name (prefix-Name).
		Name string
		awsevents.RuleProps
	}

	EventBridgeSqsLambda struct {
		constructs.Construct

		DeadLetterQueue awssqs.Queue
		ReadQueue       awssqs.Queue
		EventSource     awslambdaeventsources.SqsEventSource
		Rules           []awsevents.Rule
		Lambda          awslambda.Function

		EnvPrefix string

		ruleNames map[string]struct{}
		ruleIDs   map[string]struct{}
		log       *zap.Logger
	}

	plannedRule struct {
		constructID string
		props       awsevents.RuleProps
	}
)

// NewEventBridgeSqsLambda wires EventBridge rules → SQS queue (+ dead-letter queue) → Lambda.
// Props are merged over CurrentDefaults, which are merged over the built-in defaults.
// Nothing is added to scope when an error is returned.
func NewEventBridgeSqsLambda(scope constructs.Construct, id string, props *EventBridgeSqsLambdaProps) (*EventBridgeSqsLambda, error) {
	if props == nil {
		props = &EventBridgeSqsLambdaProps{}
	}
	if len(props.Rules) == 0 {
		return nil, errors.Wrapf(ErrNoRules, "EventBridgeSqsLambda %s", id)
	}
	d := CurrentDefaults()

	c := &EventBridgeSqsLambda{
		EnvPrefix: props.EnvPrefix,
		ruleNames: make(map[string]struct{}),
		ruleIDs:   make(map[string]struct{}),
		log:       zap.L().Named("sqslambda").With(zap.String("id", id)),
	}

	rules, err := c.planRules(id, props.Rules, d)
	if err != nil {
		return nil, errors.Wrapf(err, "EventBridgeSqsLambda %s", id)
	}
	functionProps := propsutil.Spread(libraryFunctionProps(props.EnvPrefix, id), &d.Function, props.FunctionProps)
	if functionProps.Code == nil {
		return nil, errors.Wrapf(ErrMissingCode, "EventBridgeSqsLambda %s", id)
	}

	c.Construct = constructs.NewConstruct(scope, jsii.String(id))

	readQueueProps := propsutil.Spread(&d.ReadQueue, props.ReadQueueProps)
	fifo := readQueueProps.Fifo != nil && *readQueueProps.Fifo

	// AWS requires the .fifo suffix for FIFO queues, and the dead-letter queue of a FIFO
	// queue must be FIFO itself.
	userDLQProps := propsutil.Spread(&d.DeadLetterQueue, props.DeadLetterQueueProps)
	dlqFifo := fifo || (userDLQProps.Fifo != nil && *userDLQProps.Fifo)
	dlqProps := propsutil.Spread(
		&awssqs.QueueProps{
			QueueName: jsii.String(QueueName(props.EnvPrefix, id, deadLetterQueueSuffix, dlqFifo)),
			Fifo:      fifoOrNil(fifo),
		},
		&userDLQProps,
	)
	c.DeadLetterQueue = awssqs.NewQueue(c.Construct, jsii.String(id+deadLetterQueueSuffix), &dlqProps)

	redrive := propsutil.Spread(
		&awssqs.DeadLetterQueue{
			Queue:           c.DeadLetterQueue,
			MaxReceiveCount: jsii.Number(propsutil.FirstSet[float64](DefaultRetryAttempts, readQueueProps.RetryAttempts)),
		},
		readQueueProps.DeadLetterQueue,
	)
	queueProps := propsutil.Spread(
		&awssqs.QueueProps{QueueName: jsii.String(QueueName(props.EnvPrefix, id, readQueueSuffix, fifo))},
		&readQueueProps.QueueProps,
	)
	queueProps.DeadLetterQueue = &redrive
	c.ReadQueue = awssqs.NewQueue(c.Construct, jsii.String(id+readQueueSuffix), &queueProps)

	eventSourceProps := propsutil.Spread(
		&awslambdaeventsources.SqsEventSourceProps{
			ReportBatchItemFailures: jsii.Bool(true),
			MaxConcurrency:          jsii.Number(DefaultMaxConcurrency),
			BatchSize:               jsii.Number(DefaultBatchSize),
		},
		&d.EventSource,
		props.EventSourceProps,
	)
	c.EventSource = awslambdaeventsources.NewSqsEventSource(c.ReadQueue, &eventSourceProps)

	for _, rule := range rules {
		c.addRule(rule)
	}

	c.Lambda = awslambda.NewFunction(c.Construct, jsii.String(id+lambdaSuffix), &functionProps)
	if isNodeRuntime(functionProps.Runtime) {
		c.Lambda.AddEnvironment(jsii.String(nodeOptionsEnv), jsii.String(nodeOptions), nil)
	}
	c.Lambda.AddEventSource(c.EventSource)

	c.log.Debug("Created EventBridgeSqsLambda",
		logging.ConstructField(c.Construct),
		zap.Bool("fifo", fifo),
		zap.Int("rules", len(c.Rules)),
	)
	return c, nil
}

// AddRule adds a rule named prefix-name (construct id name+"Rule") targeting the read queue.
func (c *EventBridgeSqsLambda) AddRule(name string, ruleProps awsevents.RuleProps) (awsevents.Rule, error) {
	rule, err := c.planRule(name+ruleSuffix, RuleName(c.EnvPrefix, name), ruleProps, CurrentDefaults())
	if err != nil {
		return nil, errors.Wrapf(err, "rule %s", name)
	}
	return c.addRule(rule), nil
}

func (c *EventBridgeSqsLambda) planRules(id string, rules []RuleProps, d Defaults) ([]plannedRule, error) {
	if len(rules) == 1 && rules[0].Name == "" {
		rule, err := c.planRule(id+ruleSuffix, RuleName(c.EnvPrefix, id+ruleSuffix), rules[0].RuleProps, d)
		if err != nil {
			return nil, err
		}
		return []plannedRule{rule}, nil
	}

	planned := make([]plannedRule, 0, len(rules))
	for i, rule := range rules {
		if rule.Name == "" {
			return nil, errors.Wrapf(ErrUnnamedRule, "rule %d", i)
		}
		p, err := c.planRule(rule.Name+ruleSuffix, RuleName(c.EnvPrefix, rule.Name), rule.RuleProps, d)
		if err != nil {
			return nil, errors.Wrapf(err, "rule %s", rule.Name)
		}
		planned = append(planned, p)
	}
	return planned, nil
}

// planRule merges and validates a rule, reserving its name.
func (c *EventBridgeSqsLambda) planRule(constructID, ruleName string, ruleProps awsevents.RuleProps, d Defaults) (plannedRule, error) {
	merged := propsutil.Spread(&awsevents.RuleProps{RuleName: jsii.String(ruleName)}, &d.Rule, &ruleProps)
	switch {
	case merged.EventBus == nil:
		return plannedRule{}, ErrMissingEventBus
	case merged.EventPattern == nil:
		return plannedRule{}, ErrMissingPattern
	}
	name := *merged.RuleName
	if _, ok := c.ruleNames[name]; ok {
		return plannedRule{}, errors.Wrap(ErrDuplicateRuleName, name)
	}
	if _, ok := c.ruleIDs[constructID]; ok || c.hasChild(constructID) {
		return plannedRule{}, errors.Wrap(ErrDuplicateRuleID, constructID)
	}
	c.ruleNames[name] = struct{}{}
	c.ruleIDs[constructID] = struct{}{}
	return plannedRule{constructID: constructID, props: merged}, nil
}

// hasChild reports whether id is taken by a child. Before the scope exists nothing is.
func (c *EventBridgeSqsLambda) hasChild(id string) bool {
	if c.Construct == nil {
		return false
	}
	return c.Node().TryFindChild(jsii.String(id)) != nil
}

func (c *EventBridgeSqsLambda) addRule(rule plannedRule) awsevents.Rule {
	r := awsevents.NewRule(c.Construct, jsii.String(rule.constructID), &rule.props)
	r.AddTarget(awseventstargets.NewSqsQueue(c.ReadQueue, nil))
	c.Rules = append(c.Rules, r)
	return r
}

func libraryFunctionProps(envPrefix, id string) *awslambda.FunctionProps {
	return &awslambda.FunctionProps{
		Architecture: awslambda.Architecture_ARM_64(),
		Runtime:      awslambda.Runtime_NODEJS_20_X(),
		Handler:      jsii.String("index.handler"),
		FunctionName: jsii.String(FunctionName(envPrefix, id)),
		LogRetention: awslogs.RetentionDays_THREE_MONTHS,
		MemorySize:   jsii.Number(DefaultMemorySize),
		Timeout:      awscdk.Duration_Seconds(jsii.Number(DefaultTimeoutSeconds)),
	}
}

func isNodeRuntime(runtime awslambda.Runtime) bool {
	return runtime != nil && runtime.Family() == awslambda.RuntimeFamily_NODEJS
}

func fifoOrNil(fifo bool) *bool {
	if !fifo {
		return nil
	}
	return jsii.Bool(true)
}
