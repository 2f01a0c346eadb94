package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/aws/aws-cdk-go/awscdk/v2/cxapi"
	"github.com/fatih/color"
	"github.com/klothoplatform/klotho-constructs/pkg/logging"
	"github.com/klothoplatform/klotho-constructs/pkg/stack"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func Test_printDiagnostics(t *testing.T) {
	color.NoColor = true
	assert := assert.New(t)

	buf := new(bytes.Buffer)
	printDiagnostics(buf, nil)
	assert.Equal("✓ no diagnostics\n", buf.String())

	buf.Reset()
	printDiagnostics(buf, []stack.Diagnostic{{
		Path:    "/DevShop/Orders/OrdersLambda",
		Level:   cxapi.SynthesisMessageLevel_ERROR,
		Message: "Lambdas must have a maximumConcurrency no more than 4",
	}})
	assert.Equal("ERROR   /DevShop/Orders/OrdersLambda\n        Lambdas must have a maximumConcurrency no more than 4\n", buf.String())
}

func Test_printValidation(t *testing.T) {
	color.NoColor = true
	assert := assert.New(t)

	buf := new(bytes.Buffer)
	printValidation(buf, "klotho.yaml", nil)
	assert.Equal("✓ klotho.yaml is valid\n", buf.String())

	buf.Reset()
	printValidation(buf, "klotho.yaml", []error{errors.New("env_prefix is required"), errors.New("at least one handler is required")})
	assert.Equal("✗ env_prefix is required\n✗ at least one handler is required\n", buf.String())
}

func Test_synthOutcome(t *testing.T) {
	warning := stack.Diagnostic{Path: "/DevShop", Level: cxapi.SynthesisMessageLevel_WARNING, Message: "deprecated"}
	failure := stack.Diagnostic{Path: "/DevShop", Level: cxapi.SynthesisMessageLevel_ERROR, Message: "invalid"}

	tests := []struct {
		name    string
		diags   []stack.Diagnostic
		logged  zapcore.Level
		strict  bool
		wantErr string
	}{
		{name: "clean", logged: zapcore.InfoLevel},
		{name: "clean strict", logged: zapcore.InfoLevel, strict: true},
		{name: "error diagnostic", diags: []stack.Diagnostic{failure}, logged: zapcore.InfoLevel, wantErr: "synthesis of DevShop reported errors"},
		{name: "logged error", logged: zapcore.ErrorLevel, wantErr: "synthesis of DevShop reported errors"},
		{name: "warning diagnostic", diags: []stack.Diagnostic{warning}, logged: zapcore.InfoLevel},
		{name: "warning diagnostic strict", diags: []stack.Diagnostic{warning}, logged: zapcore.InfoLevel, strict: true, wantErr: "synthesis of DevShop reported warnings"},
		{name: "logged warning", logged: zapcore.WarnLevel},
		{name: "logged warning strict", logged: zapcore.WarnLevel, strict: true, wantErr: "synthesis of DevShop reported warnings"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert := assert.New(t)

			tracker := logging.NewLevelTracker()
			assert.NoError(tracker.Write(zapcore.Entry{Level: tt.logged}, nil))

			err := synthOutcome("DevShop", tt.diags, tracker, tt.strict)
			if tt.wantErr == "" {
				assert.NoError(err)
				return
			}
			assert.EqualError(err, tt.wantErr)
		})
	}
}
