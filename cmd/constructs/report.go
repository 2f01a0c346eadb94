package main

import (
	"fmt"
	"io"

	"github.com/aws/aws-cdk-go/awscdk/v2/cxapi"
	"github.com/fatih/color"
	"github.com/klothoplatform/klotho-constructs/pkg/logging"
	"github.com/klothoplatform/klotho-constructs/pkg/stack"
	"github.com/pkg/errors"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow)
	okColor      = color.New(color.FgGreen)
)

func printDiagnostics(w io.Writer, diags []stack.Diagnostic) {
	if len(diags) == 0 {
		okColor.Fprintln(w, "✓ no diagnostics") //nolint:errcheck
		return
	}
	for _, d := range diags {
		c := warningColor
		if d.IsError() {
			c = errorColor
		}
		c.Fprintf(w, "%-7s", d.Level) //nolint:errcheck
		fmt.Fprintf(w, " %s\n        %s\n", d.Path, d.Message)
	}
}

func printValidation(w io.Writer, path string, errs []error) {
	if len(errs) == 0 {
		okColor.Fprintf(w, "✓ %s is valid\n", path) //nolint:errcheck
		return
	}
	for _, err := range errs {
		errorColor.Fprint(w, "✗ ") //nolint:errcheck
		fmt.Fprintln(w, err)
	}
}

// synthOutcome fails on error diagnostics or logged errors. In strict mode warning
// diagnostics and logged warnings fail too.
func synthOutcome(stackName string, diags []stack.Diagnostic, tracker *logging.LevelTracker, strict bool) error {
	if stack.HasErrors(diags) || tracker.HadErrors() {
		return errors.Errorf("synthesis of %s reported errors", stackName)
	}
	if strict && (hasWarnings(diags) || tracker.HadWarnings()) {
		return errors.Errorf("synthesis of %s reported warnings", stackName)
	}
	return nil
}

func hasWarnings(diags []stack.Diagnostic) bool {
	for _, d := range diags {
		if d.Level == cxapi.SynthesisMessageLevel_WARNING {
			return true
		}
	}
	return false
}
