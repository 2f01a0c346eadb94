package stack

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2/cxapi"
)

type Diagnostic struct {
	Stack   string
	Path    string
	Level   cxapi.SynthesisMessageLevel
	Message string
}

func (d Diagnostic) IsError() bool {
	return d.Level == cxapi.SynthesisMessageLevel_ERROR
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("[%s] %s: %s", d.Level, d.Path, d.Message)
}

// Diagnostics collects the annotations of every stack in a synthesized assembly, such as
// the errors added by the scaling aspect.
func Diagnostics(assembly cxapi.CloudAssembly) []Diagnostic {
	var diags []Diagnostic
	for _, artifact := range *assembly.Stacks() {
		messages := artifact.Messages()
		if messages == nil {
			continue
		}
		for _, m := range *messages {
			d := Diagnostic{
				Stack: *artifact.StackName(),
				Level: m.Level,
			}
			if m.Id != nil {
				d.Path = *m.Id
			}
			if m.Entry != nil {
				d.Message = messageText(m.Entry.Data)
			}
			diags = append(diags, d)
		}
	}
	return diags
}

func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.IsError() {
			return true
		}
	}
	return false
}

func messageText(data interface{}) string {
	switch data := data.(type) {
	case nil:
		return ""
	case *string:
		if data == nil {
			return ""
		}
		return *data
	case string:
		return data
	default:
		return fmt.Sprint(data)
	}
}
