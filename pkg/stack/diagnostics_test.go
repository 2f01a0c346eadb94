package stack

import (
	"testing"

	"github.com/aws/aws-cdk-go/awscdk/v2/cxapi"
	"github.com/aws/jsii-runtime-go"
	"github.com/stretchr/testify/assert"
)

func Test_HasErrors(t *testing.T) {
	assert := assert.New(t)

	warning := Diagnostic{Path: "/DevShop/Fn", Level: cxapi.SynthesisMessageLevel_WARNING, Message: "careful"}
	failure := Diagnostic{Path: "/DevShop/Fn", Level: cxapi.SynthesisMessageLevel_ERROR, Message: "broken"}

	assert.False(HasErrors(nil))
	assert.False(HasErrors([]Diagnostic{warning}))
	assert.True(HasErrors([]Diagnostic{warning, failure}))
	assert.Equal("[ERROR] /DevShop/Fn: broken", failure.String())
}

func Test_messageText(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("", messageText(nil))
	assert.Equal("text", messageText(jsii.String("text")))
	assert.Equal("text", messageText("text"))
	assert.Equal("3", messageText(3))
}
