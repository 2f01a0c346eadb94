package clicommon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_LevelledFlag(t *testing.T) {
	assert := assert.New(t)

	var f LevelledFlag
	assert.NoError(f.Set("true"))
	assert.NoError(f.Set("true"))
	assert.Equal("2", f.String())

	assert.NoError(f.Set("false"))
	assert.Equal(LevelledFlag(1), f)

	assert.NoError(f.Set("3"))
	assert.Equal(LevelledFlag(3), f)

	assert.Error(f.Set("loud"))
	assert.Equal("levelled_flag", f.Type())
}
