package logging

import (
	"github.com/aws/constructs-go/constructs/v10"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type constructField struct {
	node constructs.IConstruct
}

func (field constructField) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	tree := field.node.Node()
	enc.AddString("path", *tree.Path())
	enc.AddString("id", *tree.Id())
	return nil
}

// ConstructField identifies a node of the construct tree in a log entry.
func ConstructField(node constructs.IConstruct) zap.Field {
	return zap.Object("construct", constructField{node: node})
}
