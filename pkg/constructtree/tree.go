// Package constructtree exports a construct tree as a graph, mostly for debugging which
// resources a config produces.
package constructtree

import (
	"io"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/dominikbraun/graph"
	"github.com/dominikbraun/graph/draw"
	"github.com/pkg/errors"
)

type (
	Node struct {
		Path string
		ID   string
		// ResourceType is the CloudFormation type of L1 constructs, otherwise empty.
		ResourceType string
	}

	Graph = graph.Graph[string, Node]
)

const rootPath = "/"

// Walk returns the tree rooted at root, with an edge from every construct to each of its
// children. Vertices are keyed by construct path.
func Walk(root constructs.IConstruct) (Graph, error) {
	g := graph.New(func(n Node) string { return n.Path }, graph.Directed(), graph.Acyclic())
	if err := walk(g, root); err != nil {
		return nil, err
	}
	return g, nil
}

func walk(g Graph, node constructs.IConstruct) error {
	n := newNode(node)
	attrs := []func(*graph.VertexProperties){graph.VertexAttribute("label", n.label())}
	if n.ResourceType != "" {
		attrs = append(attrs, graph.VertexAttribute("shape", "box"))
	}
	if err := g.AddVertex(n, attrs...); err != nil {
		return errors.Wrapf(err, "could not add %s", n.Path)
	}
	for _, child := range *node.Node().Children() {
		if err := walk(g, child); err != nil {
			return err
		}
		if err := g.AddEdge(n.Path, newNode(child).Path); err != nil {
			return errors.Wrapf(err, "could not add edge to %s", *child.Node().Path())
		}
	}
	return nil
}

func newNode(c constructs.IConstruct) Node {
	n := Node{
		Path: *c.Node().Path(),
		ID:   *c.Node().Id(),
	}
	if n.Path == "" {
		n.Path = rootPath
	}
	if cfn, ok := c.(awscdk.CfnResource); ok {
		n.ResourceType = *cfn.CfnResourceType()
	}
	return n
}

func (n Node) label() string {
	if n.ResourceType == "" {
		return n.ID
	}
	return n.ID + `\n` + n.ResourceType
}

// WriteDOT renders g in Graphviz DOT format.
func WriteDOT(w io.Writer, g Graph) error {
	return draw.DOT(g, w, func(d *draw.Description) {
		d.Attributes["rankdir"] = "LR"
	})
}
