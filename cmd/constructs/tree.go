package main

import (
	"io"
	"os"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/klothoplatform/klotho-constructs/pkg/config"
	"github.com/klothoplatform/klotho-constructs/pkg/constructtree"
	"github.com/klothoplatform/klotho-constructs/pkg/stack"
	"github.com/spf13/cobra"
)

var treeConfig struct {
	configPath string
	outFile    string
}

func newTreeCmd() *cobra.Command {
	var treeCommand = &cobra.Command{
		Use:   "tree",
		Short: "Print the construct tree of the config in DOT format",
		RunE:  tree,
	}
	flags := treeCommand.Flags()
	flags.StringVarP(&treeConfig.configPath, "config", "c", "klotho.yaml", "Application config file")
	flags.StringVarP(&treeConfig.outFile, "out", "o", "", "File to write to instead of stdout")
	return treeCommand
}

func tree(cmd *cobra.Command, args []string) error {
	cfg, err := config.ReadConfig(treeConfig.configPath)
	if err != nil {
		return err
	}
	res, err := stack.Build(awscdk.NewApp(nil), cfg)
	if err != nil {
		return err
	}
	g, err := constructtree.Walk(res.Stack)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if treeConfig.outFile != "" {
		f, err := os.Create(treeConfig.outFile)
		if err != nil {
			return err
		}
		defer f.Close() // nolint:errcheck
		w = f
	}
	return constructtree.WriteDOT(w, g)
}
