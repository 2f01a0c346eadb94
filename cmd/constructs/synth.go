package main

import (
	"os"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"
	"github.com/klothoplatform/klotho-constructs/pkg/config"
	"github.com/klothoplatform/klotho-constructs/pkg/stack"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var synthConfig struct {
	configPath string
	outDir     string
	strict     bool
}

func newSynthCmd() *cobra.Command {
	var synthCommand = &cobra.Command{
		Use:   "synth",
		Short: "Synthesize the CloudFormation templates of the config",
		RunE:  synth,
	}
	flags := synthCommand.Flags()
	flags.StringVarP(&synthConfig.configPath, "config", "c", "klotho.yaml", "Application config file")
	flags.StringVarP(&synthConfig.outDir, "out", "o", "cdk.out", "Cloud assembly output directory")
	flags.BoolVar(&synthConfig.strict, "strict", false, "Fail on warnings as well as errors")
	return synthCommand
}

func synth(cmd *cobra.Command, args []string) error {
	log := zap.L().Named("synth")

	cfg, err := config.ReadConfig(synthConfig.configPath)
	if err != nil {
		return err
	}

	app := awscdk.NewApp(&awscdk.AppProps{Outdir: jsii.String(synthConfig.outDir)})
	res, err := stack.Build(app, cfg)
	if err != nil {
		return err
	}
	assembly := app.Synth(nil)
	log.Info("Synthesized",
		zap.String("stack", *res.Stack.StackName()),
		zap.String("out", *assembly.Directory()),
		zap.Int("handlers", len(res.Handlers)),
	)

	diags := stack.Diagnostics(assembly)
	for _, d := range diags {
		if d.IsError() {
			log.Error(d.Message, zap.String("path", d.Path))
		} else {
			log.Warn(d.Message, zap.String("path", d.Path))
		}
	}
	printDiagnostics(os.Stdout, diags)

	return synthOutcome(*res.Stack.StackName(), diags, commonCfg.Tracker, synthConfig.strict)
}
