package main

import (
	"fmt"
	"os"

	"github.com/aws/jsii-runtime-go"
	clicommon "github.com/klothoplatform/klotho-constructs/pkg/cli_common"
	"github.com/spf13/cobra"
)

var commonCfg clicommon.CommonConfig

func newRootCmd() *cobra.Command {
	var rootCmd = &cobra.Command{
		Use:           "constructs",
		Short:         "Build EventBridge to SQS to Lambda stacks from a config file",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	clicommon.SetupRoot(rootCmd, &commonCfg)

	rootCmd.AddCommand(newSynthCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newTreeCmd())
	return rootCmd
}

func main() {
	err := newRootCmd().Execute()
	jsii.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
