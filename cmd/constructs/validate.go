package main

import (
	"os"

	"github.com/klothoplatform/klotho-constructs/pkg/config"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

var validateConfig struct {
	configPath string
}

func newValidateCmd() *cobra.Command {
	var validateCommand = &cobra.Command{
		Use:   "validate",
		Short: "Check the config without synthesizing it",
		RunE:  validate,
	}
	flags := validateCommand.Flags()
	flags.StringVarP(&validateConfig.configPath, "config", "c", "klotho.yaml", "Application config file")
	return validateCommand
}

func validate(cmd *cobra.Command, args []string) error {
	cfg, err := config.ReadConfig(validateConfig.configPath)
	if err != nil {
		return err
	}
	errs := multierr.Errors(cfg.Validate())
	printValidation(os.Stdout, validateConfig.configPath, errs)
	if len(errs) > 0 {
		return errors.Errorf("%d problem(s) in %s", len(errs), validateConfig.configPath)
	}
	return nil
}
