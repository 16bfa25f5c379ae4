/*
 * IR Engine - execution core for a low-level typed intermediate representation
 *
 * Copyright Flow Foundation
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/onflow/irengine/loader"
	"github.com/onflow/irengine/vm"
)

type rootOptions struct {
	verbose bool
	noColor bool
	logger  zerolog.Logger
}

func newRootCommand() *cobra.Command {
	options := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "irengine",
		Short: "Inspect IR modules",
		Long:  "Inspect the frame layouts and the linkage of modules described in YAML.",
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := zerolog.WarnLevel
			if options.verbose {
				level = zerolog.DebugLevel
			}

			options.logger = zerolog.New(zerolog.ConsoleWriter{
				Out:        cmd.ErrOrStderr(),
				TimeFormat: time.TimeOnly,
				NoColor:    options.noColor,
			}).
				Level(level).
				With().
				Timestamp().
				Logger()
		},
	}

	cmd.PersistentFlags().BoolVarP(&options.verbose, "verbose", "v", false, "log resolution and conversion details")
	cmd.PersistentFlags().BoolVar(&options.noColor, "no-color", false, "disable colored output")

	cmd.AddCommand(newLayoutCommand(options))
	cmd.AddCommand(newLinkCommand(options))

	return cmd
}

func newLayoutCommand(options *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "layout <module.yaml>...",
		Short:        "Print the frame layout of each function",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			modules, err := loadModules(args)
			if err != nil {
				return err
			}

			p := newPrinter(cmd, options)
			for _, module := range modules {
				p.printLayouts(module)
			}
			return nil
		},
	}
}

func newLinkCommand(options *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "link <module.yaml>...",
		Short: "Resolve the functions called by the modules",
		Long: `Resolve the functions called by the modules.

Callees are resolved against the bodies of all given modules
and the built-in intrinsics.`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			modules, err := loadModules(args)
			if err != nil {
				return err
			}

			failures, err := newPrinter(cmd, options).link(options.logger, modules)
			if err != nil {
				return err
			}
			if failures > 0 {
				return fmt.Errorf("%d functions cannot be resolved", failures)
			}
			return nil
		},
	}
}

func newPrinter(cmd *cobra.Command, options *rootOptions) printer {
	return printer{
		out:    cmd.OutOrStdout(),
		colors: newColorizer(!options.noColor),
	}
}

func loadModules(paths []string) ([]*vm.Module, error) {
	modules := make([]*vm.Module, 0, len(paths))
	for _, path := range paths {
		module, err := loader.LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
		modules = append(modules, module)
	}
	return modules, nil
}
