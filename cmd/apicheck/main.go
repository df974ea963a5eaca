/*
Copyright 2026 the API Check Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-logr/zapr"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cbt-testing/apicheck/pkg/constants"
	"github.com/cbt-testing/apicheck/pkg/probe"
)

func main() {
	var (
		options   probe.Options
		verbosity int
	)

	options.AddFlags(pflag.CommandLine)
	pflag.CommandLine.IntVarP(&verbosity, "verbosity", "v", 0, "Log verbosity, 1 logs every request")

	pflag.Parse()

	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.Level(-verbosity))

	zapLogger, err := config.Build()
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	defer func() {
		_ = zapLogger.Sync()
	}()

	logger := zapr.NewLogger(zapLogger).WithName("apicheck")
	logger.V(1).Info("starting", "application", constants.Application, "version", constants.Version, "revision", constants.Revision)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p, err := probe.New(&options, logger)
	if err != nil {
		logger.Error(err, "invalid options")
		os.Exit(2) //nolint:gocritic
	}

	report, err := p.Run(ctx)
	if err != nil {
		logger.Error(err, "probe failed")
		os.Exit(2)
	}

	fmt.Print(report.String())

	if !report.Passed() {
		os.Exit(1)
	}
}
