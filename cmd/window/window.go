// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package window contains the window subcommand.
package window

import (
	"bytes"
	"context"
	"errors"

	"github.com/matt-FFFFFF/conrun/internal/config"
	"github.com/matt-FFFFFF/conrun/internal/ctxlog"
	"github.com/matt-FFFFFF/conrun/internal/runbatch"
	win "github.com/matt-FFFFFF/conrun/internal/window"
	"github.com/urfave/cli/v3"
)

const (
	fileFlag       = "file"
	onlyFlag       = "only"
	sequenceFlag   = "sequence"
	windowSizeFlag = "window-size"
	cliExitStr     = ""
	interruptCode  = 130
)

// WindowCmd runs a command file inside an interactive window.
var WindowCmd = &cli.Command{
	Name:  "window",
	Usage: "Run the commands of a command file in an interactive window",
	Description: `Run the commands of a command file and show their latest output lines in a window
drawn below the prompt. Type help in the window for the list of commands.
Press Ctrl-C to quit, which kills the commands still running.`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:      fileFlag,
			Aliases:   []string{"f"},
			Usage:     "URL of the command file, supports Hashicorp's go-getter syntax",
			TakesFile: true,
			Required:  true,
			OnlyOnce:  true,
		},
		&cli.StringSliceFlag{
			Name:    onlyFlag,
			Aliases: []string{"o"},
			Usage:   "Only run the commands whose name matches this regular expression on startup",
		},
		&cli.BoolFlag{
			Name:        sequenceFlag,
			Aliases:     []string{"s"},
			Usage:       "Run the commands one after the other",
			Value:       false,
			DefaultText: "false",
			OnlyOnce:    true,
		},
		&cli.IntFlag{
			Name:    windowSizeFlag,
			Aliases: []string{"n"},
			Usage:   "Number of output lines shown in the window",
			Value:   win.DefaultWindowSize,
		},
	},
	Action: actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.Logger(ctx).With("command", cmd.Name)
	logger.Debug("Running window command")

	f, err := config.Load(ctx, cmd.String(fileFlag))
	if err != nil {
		logger.Error(err.Error())
		return cli.Exit(cliExitStr, 1)
	}

	// Logs would corrupt the window, they are written once it is closed.
	buf := new(bytes.Buffer)

	wctx, cancel := context.WithCancel(ctxlog.NewForWriter(ctx, buf))
	defer cancel()

	s := &session{
		commands: f.Runnable(),
		sequence: cmd.Bool(sequenceFlag),
	}

	w := win.New(wctx,
		win.WithWindowSize(int(cmd.Int(windowSizeFlag))),
		win.WithExecutor(s.execute),
		win.WithExit(cancel),
	)

	s.runner = runbatch.NewRunner(runbatch.WithOutput(w.StdWriter(), w.ErrWriter()))

	if err := s.start(wctx, cmd.StringSlice(onlyFlag)); err != nil {
		logger.Error(err.Error())
		return cli.Exit(cliExitStr, 1)
	}

	err = w.Run()

	cancel()
	s.wait()

	buf.WriteTo(cmd.Root().ErrWriter) //nolint:errcheck

	switch {
	case errors.Is(err, win.ErrInterrupted):
		return cli.Exit(cliExitStr, interruptCode)
	case err != nil && !errors.Is(err, context.Canceled):
		logger.Error(err.Error())
		return cli.Exit(cliExitStr, 1)
	}

	return nil
}
