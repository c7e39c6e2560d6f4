package main

import (
	"fmt"
	"time"

	"github.com/pkg/profile"
	"github.com/urfave/cli/v2"

	"github.com/sylph-lang/sylph/sylph"
)

func runCommand() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "compile and execute a program",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "profile",
				Usage: "write a profile of the run (cpu, mem, or trace)",
			},
			&cli.StringFlag{
				Name:  "profile-path",
				Usage: "directory to write the profile into",
			},
			&cli.IntFlag{
				Name:  "step-quota",
				Usage: "override the step quota",
			},
			&cli.IntFlag{
				Name:  "max-depth",
				Usage: "override the recursion limit",
			},
		},
		Action: runAction,
	}
}

func runAction(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return cli.Exit("sylph run: program file required", 2)
	}

	logger := newLogger(c.Bool("verbose"))
	fileCfg, err := loadProjectConfig(c.String("config"))
	if err != nil {
		return err
	}

	if mode := c.String("profile"); mode != "" {
		stop, err := startProfile(mode, c.String("profile-path"))
		if err != nil {
			return err
		}
		defer stop.Stop()
	}

	source, err := readProgram(path)
	if err != nil {
		return err
	}

	engine := sylph.NewEngine(engineConfig(fileCfg, c))
	logger.Debug("engine ready", "limits", engine.ConfigSummary())

	started := time.Now()
	script, err := engine.Compile(source)
	if err != nil {
		return err
	}
	logger.Debug("compile finished", "duration", time.Since(started))

	started = time.Now()
	err = script.Run(c.Context)
	logger.Debug("run finished", "duration", time.Since(started))
	return err
}

var profileModes = map[string]func(*profile.Profile){
	"cpu":   profile.CPUProfile,
	"mem":   profile.MemProfile,
	"trace": profile.TraceProfile,
}

func startProfile(mode, path string) (interface{ Stop() }, error) {
	fn, ok := profileModes[mode]
	if !ok {
		return nil, fmt.Errorf("unknown profile mode %q (want cpu, mem, or trace)", mode)
	}
	opts := []func(*profile.Profile){fn, profile.Quiet}
	if path != "" {
		opts = append(opts, profile.ProfilePath(path))
	}
	return profile.Start(opts...), nil
}
