package main

import (
	"github.com/alecthomas/repr"
	"github.com/urfave/cli/v2"

	"github.com/sylph-lang/sylph/sylph"
)

func dumpCommand() *cli.Command {
	return &cli.Command{
		Name:      "dump",
		Usage:     "print the token stream or parse tree",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "tokens",
				Usage: "dump the token stream",
			},
			&cli.BoolFlag{
				Name:  "ast",
				Usage: "dump the parse tree (default)",
			},
		},
		Action: dumpAction,
	}
}

func dumpAction(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return cli.Exit("sylph dump: program file required", 2)
	}

	source, err := readProgram(path)
	if err != nil {
		return err
	}

	if c.Bool("tokens") {
		tokens, err := sylph.Tokenize(source)
		if err != nil {
			return err
		}
		repr.Println(tokens)
		if !c.Bool("ast") {
			return nil
		}
	}

	engine := sylph.NewEngine(sylph.Config{})
	script, err := engine.Compile(source)
	if err != nil {
		return err
	}
	repr.Println(script.Program())
	return nil
}
