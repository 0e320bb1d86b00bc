package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dudk/soundgraph/config"
	"github.com/dudk/soundgraph/log"
)

type command interface {
	Name() string
	Help() string
	Run() error
	Register(*flag.FlagSet)
}

var (
	successExitCode = 0
	errorExitCode   = 1
)

type app struct {
	*environment
	args     []string
	commands []command
}

func newApp(cfg config.Config, args []string, out io.Writer) *app {
	env := &environment{cfg: cfg, out: out}
	return &app{
		environment: env,
		args:        args,
		commands: []command{
			&listCommand{environment: env},
			&resolveCommand{environment: env},
			&playCommand{environment: env},
			&renderCommand{environment: env},
		},
	}
}

func (a *app) run() int {
	cmdName, args := parseArgs(a.args)
	if cmdName == "" {
		a.printUsage()
		return errorExitCode
	}

	for _, cmd := range a.commands {
		if cmd.Name() != cmdName {
			continue
		}
		flags := flag.NewFlagSet(cmdName, flag.ContinueOnError)
		flags.SetOutput(a.out)
		cmd.Register(flags)
		if err := flags.Parse(args); err != nil {
			return errorExitCode
		}
		if err := cmd.Run(); err != nil {
			fmt.Fprintf(a.out, "Command failed: %v\n", err)
			return errorExitCode
		}
		return successExitCode
	}
	fmt.Fprintf(a.out, "Unknown command: %v\n\n", cmdName)
	a.printUsage()
	return errorExitCode
}

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(errorExitCode)
	}
	log.SetDebug(cfg.Debug)
	os.Exit(newApp(cfg, os.Args, os.Stdout).run())
}

func parseArgs(args []string) (string, []string) {
	if len(args) < 2 {
		return "", nil
	}
	return args[1], args[2:]
}

func (a *app) printUsage() {
	fmt.Fprintln(a.out, "Soundgraph resolves and plays audio node graphs")
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "Usage: soundgraph <command> [flags]")
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "Commands:")
	for _, cmd := range a.commands {
		fmt.Fprintf(a.out, "\t%s\t%s\n", cmd.Name(), cmd.Help())
	}
}

// nameList is a comma separated flag value.
type nameList []string

func (l *nameList) String() string {
	return strings.Join(*l, ",")
}

func (l *nameList) Set(v string) error {
	for _, name := range strings.Split(v, ",") {
		if name = strings.TrimSpace(name); name != "" {
			*l = append(*l, name)
		}
	}
	return nil
}
