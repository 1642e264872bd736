/*
Rpal reads an RPAL source file and runs it through the scan, screen, parse,
standardize, compile, and CSE-machine execution pipeline.

Usage:

	rpal [flags] FILE

The flags are:

	-v, --version
		Give the current version of the interpreter and then exit.

	-l
		Print the source file verbatim followed by a blank line. Without
		-ast or -st, nothing further runs.

	-ast
		Print the pre-standardization AST in "N dots + label" preorder
		notation and exit without running.

	-st
		Standardize the program and print that tree in the same notation,
		and exit without running. Combined with -ast, the AST prints first.

With no flags the program runs to completion, and if it invoked Print or
print at any point, its final value is formatted on a single line of
stdout. A program that never calls Print produces no output at all.
*/
package main

import (
	"fmt"
	"os"

	"github.com/dekarrin/rosed"
	"github.com/dekarrin/rpal/internal/rpal"
	"github.com/dekarrin/rpal/internal/version"
	"github.com/spf13/pflag"
)

const consoleWidth = 80

// printErr wraps a fatal Diagnostic's message to the console width before
// printing it to stderr, the same rosed.Edit(...).Wrap(width).String() shape
// the teacher used for wrapping in-game error messages.
func printErr(err error) {
	msg := rosed.Edit("ERROR: " + err.Error()).Wrap(consoleWidth).String()
	fmt.Fprintln(os.Stderr, msg)
}

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitFatal indicates any fatal Diagnostic from any phase of the
	// pipeline, or a CLI-level problem such as a missing file.
	ExitFatal
)

var (
	returnCode  int   = ExitSuccess
	flagVersion *bool = pflag.BoolP("version", "v", false, "Gives the version info")
	flagSource  *bool = pflag.Bool("l", false, "Print the source file and exit")
	flagAST     *bool = pflag.Bool("ast", false, "Print the pre-standardization AST and exit")
	flagST      *bool = pflag.Bool("st", false, "Print the standardized tree and exit")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occured: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	// -l, -ast and -st are single-dash multi-letter flags, which pflag would
	// read as bundles of one-letter shorthands; hand them over in their
	// double-dash long form instead.
	cliArgs := make([]string, 0, len(os.Args)-1)
	for i, arg := range os.Args[1:] {
		if arg == "--" {
			cliArgs = append(cliArgs, os.Args[1+i:]...)
			break
		}
		switch arg {
		case "-l", "-ast", "-st":
			arg = "-" + arg
		}
		cliArgs = append(cliArgs, arg)
	}

	pflag.CommandLine.Init("rpal", pflag.ContinueOnError)
	if err := pflag.CommandLine.Parse(cliArgs); err != nil {
		if err == pflag.ErrHelp {
			return
		}
		// An unrecognized flag is fatal with the same exit code as every
		// other error, not pflag's default of 2.
		returnCode = ExitFatal
		return
	}

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	args := pflag.Args()
	if len(args) != 1 {
		printErr(fmt.Errorf("expected exactly one source file argument"))
		returnCode = ExitFatal
		return
	}
	sourcePath := args[0]

	cfg, err := rpal.LoadConfig()
	if err != nil {
		printErr(err)
		returnCode = ExitFatal
		return
	}

	sourceBytes, err := os.ReadFile(sourcePath)
	if err != nil {
		printErr(err)
		returnCode = ExitFatal
		return
	}
	source := string(sourceBytes)

	printSource := *flagSource || cfg.Defaults.PrintSource
	if printSource {
		fmt.Printf("%s\n\n", source)
	}

	if *flagAST || *flagST {
		runTreeDump(source, cfg)
		return
	}

	// An explicit -l with no -ast/-st prints the source and stops there;
	// running only happens with no flags at all. A config-file
	// print_source default does not count as a flag and never suppresses
	// the run.
	if *flagSource {
		return
	}

	result, err := rpal.Interpret(source, cfg, sourcePath)
	if err != nil {
		printErr(err)
		returnCode = ExitFatal
		return
	}

	if result.Printed {
		fmt.Println(rpal.Format(result.Value))
	}
}

func runTreeDump(source string, cfg rpal.Config) {
	tree, err := rpal.BuildTree(source)
	if err != nil {
		printErr(err)
		returnCode = ExitFatal
		return
	}

	if *flagAST {
		fmt.Print(rpal.RenderTree(tree, cfg.Output.TreeIndent))
	}
	if *flagST {
		std := rpal.Standardize(tree)
		fmt.Print(rpal.RenderTree(std, cfg.Output.TreeIndent))
	}
}
