package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/zephyrtronium/vfpu"
)

func main() {
	var (
		inname, verb, varsname, sweepspec string
		with                              []binding
		nl, echo, verbose                 bool
	)
	addwith := func(s string) error {
		b, err := parseBinding(s)
		if err != nil {
			return err
		}
		with = append(with, b)
		return nil
	}
	flag.StringVar(&inname, "in", "", "input file (default stdin if no args given)")
	flag.StringVar(&verb, "fmt", "%g", "result formatting string")
	flag.Func("given", "name=value variable definition (any number of times)", addwith)
	flag.StringVar(&varsname, "vars", "", "YAML file mapping variable names to values")
	flag.StringVar(&sweepspec, "sweep", "", "name=from:to:step: evaluate each expression over a range of one variable")
	flag.BoolVar(&nl, "n", false, "parse separate input lines as separate expressions")
	flag.BoolVar(&echo, "echo", false, "print compiled programs in postfix notation")
	flag.BoolVar(&verbose, "v", false, "debug logging")
	flag.Parse()

	log := newLogger(verbose)
	defer log.Sync()

	c := vfpu.New()
	if varsname != "" {
		vars, err := loadVars(varsname)
		if err != nil {
			log.Fatal(err)
		}
		for k, v := range vars {
			if err := c.DefineVar(k, v); err != nil {
				log.Fatalf("%s: %v", varsname, err)
			}
		}
		log.Debugw("loaded variables", "file", varsname, "count", len(vars))
	}
	if err := bind(c, with); err != nil {
		log.Fatal(err)
	}

	var sw *sweep
	if sweepspec != "" {
		var err error
		sw, err = parseSweep(sweepspec)
		if err != nil {
			log.Fatal(err)
		}
		// The variable must exist to compile expressions that use it.
		if err := c.DefineVar(sw.name, sw.from); err != nil {
			log.Fatalf("sweep: %v", err)
		}
	}

	var srcs []string
	text, err := readInput(inname, flag.NArg() == 0)
	if err != nil {
		log.Fatal(err)
	}
	srcs = append(srcs, splitExprs(text, nl)...)
	srcs = append(srcs, flag.Args()...)

	verb += "\n"
	failed := false
	for _, src := range srcs {
		if err := c.Compile(src); err != nil {
			var se *vfpu.SyntaxError
			if errors.As(err, &se) {
				log.Debugw("compile failed", "col", se.Col, "token", se.Token, "unknown", se.Unknown)
			}
			log.Fatal(err)
		}
		log.Debugw("compiled", "src", src, "instructions", c.Len(), "refs", c.Refs())
		if echo {
			fmt.Printf("%s : ", c.RPN())
		}
		if sw == nil {
			if !evalPrint(c, verb, "") {
				failed = true
			}
			continue
		}
		if echo {
			fmt.Println()
		}
		for _, x := range sw.values() {
			if err := c.DefineVar(sw.name, x); err != nil {
				log.Fatalf("sweep: %v", err)
			}
			if !evalPrint(c, verb, fmt.Sprintf("%s=%g: ", sw.name, x)) {
				failed = true
			}
		}
	}
	if failed {
		os.Exit(1)
	}
}

// evalPrint evaluates the compiled program and prints the result or error.
func evalPrint(c *vfpu.Compiler, verb, prefix string) bool {
	r, err := c.Eval()
	if err != nil {
		fmt.Println(prefix + err.Error())
		return false
	}
	fmt.Printf(prefix+verb, r)
	return true
}

// readInput reads the input file, or stdin if inname is "-" or std is set and
// inname is empty. The result is empty if there is no input to read.
func readInput(inname string, std bool) (string, error) {
	var f *os.File
	switch {
	case inname != "" && inname != "-":
		in, err := os.Open(inname)
		if err != nil {
			return "", err
		}
		defer in.Close()
		f = in
	case inname == "-", std:
		f = os.Stdin
	}
	if f == nil {
		return "", nil
	}
	b, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	return decodeInput(b)
}
