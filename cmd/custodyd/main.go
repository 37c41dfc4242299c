package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/app"
	"github.com/iov-one/custody/commands"
	"github.com/tendermint/tendermint/libs/log"
)

var (
	flagHome     = "home"
	flagLogLevel = "log-level"
	flagDebug    = "debug"

	varHome     *string
	varLogLevel *string
	varDebug    *bool
)

func init() {
	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".custodyd")
	varHome = flag.String(flagHome, defaultHome, "directory to store files under")
	varLogLevel = flag.String(flagLogLevel, "info", "log level: debug, info, error or none")
	varDebug = flag.Bool(flagDebug, false, "return full error details and stack traces")

	flag.CommandLine.Usage = helpMessage
}

func helpMessage() {
	fmt.Println("custodyd")
	fmt.Println("          Token swap escrow state machine")
	fmt.Println("")
	fmt.Println("help      Print this message")
	fmt.Println("init      Write the genesis file and initialize the state")
	fmt.Println("exec      Deliver a JSON encoded transaction and commit")
	fmt.Println("account   Print an account")
	fmt.Println("authority Print the escrow authority of a program")
	fmt.Println("keys      Derive a key from a hex seed")
	fmt.Println("version   Print the app version")
	fmt.Println("")
	flag.PrintDefaults()
}

func main() {
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Println("Missing command:")
		helpMessage()
		os.Exit(1)
	}

	logger, err := newLogger(*varLogLevel)
	if err != nil {
		fmt.Printf("Error: %+v\n", err)
		os.Exit(1)
	}

	cmd := flag.Arg(0)
	rest := flag.Args()[1:]

	switch cmd {
	case "help":
		helpMessage()
	case "init":
		err = commands.InitCmd(app.GenInitOptions, app.Initializers(), logger, *varHome, rest)
	case "exec":
		err = commands.ExecCmd(logger, *varHome, *varDebug, os.Stdout, rest)
	case "account":
		err = commands.AccountCmd(*varHome, os.Stdout, rest)
	case "authority":
		err = commands.AuthorityCmd(os.Stdout, rest)
	case "keys":
		err = commands.KeysCmd(os.Stdout, rest)
	case "version":
		fmt.Println(custody.Version())
	default:
		err = fmt.Errorf("unknown command: %s", cmd)
	}

	if err != nil {
		if *varDebug {
			fmt.Printf("Error: %+v\n\n", err)
		} else {
			fmt.Printf("Error: %s\n\n", err)
		}
		os.Exit(1)
	}
}

func newLogger(level string) (log.Logger, error) {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).
		With("module", "custody")
	opt, err := log.AllowLevel(level)
	if err != nil {
		return nil, err
	}
	return log.NewFilter(logger, opt), nil
}
