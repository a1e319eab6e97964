package main

import (
	"flag"
	"fmt"
	"loadbearer/pkg/engine"
	"os"
	"path/filepath"
)

const defaultConfigFile = "loadbearer.config.yaml"

func printRootHelp() {
	fmt.Println(`load-bearer - stupidly simple HTTP server for load and latency testing

Usage:
  loadbearer <command> [options]

Available Commands:
  up        Start the load-bearer server
  down      Stop a running load-bearer server
  help      Show help for a command

Run 'loadbearer help <command>' for details on a specific command.`)
}

func printUpHelp() {
	fmt.Println(`Usage:
  loadbearer up [--config <path>]

Options:
  --config   Path to config YAML file (default: ./loadbearer.config.yaml;
             if the default file does not exist the server runs with
             built-in defaults: all interfaces, port 5000)`)
}

func printDownHelp() {
	fmt.Println(`Usage:
  loadbearer down [--config <path>]

Options:
  --config   Path to the config YAML file the server was started with
             (default: ./loadbearer.config.yaml)`)
}

// resolveConfigPath returns the absolute config path, or "" when the default
// file simply isn't there. An explicitly passed path must exist.
func resolveConfigPath(flags *flag.FlagSet, configPath string) string {
	explicit := false
	flags.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			explicit = true
		}
	})

	absPath, err := filepath.Abs(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to resolve config path: %v\n", err)
		os.Exit(1)
	}

	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		if explicit {
			fmt.Fprintf(os.Stderr, "Config file not found: %s\n", absPath)
			os.Exit(1)
		}
		return ""
	}

	return absPath
}

func main() {
	if len(os.Args) < 2 {
		printRootHelp()
		os.Exit(1)
	}

	switch os.Args[1] {

	case "up":
		runCmd := flag.NewFlagSet("up", flag.ExitOnError)
		configPath := runCmd.String("config", defaultConfigFile, "Path to configuration YAML file")

		if err := runCmd.Parse(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to parse flags: %v\n", err)
			os.Exit(1)
		}

		serverEngine := engine.InstantiateLoadBearerEngine(resolveConfigPath(runCmd, *configPath))
		serverEngine.Run()

	case "down":
		runCmd := flag.NewFlagSet("down", flag.ExitOnError)
		configPath := runCmd.String("config", defaultConfigFile, "Path to configuration YAML file")

		if err := runCmd.Parse(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to parse flags: %v\n", err)
			os.Exit(1)
		}

		if err := engine.KillLoadBearer(resolveConfigPath(runCmd, *configPath)); err != nil {
			fmt.Fprintf(os.Stderr, "Unable to stop the load-bearer server at %s: %v\n", *configPath, err)
			os.Exit(1)
		}
		fmt.Printf("Shut down load-bearer server at %s \n", *configPath)

	case "help":
		if len(os.Args) == 2 {
			printRootHelp()
		} else {
			switch os.Args[2] {
			case "up":
				printUpHelp()
			case "down":
				printDownHelp()
			default:
				fmt.Printf("Unknown help topic: %s\n", os.Args[2])
				printRootHelp()
				os.Exit(1)
			}
		}

	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printRootHelp()
		os.Exit(1)
	}
}
