// Command rollingsphere builds the rolling-sphere plant from a scene file and
// prints, exports, or views it.
//
//	rollingsphere build  [-config scene.yaml]
//	rollingsphere export [-config scene.yaml] [-db out.db] [-snapshot out.json.zst]
//	rollingsphere view   [-config scene.yaml] [-snapshot out.json.zst]
package main

import (
	"errors"
	"fmt"
	"os"

	"rolling-sphere/internal/commands"
	"rolling-sphere/internal/env"
	"rolling-sphere/internal/logger"
)

func main() {
	if err := env.Load(".env"); err != nil {
		fmt.Fprintln(os.Stderr, "env:", err)
	}
	log := logger.New(logger.DefaultPath)

	reg := newRegistry(os.Stdout, log)
	if err := reg.Execute(os.Args[1:]); err != nil {
		if errors.Is(err, commands.ErrUsage) {
			fmt.Fprintf(os.Stderr, "%v\nusage: rollingsphere <command> [flags]\n", err)
			reg.PrintUsage(os.Stderr)
			os.Exit(2)
		}
		log.Logf("error: %v", err)
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
