package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/urfave/cli/v3"
	"github.com/vkngwrapper/computesmoke/gpu"
	"github.com/vkngwrapper/computesmoke/gpu/vkng"
)

const (
	loaderFlag  = "loader"
	appNameFlag = "app-name"
	verboseFlag = "verbose"
)

// SuccessMessage is printed to stdout when the submission completed.
const SuccessMessage = "Success!!"

var green = color.New(color.FgGreen).FprintlnFunc()
var red = color.New(color.FgRed).FprintfFunc()

type backend interface {
	gpu.Backend
	Close()
}

var openBackend = func(loader string) (backend, error) {
	b, err := vkng.NewBackend(loader)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func newCommand(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "compute-smoke",
		Usage: "Submit an empty command buffer to the first GPU's compute queue",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  loaderFlag,
				Value: vkng.LoaderSystem,
				Usage: "Vulkan loader to use (system|sdl)",
			},
			&cli.StringFlag{
				Name:  appNameFlag,
				Value: gpu.DefaultApplicationName,
				Usage: "Application name reported to the driver",
			},
			&cli.BoolFlag{
				Name:    verboseFlag,
				Aliases: []string{"v"},
				Usage:   "Log every setup step to stderr",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logOutput := io.Discard
			if cmd.Bool(verboseFlag) {
				logOutput = stderr
			}
			logger := log.New(logOutput, fmt.Sprintf("[%s] ", uuid.New()), log.LstdFlags)

			cfg := gpu.DefaultConfig()
			cfg.ApplicationName = cmd.String(appNameFlag)

			b, err := openBackend(cmd.String(loaderFlag))
			if err != nil {
				return err
			}
			defer b.Close()

			report, err := gpu.Run(b, cfg, logger)
			if err != nil {
				return err
			}

			logger.Printf("device %d: queues %s on families %v, submit took %v",
				report.DeviceIndex, report.Selection, report.QueueFamilies, report.SubmitLatency)
			green(stdout, SuccessMessage)
			return nil
		},
	}
}

func main() {
	// Driver calls must stay on one OS thread.
	runtime.LockOSThread()

	err := newCommand(os.Stdout, os.Stderr).Run(context.Background(), os.Args)
	if err != nil {
		red(os.Stderr, "[!] Error: %+v\n", errors.Wrap(err, "compute smoke test"))
		os.Exit(1)
	}
}
