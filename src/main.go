package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	ossignal "os/signal"
	"sync"
	"syscall"

	"dumbwaiter/lib/driver-go/elevio"
	"dumbwaiter/src/api"
	"dumbwaiter/src/config"
	"dumbwaiter/src/console"
	"dumbwaiter/src/controller"
	"dumbwaiter/src/floor"
	"dumbwaiter/src/logger"
	"dumbwaiter/src/signal"
	"dumbwaiter/src/types"
)

func main() {
	envPath := flag.String("env", config.DefaultEnvFile, "env file with DUMBWAITER_* settings")
	topFloor := flag.Int("top", -1, "highest floor served, overrides the env file")
	httpAddr := flag.String("http", "", "host:port to serve the http api on, overrides the env file")
	elevioAddr := flag.String("elevio", "", "host:port of the elevator server, overrides the env file")
	remote := flag.String("remote", "", "controller url; when set only the floor sensors run and report to it")
	withConsole := flag.Bool("console", false, "read floor requests from the keyboard")
	flag.Parse()

	cfg, err := config.Load(*envPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *topFloor >= 0 {
		cfg.TopFloor = *topFloor
	}
	if *httpAddr != "" {
		cfg.HTTPAddr = *httpAddr
	}
	if *elevioAddr != "" {
		cfg.ElevioAddr = *elevioAddr
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.LogLevel, cfg.LogFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	defer logger.Close()
	log := *logger.GetLogger()

	ctx, cancel := ossignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	drv, err := elevio.Dial(cfg.ElevioAddr, cfg.TopFloor+1)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not reach the elevator server")
	}
	defer drv.Close()
	device := signal.NewElevioDevice(drv)

	var wg sync.WaitGroup
	var requester floor.Requester

	if *remote != "" {
		log.Info().Str("controller", *remote).Msg("Running floor sensors only")
		requester = api.NewClient(*remote, log)
	} else {
		dwc := controller.New(cfg.TopFloor, device,
			controller.WithLoopPeriod(cfg.LoopPeriod),
			controller.WithLogger(log))
		if err := dwc.Start(ctx); err != nil {
			log.Fatal().Err(err).Msg("Could not start controller")
		}
		requester = dwc

		svc := api.NewService(api.NewHTTPController(dwc, log), cfg.HTTPAddr, api.ServiceName, log)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := svc.Run(ctx); err != nil {
				log.Error().Err(err).Msg("Http service failed")
				cancel()
			}
		}()

		defer func() {
			dwc.Wait()
			if err := device.SendSignal(types.OpenerStop); err != nil {
				log.Error().Err(err).Msg("Could not stop opener on exit")
			}
		}()
	}

	sensors := floor.NewSensors(device, requester, cfg.TopFloor, cfg.PollRate, log)
	wg.Add(1)
	go func() {
		defer wg.Done()
		sensors.Run(ctx)
	}()

	if *withConsole {
		go func() {
			if err := console.Run(ctx, cancel, requester, cfg.TopFloor, log); err != nil {
				log.Error().Err(err).Msg("Console stopped")
			}
		}()
	}

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	wg.Wait()
}
