package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"fidget/internal/app"
	"fidget/internal/config"
	"fidget/internal/device"
	"fidget/internal/shell"
	"fidget/internal/stats"
	"fidget/internal/ui"
)

const appVersion = "0.3.0"

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	cfg, err := config.ParseFlags(args)
	if err != nil {
		return err
	}
	if cfg.ShowVersion {
		fmt.Printf("fidget %s\n", appVersion)
		return nil
	}

	tuning := config.DefaultTuning()
	if cfg.TuningPath != "" {
		if tuning, err = config.LoadTuning(cfg.TuningPath); err != nil {
			return err
		}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint32(time.Now().UnixNano())
	}

	pointer, closePointer, err := openPointer(cfg)
	if err != nil {
		return err
	}
	defer closePointer()

	st := stats.New(cfg.Stats)
	engine, err := app.New(app.Options{
		Pointer: pointer,
		Pixel:   &device.MemoryPixel{},
		Tuning:  tuning,
		Stats:   st,
		Seed:    seed,
	})
	if err != nil {
		return err
	}
	sh := shell.New(st, engine.Status)

	ctx, stop := signal.NotifyContext(context.Background(), platformSignals()...)
	defer stop()
	if cfg.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Duration)
		defer cancel()
	}

	if cfg.Headless {
		return runHeadless(ctx, engine, sh, cfg.Tick)
	}
	return runDashboard(ctx, engine, sh, cfg.Tick)
}

// openPointer picks the pointer sink: a discarding one under -dry-run,
// otherwise the OS-level device.
func openPointer(cfg *config.Config) (device.Pointer, func(), error) {
	if cfg.DryRun {
		return device.NullPointer{}, func() {}, nil
	}
	p, closer, err := device.NewSystemPointer()
	if err != nil {
		return nil, nil, fmt.Errorf("open pointer device: %w (use -dry-run to discard motion)", err)
	}
	return p, closer, nil
}

// runDashboard runs the engine and the terminal UI side by side. Either one
// finishing, or the context expiring, takes the other down with it.
func runDashboard(ctx context.Context, engine *app.Engine, sh *shell.Shell, tick time.Duration) error {
	// The engine logs from its own goroutine; keep that off the terminal
	// while the dashboard owns it.
	f, err := tea.LogToFile("fidget.log", "fidget")
	if err != nil {
		return err
	}
	defer f.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := ui.NewProgram(engine, sh)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer p.Quit()
		return engine.Run(ctx, tick)
	})
	g.Go(func() error {
		defer cancel()
		_, err := p.Run()
		return err
	})
	g.Go(func() error {
		<-ctx.Done()
		p.Quit()
		return nil
	})
	return g.Wait()
}

// runHeadless runs the engine with the shell reading plain-text commands
// from stdin, the way the serial console would feed them.
func runHeadless(ctx context.Context, engine *app.Engine, sh *shell.Shell, tick time.Duration) error {
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			if out := sh.Execute(scanner.Text()); out != "" {
				fmt.Println(out)
			}
		}
	}()
	return engine.Run(ctx, tick)
}
