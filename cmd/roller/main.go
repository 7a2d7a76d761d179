package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/KirkDiggler/midnight/internal/client"
	"github.com/KirkDiggler/midnight/internal/common/clock"
	"github.com/KirkDiggler/midnight/internal/common/uuid"
	"github.com/KirkDiggler/midnight/internal/config"
	"github.com/KirkDiggler/midnight/internal/dice"
	"github.com/KirkDiggler/midnight/internal/services/initiative"
	"github.com/KirkDiggler/midnight/internal/services/messaging"
	"github.com/KirkDiggler/midnight/internal/services/roll"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	cfg, err := config.LoadRoller(nil)
	if err != nil {
		return err
	}

	logger := config.NewLogger(os.Stderr, cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	name := cfg.Name
	if name == "" {
		name = cfg.UserID
	}

	uuidGenerator := uuid.New()
	roller := dice.New(&dice.Config{})

	rollSvc, err := roll.New(&roll.Config{
		DiceRoller:    roller,
		Clock:         clock.New(),
		UUIDGenerator: uuidGenerator,
	})
	if err != nil {
		return fmt.Errorf("failed to create roll service: %w", err)
	}

	messagingSvc, err := messaging.New(&messaging.Config{
		DiceRoller: roller,
	})
	if err != nil {
		return fmt.Errorf("failed to create messaging service: %w", err)
	}

	// Character import needs the server's campaign store and is only offered over REST
	tracker, err := initiative.New(&initiative.Config{
		UUIDGenerator: uuidGenerator,
	})
	if err != nil {
		return fmt.Errorf("failed to create initiative tracker: %w", err)
	}

	conn, err := client.Dial(ctx, cfg.ServerURL, cfg.UserID, name)
	if err != nil {
		return err
	}

	con := newConsole(&consoleConfig{
		Tracker:  tracker,
		Messages: messagingSvc,
		Out:      os.Stdout,
	})

	session, err := client.New(&client.Config{
		Transport:    conn,
		RollService:  rollSvc,
		Name:         name,
		IsGM:         cfg.IsGM,
		OnRoll:       con.OnRoll,
		OnInitiative: con.OnInitiative,
		OnError:      con.OnError,
		Logger:       logger,
	})
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to create session: %w", err)
	}
	defer session.Close()
	con.session = session

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sessionDone := make(chan error, 1)
	go func() {
		sessionDone <- session.Run(ctx)
		cancel()
	}()

	if cfg.CampaignID != "" {
		if err := con.Handle(ctx, "/join "+cfg.CampaignID); err != nil {
			return err
		}
	}
	con.printf("connected as %s, /help for commands\n", name)

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return sessionResult(ctx, con, sessionDone)
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			err := con.Handle(ctx, line)
			if errors.Is(err, errQuit) {
				return nil
			}
			if err != nil {
				logger.Warn("command failed", "error", err)
				con.showError(ctx, messaging.ErrorTypeDisconnected, err.Error())
			}
		}
	}
}

// sessionResult reports why the connection ended, ignoring a local interrupt
func sessionResult(ctx context.Context, con *console, done <-chan error) error {
	err := <-done
	if err == nil || errors.Is(err, context.Canceled) {
		return nil
	}

	con.showError(context.WithoutCancel(ctx), messaging.ErrorTypeDisconnected, "")
	return err
}
