package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/blogpessoal/blogpessoal/internal/config"
	"github.com/blogpessoal/blogpessoal/internal/logger"
	"github.com/blogpessoal/blogpessoal/internal/session"
	"github.com/blogpessoal/blogpessoal/internal/tui"
	"github.com/blogpessoal/blogpessoal/pkg/client"
	"github.com/blogpessoal/blogpessoal/pkg/domain"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	if len(args) > 0 {
		switch args[0] {
		case "--version", "version", "-v":
			fmt.Fprintln(stdout, "blogpessoal "+version)
			return nil
		case "help", "--help", "-h":
			printHelp(stdout)
			return nil
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log, closeLog, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer closeLog() //nolint:errcheck

	sessions := session.New()
	gw := client.NewGateway(cfg.APIURL, client.WithTimeout(cfg.Timeout), client.WithLogger(log))
	c := client.New(gw, sessions)

	if len(args) > 0 {
		switch args[0] {
		case "login":
			return runLogin(c, args[1:], stdin, stdout)
		default:
			return fmt.Errorf("unknown command %q (see blogpessoal help)", args[0])
		}
	}

	log.Info("starting tui", zap.String("api_url", cfg.APIURL), zap.String("version", version))
	p := tea.NewProgram(tui.NewApp(c, sessions), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

// runLogin checks a pair of credentials against the backend. The password is
// read from the first line of stdin so it stays out of the shell history.
// Nothing is persisted.
func runLogin(c *client.Client, args []string, stdin io.Reader, stdout io.Writer) error {
	if len(args) != 1 {
		return errors.New("usage: blogpessoal login <usuario>")
	}

	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read password: %w", err)
	}
	creds := domain.Credentials{Email: args[0], Password: strings.TrimRight(line, "\r\n")}

	s, err := c.Login(context.Background(), creds)
	if err != nil {
		if client.IsUnauthorized(err) {
			return errors.New("dados do usuário inconsistentes")
		}
		return err
	}
	fmt.Fprintf(stdout, "Usuário logado com sucesso! Olá, %s (id %d)\n", s.Name, s.ID)
	return nil
}
