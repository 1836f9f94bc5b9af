package cli

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/toldya/internal/client/api"
	"github.com/dmitrijs2005/toldya/internal/client/config"
)

var errUsage = errors.New("usage: toldya-cli [-s URL] [-t TIMEOUT] create -name NAME -subject SUBJECT -reveal TIME | get ID")

// MessageAPI is the part of api.Client the commands use.
type MessageAPI interface {
	Create(ctx context.Context, req api.CreateRequest) (string, error)
	Get(ctx context.Context, id string) (*api.Message, error)
}

type App struct {
	config *config.Config
	api    MessageAPI
	stdin  *os.File
	stdout io.Writer
	stderr io.Writer
}

func NewApp(cfg *config.Config, client MessageAPI, stdin *os.File, stdout, stderr io.Writer) *App {
	return &App{
		config: cfg,
		api:    client,
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
	}
}

// Run executes the command in args and returns the process exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(a.stderr, errUsage)
		return 2
	}

	ctx, cancel := context.WithTimeout(ctx, a.config.Timeout)
	defer cancel()

	var err error
	switch args[0] {
	case "create":
		err = a.create(ctx, args[1:])
	case "get":
		err = a.get(ctx, args[1:])
	case "help", "-h", "--help":
		fmt.Fprintln(a.stdout, errUsage)
		return 0
	default:
		err = fmt.Errorf("unknown command %q\n%w", args[0], errUsage)
	}

	if err != nil {
		fmt.Fprintln(a.stderr, "error:", err)
		if errors.Is(err, errUsage) {
			return 2
		}
		return 1
	}
	return 0
}

func (a *App) create(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	name := fs.String("name", "", "author name (up to 32 characters)")
	subject := fs.String("subject", "", "subject (up to 150 characters)")
	reveal := fs.String("reveal", "", "reveal time: unix seconds or RFC 3339")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if *reveal == "" {
		return fmt.Errorf("-reveal is required\n%w", errUsage)
	}

	revealTime, err := ParseRevealTime(*reveal)
	if err != nil {
		return err
	}

	body, err := ReadBody(a.stdin, a.stderr)
	if err != nil {
		return fmt.Errorf("read message: %w", err)
	}

	id, err := a.api.Create(ctx, api.CreateRequest{
		Name:       *name,
		Subject:    *subject,
		Message:    body,
		RevealTime: revealTime,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(a.stdout, id)
	return nil
}

// getOutput is what get prints: the server view, with a note in place of a
// withheld body.
type getOutput struct {
	Name       string      `json:"name"`
	Subject    string      `json:"subject"`
	RevealTime json.Number `json:"revealTime"`
	CreateTime json.Number `json:"messageCreateTime"`
	Message    string      `json:"message"`
}

func (a *App) get(ctx context.Context, args []string) error {
	if len(args) != 1 || args[0] == "" {
		return errUsage
	}

	m, err := a.api.Get(ctx, args[0])
	if err != nil {
		return err
	}

	out := getOutput{
		Name:       m.Name,
		Subject:    m.Subject,
		RevealTime: m.RevealTime,
		CreateTime: m.CreateTime,
	}
	if m.Message != nil {
		out.Message = *m.Message
	} else {
		out.Message = "(hidden until " + formatUnix(m.RevealTime) + ")"
	}

	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func formatUnix(n json.Number) string {
	sec, err := n.Float64()
	if err != nil {
		return n.String()
	}
	return time.Unix(int64(sec), 0).UTC().Format(time.RFC3339)
}
