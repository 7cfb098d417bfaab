// Package cli provides the interactive habitauth command-line client: a small
// REPL to register, log in and out, and inspect the current session.
package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/habitauth/internal/client/client"
	"github.com/dmitrijs2005/habitauth/internal/client/config"
	"github.com/dmitrijs2005/habitauth/internal/api"
)

// authAPI is the part of client.GRPCClient the commands use.
type authAPI interface {
	Register(ctx context.Context, userName, password, email string) error
	Login(ctx context.Context, userName, password string) error
	Logout(ctx context.Context) error
	Profile(ctx context.Context) (*api.ProfileResponse, error)
	CheckToken(ctx context.Context) (time.Time, error)
	Ping(ctx context.Context) error
	LoggedIn() bool
	Close() error
}

type App struct {
	config   *config.Config
	api      authAPI
	userName string
	reader   *bufio.Reader
	out      io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	apiClient, err := client.NewHabitAuthClient(c.ServerEndpointAddr, c.RequestTimeout)
	if err != nil {
		return nil, err
	}

	return &App{config: c, api: apiClient, reader: bufio.NewReader(os.Stdin), out: os.Stdout}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.api.Close()
	runREPL(ctx, a, a.status, a.reader, a.out)
}

func (a *App) isLoggedIn() bool {
	return a.api.LoggedIn()
}

func (a *App) status() string {
	if a.userName == "" {
		return ""
	}
	return "(" + a.userName + ")"
}
