package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/nkaddour/ttc/internal/adapters/api"
	chainstore "github.com/nkaddour/ttc/internal/adapters/credstore/chain"
	"github.com/nkaddour/ttc/internal/application"
	"github.com/nkaddour/ttc/internal/ports"
)

var errNotSignedIn = errors.New("not signed in: run 'ttc login' first")

type app struct {
	config    *viper.Viper
	session   *application.SessionService
	dashboard *application.DashboardService
	gateway   ports.ResourceGateway
	creds     ports.CredentialStore
	log       logrus.FieldLogger
	now       func() time.Time
}

func wireApp() (*app, error) {
	config, err := newConfig()
	if err != nil {
		return nil, err
	}

	tokenPath := config.GetString("credentials.file")
	if tokenPath == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config directory: %w", err)
		}
		tokenPath = filepath.Join(dir, "ttc", "token")
	}

	creds, err := chainstore.NewPassFirstWithFileFallback(config.GetString("credentials.pass_key"), tokenPath)
	if err != nil {
		return nil, fmt.Errorf("wire credential store: %w", err)
	}

	log := logrus.StandardLogger()

	client := api.New(
		config.GetString("api.base_url"),
		creds,
		&http.Client{Timeout: config.GetDuration("api.timeout")},
		log,
	)
	session := application.NewSessionService(client, creds, consoleNavigator{out: os.Stderr})
	client.OnCredentialInvalidated(session.HandleInvalidation)

	return &app{
		config:    config,
		session:   session,
		dashboard: application.NewDashboardService(client, ports.SystemClock{}, log),
		gateway:   client,
		creds:     creds,
		log:       log,
		now:       time.Now,
	}, nil
}

func newConfig() (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("TTC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("api.base_url", "http://localhost:8000")
	v.SetDefault("api.timeout", "30s")
	v.SetDefault("credentials.pass_key", "ttc/token")
	v.SetDefault("credentials.file", "")
	v.SetDefault("dashboard.interval", "60s")

	v.SetConfigName("config")
	v.SetConfigType("toml")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "ttc"))
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return v, nil
}

// requireAuthenticated restores the session from the stored credential and
// gates protected commands on the result.
func (a *app) requireAuthenticated(ctx context.Context) error {
	if err := a.session.Resume(ctx); err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	if application.Guard(a.session.Session().Status) != application.GuardAllow {
		return errNotSignedIn
	}
	return nil
}

// consoleNavigator turns the session's route changes into terminal hints.
type consoleNavigator struct {
	out io.Writer
}

func (n consoleNavigator) NavigateTo(route ports.Route) {
	switch route {
	case ports.RouteLogin:
		_, _ = fmt.Fprintln(n.out, "run 'ttc login' to sign in")
	case ports.RouteDashboard:
		_, _ = fmt.Fprintln(n.out, "run 'ttc dashboard' for an overview")
	}
}
