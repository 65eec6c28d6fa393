package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	redisadapter "github.com/fitpick/admin-gateway/internal/adapters/redis"
	"github.com/fitpick/admin-gateway/internal/backend"
	"github.com/fitpick/admin-gateway/internal/bootstrap"
	"github.com/fitpick/admin-gateway/internal/service"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// cliInfra bundles the connections a command needs. Close it when done.
type cliInfra struct {
	Redis   redis.UniversalClient
	Backend *backend.Client
	Auth    *service.AuthService
}

func (i *cliInfra) Close() error {
	return i.Redis.Close()
}

// connectInfra dials Redis and wires the auth service the way the gateway
// does. The CLI process exits between commands, so the scoped tier has to
// live in Redis too, under its own key prefix.
func connectInfra(cmdCtx *commandContext) (*cliInfra, error) {
	cfg := cmdCtx.Config

	redisClient, err := bootstrap.ConnectRedis(cfg.Redis, cmdCtx.Logger)
	if err != nil {
		return nil, err
	}

	client := backend.NewClient(backend.ClientOptions{
		BaseURL:    cfg.Backend.BaseURL,
		HTTPClient: &http.Client{Timeout: cfg.Backend.Timeout},
		Logger:     cmdCtx.Logger,
	})

	auth := service.NewAuthService(service.AuthServiceOptions{
		Authenticator: client.Auth(),
		Tiers: service.SessionTiers{
			Persistent: redisadapter.NewSessionStore(redisClient),
			Scoped:     redisadapter.NewSessionStoreWithPrefix(redisClient, "cli:session:"),
		},
		Remember:      redisadapter.NewRememberStore(redisClient),
		RefreshWindow: cfg.Auth.RefreshWindow,
		SessionTTL:    cfg.Auth.SessionTTL,
	})

	return &cliInfra{Redis: redisClient, Backend: client, Auth: auth}, nil
}

// localState is what the CLI remembers between invocations: which session
// it holds and the stable client identifier that keys the remembered
// identity. Tokens stay in Redis, never on disk.
type localState struct {
	SessionID string `json:"session_id"`
	ClientID  string `json:"client_id"`
}

func statePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(dir, "fitpick-admin", "state.json"), nil
}

func loadState() (localState, error) {
	path, err := statePath()
	if err != nil {
		return localState{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return localState{}, nil
		}
		return localState{}, fmt.Errorf("read state file: %w", err)
	}

	var state localState
	if err := json.Unmarshal(data, &state); err != nil {
		return localState{}, fmt.Errorf("parse state file: %w", err)
	}
	return state, nil
}

func saveState(state localState) error {
	path, err := statePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	return nil
}

func clearSessionState() error {
	state, err := loadState()
	if err != nil {
		return err
	}
	state.SessionID = ""
	return saveState(state)
}

// ensureClientID returns the stable client identifier, minting and
// persisting one on first use.
func ensureClientID(state *localState) (string, error) {
	if state.ClientID != "" {
		return state.ClientID, nil
	}
	state.ClientID = uuid.NewString()
	if err := saveState(*state); err != nil {
		return "", err
	}
	return state.ClientID, nil
}
