// Package seed fills a running shard instance with random users over HTTP.
package seed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/Skotchmaster/sharded_shop/internal/models"
	"github.com/Skotchmaster/sharded_shop/internal/transport"
)

type Generator struct {
	BaseURL string
	Client  *http.Client
	Rand    *rand.Rand
	Log     *slog.Logger
}

func New(baseURL string, l *slog.Logger) *Generator {
	if l == nil {
		l = slog.Default()
	}
	return &Generator{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 10 * time.Second},
		Rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
		Log:     l,
	}
}

func (g *Generator) RandomUser() transport.CreateUserRequest {
	active := true
	return transport.CreateUserRequest{
		Email:    fmt.Sprintf("user%d@example.com", 1000+g.Rand.Intn(9000)),
		IsActive: &active,
	}
}

// CreateUsers posts n random users and returns the ones the server accepted.
// Rejected users (for example duplicate emails) are logged and skipped.
func (g *Generator) CreateUsers(ctx context.Context, n int) ([]models.User, error) {
	created := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return created, err
		}

		u, err := g.createUser(ctx, g.RandomUser())
		if err != nil {
			g.Log.Error("seed_user_failed", "error", err)
			continue
		}
		g.Log.Info("seed_user_created", "email", u.Email, "id", u.ID)
		created = append(created, *u)
	}

	g.Log.Info("seed_done", "created", len(created), "requested", n)
	return created, nil
}

func (g *Generator) createUser(ctx context.Context, req transport.CreateUserRequest) (*models.User, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.BaseURL+"/api/users", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	res, err := g.Client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("post user %s: %w", req.Email, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return nil, fmt.Errorf("post user %s: status %d: %s", req.Email, res.StatusCode, strings.TrimSpace(string(raw)))
	}

	var u models.User
	if err := json.NewDecoder(res.Body).Decode(&u); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return &u, nil
}
