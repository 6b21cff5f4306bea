package server

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/alumnilink/internal/common"
	"github.com/dmitrijs2005/alumnilink/internal/logging"
	"github.com/dmitrijs2005/alumnilink/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.HTTPAddr = "127.0.0.1:0"
	c.SecretKey = "app-test-secret"
	return c
}

func TestNewApp_MissingSecret(t *testing.T) {
	c := testConfig()
	c.SecretKey = ""

	_, err := NewApp(context.Background(), c, logging.Nop())
	require.ErrorIs(t, err, common.ErrMissingSecret)
}

func TestNewApp_InMemory(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig(), logging.Nop())
	require.NoError(t, err)
	assert.Nil(t, app.db)
	assert.NotNil(t, app.userService)
	assert.NotNil(t, app.avatarService)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	c := testConfig()
	c.RevocationPurgeInterval = 10 * time.Millisecond

	app, err := NewApp(context.Background(), c, logging.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
}
