package container

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-blog/config"
	"github.com/oksasatya/go-ddd-blog/internal/application"
)

func memoryConfig(t *testing.T) *config.Config {
	return &config.Config{
		AppName:             "blog-test",
		StoreDriver:         "memory",
		UploadsDir:          t.TempDir(),
		UploadMaxBytes:      1 << 20,
		DefaultProfileImage: "default.jpg",
		JWTSecret:           "secret",
		TokenTTL:            time.Hour,
	}
}

func TestNewWithOptionalBackendsOff(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	c, err := New(context.Background(), memoryConfig(t), logger)
	require.NoError(t, err)
	defer c.Close()

	assert.Nil(t, c.Pool)
	assert.Nil(t, c.Redis)
	assert.Nil(t, c.Bucket)
	assert.False(t, c.searchActive)
	assert.False(t, c.notifyActive)
	require.NotNil(t, c.AuthService)
	require.NotNil(t, c.BlogService)
	require.NotNil(t, c.CommentService)

	res, err := c.AuthService.Signup(context.Background(), application.SignupInput{Email: "a@example.com", Password: "secret1"})
	require.NoError(t, err)
	uid, err := c.AuthService.Authenticate(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, uid)
}

func TestCloseRunsInReverse(t *testing.T) {
	var order []int
	c := &Container{}
	c.closers = append(c.closers, func() { order = append(order, 1) }, func() { order = append(order, 2) })
	c.Close()
	c.Close()
	assert.Equal(t, []int{2, 1}, order)
}
