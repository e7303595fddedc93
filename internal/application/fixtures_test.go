package application

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blog/internal/infrastructure/memory"
	"github.com/oksasatya/go-ddd-blog/pkg/helpers"
	"github.com/oksasatya/go-ddd-blog/pkg/mailer"
	mailtpl "github.com/oksasatya/go-ddd-blog/pkg/mailer/templates"
)

type memFiles struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newMemFiles() *memFiles { return &memFiles{files: map[string][]byte{}} }

func (f *memFiles) Save(_ context.Context, name, _ string, r io.Reader) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[name] = b
	return nil
}

func (f *memFiles) Delete(_ context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.files, name)
	return nil
}

func (f *memFiles) has(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.files[name]
	return ok
}

type recordingPublisher struct {
	mu   sync.Mutex
	jobs []mailer.EmailJob
}

func (p *recordingPublisher) PublishJSON(_ context.Context, body any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.jobs = append(p.jobs, body.(mailer.EmailJob))
	return nil
}

func (p *recordingPublisher) templates() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.jobs))
	for _, j := range p.jobs {
		out = append(out, j.Template)
	}
	return out
}

type fakeSearch struct {
	docs  map[string]*entity.Blog
	hits  []string
	err   error
	sizes []int
}

func newFakeSearch() *fakeSearch { return &fakeSearch{docs: map[string]*entity.Blog{}} }

func (s *fakeSearch) Put(_ context.Context, b *entity.Blog) error {
	s.docs[b.ID] = b
	return nil
}

func (s *fakeSearch) Remove(_ context.Context, id string) error {
	delete(s.docs, id)
	return nil
}

func (s *fakeSearch) Search(_ context.Context, _ string, size int) ([]string, error) {
	s.sizes = append(s.sizes, size)
	return s.hits, s.err
}

type fakeFeed struct {
	feed        []BlogView
	warm        bool
	invalidated int
}

func (f *fakeFeed) Get(context.Context) ([]BlogView, bool, error) { return f.feed, f.warm, nil }

func (f *fakeFeed) Set(_ context.Context, feed []BlogView) error {
	f.feed, f.warm = feed, true
	return nil
}

func (f *fakeFeed) Invalidate(context.Context) error {
	f.feed, f.warm = nil, false
	f.invalidated++
	return nil
}

var errStoreDown = errors.New("store down")

type env struct {
	store    *memory.Store
	files    *memFiles
	pub      *recordingPublisher
	search   *fakeSearch
	feed     *fakeFeed
	auth     *AuthService
	blogs    *BlogService
	comments *CommentService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	e := &env{
		store:  memory.NewStore(),
		files:  newMemFiles(),
		pub:    &recordingPublisher{},
		search: newFakeSearch(),
		feed:   &fakeFeed{},
	}
	uploads := NewUploader(e.files, 1<<20, logger)
	notify := NewNotifier(e.pub, mailtpl.Brand{AppName: "Blogly"}, logger)
	jwt := helpers.NewJWTManager("test-secret", time.Hour)

	e.auth = NewAuthService(e.store.Users(), jwt, uploads, notify, logger, "default-profile.jpg")
	e.auth.HashCost = bcrypt.MinCost
	e.blogs = NewBlogService(e.store.Blogs(), e.store.Comments(), e.store.Users(), uploads, e.search, e.feed, logger)
	e.comments = NewCommentService(e.store.Comments(), e.store.Blogs(), e.store.Users(), notify, logger)
	return e
}

func image(name string) *Upload {
	const body = "\xff\xd8\xff fake jpeg"
	return &Upload{Filename: name, ContentType: "image/jpeg", Size: int64(len(body)), Body: bytes.NewReader([]byte(body))}
}

func (e *env) signup(t *testing.T, email string) *AuthResult {
	t.Helper()
	res, err := e.auth.Signup(context.Background(), SignupInput{Email: email, Password: "secret1"})
	require.NoError(t, err)
	return res
}

func (e *env) blog(t *testing.T, identity, title string) *BlogView {
	t.Helper()
	v, err := e.blogs.Create(context.Background(), identity, CreateBlogInput{
		Title:       title,
		Description: strings.Repeat("d", 3),
		Image:       image("cover.jpg"),
	})
	require.NoError(t, err)
	return v
}

func (e *env) comment(t *testing.T, identity, blogID, content string) *CommentView {
	t.Helper()
	v, err := e.comments.Create(context.Background(), identity, CreateCommentInput{BlogID: blogID, Content: content})
	require.NoError(t, err)
	return v
}
