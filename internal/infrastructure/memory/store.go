// Package memory is an in-process implementation of the repositories.
// It backs STORE_DRIVER=memory and the service and handler tests.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
)

type userRow struct {
	u   entity.User
	seq int64
}

type blogRow struct {
	b   entity.Blog
	seq int64
}

type commentRow struct {
	c   entity.Comment
	seq int64
}

// Store holds users, blogs and comments behind one lock so cascade deletes
// and author joins see a consistent view.
type Store struct {
	mu       sync.RWMutex
	seq      int64
	users    map[string]*userRow
	emails   map[string]string
	blogs    map[string]*blogRow
	comments map[string]*commentRow

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:    make(map[string]*userRow),
		emails:   make(map[string]string),
		blogs:    make(map[string]*blogRow),
		comments: make(map[string]*commentRow),
		now:      time.Now,
	}
}

func (s *Store) Users() *UserRepository       { return &UserRepository{s: s} }
func (s *Store) Blogs() *BlogRepository       { return &BlogRepository{s: s} }
func (s *Store) Comments() *CommentRepository { return &CommentRepository{s: s} }

func (s *Store) nextSeq() int64 {
	s.seq++
	return s.seq
}

func newID() string { return uuid.NewString() }

func (s *Store) authorCopy(id string) *entity.User {
	row, ok := s.users[id]
	if !ok {
		return nil
	}
	u := row.u
	return &u
}

func (s *Store) blogCopy(row *blogRow) *entity.Blog {
	b := row.b
	b.Author = s.authorCopy(b.AuthorID)
	return &b
}

func (s *Store) commentCopy(row *commentRow) *entity.Comment {
	c := row.c
	c.Replies = append([]entity.Reply{}, row.c.Replies...)
	c.Author = s.authorCopy(c.AuthorID)
	return &c
}

// newestFirst orders by creation time, then by insertion order.
func newestFirst(created func(i int) (time.Time, int64)) func(i, j int) bool {
	return func(i, j int) bool {
		ti, si := created(i)
		tj, sj := created(j)
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return si > sj
	}
}

func sortBlogs(rows []*blogRow) {
	sort.SliceStable(rows, newestFirst(func(i int) (time.Time, int64) { return rows[i].b.CreatedAt, rows[i].seq }))
}

func sortComments(rows []*commentRow) {
	sort.SliceStable(rows, newestFirst(func(i int) (time.Time, int64) { return rows[i].c.CreatedAt, rows[i].seq }))
}
