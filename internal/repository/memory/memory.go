// Package memory is an in-process implementation of the repository
// interfaces. It enforces the same uniqueness rules as the SQL schema and
// backs the service and HTTP tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/emilythestrangee/yatube/backend/internal/models"
	"github.com/emilythestrangee/yatube/backend/internal/repository"
)

type Store struct {
	mu       sync.Mutex
	seq      int
	now      func() time.Time
	users    map[int]models.User
	groups   map[int]models.Group
	posts    map[int]models.Post
	comments map[int]models.Comment
	follows  map[int]models.Follow
}

func New() *Store {
	return &Store{
		now:      time.Now,
		users:    map[int]models.User{},
		groups:   map[int]models.Group{},
		posts:    map[int]models.Post{},
		comments: map[int]models.Comment{},
		follows:  map[int]models.Follow{},
	}
}

func (s *Store) Repositories() repository.Repositories {
	return repository.Repositories{
		Users:    userRepo{s},
		Groups:   groupRepo{s},
		Posts:    postRepo{s},
		Comments: commentRepo{s},
		Follows:  followRepo{s},
	}
}

func (s *Store) nextID() int {
	s.seq++
	return s.seq
}

func window[T any](items []T, page repository.Page) []T {
	if page.Offset >= len(items) {
		return []T{}
	}
	items = items[page.Offset:]
	if page.Limit > 0 && page.Limit < len(items) {
		items = items[:page.Limit]
	}
	return items
}

type userRepo struct{ s *Store }

func (r userRepo) FindByID(_ context.Context, id int) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r userRepo) FindByUsername(_ context.Context, username string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r userRepo) Create(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == user.Username {
			return repository.ErrDuplicate
		}
	}
	user.ID = r.s.nextID()
	user.CreatedAt = r.s.now()
	r.s.users[user.ID] = *user
	return nil
}

type groupRepo struct{ s *Store }

func (r groupRepo) List(_ context.Context, page repository.Page) ([]models.Group, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	groups := make([]models.Group, 0, len(r.s.groups))
	for _, g := range r.s.groups {
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].ID < groups[j].ID })
	return window(groups, page), int64(len(groups)), nil
}

func (r groupRepo) FindByID(_ context.Context, id int) (*models.Group, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	g, ok := r.s.groups[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &g, nil
}

func (r groupRepo) Create(_ context.Context, group *models.Group) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, g := range r.s.groups {
		if g.Slug == group.Slug {
			return repository.ErrDuplicate
		}
	}
	group.ID = r.s.nextID()
	r.s.groups[group.ID] = *group
	return nil
}

type postRepo struct{ s *Store }

// withAuthor must be called with the lock held.
func (r postRepo) withAuthor(p models.Post) models.Post {
	p.Author = r.s.users[p.AuthorID]
	return p
}

func (r postRepo) List(_ context.Context, page repository.Page) ([]models.Post, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	posts := make([]models.Post, 0, len(r.s.posts))
	for _, p := range r.s.posts {
		posts = append(posts, r.withAuthor(p))
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].ID > posts[j].ID })
	return window(posts, page), int64(len(posts)), nil
}

func (r postRepo) FindByID(_ context.Context, id int) (*models.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p = r.withAuthor(p)
	return &p, nil
}

func (r postRepo) Create(_ context.Context, post *models.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	post.ID = r.s.nextID()
	post.PubDate = r.s.now()
	post.Author = r.s.users[post.AuthorID]
	post.Group = nil
	r.s.posts[post.ID] = *post
	return nil
}

func (r postRepo) Update(_ context.Context, post *models.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.posts[post.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.Text = post.Text
	stored.GroupID = post.GroupID
	stored.Image = post.Image
	r.s.posts[post.ID] = stored
	return nil
}

func (r postRepo) Delete(_ context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.posts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.posts, id)
	for cid, c := range r.s.comments {
		if c.PostID == id {
			delete(r.s.comments, cid)
		}
	}
	return nil
}

type commentRepo struct{ s *Store }

func (r commentRepo) FindByPost(_ context.Context, postID int, page repository.Page) ([]models.Comment, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var comments []models.Comment
	for _, c := range r.s.comments {
		if c.PostID == postID {
			c.Author = r.s.users[c.AuthorID]
			comments = append(comments, c)
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].ID < comments[j].ID })
	return window(comments, page), int64(len(comments)), nil
}

func (r commentRepo) FindByID(_ context.Context, postID, id int) (*models.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.comments[id]
	if !ok || c.PostID != postID {
		return nil, repository.ErrNotFound
	}
	c.Author = r.s.users[c.AuthorID]
	return &c, nil
}

func (r commentRepo) Create(_ context.Context, comment *models.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.posts[comment.PostID]; !ok {
		return repository.ErrNotFound
	}
	comment.ID = r.s.nextID()
	comment.Created = r.s.now()
	comment.Author = r.s.users[comment.AuthorID]
	comment.Post = nil
	r.s.comments[comment.ID] = *comment
	return nil
}

func (r commentRepo) Update(_ context.Context, comment *models.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.comments[comment.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.Text = comment.Text
	r.s.comments[comment.ID] = stored
	return nil
}

func (r commentRepo) Delete(_ context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.comments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.comments, id)
	return nil
}

type followRepo struct{ s *Store }

// resolve must be called with the lock held.
func (r followRepo) resolve(f models.Follow) models.Follow {
	f.User = r.s.users[f.UserID]
	f.Following = r.s.users[f.FollowingID]
	return f
}

func (r followRepo) FindByUser(_ context.Context, userID int, search string, page repository.Page) ([]models.Follow, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	search = strings.ToLower(search)
	var follows []models.Follow
	for _, f := range r.s.follows {
		if f.UserID != userID {
			continue
		}
		f = r.resolve(f)
		if search != "" && !strings.Contains(strings.ToLower(f.Following.Username), search) {
			continue
		}
		follows = append(follows, f)
	}
	sort.Slice(follows, func(i, j int) bool { return follows[i].ID < follows[j].ID })
	return window(follows, page), int64(len(follows)), nil
}

func (r followRepo) FindByID(_ context.Context, userID, id int) (*models.Follow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f, ok := r.s.follows[id]
	if !ok || f.UserID != userID {
		return nil, repository.ErrNotFound
	}
	f = r.resolve(f)
	return &f, nil
}

func (r followRepo) Exists(_ context.Context, userID, followingID int) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, f := range r.s.follows {
		if f.UserID == userID && f.FollowingID == followingID {
			return true, nil
		}
	}
	return false, nil
}

func (r followRepo) Create(_ context.Context, follow *models.Follow) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, f := range r.s.follows {
		if f.UserID == follow.UserID && f.FollowingID == follow.FollowingID {
			return repository.ErrDuplicate
		}
	}
	follow.ID = r.s.nextID()
	*follow = r.resolve(*follow)
	r.s.follows[follow.ID] = *follow
	return nil
}

func (r followRepo) Delete(_ context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.follows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.follows, id)
	return nil
}
