// Package blog loads markdown posts with YAML front matter from a directory.
package blog

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"gopkg.in/yaml.v3"

	"github.com/AI2HU/gego-site/internal/logger"
)

// ErrPostNotFound is returned when no published post has the requested slug
var ErrPostNotFound = errors.New("post not found")

const (
	postExt         = ".md"
	frontMatterSep  = "---"
	wordsPerMinute  = 200
	defaultCacheLen = 128
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Post is a parsed blog post
type Post struct {
	Slug        string    `json:"slug" yaml:"-"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description" yaml:"description"`
	Date        time.Time `json:"date" yaml:"date"`
	Author      string    `json:"author,omitempty" yaml:"author"`
	Tags        []string  `json:"tags,omitempty" yaml:"tags"`
	Draft       bool      `json:"-" yaml:"draft"`
	ReadingTime int       `json:"readingTime" yaml:"-"` // minutes
	Content     string    `json:"content,omitempty" yaml:"-"`
}

// Summary returns the post without its body, for index pages
func (p *Post) Summary() *Post {
	s := *p
	s.Content = ""
	return &s
}

type cacheEntry struct {
	post    *Post
	modTime time.Time
}

// Store reads posts from dir and caches parsed files until they change on disk
type Store struct {
	dir   string
	cache *lru.Cache[string, cacheEntry]
}

// NewStore creates a store over dir keeping up to cacheSize parsed posts
func NewStore(dir string, cacheSize int) (*Store, error) {
	if cacheSize <= 0 {
		cacheSize = defaultCacheLen
	}
	cache, err := lru.New[string, cacheEntry](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create post cache: %w", err)
	}
	return &Store{dir: dir, cache: cache}, nil
}

// List returns published posts, newest first, without their bodies
func (s *Store) List() ([]*Post, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []*Post{}, nil
		}
		return nil, fmt.Errorf("failed to read blog directory: %w", err)
	}

	posts := make([]*Post, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != postExt {
			continue
		}

		slug := strings.TrimSuffix(entry.Name(), postExt)
		if !slugPattern.MatchString(slug) {
			logger.Warning("Skipping blog post %s: file name is not a valid slug", entry.Name())
			continue
		}
		post, err := s.load(slug)
		if err != nil {
			logger.Warning("Skipping blog post %s: %v", entry.Name(), err)
			continue
		}
		if post.Draft {
			continue
		}
		posts = append(posts, post.Summary())
	}

	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].Date.Equal(posts[j].Date) {
			return posts[i].Slug < posts[j].Slug
		}
		return posts[i].Date.After(posts[j].Date)
	})
	return posts, nil
}

// Get returns a published post by slug
func (s *Store) Get(slug string) (*Post, error) {
	if !slugPattern.MatchString(slug) {
		return nil, ErrPostNotFound
	}

	post, err := s.load(slug)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	if post.Draft {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// Slugs returns the slugs of all published posts
func (s *Store) Slugs() ([]string, error) {
	posts, err := s.List()
	if err != nil {
		return nil, err
	}
	slugs := make([]string, len(posts))
	for i, p := range posts {
		slugs[i] = p.Slug
	}
	return slugs, nil
}

func (s *Store) load(slug string) (*Post, error) {
	path := filepath.Join(s.dir, slug+postExt)

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if entry, ok := s.cache.Get(slug); ok && entry.modTime.Equal(info.ModTime()) {
		return entry.post, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read post: %w", err)
	}

	post, err := Parse(slug, data)
	if err != nil {
		return nil, err
	}

	s.cache.Add(slug, cacheEntry{post: post, modTime: info.ModTime()})
	return post, nil
}

// Parse splits a markdown document into front matter and body
func Parse(slug string, data []byte) (*Post, error) {
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	text := string(data)

	if !strings.HasPrefix(text, frontMatterSep+"\n") {
		return nil, fmt.Errorf("missing front matter")
	}

	rest := text[len(frontMatterSep)+1:]
	meta, body, found := strings.Cut(rest, "\n"+frontMatterSep)
	if !found {
		return nil, fmt.Errorf("unterminated front matter")
	}
	body = strings.TrimPrefix(body, "\n")

	post := &Post{}
	if err := yaml.Unmarshal([]byte(meta), post); err != nil {
		return nil, fmt.Errorf("failed to parse front matter: %w", err)
	}
	if post.Title == "" {
		return nil, fmt.Errorf("front matter has no title")
	}

	post.Slug = slug
	post.Content = strings.TrimSpace(body)
	post.ReadingTime = readingTime(post.Content)
	return post, nil
}

func readingTime(content string) int {
	words := len(strings.Fields(content))
	if words == 0 {
		return 0
	}
	return max(1, (words+wordsPerMinute-1)/wordsPerMinute)
}
