package models

import (
	"time"

	"github.com/lib/pq"
)

type User struct {
	ID           int64          `json:"id" db:"id"`
	Username     string         `json:"username" db:"username"`
	PasswordHash string         `json:"-" db:"password_hash"`
	FullName     string         `json:"fullName" db:"full_name"`
	Bio          *string        `json:"bio" db:"bio"`
	AvatarURL    *string        `json:"avatarUrl" db:"avatar_url"`
	TwitterURL   *string        `json:"twitterUrl" db:"twitter_url"`
	GithubURL    *string        `json:"githubUrl" db:"github_url"`
	LinkedinURL  *string        `json:"linkedinUrl" db:"linkedin_url"`
	Role         string         `json:"role" db:"role"`
	Skills       pq.StringArray `json:"skills" db:"skills"`
	Introduction *string        `json:"introduction" db:"introduction"`
}

type Tag struct {
	ID    int64  `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Slug  string `json:"slug" db:"slug"`
	Color string `json:"color" db:"color"`
}

type Post struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Slug        string    `json:"slug" db:"slug"`
	Excerpt     string    `json:"excerpt" db:"excerpt"`
	Content     string    `json:"content" db:"content"`
	CoverImage  *string   `json:"coverImage" db:"cover_image"`
	AuthorID    int64     `json:"authorId" db:"author_id"`
	Published   bool      `json:"published" db:"published"`
	Featured    bool      `json:"featured" db:"featured"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	ReadingTime *string   `json:"readingTime" db:"reading_time"`
}

type Comment struct {
	ID          int64     `json:"id" db:"id"`
	Content     string    `json:"content" db:"content"`
	AuthorName  string    `json:"authorName" db:"author_name"`
	AuthorEmail string    `json:"authorEmail" db:"author_email"`
	PostID      int64     `json:"postId" db:"post_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

type TilEntry struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	AuthorID  int64     `json:"authorId" db:"author_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type GithubRepository struct {
	ID          int64          `json:"id" db:"id"`
	UserID      int64          `json:"userId" db:"user_id"`
	Name        string         `json:"name" db:"name"`
	FullName    string         `json:"fullName" db:"full_name"`
	Description *string        `json:"description" db:"description"`
	URL         string         `json:"url" db:"url"`
	Homepage    *string        `json:"homepage" db:"homepage"`
	Stars       int            `json:"stars" db:"stars"`
	Forks       int            `json:"forks" db:"forks"`
	Languages   Languages      `json:"languages" db:"languages"`
	Topics      pq.StringArray `json:"topics" db:"topics"`
	Readme      *string        `json:"readme" db:"readme"`
	CreatedAt   time.Time      `json:"createdAt" db:"created_at"`
	SyncedAt    time.Time      `json:"syncedAt" db:"synced_at"`
}

// PostWithRelations is the listing view of a post.
type PostWithRelations struct {
	Post
	Author User  `json:"author"`
	Tags   []Tag `json:"tags"`
}

// PostDetail is the single-post view; comments are newest first.
type PostDetail struct {
	PostWithRelations
	Comments []Comment `json:"comments"`
}

type TilEntryWithRelations struct {
	TilEntry
	Author User  `json:"author"`
	Tags   []Tag `json:"tags"`
}

type PostTag struct {
	PostID int64 `json:"postId" db:"post_id"`
	TagID  int64 `json:"tagId" db:"tag_id"`
}

type TilTag struct {
	TilID int64 `json:"tilId" db:"til_id"`
	TagID int64 `json:"tagId" db:"tag_id"`
}

type SyncResult struct {
	Repositories []GithubRepository `json:"repositories"`
	Synced       int                `json:"synced"`
	Failed       []SyncFailure      `json:"failed,omitempty"`
}

type SyncFailure struct {
	Repository string `json:"repository"`
	Error      string `json:"error"`
}
