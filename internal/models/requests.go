package models

type CreateUserRequest struct {
	Username     string   `json:"username" validate:"required,min=3,max=50"`
	Password     string   `json:"password" validate:"required,min=8"`
	FullName     string   `json:"fullName" validate:"required,max=100"`
	Bio          *string  `json:"bio"`
	AvatarURL    *string  `json:"avatarUrl" validate:"omitempty,url"`
	TwitterURL   *string  `json:"twitterUrl" validate:"omitempty,url"`
	GithubURL    *string  `json:"githubUrl" validate:"omitempty,url"`
	LinkedinURL  *string  `json:"linkedinUrl" validate:"omitempty,url"`
	Role         string   `json:"role" validate:"omitempty,max=30"`
	Skills       []string `json:"skills" validate:"omitempty,dive,required"`
	Introduction *string  `json:"introduction"`
}

// UpdateUserRequest is a sparse update: nil fields are left untouched.
type UpdateUserRequest struct {
	Username     *string   `json:"username" validate:"omitempty,min=3,max=50"`
	Password     *string   `json:"password" validate:"omitempty,min=8"`
	FullName     *string   `json:"fullName" validate:"omitempty,max=100"`
	Bio          *string   `json:"bio"`
	AvatarURL    *string   `json:"avatarUrl" validate:"omitempty,url"`
	TwitterURL   *string   `json:"twitterUrl" validate:"omitempty,url"`
	GithubURL    *string   `json:"githubUrl" validate:"omitempty,url"`
	LinkedinURL  *string   `json:"linkedinUrl" validate:"omitempty,url"`
	Role         *string   `json:"role" validate:"omitempty,max=30"`
	Skills       *[]string `json:"skills"`
	Introduction *string   `json:"introduction"`
}

type CreateTagRequest struct {
	Name  string `json:"name" validate:"required,max=50"`
	Slug  string `json:"slug" validate:"required,max=50,slug"`
	Color string `json:"color" validate:"omitempty,max=30"`
}

type CreatePostRequest struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Slug        string  `json:"slug" validate:"required,max=200,slug"`
	Excerpt     string  `json:"excerpt" validate:"required"`
	Content     string  `json:"content" validate:"required"`
	CoverImage  *string `json:"coverImage" validate:"omitempty,url"`
	AuthorID    int64   `json:"authorId" validate:"required,gt=0"`
	Published   *bool   `json:"published"`
	Featured    *bool   `json:"featured"`
	ReadingTime *string `json:"readingTime" validate:"omitempty,max=30"`
	Tags        []int64 `json:"tags" validate:"omitempty,dive,gt=0"`
}

type CreateCommentRequest struct {
	Content     string `json:"content" validate:"required,max=5000"`
	AuthorName  string `json:"authorName" validate:"required,max=100"`
	AuthorEmail string `json:"authorEmail" validate:"required,email"`
	PostID      int64  `json:"postId" validate:"required,gt=0"`
}

type CreateTilEntryRequest struct {
	Title    string  `json:"title" validate:"required,max=200"`
	Content  string  `json:"content" validate:"required"`
	AuthorID int64   `json:"authorId" validate:"required,gt=0"`
	Tags     []int64 `json:"tags" validate:"omitempty,dive,gt=0"`
}

type SyncRequest struct {
	Username string `json:"username" validate:"required"`
	UserID   int64  `json:"userId" validate:"required,gt=0"`
}
