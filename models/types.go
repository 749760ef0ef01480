package models

import "time"

// User roles
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Post status constants
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)

// Comment status constants
const (
	CommentStatusPending  = "pending"
	CommentStatusApproved = "approved"
	CommentStatusRejected = "rejected"
)

// Request types

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type CreatePostRequest struct {
	Title            string   `json:"title" validate:"required,max=255"`
	Content          string   `json:"content" validate:"required"`
	FeaturedImage    string   `json:"featured_image" validate:"max=500"`
	CategoryID       string   `json:"category_id"`
	MetaTitle        string   `json:"meta_title" validate:"max=255"`
	MetaDescription  string   `json:"meta_description" validate:"max=500"`
	Status           string   `json:"status" validate:"omitempty,oneof=draft published"`
	AdditionalImages []string `json:"additional_images" validate:"max=10,dive,required,max=500"`
}

// Empty fields keep their stored value. A non-nil AdditionalImages
// (including an empty list) replaces every stored image.
type UpdatePostRequest struct {
	Title            string   `json:"title" validate:"max=255"`
	Content          string   `json:"content"`
	FeaturedImage    string   `json:"featured_image" validate:"max=500"`
	CategoryID       string   `json:"category_id"`
	MetaTitle        string   `json:"meta_title" validate:"max=255"`
	MetaDescription  string   `json:"meta_description" validate:"max=500"`
	Status           string   `json:"status" validate:"omitempty,oneof=draft published"`
	AdditionalImages []string `json:"additional_images" validate:"max=10,dive,required,max=500"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type CreateCommentRequest struct {
	PostID    string `json:"post_id" validate:"required"`
	Comment   string `json:"comment" validate:"required,max=5000"`
	GuestName string `json:"guest_name" validate:"max=100"`
}

type UpdateCommentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected"`
}

// Rating is a float so fractional input can be rejected with a
// meaningful message instead of a decode error.
type RateRequest struct {
	Rating float64 `json:"rating"`
}

type ContactRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Message string `json:"message" validate:"required,max=5000"`
}

// Response types

type AuthResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Token string `json:"token"`
}

type CreatedResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type CreatePostResponse struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Slug   string `json:"slug"`
	Status string `json:"status"`
}

type RatingResponse struct {
	Message       string  `json:"message"`
	AverageRating float64 `json:"averageRating"`
	TotalRatings  int     `json:"totalRatings"`
}

type UploadResponse struct {
	Message string `json:"message"`
	Image   string `json:"image"`
}

type UploadMultipleResponse struct {
	Message string   `json:"message"`
	Images  []string `json:"images"`
}

// Domain types

type User struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"-" db:"password"` // bcrypt hash, never serialised
	Role      string    `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

type Category struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Slug      string    `json:"slug" db:"slug"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type Post struct {
	ID              string    `json:"id" db:"id"`
	Title           string    `json:"title" db:"title"`
	Slug            string    `json:"slug" db:"slug"`
	Content         string    `json:"content" db:"content"`
	FeaturedImage   *string   `json:"featured_image" db:"featured_image"`
	CategoryID      *string   `json:"category_id" db:"category_id"`
	AuthorID        *string   `json:"author_id" db:"author_id"`
	MetaTitle       *string   `json:"meta_title" db:"meta_title"`
	MetaDescription *string   `json:"meta_description" db:"meta_description"`
	Status          string    `json:"status" db:"status"`
	ViewCount       int       `json:"view_count" db:"view_count"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// PostSummary is a row of the public listing; it omits the body.
type PostSummary struct {
	ID              string    `json:"id" db:"id"`
	Title           string    `json:"title" db:"title"`
	Slug            string    `json:"slug" db:"slug"`
	FeaturedImage   *string   `json:"featured_image" db:"featured_image"`
	CategoryID      *string   `json:"category_id" db:"category_id"`
	AuthorID        *string   `json:"author_id" db:"author_id"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	ViewCount       int       `json:"view_count" db:"view_count"`
	MetaDescription *string   `json:"meta_description" db:"meta_description"`
	Status          string    `json:"status" db:"status"`
	CategoryName    *string   `json:"category_name" db:"category_name"`
	AuthorName      *string   `json:"author_name" db:"author_name"`
}

type PostPage struct {
	Posts []PostSummary `json:"posts"`
	Total int           `json:"total"`
	Page  int           `json:"page"`
	Pages int           `json:"pages"`
}

type AdminPost struct {
	Post
	CategoryName *string `json:"category_name" db:"category_name"`
	AuthorName   *string `json:"author_name" db:"author_name"`
	AvgRating    float64 `json:"avg_rating" db:"avg_rating"`
	RatingCount  int     `json:"rating_count" db:"rating_count"`
}

type AdminPostPage struct {
	Posts []AdminPost `json:"posts"`
	Total int         `json:"total"`
	Page  int         `json:"page"`
	Pages int         `json:"pages"`
}

// PostDetail is a single post with its derived aggregates and
// attachments. Comments are only populated on the public read path,
// where an uncommented post still carries an empty list.
type PostDetail struct {
	Post
	CategoryName     *string   `json:"category_name" db:"category_name"`
	AuthorName       *string   `json:"author_name" db:"author_name"`
	AverageRating    float64   `json:"averageRating" db:"average_rating"`
	TotalRatings     int       `json:"totalRatings" db:"total_ratings"`
	AdditionalImages []string  `json:"additional_images" db:"-"`
	Comments         []Comment `json:"comments,omitzero" db:"-"`
}

type Comment struct {
	ID        string    `json:"id" db:"id"`
	PostID    string    `json:"post_id" db:"post_id"`
	UserID    *string   `json:"user_id" db:"user_id"`
	GuestName *string   `json:"guest_name" db:"guest_name"`
	Comment   string    `json:"comment" db:"comment"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UserName  string    `json:"user_name" db:"user_name"`
	PostTitle *string   `json:"post_title,omitempty" db:"post_title"`
}

type ContactMessage struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type AdminStats struct {
	TotalPosts      int64   `json:"totalPosts"`
	TotalBlogViews  int64   `json:"totalBlogViews"`
	TotalComments   int64   `json:"totalComments"`
	TotalSiteVisits int64   `json:"totalSiteVisits"`
	UniqueVisitors  int64   `json:"uniqueVisitors"`
	RepeatViews     int64   `json:"repeatViews"`
	AverageRating   float64 `json:"averageRating"`
	TotalRatings    int64   `json:"totalRatings"`
}

type SitemapEntry struct {
	Slug      string    `db:"slug"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
