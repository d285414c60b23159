package http

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Praveenkumarspk1/blog-wise/internal/content"
	"github.com/Praveenkumarspk1/blog-wise/internal/models"
)

type CreatePostInput struct {
	Title      string   `json:"title" binding:"required"`
	Content    string   `json:"content" binding:"required"`
	Summary    string   `json:"summary"`
	Visibility string   `json:"visibility"`
	Tags       []string `json:"tags"`
	Published  bool     `json:"published"`
}

type UpdatePostInput struct {
	Title      *string   `json:"title"`
	Content    *string   `json:"content"`
	Summary    *string   `json:"summary"`
	Visibility *string   `json:"visibility"`
	Tags       *[]string `json:"tags"`
	Published  *bool     `json:"published"`
}

// CreatePost creates a post for the authenticated author. Publishing a
// non-private post notifies accepted followers and pushes a ws event.
func (e *Env) CreatePost(c *gin.Context) {
	var input CreatePostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	author := currentProfile(c)
	post, err := e.Content.CreatePost(c.Request.Context(), author.ID, content.CreateInput{
		Title:      input.Title,
		Content:    input.Content,
		Summary:    input.Summary,
		Visibility: models.Visibility(input.Visibility),
		Tags:       input.Tags,
		Published:  input.Published,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	if post.Published && post.Visibility != models.VisibilityPrivate {
		e.announcePost(c, post)
	}

	c.JSON(http.StatusCreated, post)
}

// announcePost fans out new_post notifications to accepted followers and
// pushes a ws event. Delivery is best-effort; the post is already stored.
func (e *Env) announcePost(c *gin.Context, post *models.Post) {
	if err := e.Social.NotifyNewPost(c.Request.Context(), post); err != nil {
		log.Printf("Error delivering new_post notifications for %s: %v", post.ID, err)
	}
	e.broadcastMessage(WsMessage{Type: "new_post", Data: post})
}

// UpdatePost applies a partial update to the author's own post.
func (e *Env) UpdatePost(c *gin.Context) {
	var input UpdatePostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	var visibility *models.Visibility
	if input.Visibility != nil {
		v := models.Visibility(*input.Visibility)
		visibility = &v
	}

	post, becamePublished, err := e.Content.UpdatePost(c.Request.Context(), c.Param("id"), viewerID(c), content.UpdateInput{
		Title:      input.Title,
		Content:    input.Content,
		Summary:    input.Summary,
		Visibility: visibility,
		Tags:       input.Tags,
		Published:  input.Published,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	// A draft going live is announced the same way a directly-published
	// post is.
	if becamePublished && post.Visibility != models.VisibilityPrivate {
		e.announcePost(c, post)
	}

	c.JSON(http.StatusOK, post)
}

// DeletePost hard-deletes the author's own post.
func (e *Env) DeletePost(c *gin.Context) {
	if err := e.Content.DeletePost(c.Request.Context(), c.Param("id"), viewerID(c)); err != nil {
		respondError(c, err)
		return
	}
	e.broadcastMessage(WsMessage{Type: "post_deleted", Data: gin.H{"id": c.Param("id")}})
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

// ListPublicPosts returns published public posts, optionally narrowed by
// ?search= and ?tag=.
func (e *Env) ListPublicPosts(c *gin.Context) {
	posts, err := e.Content.ListPublicPosts(c.Request.Context(), content.ListFilter{
		SearchTerm: c.Query("search"),
		Tag:        c.Query("tag"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// ListPostsByAuthor returns an author's posts as visible to the caller.
func (e *Env) ListPostsByAuthor(c *gin.Context) {
	posts, err := e.Content.ListPostsByAuthor(c.Request.Context(), c.Param("id"), viewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// GetPostBySlug returns a single post if the caller may see it. Hidden and
// missing posts are indistinguishable.
func (e *Env) GetPostBySlug(c *gin.Context) {
	post, err := e.Content.GetPostBySlug(c.Request.Context(), c.Param("slug"), viewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}
