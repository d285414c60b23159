package content

import (
	"context"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Praveenkumarspk1/blog-wise/internal/apperr"
	"github.com/Praveenkumarspk1/blog-wise/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap db: %v", err)
	}
	// A single connection keeps every query on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.Profile{},
		&models.Post{},
		&models.Follow{},
		&models.Notification{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func newTestProfile(t *testing.T, db *gorm.DB, username string) *models.Profile {
	t.Helper()
	profile := models.Profile{
		Email:        username + "@example.com",
		Username:     username,
		FullName:     username,
		PasswordHash: "x",
	}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("create profile %s: %v", username, err)
	}
	return &profile
}

func TestCreatePostValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	author := newTestProfile(t, db, "alice")
	ctx := context.Background()

	_, err := svc.CreatePost(ctx, author.ID, CreateInput{Title: "   ", Content: "body"})
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("empty title: got %v, want validation error", err)
	}

	_, err = svc.CreatePost(ctx, author.ID, CreateInput{Title: "ok", Content: " \n "})
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("empty content: got %v, want validation error", err)
	}

	_, err = svc.CreatePost(ctx, author.ID, CreateInput{Title: "ok", Content: "body", Visibility: "everyone"})
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("bad visibility: got %v, want validation error", err)
	}
}

func TestCreatePostSlug(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	author := newTestProfile(t, db, "alice")
	ctx := context.Background()

	first, err := svc.CreatePost(ctx, author.ID, CreateInput{Title: "Hello World!!", Content: "body", Published: true})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.HasPrefix(first.Slug, "hello-world-") {
		t.Errorf("slug %q, want hello-world-<disambiguator>", first.Slug)
	}

	second, err := svc.CreatePost(ctx, author.ID, CreateInput{Title: "Hello World!!", Content: "body", Published: true})
	if err != nil {
		t.Fatalf("create second: %v", err)
	}
	if first.Slug == second.Slug {
		t.Errorf("two posts with the same title share slug %q", first.Slug)
	}
}

func TestListPublicPostsExcludesDraftsAndHidden(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	author := newTestProfile(t, db, "alice")
	ctx := context.Background()

	mustCreate(t, svc, author.ID, CreateInput{Title: "Live", Content: "a", Published: true})
	mustCreate(t, svc, author.ID, CreateInput{Title: "Draft", Content: "b", Published: false})
	mustCreate(t, svc, author.ID, CreateInput{Title: "Secret", Content: "c", Published: true, Visibility: models.VisibilityPrivate})
	mustCreate(t, svc, author.ID, CreateInput{Title: "Circle", Content: "d", Published: true, Visibility: models.VisibilityFollowers})

	posts, err := svc.ListPublicPosts(ctx, ListFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(posts) != 1 || posts[0].Title != "Live" {
		t.Errorf("public listing = %v, want only the published public post", titles(posts))
	}

	// A draft must stay hidden for any filter.
	posts, err = svc.ListPublicPosts(ctx, ListFilter{SearchTerm: "draft"})
	if err != nil {
		t.Fatalf("list with search: %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("draft leaked through search filter: %v", titles(posts))
	}
}

func TestListPublicPostsFilters(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	author := newTestProfile(t, db, "alice")
	ctx := context.Background()

	mustCreate(t, svc, author.ID, CreateInput{
		Title: "Intro to Go", Content: "a", Summary: "Generics explained",
		Tags: []string{"go", "tutorial"}, Published: true,
	})
	mustCreate(t, svc, author.ID, CreateInput{
		Title: "Cooking pasta", Content: "b",
		Tags: []string{"food"}, Published: true,
	})

	posts, err := svc.ListPublicPosts(ctx, ListFilter{SearchTerm: "GENERICS"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(posts) != 1 || posts[0].Title != "Intro to Go" {
		t.Errorf("summary search = %v, want [Intro to Go]", titles(posts))
	}

	posts, err = svc.ListPublicPosts(ctx, ListFilter{Tag: "food"})
	if err != nil {
		t.Fatalf("tag filter: %v", err)
	}
	if len(posts) != 1 || posts[0].Title != "Cooking pasta" {
		t.Errorf("tag filter = %v, want [Cooking pasta]", titles(posts))
	}

	// Filters are AND-combined.
	posts, err = svc.ListPublicPosts(ctx, ListFilter{SearchTerm: "go", Tag: "food"})
	if err != nil {
		t.Fatalf("combined filter: %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("combined filter = %v, want empty", titles(posts))
	}
}

func TestGetPostBySlugVisibility(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	author := newTestProfile(t, db, "alice")
	follower := newTestProfile(t, db, "bob")
	stranger := newTestProfile(t, db, "carol")
	ctx := context.Background()

	private := mustCreate(t, svc, author.ID, CreateInput{
		Title: "Private", Content: "x", Published: true, Visibility: models.VisibilityPrivate,
	})
	circle := mustCreate(t, svc, author.ID, CreateInput{
		Title: "Circle", Content: "x", Published: true, Visibility: models.VisibilityFollowers,
	})
	draft := mustCreate(t, svc, author.ID, CreateInput{
		Title: "Draft", Content: "x", Published: false,
	})

	if err := db.Create(&models.Follow{
		FollowerID: follower.ID, FolloweeID: author.ID, Status: models.FollowStatusAccepted,
	}).Error; err != nil {
		t.Fatalf("seed follow: %v", err)
	}

	// Author always sees their own posts, drafts included.
	for _, slug := range []string{private.Slug, circle.Slug, draft.Slug} {
		if _, err := svc.GetPostBySlug(ctx, slug, author.ID); err != nil {
			t.Errorf("author denied own post %q: %v", slug, err)
		}
	}

	// Private is not-found for everyone else, follower included.
	for _, viewer := range []string{follower.ID, stranger.ID, ""} {
		if _, err := svc.GetPostBySlug(ctx, private.Slug, viewer); !apperr.IsKind(err, apperr.KindNotFound) {
			t.Errorf("private post for viewer %q: got %v, want not-found", viewer, err)
		}
	}

	// Followers-only: accepted follower sees it, stranger and anonymous don't.
	if _, err := svc.GetPostBySlug(ctx, circle.Slug, follower.ID); err != nil {
		t.Errorf("accepted follower denied followers-only post: %v", err)
	}
	if _, err := svc.GetPostBySlug(ctx, circle.Slug, stranger.ID); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("stranger on followers-only post: got %v, want not-found", err)
	}

	// Missing slug and denied access are indistinguishable.
	_, missingErr := svc.GetPostBySlug(ctx, "no-such-slug", stranger.ID)
	_, deniedErr := svc.GetPostBySlug(ctx, private.Slug, stranger.ID)
	if missingErr == nil || deniedErr == nil || missingErr.Error() != deniedErr.Error() {
		t.Errorf("missing (%v) and denied (%v) must be identical", missingErr, deniedErr)
	}
}

func TestGetPostBySlugPendingFollowDenied(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	author := newTestProfile(t, db, "alice")
	pending := newTestProfile(t, db, "bob")
	ctx := context.Background()

	circle := mustCreate(t, svc, author.ID, CreateInput{
		Title: "Circle", Content: "x", Published: true, Visibility: models.VisibilityFollowers,
	})
	if err := db.Create(&models.Follow{
		FollowerID: pending.ID, FolloweeID: author.ID, Status: models.FollowStatusPending,
	}).Error; err != nil {
		t.Fatalf("seed follow: %v", err)
	}

	if _, err := svc.GetPostBySlug(ctx, circle.Slug, pending.ID); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("pending follower on followers-only post: got %v, want not-found", err)
	}
}

func TestListPostsByAuthor(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	author := newTestProfile(t, db, "alice")
	follower := newTestProfile(t, db, "bob")
	stranger := newTestProfile(t, db, "carol")
	ctx := context.Background()

	mustCreate(t, svc, author.ID, CreateInput{Title: "Public", Content: "x", Published: true})
	mustCreate(t, svc, author.ID, CreateInput{Title: "Circle", Content: "x", Published: true, Visibility: models.VisibilityFollowers})
	mustCreate(t, svc, author.ID, CreateInput{Title: "Private", Content: "x", Published: true, Visibility: models.VisibilityPrivate})
	mustCreate(t, svc, author.ID, CreateInput{Title: "Draft", Content: "x", Published: false})

	if err := db.Create(&models.Follow{
		FollowerID: follower.ID, FolloweeID: author.ID, Status: models.FollowStatusAccepted,
	}).Error; err != nil {
		t.Fatalf("seed follow: %v", err)
	}

	owner, err := svc.ListPostsByAuthor(ctx, author.ID, author.ID)
	if err != nil {
		t.Fatalf("owner list: %v", err)
	}
	if len(owner) != 4 {
		t.Errorf("owner sees %v, want all 4", titles(owner))
	}

	asFollower, err := svc.ListPostsByAuthor(ctx, author.ID, follower.ID)
	if err != nil {
		t.Fatalf("follower list: %v", err)
	}
	if len(asFollower) != 2 {
		t.Errorf("follower sees %v, want public + followers", titles(asFollower))
	}

	asStranger, err := svc.ListPostsByAuthor(ctx, author.ID, stranger.ID)
	if err != nil {
		t.Fatalf("stranger list: %v", err)
	}
	if len(asStranger) != 1 || asStranger[0].Title != "Public" {
		t.Errorf("stranger sees %v, want only Public", titles(asStranger))
	}
}

func TestUpdateAndDeleteAuthorization(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	author := newTestProfile(t, db, "alice")
	other := newTestProfile(t, db, "bob")
	ctx := context.Background()

	post := mustCreate(t, svc, author.ID, CreateInput{Title: "Mine", Content: "x", Published: true})

	title := "Stolen"
	if _, _, err := svc.UpdatePost(ctx, post.ID, other.ID, UpdateInput{Title: &title}); !apperr.IsKind(err, apperr.KindAuthorization) {
		t.Errorf("update by non-author: got %v, want authorization error", err)
	}
	if err := svc.DeletePost(ctx, post.ID, other.ID); !apperr.IsKind(err, apperr.KindAuthorization) {
		t.Errorf("delete by non-author: got %v, want authorization error", err)
	}
	if _, _, err := svc.UpdatePost(ctx, "missing", author.ID, UpdateInput{Title: &title}); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("update missing: got %v, want not-found", err)
	}

	updated, _, err := svc.UpdatePost(ctx, post.ID, author.ID, UpdateInput{Title: &title})
	if err != nil {
		t.Fatalf("author update: %v", err)
	}
	if updated.Title != "Stolen" {
		t.Errorf("title = %q after update", updated.Title)
	}
	if updated.Slug != post.Slug {
		t.Errorf("slug changed on update: %q -> %q", post.Slug, updated.Slug)
	}
	if !updated.UpdatedAt.After(post.UpdatedAt) && !updated.UpdatedAt.Equal(post.UpdatedAt) {
		t.Errorf("updated_at went backwards")
	}

	if err := svc.DeletePost(ctx, post.ID, author.ID); err != nil {
		t.Fatalf("author delete: %v", err)
	}
	if err := svc.DeletePost(ctx, post.ID, author.ID); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("delete twice: got %v, want not-found", err)
	}
}

func TestUpdateReportsPublishTransition(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	author := newTestProfile(t, db, "alice")
	ctx := context.Background()

	post := mustCreate(t, svc, author.ID, CreateInput{Title: "Draft", Content: "x", Published: false})

	published := true
	_, becamePublished, err := svc.UpdatePost(ctx, post.ID, author.ID, UpdateInput{Published: &published})
	if err != nil {
		t.Fatalf("publish update: %v", err)
	}
	if !becamePublished {
		t.Error("draft -> published should be reported as a transition")
	}

	// Publishing an already-published post is not a transition.
	_, becamePublished, err = svc.UpdatePost(ctx, post.ID, author.ID, UpdateInput{Published: &published})
	if err != nil {
		t.Fatalf("repeat publish update: %v", err)
	}
	if becamePublished {
		t.Error("published -> published reported as a transition")
	}

	// Nor is an unrelated edit to a published post.
	title := "Renamed"
	_, becamePublished, err = svc.UpdatePost(ctx, post.ID, author.ID, UpdateInput{Title: &title})
	if err != nil {
		t.Fatalf("title update: %v", err)
	}
	if becamePublished {
		t.Error("title-only update reported as a publish transition")
	}
}

func mustCreate(t *testing.T, svc *Service, authorID string, in CreateInput) *models.Post {
	t.Helper()
	post, err := svc.CreatePost(context.Background(), authorID, in)
	if err != nil {
		t.Fatalf("create post %q: %v", in.Title, err)
	}
	return post
}

func titles(posts []models.Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.Title
	}
	return out
}
