package service

import (
	"testing"

	"blogd/web/policy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePost_Roles(t *testing.T) {
	setupDB(t)
	svc := NewPostService()

	admin := seedUser(t, "admin", policy.RoleAdmin)
	author := seedUser(t, "author", policy.RoleAuthor)
	reader := seedUser(t, "reader", policy.RoleReader)

	post, err := svc.CreatePost(actorOf(author), "Hello", "First post")
	require.NoError(t, err)
	assert.Equal(t, author.Id, post.AuthorId)

	_, err = svc.CreatePost(actorOf(admin), "Admin post", "Content")
	require.NoError(t, err)

	_, err = svc.CreatePost(actorOf(reader), "Nope", "Content")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCreatePost_Validation(t *testing.T) {
	setupDB(t)
	svc := NewPostService()
	author := seedUser(t, "author", policy.RoleAuthor)

	_, err := svc.CreatePost(actorOf(author), "  ", "content")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.CreatePost(actorOf(author), "title", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdatePost_Ownership(t *testing.T) {
	setupDB(t)
	svc := NewPostService()

	admin := seedUser(t, "admin", policy.RoleAdmin)
	author := seedUser(t, "author", policy.RoleAuthor)
	rival := seedUser(t, "rival", policy.RoleAuthor)
	reader := seedUser(t, "reader", policy.RoleReader)

	post, err := svc.CreatePost(actorOf(author), "Original", "Content")
	require.NoError(t, err)

	// Owner edits.
	updated, err := svc.UpdatePost(actorOf(author), post.Id, "Edited", "New content")
	require.NoError(t, err)
	assert.Equal(t, "Edited", updated.Title)
	assert.Equal(t, author.Id, updated.AuthorId)

	// Another author may not.
	_, err = svc.UpdatePost(actorOf(rival), post.Id, "Hijack", "x")
	assert.ErrorIs(t, err, ErrForbidden)

	// Readers may not.
	_, err = svc.UpdatePost(actorOf(reader), post.Id, "Hijack", "x")
	assert.ErrorIs(t, err, ErrForbidden)

	// Admin bypasses ownership.
	_, err = svc.UpdatePost(actorOf(admin), post.Id, "Moderated", "x")
	assert.NoError(t, err)
}

func TestDeletePost(t *testing.T) {
	setupDB(t)
	svc := NewPostService()

	author := seedUser(t, "author", policy.RoleAuthor)
	rival := seedUser(t, "rival", policy.RoleAuthor)

	post, err := svc.CreatePost(actorOf(author), "Doomed", "Content")
	require.NoError(t, err)
	_, err = svc.AddComment(actorOf(rival), post.Id, "a comment")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeletePost(actorOf(rival), post.Id), ErrForbidden)

	require.NoError(t, svc.DeletePost(actorOf(author), post.Id))
	_, err = svc.GetPost(post.Id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestComments_OrderAndReads(t *testing.T) {
	setupDB(t)
	svc := NewPostService()

	author := seedUser(t, "author", policy.RoleAuthor)
	reader := seedUser(t, "reader", policy.RoleReader)

	post, err := svc.CreatePost(actorOf(author), "Post", "Content")
	require.NoError(t, err)

	first, err := svc.AddComment(actorOf(reader), post.Id, "first")
	require.NoError(t, err)
	second, err := svc.AddComment(actorOf(author), post.Id, "second")
	require.NoError(t, err)

	got, err := svc.GetPost(post.Id)
	require.NoError(t, err)
	require.Len(t, got.Comments, 2)
	assert.Equal(t, first.Id, got.Comments[0].Id)
	assert.Equal(t, second.Id, got.Comments[1].Id)

	posts, err := svc.ListPosts()
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Len(t, posts[0].Comments, 2)
}

func TestAddComment_MissingPost(t *testing.T) {
	setupDB(t)
	svc := NewPostService()
	reader := seedUser(t, "reader", policy.RoleReader)

	_, err := svc.AddComment(actorOf(reader), 42, "into the void")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteComment_AllowSet(t *testing.T) {
	setupDB(t)
	svc := NewPostService()

	admin := seedUser(t, "admin", policy.RoleAdmin)
	postAuthor := seedUser(t, "author", policy.RoleAuthor)
	commenter := seedUser(t, "commenter", policy.RoleReader)
	bystander := seedUser(t, "bystander", policy.RoleReader)

	post, err := svc.CreatePost(actorOf(postAuthor), "Post", "Content")
	require.NoError(t, err)

	addComment := func() int {
		c, err := svc.AddComment(actorOf(commenter), post.Id, "hot take")
		require.NoError(t, err)
		return c.Id
	}

	// A bystander may not delete someone else's comment.
	id := addComment()
	assert.ErrorIs(t, svc.DeleteComment(actorOf(bystander), post.Id, id), ErrForbidden)

	// The comment's author may.
	require.NoError(t, svc.DeleteComment(actorOf(commenter), post.Id, id))

	// The post's author may.
	id = addComment()
	require.NoError(t, svc.DeleteComment(actorOf(postAuthor), post.Id, id))

	// Any admin may.
	id = addComment()
	require.NoError(t, svc.DeleteComment(actorOf(admin), post.Id, id))

	// Deleting twice is a 404.
	assert.ErrorIs(t, svc.DeleteComment(actorOf(admin), post.Id, id), ErrNotFound)
}
