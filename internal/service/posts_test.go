package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohits-web03/blogd/internal/events"
	"github.com/rohits-web03/blogd/internal/models"
)

func TestCreateAndGetRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	userID := env.signup(t, "a@x.com", "A", "password1")

	created, err := env.posts.Create(userID, PostInput{
		Title:    "Hello World",
		Content:  "Some content",
		ImageURL: "images/pic.png",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, userID, created.Creator.ID)
	assert.Equal(t, "A", created.Creator.Name)
	assert.NotEmpty(t, created.CreatedAt)

	fetched, err := env.posts.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, fetched.Title)
	assert.Equal(t, created.Content, fetched.Content)
	assert.Equal(t, created.ImageURL, fetched.ImageURL)
	assert.Equal(t, created.Creator.ID, fetched.Creator.ID)
}

func TestCreateValidationListsEveryViolation(t *testing.T) {
	env := newTestEnv(t)
	userID := env.signup(t, "a@x.com", "A", "password1")

	_, err := env.posts.Create(userID, PostInput{Title: "Hi", Content: "No"})
	se := requireKind(t, err, KindValidation)
	assert.Contains(t, se.Fields, "title is invalid")
	assert.Contains(t, se.Fields, "content is invalid")
}

func TestCreateRejectsUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.posts.Create(uuid.NewString(), PostInput{
		Title:   "Hello World",
		Content: "Some content",
	})
	se := requireKind(t, err, KindValidation)
	assert.Equal(t, "invalid user", se.Message)
}

func TestSignupLoginCreateListScenario(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Register("a@x.com", "A", "password1")
	require.NoError(t, err)

	login, err := env.auth.Login("a@x.com", "password1")
	require.NoError(t, err)
	userID, _, ok := env.tokens.Verify(login.Token)
	require.True(t, ok)

	_, err = env.posts.Create(userID, PostInput{Title: "Hello World", Content: "Some content"})
	require.NoError(t, err)

	page, err := env.posts.List(1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.TotalPosts)
	require.Len(t, page.Posts, 1)
	assert.Equal(t, "Hello World", page.Posts[0].Title)
}

func TestNonOwnerCannotMutate(t *testing.T) {
	env := newTestEnv(t)
	ownerID := env.signup(t, "a@x.com", "A", "password1")
	otherID := env.signup(t, "b@x.com", "B", "password2")

	post, err := env.posts.Create(ownerID, PostInput{Title: "Hello World", Content: "Some content"})
	require.NoError(t, err)

	_, err = env.posts.Update(otherID, post.ID, PostInput{Title: "Hijacked!", Content: "Changed it"})
	requireKind(t, err, KindForbidden)

	err = env.posts.Delete(otherID, post.ID)
	requireKind(t, err, KindForbidden)

	// Store state is untouched.
	unchanged, err := env.posts.Get(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello World", unchanged.Title)
	assert.Equal(t, "Some content", unchanged.Content)
}

func TestUpdateReplacesImageExactlyOnce(t *testing.T) {
	env := newTestEnv(t)
	userID := env.signup(t, "a@x.com", "A", "password1")

	post, err := env.posts.Create(userID, PostInput{
		Title:    "Hello World",
		Content:  "Some content",
		ImageURL: "images/old.png",
	})
	require.NoError(t, err)

	updated, err := env.posts.Update(userID, post.ID, PostInput{
		Title:    "Hello Again",
		Content:  "More content",
		ImageURL: "images/new.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "images/new.png", updated.ImageURL)

	require.Eventually(t, func() bool {
		return len(env.store.Removed()) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"images/old.png"}, env.store.Removed())
}

func TestUpdateWithoutImageKeepsCurrent(t *testing.T) {
	env := newTestEnv(t)
	userID := env.signup(t, "a@x.com", "A", "password1")

	post, err := env.posts.Create(userID, PostInput{
		Title:    "Hello World",
		Content:  "Some content",
		ImageURL: "images/keep.png",
	})
	require.NoError(t, err)

	updated, err := env.posts.Update(userID, post.ID, PostInput{
		Title:   "Hello Again",
		Content: "More content",
	})
	require.NoError(t, err)
	assert.Equal(t, "images/keep.png", updated.ImageURL)

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, env.store.Removed())
}

func TestDeleteRemovesPostImageAndOwnerReference(t *testing.T) {
	env := newTestEnv(t)
	userID := env.signup(t, "a@x.com", "A", "password1")

	post, err := env.posts.Create(userID, PostInput{
		Title:    "Hello World",
		Content:  "Some content",
		ImageURL: "images/pic.png",
	})
	require.NoError(t, err)

	ownerBefore, err := env.auth.CurrentUser(userID)
	require.NoError(t, err)
	assert.Equal(t, []string{post.ID}, ownerBefore.Posts)

	require.NoError(t, env.posts.Delete(userID, post.ID))

	_, err = env.posts.Get(post.ID)
	requireKind(t, err, KindNotFound)

	require.Eventually(t, func() bool {
		return len(env.store.Removed()) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"images/pic.png"}, env.store.Removed())

	user, err := env.auth.CurrentUser(userID)
	require.NoError(t, err)
	assert.Empty(t, user.Posts, "no dangling post references after delete")
}

func TestMutationsPublishEvents(t *testing.T) {
	env := newTestEnv(t)
	userID := env.signup(t, "a@x.com", "A", "password1")

	ch, cancel := env.bus.Subscribe()
	defer cancel()

	post, err := env.posts.Create(userID, PostInput{Title: "Hello World", Content: "Some content"})
	require.NoError(t, err)

	ev := <-ch
	require.Equal(t, events.ActionNewPost, ev.Action)
	payload, ok := ev.Post.(*PostResponse)
	require.True(t, ok)
	assert.Equal(t, post.ID, payload.ID)
	assert.Equal(t, "A", payload.Creator.Name)

	_, err = env.posts.Update(userID, post.ID, PostInput{Title: "Hello Again", Content: "More content"})
	require.NoError(t, err)
	ev = <-ch
	assert.Equal(t, events.ActionUpdatePost, ev.Action)

	require.NoError(t, env.posts.Delete(userID, post.ID))
	ev = <-ch
	require.Equal(t, events.ActionDeletePost, ev.Action)
	assert.Equal(t, post.ID, ev.Post)
}

func TestListPaginatesNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	userID := env.signup(t, "a@x.com", "A", "password1")

	owner, err := env.users.ByID(uuid.MustParse(userID))
	require.NoError(t, err)

	base := time.Now().Add(-time.Hour)
	for i := 1; i <= 5; i++ {
		post := &models.Post{
			Title:     fmt.Sprintf("post-%d", i),
			Content:   "Some content",
			CreatorID: owner.ID,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, env.postRepo.Create(post))
	}

	page, err := env.posts.List(2)
	require.NoError(t, err)
	assert.EqualValues(t, 5, page.TotalPosts)
	require.Len(t, page.Posts, 2)
	// Descending creation time: page 2 holds the 3rd and 4th newest.
	assert.Equal(t, "post-3", page.Posts[0].Title)
	assert.Equal(t, "post-2", page.Posts[1].Title)
}

func TestListDefaultsToFirstPage(t *testing.T) {
	env := newTestEnv(t)
	userID := env.signup(t, "a@x.com", "A", "password1")

	_, err := env.posts.Create(userID, PostInput{Title: "Hello World", Content: "Some content"})
	require.NoError(t, err)

	page, err := env.posts.List(0)
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)
}

func TestGetMissingPost(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.posts.Get(uuid.NewString())
	requireKind(t, err, KindNotFound)

	_, err = env.posts.Get("not-a-uuid")
	requireKind(t, err, KindNotFound)
}
