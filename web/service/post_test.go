package service

import (
	"fmt"
	"testing"

	"minibook/database/model"

	"github.com/stretchr/testify/require"
)

func newUser(t *testing.T, email string) *model.User {
	t.Helper()
	userService := UserService{}
	user, err := userService.Register(registerParams(email))
	require.NoError(t, err)
	return user
}

func newPost(t *testing.T, userId string, about string) *model.Post {
	t.Helper()
	postService := PostService{}
	post, err := postService.Create(userId, "https://img.example/"+about+".jpg", about)
	require.NoError(t, err)
	return post
}

func TestCreatePost(t *testing.T) {
	setupDB(t)
	user := newUser(t, "alice@example.com")
	postService := PostService{}

	post, err := postService.Create(user.Id, "https://img.example/p.jpg", "first photo")
	require.NoError(t, err)
	require.NotEmpty(t, post.Id)
	require.Equal(t, user.Id, post.UserId)
	require.Empty(t, post.LikedUserIds)
	require.False(t, post.CreatedAt.IsZero())
}

// The quota is enforced with a read-then-write, so two concurrent creates
// can both observe count=2 and both succeed. That race is inherited from the
// original design; only the sequential behavior is asserted here.
func TestCreatePostQuota(t *testing.T) {
	setupDB(t)
	user := newUser(t, "alice@example.com")
	postService := PostService{}

	for i := 0; i < 3; i++ {
		newPost(t, user.Id, fmt.Sprintf("photo-%d", i))
	}

	_, err := postService.Create(user.Id, "https://img.example/over.jpg", "one too many")
	require.ErrorIs(t, err, ErrQuotaExceeded)

	count, err := postService.CountByUser(user.Id)
	require.NoError(t, err)
	require.EqualValues(t, 3, count)
}

func TestDeleteFreesQuotaSlot(t *testing.T) {
	setupDB(t)
	user := newUser(t, "alice@example.com")
	postService := PostService{}

	var last *model.Post
	for i := 0; i < 3; i++ {
		last = newPost(t, user.Id, fmt.Sprintf("photo-%d", i))
	}

	require.NoError(t, postService.Delete(last.Id))

	_, err := postService.Create(user.Id, "https://img.example/again.jpg", "room again")
	require.NoError(t, err)
}

func TestFeedResolvesOwners(t *testing.T) {
	setupDB(t)
	alice := newUser(t, "alice@example.com")
	bob := newUser(t, "bob@example.com")
	newPost(t, alice.Id, "from alice")
	newPost(t, bob.Id, "from bob")

	postService := PostService{}
	posts, err := postService.All()
	require.NoError(t, err)
	require.Len(t, posts, 2)

	// Storage order, owners attached.
	require.Equal(t, "from alice", posts[0].About)
	require.NotNil(t, posts[0].User)
	require.Equal(t, alice.Id, posts[0].User.Id)
	require.NotNil(t, posts[1].User)
	require.Equal(t, bob.Id, posts[1].User.Id)
}

func TestByUser(t *testing.T) {
	setupDB(t)
	alice := newUser(t, "alice@example.com")
	bob := newUser(t, "bob@example.com")
	newPost(t, alice.Id, "one")
	newPost(t, bob.Id, "two")
	newPost(t, alice.Id, "three")

	postService := PostService{}
	posts, err := postService.ByUser(alice.Id)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	for _, post := range posts {
		require.Equal(t, alice.Id, post.UserId)
	}
}

func TestUpdatePost(t *testing.T) {
	setupDB(t)
	user := newUser(t, "alice@example.com")
	post := newPost(t, user.Id, "before")

	postService := PostService{}
	err := postService.Update(post.Id, "https://img.example/new.jpg", "after")
	require.NoError(t, err)

	updated, err := postService.Get(post.Id)
	require.NoError(t, err)
	require.Equal(t, "after", updated.About)
	require.Equal(t, "https://img.example/new.jpg", updated.Photo)
	require.Equal(t, user.Id, updated.UserId)

	require.ErrorIs(t, postService.Update("missing-id", "x", "y"), ErrNotFound)
}

func TestDeleteRemovesFromListings(t *testing.T) {
	setupDB(t)
	user := newUser(t, "alice@example.com")
	keep := newPost(t, user.Id, "keep")
	gone := newPost(t, user.Id, "gone")

	postService := PostService{}
	require.NoError(t, postService.Delete(gone.Id))

	own, err := postService.ByUser(user.Id)
	require.NoError(t, err)
	require.Len(t, own, 1)
	require.Equal(t, keep.Id, own[0].Id)

	feed, err := postService.All()
	require.NoError(t, err)
	require.Len(t, feed, 1)
	require.Equal(t, keep.Id, feed[0].Id)

	_, err = postService.Get(gone.Id)
	require.ErrorIs(t, err, ErrNotFound)

	require.ErrorIs(t, postService.Delete(gone.Id), ErrNotFound)
}

func TestToggleLike(t *testing.T) {
	setupDB(t)
	alice := newUser(t, "alice@example.com")
	bob := newUser(t, "bob@example.com")
	post := newPost(t, alice.Id, "likeable")

	postService := PostService{}

	liked, err := postService.ToggleLike(post.Id, bob.Id)
	require.NoError(t, err)
	require.True(t, liked.LikedBy(bob.Id))
	require.Equal(t, 1, liked.LikeCount())

	// Toggling again reverts to the original state.
	unliked, err := postService.ToggleLike(post.Id, bob.Id)
	require.NoError(t, err)
	require.False(t, unliked.LikedBy(bob.Id))
	require.Equal(t, 0, unliked.LikeCount())

	// The toggle never duplicates a liker.
	_, err = postService.ToggleLike(post.Id, bob.Id)
	require.NoError(t, err)
	_, err = postService.ToggleLike(post.Id, alice.Id)
	require.NoError(t, err)
	final, err := postService.Get(post.Id)
	require.NoError(t, err)
	require.Equal(t, 2, final.LikeCount())
	require.True(t, final.LikedBy(bob.Id))
	require.True(t, final.LikedBy(alice.Id))
}

func TestToggleLikeMissingPost(t *testing.T) {
	setupDB(t)
	user := newUser(t, "alice@example.com")

	postService := PostService{}
	_, err := postService.ToggleLike("missing-id", user.Id)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestToggleLikeRoundTripEvenCount(t *testing.T) {
	setupDB(t)
	alice := newUser(t, "alice@example.com")
	bob := newUser(t, "bob@example.com")
	post := newPost(t, alice.Id, "ping-pong")

	postService := PostService{}
	for i := 0; i < 6; i++ {
		_, err := postService.ToggleLike(post.Id, bob.Id)
		require.NoError(t, err)
	}

	final, err := postService.Get(post.Id)
	require.NoError(t, err)
	require.Equal(t, 0, final.LikeCount())
}
