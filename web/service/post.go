package service

import (
	"time"

	"minibook/config"
	"minibook/database"
	"minibook/database/model"
	"minibook/logger"

	"github.com/google/uuid"
)

// PostService implements post CRUD, the per-user quota and like toggling.
type PostService struct{}

// CountByUser returns how many posts the user currently owns.
func (s *PostService) CountByUser(userId string) (int64, error) {
	db := database.GetDB()
	var count int64
	err := db.Model(model.Post{}).
		Where("user_id = ?", userId).
		Count(&count).Error
	return count, err
}

// Create persists a new post for the user. The quota is checked with a plain
// read-then-write; two concurrent creates can both pass the check. That race
// is inherited from the original design and left as is.
func (s *PostService) Create(userId string, photo string, about string) (*model.Post, error) {
	count, err := s.CountByUser(userId)
	if err != nil {
		return nil, err
	}
	if count >= int64(config.GetMaxPostsPerUser()) {
		return nil, ErrQuotaExceeded
	}

	post := &model.Post{
		Id:           uuid.NewString(),
		Photo:        photo,
		About:        about,
		CreatedAt:    time.Now(),
		LikedUserIds: []string{},
		UserId:       userId,
	}

	db := database.GetDB()
	if err := db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// All returns every post in storage order with the owner resolved on each.
// Posts whose owner has vanished keep a nil User; templates fall back to an
// anonymous display.
func (s *PostService) All() ([]*model.Post, error) {
	db := database.GetDB()

	var posts []*model.Post
	if err := db.Model(model.Post{}).Find(&posts).Error; err != nil {
		return nil, err
	}
	if err := s.resolveOwners(posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// ByUser returns the posts owned by the user, in storage order.
func (s *PostService) ByUser(userId string) ([]*model.Post, error) {
	db := database.GetDB()

	var posts []*model.Post
	err := db.Model(model.Post{}).
		Where("user_id = ?", userId).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	if err := s.resolveOwners(posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Get returns a single post with its owner resolved.
func (s *PostService) Get(id string) (*model.Post, error) {
	db := database.GetDB()

	post := &model.Post{}
	err := db.Model(model.Post{}).
		Where("id = ?", id).
		First(post).
		Error
	if database.IsNotFound(err) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	if err := s.resolveOwners([]*model.Post{post}); err != nil {
		return nil, err
	}
	return post, nil
}

// Update replaces the photo and caption of a post.
func (s *PostService) Update(id string, photo string, about string) error {
	db := database.GetDB()
	result := db.Model(model.Post{}).
		Where("id = ?", id).
		Updates(map[string]any{"photo": photo, "about": about})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the post record.
func (s *PostService) Delete(id string) error {
	db := database.GetDB()
	result := db.Where("id = ?", id).Delete(&model.Post{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	logger.Debugf("deleted post %s", id)
	return nil
}

// ToggleLike adds the user to the post's like set when absent and removes
// them when present. Two toggles always restore the original state.
func (s *PostService) ToggleLike(postId string, userId string) (*model.Post, error) {
	db := database.GetDB()

	post := &model.Post{}
	err := db.Model(model.Post{}).
		Where("id = ?", postId).
		First(post).
		Error
	if database.IsNotFound(err) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}

	liked := make([]string, 0, len(post.LikedUserIds)+1)
	found := false
	for _, id := range post.LikedUserIds {
		if id == userId {
			found = true
			continue
		}
		liked = append(liked, id)
	}
	if !found {
		liked = append(liked, userId)
	}
	post.LikedUserIds = liked

	// Save goes through the struct so the JSON serializer applies to the
	// like set.
	if err := db.Save(post).Error; err != nil {
		return nil, err
	}
	if err := s.resolveOwners([]*model.Post{post}); err != nil {
		return nil, err
	}
	return post, nil
}

// resolveOwners attaches each post's owning user, fetching every referenced
// owner in one query.
func (s *PostService) resolveOwners(posts []*model.Post) error {
	if len(posts) == 0 {
		return nil
	}

	idSet := make(map[string]struct{}, len(posts))
	ids := make([]string, 0, len(posts))
	for _, post := range posts {
		if _, seen := idSet[post.UserId]; !seen {
			idSet[post.UserId] = struct{}{}
			ids = append(ids, post.UserId)
		}
	}

	db := database.GetDB()
	var users []*model.User
	if err := db.Model(model.User{}).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return err
	}

	byId := make(map[string]*model.User, len(users))
	for _, user := range users {
		byId[user.Id] = user
	}
	for _, post := range posts {
		post.User = byId[post.UserId]
	}
	return nil
}
