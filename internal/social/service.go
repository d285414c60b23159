package social

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Praveenkumarspk1/blog-wise/internal/apperr"
	"github.com/Praveenkumarspk1/blog-wise/internal/models"
)

// Service owns follow relationships and notification delivery.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// RequestFollow creates a pending follow request from follower to followee
// and notifies the followee. At most one relationship may exist per pair,
// in either state.
func (s *Service) RequestFollow(ctx context.Context, followerID, followeeID string) (*models.Follow, error) {
	if followerID == followeeID {
		return nil, apperr.Validation("cannot follow yourself")
	}

	var followee models.Profile
	if err := s.db.WithContext(ctx).First(&followee, "id = ?", followeeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}

	var existing models.Follow
	err := s.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		First(&existing).Error
	if err == nil {
		return nil, apperr.Conflict("follow relationship already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	follow := models.Follow{
		FollowerID: followerID,
		FolloweeID: followeeID,
		Status:     models.FollowStatusPending,
	}
	if err := s.db.WithContext(ctx).Create(&follow).Error; err != nil {
		return nil, err
	}

	var follower models.Profile
	if err := s.db.WithContext(ctx).First(&follower, "id = ?", followerID).Error; err != nil {
		return nil, err
	}
	notification := models.Notification{
		RecipientID: followeeID,
		Type:        models.NotificationFollowRequest,
		Message:     fmt.Sprintf("%s wants to follow you", follower.Username),
		RelatedID:   follow.ID,
	}
	if err := s.db.WithContext(ctx).Create(&notification).Error; err != nil {
		return nil, err
	}

	return &follow, nil
}

// RespondToFollow lets the followee accept or reject a pending request.
func (s *Service) RespondToFollow(ctx context.Context, relationshipID, followeeID string, accept bool) (*models.Follow, error) {
	var follow models.Follow
	if err := s.db.WithContext(ctx).First(&follow, "id = ?", relationshipID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("follow request not found")
		}
		return nil, err
	}
	if follow.FolloweeID != followeeID {
		return nil, apperr.Authorization("not the recipient of this follow request")
	}

	status := models.FollowStatusRejected
	if accept {
		status = models.FollowStatusAccepted
	}
	if err := s.db.WithContext(ctx).Model(&follow).Update("status", status).Error; err != nil {
		return nil, err
	}
	follow.Status = status
	return &follow, nil
}

// Unfollow removes the relationship between the two users, in either
// direction of initiation. Either endpoint may sever it.
func (s *Service) Unfollow(ctx context.Context, userID, otherID string) error {
	var follow models.Follow
	err := s.db.WithContext(ctx).
		Where("(follower_id = ? AND followee_id = ?) OR (follower_id = ? AND followee_id = ?)",
			userID, otherID, otherID, userID).
		First(&follow).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("follow relationship not found")
		}
		return err
	}
	return s.db.WithContext(ctx).Delete(&follow).Error
}

// ListPendingRequests returns the pending follow requests addressed to the
// user, newest first.
func (s *Service) ListPendingRequests(ctx context.Context, userID string) ([]models.Follow, error) {
	var follows []models.Follow
	err := s.db.WithContext(ctx).Preload("Follower").
		Where("followee_id = ? AND status = ?", userID, models.FollowStatusPending).
		Order("created_at desc").
		Find(&follows).Error
	return follows, err
}

// ListFollowing returns the profiles the user follows (accepted only).
func (s *Service) ListFollowing(ctx context.Context, userID string) ([]models.Profile, error) {
	var follows []models.Follow
	err := s.db.WithContext(ctx).Preload("Followee").
		Where("follower_id = ? AND status = ?", userID, models.FollowStatusAccepted).
		Find(&follows).Error
	if err != nil {
		return nil, err
	}
	profiles := make([]models.Profile, 0, len(follows))
	for _, f := range follows {
		profiles = append(profiles, f.Followee)
	}
	return profiles, nil
}

// ListFollowers returns the profiles with an accepted follow toward the user.
func (s *Service) ListFollowers(ctx context.Context, userID string) ([]models.Profile, error) {
	var follows []models.Follow
	err := s.db.WithContext(ctx).Preload("Follower").
		Where("followee_id = ? AND status = ?", userID, models.FollowStatusAccepted).
		Find(&follows).Error
	if err != nil {
		return nil, err
	}
	profiles := make([]models.Profile, 0, len(follows))
	for _, f := range follows {
		profiles = append(profiles, f.Follower)
	}
	return profiles, nil
}

// NotifyNewPost fans a new_post notification out to every accepted follower
// of the author.
func (s *Service) NotifyNewPost(ctx context.Context, post *models.Post) error {
	var author models.Profile
	if err := s.db.WithContext(ctx).First(&author, "id = ?", post.AuthorID).Error; err != nil {
		return err
	}
	followers, err := s.ListFollowers(ctx, post.AuthorID)
	if err != nil {
		return err
	}
	for _, follower := range followers {
		notification := models.Notification{
			RecipientID: follower.ID,
			Type:        models.NotificationNewPost,
			Message:     fmt.Sprintf("%s published a new post: %s", author.Username, post.Title),
			RelatedID:   post.ID,
		}
		if err := s.db.WithContext(ctx).Create(&notification).Error; err != nil {
			return err
		}
	}
	return nil
}

// ListNotifications returns the user's notifications, newest first.
func (s *Service) ListNotifications(ctx context.Context, userID string) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.db.WithContext(ctx).
		Where("recipient_id = ?", userID).
		Order("created_at desc").
		Find(&notifications).Error
	return notifications, err
}

// UnreadCount counts the user's unread notifications. It is always derived
// from the stored rows, never tracked separately.
func (s *Service) UnreadCount(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_id = ? AND read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkNotificationRead marks one of the user's notifications as read.
// Marking an already-read notification is a no-op, not an error.
func (s *Service) MarkNotificationRead(ctx context.Context, notificationID, userID string) error {
	var notification models.Notification
	if err := s.db.WithContext(ctx).First(&notification, "id = ?", notificationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("notification not found")
		}
		return err
	}
	if notification.RecipientID != userID {
		return apperr.Authorization("not the recipient of this notification")
	}
	if notification.Read {
		return nil
	}
	return s.db.WithContext(ctx).Model(&notification).Update("read", true).Error
}

// MarkAllRead marks every unread notification for the user as read.
func (s *Service) MarkAllRead(ctx context.Context, userID string) error {
	return s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_id = ? AND read = ?", userID, false).
		Update("read", true).Error
}
