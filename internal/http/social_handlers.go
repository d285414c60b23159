package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type RespondFollowInput struct {
	Accept *bool `json:"accept" binding:"required"`
}

// RequestFollow sends a follow request to the user in the path.
func (e *Env) RequestFollow(c *gin.Context) {
	follow, err := e.Social.RequestFollow(c.Request.Context(), viewerID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	e.broadcastMessage(WsMessage{Type: "notification", Data: gin.H{"recipient_id": follow.FolloweeID}})
	c.JSON(http.StatusCreated, follow)
}

// RespondToFollow accepts or rejects a pending follow request addressed to
// the caller.
func (e *Env) RespondToFollow(c *gin.Context) {
	var input RespondFollowInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	follow, err := e.Social.RespondToFollow(c.Request.Context(), c.Param("id"), viewerID(c), *input.Accept)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, follow)
}

// Unfollow severs the relationship with the user in the path.
func (e *Env) Unfollow(c *gin.Context) {
	if err := e.Social.Unfollow(c.Request.Context(), viewerID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Unfollowed"})
}

// ListPendingRequests returns the caller's incoming pending follow requests.
func (e *Env) ListPendingRequests(c *gin.Context) {
	follows, err := e.Social.ListPendingRequests(c.Request.Context(), viewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, follows)
}

// ListFollowing returns the profiles the caller follows.
func (e *Env) ListFollowing(c *gin.Context) {
	profiles, err := e.Social.ListFollowing(c.Request.Context(), viewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profiles)
}

// ListFollowers returns the caller's accepted followers.
func (e *Env) ListFollowers(c *gin.Context) {
	profiles, err := e.Social.ListFollowers(c.Request.Context(), viewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profiles)
}

// ListNotifications returns the caller's notifications plus the derived
// unread count.
func (e *Env) ListNotifications(c *gin.Context) {
	notifications, err := e.Social.ListNotifications(c.Request.Context(), viewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	unread, err := e.Social.UnreadCount(c.Request.Context(), viewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications, "unread_count": unread})
}

// MarkNotificationRead marks one notification as read; repeating the call
// is a no-op.
func (e *Env) MarkNotificationRead(c *gin.Context) {
	if err := e.Social.MarkNotificationRead(c.Request.Context(), c.Param("id"), viewerID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked read"})
}

// MarkAllNotificationsRead marks every unread notification as read.
func (e *Env) MarkAllNotificationsRead(c *gin.Context) {
	if err := e.Social.MarkAllRead(c.Request.Context(), viewerID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked read"})
}
