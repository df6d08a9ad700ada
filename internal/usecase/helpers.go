package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"instala_control/internal/domain/calendar"
	"instala_control/internal/domain/entities"
	"instala_control/internal/usecase/interfaces"
)

var ErrInvalidUserID = errors.New("invalid user id")

func requireUser(userID string) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", ErrInvalidUserID
	}
	return userID, nil
}

func isISODate(s string) bool {
	_, err := time.Parse(calendar.DateLayout, s)
	return err == nil
}

func isClock(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil && len(s) == 5
}

// publishChange tells live subscribers that a collection changed. A failed
// notification never fails the write that caused it.
func publishChange(ctx context.Context, feed interfaces.IChangeFeed, userID string, c entities.Collection) {
	if feed == nil {
		return
	}
	ev := entities.ChangeEvent{UserID: userID, Collection: c, At: time.Now().UTC()}
	if err := feed.Publish(ctx, ev); err != nil {
		log.Printf("[feed][usecase] publish failed user_id=%s collection=%s err=%v", userID, c, err)
	}
}
