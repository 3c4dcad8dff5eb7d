package learner

import (
	"sync"

	"github.com/aziyat1977/Inter-1.1/internal/progress"
)

type NotificationKind string

const (
	KindLevelUp       NotificationKind = "level_up"
	KindBadgeUnlocked NotificationKind = "badge_unlocked"
	KindBattleOver    NotificationKind = "battle_over"
	KindFeedbackReady NotificationKind = "feedback_ready"
)

func (k NotificationKind) messageKey() string {
	switch k {
	case KindLevelUp:
		return "levelUp"
	case KindBadgeUnlocked:
		return "badgeUnlocked"
	case KindBattleOver:
		return "battleOver"
	case KindFeedbackReady:
		return "feedbackReady"
	}
	return string(k)
}

// Notification is a one-shot message for the host to show, such as a
// level-up banner.
type Notification struct {
	Kind       NotificationKind `json:"kind"`
	Message    string           `json:"message"`
	Level      int              `json:"level,omitempty"`
	LevelName  string           `json:"level_name,omitempty"`
	BadgeID    string           `json:"badge_id,omitempty"`
	FeedbackID string           `json:"feedback_id,omitempty"`
	Score      int              `json:"score,omitempty"`
	Correct    int              `json:"correct,omitempty"`
	Total      int              `json:"total,omitempty"`
}

func fromEvent(ev progress.Event) Notification {
	switch ev.Kind {
	case progress.EventLevelUp:
		return Notification{Kind: KindLevelUp, Level: ev.ToLevel, LevelName: ev.LevelName}
	default:
		return Notification{Kind: KindBadgeUnlocked, BadgeID: ev.BadgeID}
	}
}

type notifications struct {
	mu    sync.Mutex
	queue []Notification
}

func (n *notifications) push(note Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.queue = append(n.queue, note)
}

func (n *notifications) take() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := n.queue
	n.queue = nil
	return out
}
