package systems

import (
	"fmt"
	"image/color"

	"hades-rogue/ecs"
)

// MessageType defines different types of messages that can appear in the log
type MessageType int

const (
	// MessageTypeNormal is for standard game messages
	MessageTypeNormal MessageType = iota
	// MessageTypeCombat is for damage and deaths
	MessageTypeCombat
	// MessageTypeItem is for pickups and potions
	MessageTypeItem
	// MessageTypeAlert is for upgrades and the player's death
	MessageTypeAlert
)

// Message stores a log line with its type
type Message struct {
	Text string
	Type MessageType
}

// Color returns the color for the message based on its type
func (m Message) Color() color.RGBA {
	switch m.Type {
	case MessageTypeCombat:
		return color.RGBA{255, 100, 100, 255}
	case MessageTypeItem:
		return color.RGBA{100, 149, 237, 255}
	case MessageTypeAlert:
		return color.RGBA{255, 255, 0, 255}
	default:
		return color.RGBA{200, 200, 200, 255}
	}
}

// MessageLog stores game messages produced from registry events
type MessageLog struct {
	Messages    []Message
	MaxMessages int

	events *ecs.EventManager
	subs   []ecs.Subscription
}

// NewMessageLog creates a message log keeping the last maxMessages lines
func NewMessageLog(maxMessages int) *MessageLog {
	return &MessageLog{MaxMessages: maxMessages}
}

// Attach subscribes the log to the gameplay events of a registry
func (ml *MessageLog) Attach(events *ecs.EventManager) {
	ml.Detach()
	ml.events = events
	ml.subs = []ecs.Subscription{
		events.Subscribe(EventDamage, func(e ecs.Event) {
			d := e.(DamageEvent)
			ml.Add(fmt.Sprintf("#%d takes %.0f damage (%.0f hp left)", d.Target, d.Damage, d.Health), MessageTypeCombat)
		}),
		events.Subscribe(EventDeath, func(e ecs.Event) {
			d := e.(DeathEvent)
			if d.Player {
				ml.Add("You died", MessageTypeAlert)
				return
			}
			ml.Add(fmt.Sprintf("#%d dies", d.ID), MessageTypeCombat)
		}),
		events.Subscribe(EventUpgrade, func(e ecs.Event) {
			u := e.(UpgradeEvent)
			ml.Add(fmt.Sprintf("%s upgraded to level %d", u.Stat, u.Level), MessageTypeAlert)
		}),
		events.Subscribe(EventEffects, func(e ecs.Event) {
			f := e.(EffectsEvent)
			if f.Duration > 0 {
				ml.Add(fmt.Sprintf("%s boosted by %.0f for %.0fs", f.Stat, f.Value, f.Duration), MessageTypeItem)
				return
			}
			ml.Add(fmt.Sprintf("%s restored by %.0f", f.Stat, f.Value), MessageTypeItem)
		}),
		events.Subscribe(EventItemPickup, func(e ecs.Event) {
			p := e.(ItemPickupEvent)
			ml.Add(fmt.Sprintf("#%d picks up #%d", p.Owner, p.Item), MessageTypeItem)
		}),
	}
}

// Detach removes the log's subscriptions
func (ml *MessageLog) Detach() {
	if ml.events == nil {
		return
	}
	for _, sub := range ml.subs {
		ml.events.Unsubscribe(sub)
	}
	ml.events, ml.subs = nil, nil
}

// Add adds a message to the log
func (ml *MessageLog) Add(text string, typ MessageType) {
	ml.Messages = append(ml.Messages, Message{Text: text, Type: typ})

	if len(ml.Messages) > ml.MaxMessages {
		ml.Messages = ml.Messages[len(ml.Messages)-ml.MaxMessages:]
	}
}

// RecentMessages gets the n most recent messages, newest first
func (ml *MessageLog) RecentMessages(n int) []Message {
	n = min(n, len(ml.Messages))
	result := make([]Message, n)
	for i := range n {
		result[i] = ml.Messages[len(ml.Messages)-1-i]
	}
	return result
}

// Clear clears all messages
func (ml *MessageLog) Clear() {
	ml.Messages = nil
}
