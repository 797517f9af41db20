package clients

//go:generate mockgen -source=notifications.go -destination=mock_notifications.go -package=clients

import (
	"context"

	"github.com/sirupsen/logrus"
)

type (
	ChannelName        string
	ChannelNotificator interface {
		Notify(ctx context.Context, channel ChannelName, msg string) error
	}

	// ChannelNotificationSvc publishes users API change events to the log.
	ChannelNotificationSvc struct {
		logger logrus.FieldLogger
	}
)

var (
	ChannelCreate ChannelName = "create"
	ChannelUpdate ChannelName = "update"
	ChannelDelete ChannelName = "delete"
)

func NewChannelNotificationSvc(l logrus.FieldLogger) *ChannelNotificationSvc {
	return &ChannelNotificationSvc{logger: l.WithField("component", "notifications")}
}

func (n *ChannelNotificationSvc) Notify(ctx context.Context, channel ChannelName, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n.logger.WithField("channel", channel).Debugf("send message: %s", msg)
	return nil
}
