package notification

import (
	"context"
	"errors"
	"testing"

	"firebase.google.com/go/v4/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []*messaging.Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, message *messaging.Message) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, message)

	return "projects/p/messages/1", nil
}

func TestFirebaseService_NotifyOperators(t *testing.T) {
	sender := &fakeSender{}
	svc := newFirebaseService(sender, "operators")

	err := svc.NotifyOperators(context.Background(), "New order", "Tea x2 for Lan", map[string]string{"order_id": "-O1"})
	require.NoError(t, err)

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, "operators", msg.Topic)
	assert.Empty(t, msg.Token)
	assert.Equal(t, "New order", msg.Notification.Title)
	assert.Equal(t, "Tea x2 for Lan", msg.Notification.Body)
	assert.Equal(t, map[string]string{"order_id": "-O1"}, msg.Data)
}

func TestFirebaseService_NotifyOperatorsError(t *testing.T) {
	sendErr := errors.New("quota exceeded")
	svc := newFirebaseService(&fakeSender{err: sendErr}, "operators")

	err := svc.NotifyOperators(context.Background(), "t", "b", nil)

	assert.ErrorIs(t, err, sendErr)
}

func TestNewFirebaseService_RequiresTopic(t *testing.T) {
	_, err := NewFirebaseService(context.Background(), "", "", "")

	assert.Error(t, err)
}
