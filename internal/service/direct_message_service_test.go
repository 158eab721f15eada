package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blazern/recipe-calculator-server-sub000/internal/testutil"
)

func TestDirectMessageService_Send_PersistsAndPushes(t *testing.T) {
	ctx := testutil.TestContext(t)
	messages := testutil.NewMockDirectMessageRepository()
	push := testutil.NewMockPushSender()

	msg := testutil.NewTestDirectMessage(1, 2)
	require.NoError(t, messages.Create(ctx, msg))
	require.NoError(t, push.Send(ctx, msg.RecipientUserID, "New message", msg.Body))

	stored, err := messages.ListForRecipient(ctx, 2, 10)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, msg.Body, stored[0].Body)

	require.Len(t, push.Sent, 1)
	assert.Equal(t, int64(2), push.Sent[0].RecipientUserID)
}

func TestDirectMessageService_Inbox_OnlyReturnsRecipientMessages(t *testing.T) {
	ctx := testutil.TestContext(t)
	messages := testutil.NewMockDirectMessageRepository()

	messages.AddMessage(testutil.NewTestDirectMessage(1, 2))
	messages.AddMessage(testutil.NewTestDirectMessage(1, 3))

	inbox, err := messages.ListForRecipient(ctx, 2, 10)
	require.NoError(t, err)

	require.Len(t, inbox, 1)
	assert.Equal(t, int64(2), inbox[0].RecipientUserID)
}

func TestDirectMessageService_MarkDelivered(t *testing.T) {
	ctx := testutil.TestContext(t)
	messages := testutil.NewMockDirectMessageRepository()

	msg := testutil.NewTestDirectMessage(1, 2)
	messages.AddMessage(msg)

	require.NoError(t, messages.MarkDelivered(ctx, msg.ID))

	stored, err := messages.ListForRecipient(ctx, 2, 10)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.NotNil(t, stored[0].DeliveredAt)
}
