package alerts

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestFanoutDisabledWhenEmpty(t *testing.T) {
	fanout := NewFanout()

	assert.False(t, fanout.IsEnabled())
	assert.ErrorIs(t, fanout.Alert(context.Background(), "k", &Alert{}), ErrWebhookDisabled)
}

func TestFanoutSkipsDisabledReceivers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	disabled := NewMockAlertService(ctrl)
	disabled.EXPECT().IsEnabled().Return(false).AnyTimes()

	enabled := NewMockAlertService(ctrl)
	enabled.EXPECT().IsEnabled().Return(true).AnyTimes()
	enabled.EXPECT().Alert(gomock.Any(), "k", gomock.Any()).Return(nil)

	fanout := NewFanout(disabled, enabled)

	assert.True(t, fanout.IsEnabled())
	assert.NoError(t, fanout.Alert(context.Background(), "k", &Alert{Title: "t"}))
}

func TestFanoutReportsDeliveryFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	failErr := errors.New("unreachable")

	failing := NewMockAlertService(ctrl)
	failing.EXPECT().IsEnabled().Return(true).AnyTimes()
	failing.EXPECT().Alert(gomock.Any(), gomock.Any(), gomock.Any()).Return(failErr)

	cooled := NewMockAlertService(ctrl)
	cooled.EXPECT().IsEnabled().Return(true).AnyTimes()
	cooled.EXPECT().Alert(gomock.Any(), gomock.Any(), gomock.Any()).Return(ErrWebhookCooldown)

	fanout := NewFanout(failing, cooled)

	// Cooldown is not a failure; the delivery error is.
	assert.ErrorIs(t, fanout.Alert(context.Background(), "k", &Alert{Title: "t"}), failErr)
}
