package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"inkwell/pkg/logger"
)

func TestNewsletterSubscribe_Outcome(t *testing.T) {
	uc := NewNewsletterUseCase(newFakeNewsletterRepo(), logger.New())

	outcome, err := uc.Subscribe("reader@test.dev")
	assert.NoError(t, err)
	assert.Equal(t, OutcomeApplied, outcome)

	outcome, err = uc.Subscribe("reader@test.dev")
	assert.NoError(t, err)
	assert.Equal(t, OutcomeAlreadyInState, outcome)
}

func TestNewsletterUnsubscribe_UnknownEmailSucceeds(t *testing.T) {
	uc := NewNewsletterUseCase(newFakeNewsletterRepo(), logger.New())

	assert.NoError(t, uc.Unsubscribe("ghost@test.dev"))
}

func TestNewsletterResubscribeAfterUnsubscribe(t *testing.T) {
	uc := NewNewsletterUseCase(newFakeNewsletterRepo(), logger.New())

	_, err := uc.Subscribe("reader@test.dev")
	assert.NoError(t, err)
	assert.NoError(t, uc.Unsubscribe("reader@test.dev"))

	outcome, err := uc.Subscribe("reader@test.dev")
	assert.NoError(t, err)
	assert.Equal(t, OutcomeApplied, outcome)
}

func TestNewsletterListSubscribers(t *testing.T) {
	uc := NewNewsletterUseCase(newFakeNewsletterRepo(), logger.New())

	_, err := uc.Subscribe("a@test.dev")
	assert.NoError(t, err)
	_, err = uc.Subscribe("b@test.dev")
	assert.NoError(t, err)

	subs, err := uc.ListSubscribers(20, 0)
	assert.NoError(t, err)
	assert.Len(t, subs, 2)
}
