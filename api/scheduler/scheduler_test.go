package scheduler_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/linesmerrill/rider-docs-api/api"
	"github.com/linesmerrill/rider-docs-api/api/scheduler"
	"github.com/linesmerrill/rider-docs-api/models"
)

type counter struct {
	mock.Mock
}

func (c *counter) CountByStatus(ctx context.Context, status models.DocumentStatus) (int64, error) {
	ret := c.Called(ctx, status)
	return ret.Get(0).(int64), ret.Error(1)
}

func TestPendingDigestSetsGauge(t *testing.T) {
	c := &counter{}
	c.On("CountByStatus", mock.Anything, models.StatusPending).Return(int64(7), nil)

	s := scheduler.NewScheduler(c, "")
	pending, err := s.PendingDigest()

	require.NoError(t, err)
	assert.Equal(t, int64(7), pending)
	assert.Equal(t, float64(7), testutil.ToFloat64(api.PendingDocuments))
	c.AssertExpectations(t)
}

func TestPendingDigestError(t *testing.T) {
	api.PendingDocuments.Set(3)
	c := &counter{}
	c.On("CountByStatus", mock.Anything, models.StatusPending).Return(int64(0), errors.New("mocked-error"))

	_, err := scheduler.NewScheduler(c, "").PendingDigest()

	assert.EqualError(t, err, "mocked-error")
	assert.Equal(t, float64(3), testutil.ToFloat64(api.PendingDocuments))
}

func TestStartRejectsBadSchedule(t *testing.T) {
	s := scheduler.NewScheduler(&counter{}, "not a schedule")
	assert.Error(t, s.Start())
}

func TestStartStop(t *testing.T) {
	s := scheduler.NewScheduler(&counter{}, "@every 1h")
	require.NoError(t, s.Start())
	s.Stop()
	assert.Equal(t, "@every 1h", s.Schedule)
}
