package log

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_WithContext(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	base, hook := test.NewNullLogger()
	l := &logger{entry: logrus.NewEntry(base)}

	ctx, correlationID := WithCorrelationID(context.Background())
	ctx = WithRun(ctx, "run-1", "1234567890")

	l.WithContext(ctx).WithField("sweep", 2).Info("varredura")

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, correlationID, entry.Data["correlation_id"])
	assert.Equal(t, "run-1", entry.Data["run_id"])
	assert.Equal(t, "1234567890", entry.Data["account_id"])
	assert.Equal(t, 2, entry.Data["sweep"])
	assert.Equal(t, correlationID, GetCorrelationID(ctx))
}

func TestLogger_DevelopmentFiltersFields(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	base, hook := test.NewNullLogger()
	l := &logger{entry: logrus.NewEntry(base)}

	l.WithFields(Fields{"user_agent": "curl", "path": "/healthcheck"}).Info("requisição")

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "/healthcheck", entry.Data["path"])
	assert.NotContains(t, entry.Data, "user_agent")
}
