package portfolio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nfino-trader/internal/models"
)

func TestCreateAlert(t *testing.T) {
	l := newTestLedger()

	alert, err := l.CreateAlert("RELIANCE", models.AlertFieldLTP, models.AlertOpGTE, 1550, "")
	require.NoError(t, err)

	assert.Equal(t, models.AlertStatusActive, alert.Status)
	assert.Equal(t, models.AlertKindOnly, alert.Kind)
	assert.WithinDuration(t, time.Now().Add(models.AlertValidity), alert.ExpiresAt, time.Minute)
	require.Len(t, l.Alerts(), 1)
}

func TestCreateAlertRejectsUnknownField(t *testing.T) {
	l := newTestLedger()

	_, err := l.CreateAlert("RELIANCE", "bid_price", models.AlertOpGTE, 1550, "")
	assert.Error(t, err)
	assert.Empty(t, l.Alerts())
}

func TestCreateAlertRejectsUnknownOperator(t *testing.T) {
	l := newTestLedger()

	_, err := l.CreateAlert("RELIANCE", models.AlertFieldLTP, "!=", 1550, "")
	assert.Error(t, err)
	assert.Empty(t, l.Alerts())
}

func TestDeleteAlert(t *testing.T) {
	l := newTestLedger()
	alert, err := l.CreateAlert("RELIANCE", models.AlertFieldLTP, models.AlertOpGTE, 1550, "")
	require.NoError(t, err)

	assert.True(t, l.DeleteAlert(alert.ID))
	assert.False(t, l.DeleteAlert(alert.ID))
}

func TestAlertFiresWhenConditionHolds(t *testing.T) {
	l := newTestLedger()
	// RELIANCE LTP is 1500.
	_, err := l.CreateAlert("RELIANCE", models.AlertFieldLTP, models.AlertOpGTE, 1500, "")
	require.NoError(t, err)

	events := l.EvaluateAlerts(time.Now())
	require.Len(t, events, 1)
	assert.Equal(t, 1500.0, events[0].Value)
	assert.Equal(t, models.AlertStatusTriggered, events[0].Alert.Status)
}

func TestAlertFiresAtMostOnce(t *testing.T) {
	l := newTestLedger()
	_, err := l.CreateAlert("RELIANCE", models.AlertFieldLTP, models.AlertOpGT, 100, "")
	require.NoError(t, err)

	require.Len(t, l.EvaluateAlerts(time.Now()), 1)
	for i := 0; i < 5; i++ {
		assert.Empty(t, l.EvaluateAlerts(time.Now()))
	}
}

func TestAlertDoesNotFireWhenConditionFails(t *testing.T) {
	l := newTestLedger()
	_, err := l.CreateAlert("RELIANCE", models.AlertFieldLTP, models.AlertOpGT, 9999, "")
	require.NoError(t, err)

	assert.Empty(t, l.EvaluateAlerts(time.Now()))
	assert.Equal(t, models.AlertStatusActive, l.Alerts()[0].Status)
}

func TestAlertFieldAccess(t *testing.T) {
	l := newTestLedger()

	cases := []struct {
		field models.AlertField
		op    models.AlertOperator
		value float64
	}{
		{models.AlertFieldOpen, models.AlertOpEQ, 1485},
		{models.AlertFieldHigh, models.AlertOpGTE, 1510},
		{models.AlertFieldLow, models.AlertOpLTE, 1478},
		{models.AlertFieldPrevClose, models.AlertOpEQ, 1480},
		{models.AlertFieldChange, models.AlertOpGT, 0},
		{models.AlertFieldVolume, models.AlertOpGTE, 1_000_000},
	}
	for _, c := range cases {
		_, err := l.CreateAlert("RELIANCE", c.field, c.op, c.value, "")
		require.NoError(t, err)
	}

	events := l.EvaluateAlerts(time.Now())
	assert.Len(t, events, len(cases))
}

func TestExpiredAlertMarkedWithoutFiring(t *testing.T) {
	l := newTestLedger()
	_, err := l.CreateAlert("RELIANCE", models.AlertFieldLTP, models.AlertOpGT, 100, "")
	require.NoError(t, err)

	future := time.Now().Add(models.AlertValidity + time.Hour)
	assert.Empty(t, l.EvaluateAlerts(future))
	assert.Equal(t, models.AlertStatusExpired, l.Alerts()[0].Status)
}

func TestATOAlertNotifiesWithoutTrading(t *testing.T) {
	l := newTestLedger()
	_, err := l.CreateAlert("RELIANCE", models.AlertFieldLTP, models.AlertOpGT, 100, models.AlertKindATO)
	require.NoError(t, err)

	events := l.EvaluateAlerts(time.Now())
	require.Len(t, events, 1)
	assert.Equal(t, models.AlertKindATO, events[0].Alert.Kind)
	assert.Empty(t, l.Orders())
	assert.Empty(t, l.Positions())
}

func TestAlertSkipsMissingQuote(t *testing.T) {
	l := New(quoteMap{}, Config{})
	_, err := l.CreateAlert("RELIANCE", models.AlertFieldLTP, models.AlertOpGT, 100, "")
	require.NoError(t, err)

	assert.Empty(t, l.EvaluateAlerts(time.Now()))
	assert.Equal(t, models.AlertStatusActive, l.Alerts()[0].Status)
}
