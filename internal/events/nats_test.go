package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	v1 "github.com/freightpulse/freightpulse/internal/api/v1"
	"github.com/freightpulse/freightpulse/internal/core/calculation"
	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// setupTestNATS creates an embedded NATS server for testing
func setupTestNATS(t *testing.T) string {
	t.Helper()

	ns, err := server.NewServer(&server.Options{
		Host: "127.0.0.1",
		Port: -1, // Random port
	})
	require.NoError(t, err)

	go ns.Start()
	if !ns.ReadyForConnections(5 * time.Second) {
		t.Fatal("NATS server not ready")
	}

	t.Cleanup(func() {
		ns.Shutdown()
		ns.WaitForShutdown()
	})
	return ns.ClientURL()
}

func TestNATSPublisher_Publish(t *testing.T) {
	url := setupTestNATS(t)

	sub, err := nats.Connect(url)
	require.NoError(t, err)
	defer sub.Close()

	msgs := make(chan *nats.Msg, 4)
	subscription, err := sub.ChanSubscribe("freightpulse.analysis.>", msgs)
	require.NoError(t, err)
	defer subscription.Unsubscribe() //nolint:errcheck
	require.NoError(t, sub.Flush())

	pub, err := NewNATSPublisher(url, "")
	require.NoError(t, err)
	defer pub.Close()

	calculatedAt := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	result := &v1.AnalysisResult{
		ID:               "a-1",
		UserID:           "user-1",
		TimePeriodID:     "march",
		Status:           v1.StatusCompleted,
		PercentageChange: decimal.NewNullDecimal(decimal.RequireFromString("40.0000")),
		TrendDirection:   calculation.TrendIncreasing,
		CalculatedAt:     &calculatedAt,
	}
	require.NoError(t, pub.Publish(context.Background(), FromResult(result, calculatedAt)))

	failed := &v1.AnalysisResult{ID: "a-2", Status: v1.StatusFailed, ErrorMessage: "No freight data available for analysis"}
	require.NoError(t, pub.Publish(context.Background(), FromResult(failed, calculatedAt)))

	var got []AnalysisEvent
	subjects := map[string]bool{}
	for i := 0; i < 2; i++ {
		select {
		case msg := <-msgs:
			var evt AnalysisEvent
			require.NoError(t, json.Unmarshal(msg.Data, &evt))
			got = append(got, evt)
			subjects[msg.Subject] = true
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for event")
		}
	}

	require.True(t, subjects["freightpulse.analysis.completed"])
	require.True(t, subjects["freightpulse.analysis.failed"])
	require.Equal(t, "a-1", got[0].AnalysisID)
	require.Equal(t, TypeCompleted, got[0].Type)
	require.Equal(t, "40", got[0].PercentageChange.Decimal.String())
	require.Equal(t, calculation.TrendIncreasing, got[0].TrendDirection)
	require.Equal(t, TypeFailed, got[1].Type)
	require.Equal(t, "No freight data available for analysis", got[1].ErrorMessage)
}

func TestNATSPublisher_Subject(t *testing.T) {
	p := NewNATSPublisherWithConn(nil, "custom.prefix")
	require.Equal(t, "custom.prefix.failed", p.Subject(TypeFailed))
	require.NoError(t, p.Close())
}

func TestNewNATSPublisher_Unreachable(t *testing.T) {
	_, err := NewNATSPublisher("nats://127.0.0.1:1", "")
	require.ErrorContains(t, err, "failed to connect to NATS")
}

func TestNopPublisher(t *testing.T) {
	require.NoError(t, NopPublisher{}.Publish(context.Background(), AnalysisEvent{}))
}
