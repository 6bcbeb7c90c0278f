package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"ordo/internal/model"
)

func TestSnapshotCodecStampsVersions(t *testing.T) {
	snapshot := model.PopulationSnapshot{
		Timestamp:  time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		AliveCount: 5,
		DeadCount:  2,
		TotalCount: 7,
	}
	payload, err := EncodeSnapshot(snapshot)
	require.NoError(t, err)

	decoded, err := DecodeSnapshot(payload)
	require.NoError(t, err)
	require.Equal(t, CurrentSchemaVersion, decoded.SchemaVersion)
	require.Equal(t, 7, decoded.TotalCount)
}

func TestDecodeRejectsVersionMismatch(t *testing.T) {
	_, err := DecodeSnapshot([]byte(`{"schema_version":99,"codec_version":1}`))
	require.ErrorIs(t, err, ErrVersionMismatch)

	_, err = DecodeMetrics([]byte(`{"schema_version":1,"codec_version":0}`))
	require.ErrorIs(t, err, ErrVersionMismatch)
}

func TestBehaviorsCodecRoundTrip(t *testing.T) {
	behaviors := []model.NovelBehavior{
		{Name: "arbitrage", DiscoveredBy: "agent-1", Effectiveness: 0.8, AdoptionRate: 40},
	}
	payload, err := EncodeBehaviors(behaviors)
	require.NoError(t, err)

	decoded, err := DecodeBehaviors(payload)
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	require.Equal(t, "arbitrage", decoded[0].Name)
	require.Equal(t, CurrentCodecVersion, decoded[0].CodecVersion)
}
