package storage

import (
	"encoding/json"
	"errors"

	"ordo/internal/model"
)

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

var ErrVersionMismatch = errors.New("record version mismatch")

func EncodeSnapshot(s model.PopulationSnapshot) ([]byte, error) {
	s.SchemaVersion = CurrentSchemaVersion
	s.CodecVersion = CurrentCodecVersion
	return json.Marshal(s)
}

func DecodeSnapshot(data []byte) (model.PopulationSnapshot, error) {
	var snapshot model.PopulationSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return model.PopulationSnapshot{}, err
	}
	if err := checkVersion(snapshot.VersionedRecord); err != nil {
		return model.PopulationSnapshot{}, err
	}
	return snapshot, nil
}

func EncodeBehaviors(behaviors []model.NovelBehavior) ([]byte, error) {
	stamped := make([]model.NovelBehavior, len(behaviors))
	copy(stamped, behaviors)
	for i := range stamped {
		stamped[i].SchemaVersion = CurrentSchemaVersion
		stamped[i].CodecVersion = CurrentCodecVersion
	}
	return json.Marshal(stamped)
}

func DecodeBehaviors(data []byte) ([]model.NovelBehavior, error) {
	var behaviors []model.NovelBehavior
	if err := json.Unmarshal(data, &behaviors); err != nil {
		return nil, err
	}
	for _, b := range behaviors {
		if err := checkVersion(b.VersionedRecord); err != nil {
			return nil, err
		}
	}
	return behaviors, nil
}

func EncodeMetrics(m model.GenerationalMetrics) ([]byte, error) {
	m.SchemaVersion = CurrentSchemaVersion
	m.CodecVersion = CurrentCodecVersion
	return json.Marshal(m)
}

func DecodeMetrics(data []byte) (model.GenerationalMetrics, error) {
	var metrics model.GenerationalMetrics
	if err := json.Unmarshal(data, &metrics); err != nil {
		return model.GenerationalMetrics{}, err
	}
	if err := checkVersion(metrics.VersionedRecord); err != nil {
		return model.GenerationalMetrics{}, err
	}
	return metrics, nil
}

func EncodeSpeciation(r model.SpeciationResult) ([]byte, error) {
	r.SchemaVersion = CurrentSchemaVersion
	r.CodecVersion = CurrentCodecVersion
	return json.Marshal(r)
}

func DecodeSpeciation(data []byte) (model.SpeciationResult, error) {
	var result model.SpeciationResult
	if err := json.Unmarshal(data, &result); err != nil {
		return model.SpeciationResult{}, err
	}
	if err := checkVersion(result.VersionedRecord); err != nil {
		return model.SpeciationResult{}, err
	}
	return result, nil
}

func checkVersion(v model.VersionedRecord) error {
	if v.SchemaVersion != CurrentSchemaVersion || v.CodecVersion != CurrentCodecVersion {
		return ErrVersionMismatch
	}
	return nil
}
