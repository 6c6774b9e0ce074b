package datasource

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// SourceType represents the provider format of a payload
type SourceType string

const (
	// APISportsSourceType reads API-Sports NBA statistics
	APISportsSourceType SourceType = APISportsSourceName
	// GenericSourceType reads game logs in normalized field names
	GenericSourceType SourceType = GenericSourceName
	// OddsAPISourceType reads The Odds API event odds
	OddsAPISourceType SourceType = OddsAPISourceName
)

// Factory creates decoders by provider name
type Factory struct {
	logger *logrus.Logger
}

// NewFactory creates a new decoder factory
func NewFactory(logger *logrus.Logger) *Factory {
	return &Factory{logger: logger}
}

// GameLogDecoder returns the decoder for a game log provider
func (f *Factory) GameLogDecoder(sourceType SourceType) (GameLogDecoder, error) {
	switch sourceType {
	case APISportsSourceType:
		return NewAPISportsDecoder(), nil
	case GenericSourceType, "":
		return NewGenericDecoder(), nil
	default:
		return nil, fmt.Errorf("unknown game log source: %s", sourceType)
	}
}

// OddsDecoder returns the decoder for an odds provider
func (f *Factory) OddsDecoder(sourceType SourceType) (OddsDecoder, error) {
	switch sourceType {
	case OddsAPISourceType, "":
		return NewOddsAPIDecoder(), nil
	default:
		return nil, fmt.Errorf("unknown odds source: %s", sourceType)
	}
}

// DecodeGameLog picks a decoder and logs how many rows it produced
func (f *Factory) DecodeGameLog(sourceType SourceType, data []byte) ([]GameEntry, error) {
	dec, err := f.GameLogDecoder(sourceType)
	if err != nil {
		return nil, err
	}
	entries, err := dec.DecodeGameLog(data)
	if err != nil {
		return nil, err
	}
	if f.logger != nil {
		f.logger.WithFields(logrus.Fields{
			"source": dec.Name(),
			"rows":   len(entries),
		}).Debug("Decoded game log")
	}
	return entries, nil
}

// DecodeOdds picks a decoder and logs how many events it produced
func (f *Factory) DecodeOdds(sourceType SourceType, data []byte) ([]OddsEvent, error) {
	dec, err := f.OddsDecoder(sourceType)
	if err != nil {
		return nil, err
	}
	events, err := dec.DecodeOdds(data)
	if err != nil {
		return nil, err
	}
	if f.logger != nil {
		f.logger.WithFields(logrus.Fields{
			"source": dec.Name(),
			"events": len(events),
		}).Debug("Decoded odds payload")
	}
	return events, nil
}
