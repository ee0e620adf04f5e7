package app

import (
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/furniture/internal/service/ordering"
)

func TestInitKafkaPublisher_NoBrokers(t *testing.T) {
	publisher, producer, err := initKafkaPublisher(nil, "", log.WithField("test", t.Name()))
	require.NoError(t, err)
	require.Nil(t, producer)
	require.IsType(t, ordering.NoopPublisher{}, publisher)
}

func TestCloseKafka_NilProducer(t *testing.T) {
	require.NoError(t, closeKafka(nil, log.WithField("test", t.Name())))
}
