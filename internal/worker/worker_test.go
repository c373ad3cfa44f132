package worker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBrokerList(t *testing.T) {
	assert.Equal(t, []string{"kafka-1:9092"}, brokerList("kafka-1:9092"))
	assert.Equal(t,
		[]string{"kafka-1:9092", "kafka-2:9092"},
		brokerList("kafka-1:9092, kafka-2:9092"))
	assert.Equal(t, []string{"kafka-1:9092"}, brokerList("kafka-1:9092,,"))
	assert.Nil(t, brokerList(""))
}
