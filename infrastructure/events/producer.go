package events

import (
	"context"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-orchestrator/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

//go:generate mockgen -source=producer.go -destination=mocks/mock_writer.go -package=mocks -exclude_interfaces=Publisher

// Publisher publica as transições de status das linhas
type Publisher interface {
	PublishTransition(ctx context.Context, transition domain.Transition) error
	Close() error
}

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publica transições em um tópico Kafka
type Producer struct {
	writer MessageWriter
}

func NewProducer(broker, topic string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(broker),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: false,
		},
	}
}

// NewProducerWithWriter monta um producer sobre um writer customizado (testes)
func NewProducerWithWriter(writer MessageWriter) *Producer {
	return &Producer{writer: writer}
}

// NewPublisher devolve o producer Kafka, ou um publisher que só registra no
// log quando nenhum broker foi configurado
func NewPublisher(broker, topic string) Publisher {
	if broker == "" {
		return LogPublisher{}
	}
	return NewProducer(broker, topic)
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

// PublishTransition usa a conta como chave para manter a ordem por conta
func (p *Producer) PublishTransition(ctx context.Context, transition domain.Transition) error {
	payload, err := json.Marshal(transition)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(transition.AccountID),
		Value: payload,
		Time:  time.Now().UTC(),
		Headers: []kafka.Header{
			{Key: "row_index", Value: []byte(strconv.Itoa(transition.RowIndex))},
		},
	}

	return p.writer.WriteMessages(ctx, msg)
}

type LogPublisher struct{}

func (LogPublisher) PublishTransition(_ context.Context, transition domain.Transition) error {
	logrus.WithFields(logrus.Fields{
		"run_id":     transition.RunID,
		"account_id": transition.AccountID,
		"row_index":  transition.RowIndex,
		"from":       transition.From,
		"to":         transition.To,
	}).Debug("events: transição de status")
	return nil
}

func (LogPublisher) Close() error {
	return nil
}
