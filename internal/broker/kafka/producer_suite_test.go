package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/cekresi/satwa/internal/broker/messages"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const satwaTopic = "satwa.event"

type writerMock struct {
	mock.Mock
}

func (m *writerMock) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

type ProducerSuite struct {
	suite.Suite
	wm *writerMock
	p  *Producer

	sent []kafka.Message
}

func (s *ProducerSuite) SetupTest() {
	s.wm = &writerMock{}
	s.p = newProducerWithWriter(s.wm)
	s.sent = nil
}

// capture запоминает отправленные сообщения для проверки содержимого.
func (s *ProducerSuite) capture() {
	s.wm.On("WriteMessages", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			s.sent = append(s.sent, args.Get(1).([]kafka.Message)...)
		}).
		Return(nil)
}

func (s *ProducerSuite) TestNewProducer_NotNil() {
	p := NewProducer([]string{"localhost:0"})
	s.Require().NotNil(p)
	s.Require().NoError(p.Close())
}

func (s *ProducerSuite) TestPublish_ProgressEvent() {
	s.capture()
	id := uuid.New()
	ev := messages.SatwaEvent{
		Type:       messages.ProgressAdded,
		SatwaID:    id,
		KodeResi:   "AX1",
		Status:     "Tiba di Tujuan",
		Lokasi:     "Medan",
		OccurredAt: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
	}
	value, err := ev.Encode()
	s.Require().NoError(err)

	s.Require().NoError(s.p.Publish(context.Background(), satwaTopic, ev.Key(), value))
	s.Require().Len(s.sent, 1)

	msg := s.sent[0]
	s.Require().Equal(satwaTopic, msg.Topic)
	s.Require().Equal(id.String(), string(msg.Key))

	var wire map[string]any
	s.Require().NoError(json.Unmarshal(msg.Value, &wire))
	s.Require().Equal("satwa.progress_added", wire["type"])
	s.Require().Equal(id.String(), wire["satwa_id"])
	s.Require().Equal("AX1", wire["kode_resi"])
	s.Require().Equal("Tiba di Tujuan", wire["status"])
	s.Require().Equal("Medan", wire["lokasi"])
	s.Require().Equal("2024-01-01T10:00:00Z", wire["occurred_at"])
}

func (s *ProducerSuite) TestPublish_DeletedEventOmitsLokasi() {
	s.capture()
	ev := messages.SatwaEvent{Type: messages.SatwaDeleted, SatwaID: uuid.New(), KodeResi: "AX9"}
	value, err := ev.Encode()
	s.Require().NoError(err)

	s.Require().NoError(s.p.Publish(context.Background(), satwaTopic, ev.Key(), value))
	s.Require().Len(s.sent, 1)

	var wire map[string]any
	s.Require().NoError(json.Unmarshal(s.sent[0].Value, &wire))
	s.Require().NotContains(wire, "lokasi")
	s.Require().NotContains(wire, "status")
}

func (s *ProducerSuite) TestPublish_SameSatwaSameKey() {
	s.capture()
	id := uuid.New()
	for _, typ := range []string{messages.SatwaCreated, messages.SatwaStatusChanged} {
		ev := messages.SatwaEvent{Type: typ, SatwaID: id}
		value, err := ev.Encode()
		s.Require().NoError(err)
		s.Require().NoError(s.p.Publish(context.Background(), satwaTopic, ev.Key(), value))
	}
	s.Require().Len(s.sent, 2)
	s.Require().Equal(s.sent[0].Key, s.sent[1].Key)
}

func (s *ProducerSuite) TestPublish_ErrorWrapped() {
	s.wm.On("WriteMessages", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

	err := s.p.Publish(context.Background(), satwaTopic, []byte("k"), []byte("{}"))
	s.Require().Error(err)
	s.Require().Contains(err.Error(), "kafka publish")
	s.wm.AssertExpectations(s.T())
}

func (s *ProducerSuite) TestClose_WriterWithoutCloser() {
	s.Require().NoError(s.p.Close())
}

func TestProducerSuite(t *testing.T) {
	suite.Run(t, new(ProducerSuite))
}
