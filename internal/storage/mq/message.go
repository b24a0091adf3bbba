package mq

import "github.com/twmb/franz-go/pkg/kgo"

// Message is a broker record as produced by the relay and seen by consumer handlers.
type Message struct {
	Topic   string
	Key     string
	Headers map[string]string
	Payload []byte
}

func (m Message) toRecord() *kgo.Record {
	headers := make([]kgo.RecordHeader, 0, len(m.Headers))
	for k, v := range m.Headers {
		headers = append(headers, kgo.RecordHeader{
			Key:   k,
			Value: []byte(v),
		})
	}

	r := &kgo.Record{
		Topic:   m.Topic,
		Value:   m.Payload,
		Headers: headers,
	}
	if m.Key != "" {
		r.Key = []byte(m.Key)
	}

	return r
}

func messageFromRecord(rec *kgo.Record) Message {
	headers := make(map[string]string, len(rec.Headers))
	for _, h := range rec.Headers {
		headers[h.Key] = string(h.Value)
	}

	return Message{
		Topic:   rec.Topic,
		Key:     string(rec.Key),
		Headers: headers,
		Payload: rec.Value,
	}
}
