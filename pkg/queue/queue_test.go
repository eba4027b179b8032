package queue

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	env := Message[AssetFinalizedPayload]{
		Header: NewEventHeader(TopicAssetFinalized, WithProducer("momentvault"), WithTraceID("trace-1")),
		Payload: AssetFinalizedPayload{
			GalleryID:      "g1",
			Created:        3,
			CounterApplied: true,
		},
	}

	b, err := Encode(env)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	got, err := Decode[AssetFinalizedPayload](b)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if got.Header.Topic != TopicAssetFinalized {
		t.Errorf("topic = %q, want %q", got.Header.Topic, TopicAssetFinalized)
	}

	if got.Header.Producer != "momentvault" || got.Header.TraceID != "trace-1" {
		t.Errorf("header = %+v", got.Header)
	}

	if got.Header.Version != PayloadVersionV1 {
		t.Errorf("version = %q, want %q", got.Header.Version, PayloadVersionV1)
	}

	if got.Payload.GalleryID != "g1" || got.Payload.Created != 3 || !got.Payload.CounterApplied {
		t.Errorf("payload = %+v", got.Payload)
	}
}

func TestNewWatermillMessageMetadata(t *testing.T) {
	msg, err := NewWatermillMessage(TopicGalleryCreated, GalleryCreatedPayload{
		Gallery: GalleryRef{GalleryID: "g2", Name: "party"},
	}, WithProducer("momentvault"))
	if err != nil {
		t.Fatalf("new message: %v", err)
	}

	if msg.Metadata.Get("topic") != TopicGalleryCreated {
		t.Errorf("metadata topic = %q", msg.Metadata.Get("topic"))
	}

	if msg.Metadata.Get("producer") != "momentvault" {
		t.Errorf("metadata producer = %q", msg.Metadata.Get("producer"))
	}

	env, err := ParseWatermillMessage[GalleryCreatedPayload](msg)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if env.Payload.Gallery.GalleryID != "g2" {
		t.Errorf("gallery id = %q, want g2", env.Payload.Gallery.GalleryID)
	}
}

func TestPublishParseThroughPubSub(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ch, err := pubSub.Subscribe(ctx, TopicArchiveBuilt)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	payload := ArchiveBuiltPayload{
		GalleryID:   "g3",
		ArchiveName: "summer-wedding.zip",
		Entries:     30,
		Bytes:       1 << 20,
	}

	if err := PublishArchiveBuilt(pubSub, payload, WithProducer("momentvault")); err != nil {
		t.Fatalf("publish: %v", err)
	}

	select {
	case msg := <-ch:
		env, err := ParseArchiveBuilt(msg)
		if err != nil {
			t.Fatalf("parse: %v", err)
		}

		msg.Ack()

		if env.Payload != payload {
			t.Errorf("payload = %+v, want %+v", env.Payload, payload)
		}

		if env.Header.Topic != TopicArchiveBuilt {
			t.Errorf("topic = %q", env.Header.Topic)
		}
	case <-ctx.Done():
		t.Fatal("no message received")
	}
}

func TestPublishParseGalleryEvents(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ch, err := pubSub.Subscribe(ctx, TopicGalleryExpired)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	payload := GalleryExpiredPayload{
		Gallery:     GalleryRef{GalleryID: "g4", Name: "expo"},
		TotalAssets: 12,
	}

	if err := PublishGalleryExpired(pubSub, payload); err != nil {
		t.Fatalf("publish: %v", err)
	}

	select {
	case msg := <-ch:
		env, err := ParseGalleryExpired(msg)
		if err != nil {
			t.Fatalf("parse: %v", err)
		}

		msg.Ack()

		if env.Payload.Gallery.GalleryID != "g4" || env.Payload.TotalAssets != 12 {
			t.Errorf("payload = %+v", env.Payload)
		}
	case <-ctx.Done():
		t.Fatal("no message received")
	}
}
