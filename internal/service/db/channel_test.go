package db

import (
	"net/http"
	"strings"
	"testing"

	"github.com/solutions/seagulls/internal/protodef/errors"
	"github.com/solutions/seagulls/internal/protodef/form"
)

func TestChannelDeleteWithReferrers(t *testing.T) {
	f := newFixture(t)
	channel := f.channel(t, "Seagulls FM")

	broadcaster, err := f.contentSvc.CreateBroadcaster(nil, &form.BroadcasterForm{
		ChannelID: channel.ID,
		Name:      "Mona",
	}, tempFile(t, "mona.jpg", "image/jpeg", nil))
	if err != nil {
		t.Fatalf("create broadcaster: %v", err)
	}

	err = f.channelSvc.Delete(nil, channel.ID)
	assertStatus(t, err, http.StatusConflict)
	if summary, _ := errors.Summary(err); !strings.Contains(summary, "broadcasters") {
		t.Fatalf("summary = %q", summary)
	}
	if _, err := f.channelSvc.Get(nil, channel.ID); err != nil {
		t.Fatalf("channel should survive: %v", err)
	}

	if err := f.contentSvc.DeleteBroadcaster(nil, broadcaster.ID); err != nil {
		t.Fatalf("delete broadcaster: %v", err)
	}
	if err := f.channelSvc.Delete(nil, channel.ID); err != nil {
		t.Fatalf("delete channel: %v", err)
	}
	_, err = f.channelSvc.Get(nil, channel.ID)
	assertStatus(t, err, http.StatusNotFound)
	assertStatus(t, f.channelSvc.CheckExists(nil, channel.ID), http.StatusBadRequest)
}

func TestChannelDeleteWithTrack(t *testing.T) {
	f := newFixture(t)
	_, _, track := submitted(t, f)

	assertStatus(t, f.channelSvc.Delete(nil, track.ChannelID), http.StatusConflict)
}

func TestChannelRename(t *testing.T) {
	f := newFixture(t)
	channel := f.channel(t, "Seagulls FM")

	renamed, err := f.channelSvc.Rename(nil, channel.ID, "Seagulls Radio")
	if err != nil || renamed.Name != "Seagulls Radio" {
		t.Fatalf("rename: %+v, %v", renamed, err)
	}
	if ref := f.channelSvc.Ref(nil, channel.ID); ref == nil || ref.Name != "Seagulls Radio" {
		t.Fatalf("ref = %+v", ref)
	}
	_, err = f.channelSvc.Rename(nil, "missing", "x")
	assertStatus(t, err, http.StatusNotFound)
}
