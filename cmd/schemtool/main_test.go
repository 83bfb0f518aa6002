package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cbodonnell/stoneworks/pkg/messages"
	"github.com/cbodonnell/stoneworks/pkg/network"
	"github.com/cbodonnell/stoneworks/pkg/schematic"
	"github.com/cbodonnell/stoneworks/pkg/world"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestSchematic(t *testing.T, name string) string {
	t.Helper()
	s := schematic.New([]schematic.Entry{
		{DX: 0, DY: 0, DZ: 0, Snapshot: "material=STONE|data=0"},
		{DX: 1, DY: 0, DZ: 0, Snapshot: "material=STONE|data=0"},
		{DX: 1, DY: 2, DZ: -1, Snapshot: "material=AIR|data=0"},
	}, &world.Location{World: "overworld", Vec: mgl64.Vec3{0.5, 64, 0.5}})
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, schematic.WriteFile(path, s))
	return path
}

func TestInspect(t *testing.T) {
	path := writeTestSchematic(t, "tower.schem.zst")

	var out bytes.Buffer
	require.NoError(t, inspect(&out, path))
	text := out.String()
	assert.Contains(t, text, "format version 1, zstd")
	assert.Contains(t, text, "entries 3")
	assert.Contains(t, text, "anchor overworld(0.5, 64, 0.5)")
	assert.Contains(t, text, "bounds (0, 0, -1) .. (1, 2, 0) (2x3x2)")
	assert.Less(t, strings.Index(text, "STONE"), strings.Index(text, "AIR"))

	assert.Error(t, inspect(&out, filepath.Join(t.TempDir(), "missing.schem")))
}

func TestConvert(t *testing.T) {
	in := writeTestSchematic(t, "tower.schem")
	out := filepath.Join(t.TempDir(), "tower.schem.zst")

	var buf bytes.Buffer
	require.NoError(t, convert(&buf, in, out))
	assert.Contains(t, buf.String(), "wrote 3 entries")

	original, err := schematic.ReadFile(in, anyWorld{})
	require.NoError(t, err)
	converted, err := schematic.ReadFile(out, anyWorld{})
	require.NoError(t, err)
	assert.Equal(t, original.Entries(), converted.Entries())
	anchor, ok := converted.Anchor()
	require.True(t, ok)
	assert.Equal(t, "overworld", anchor.World)
}

type syncBuffer struct {
	lock sync.Mutex
	buf  bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.buf.String()
}

func TestWatch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	networkManager := network.NewNetworkManager(network.NewNetworkManagerOptions{})
	server := httptest.NewServer(networkManager.HandleWS(ctx))
	defer server.Close()

	out := &syncBuffer{}
	done := make(chan error, 1)
	go func() {
		done <- watch(ctx, out, "ws"+strings.TrimPrefix(server.URL, "http"))
	}()
	require.Eventually(t, func() bool { return networkManager.ClientManager.Count() == 1 }, 2*time.Second, time.Millisecond)

	msg, err := messages.NewMessage(messages.MessageTypeServerPasteFinished, time.Now().UnixMilli(), &messages.ServerPasteFinished{PasteID: "abc", Placed: 7})
	require.NoError(t, err)
	require.NoError(t, networkManager.SendMessageToAll(msg))
	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), `"paste_id":"abc"`)
	}, 2*time.Second, time.Millisecond)
	assert.Contains(t, out.String(), messages.MessageTypeServerPasteFinished)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not return")
	}
}

func TestWatch_DialError(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	err := watch(ctx, &bytes.Buffer{}, "ws://127.0.0.1:1/events")
	assert.Error(t, err)
}
