package agent

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeConcatenatesChunksAroundTraces(t *testing.T) {
	stream := &sliceStream{events: []Event{
		trace("t1"),
		chunk("Hi"),
		trace("t2"),
		chunk(" there"),
		chunk(", héllo ✓"),
	}}
	sink := &recordingSink{}

	reply, err := Decode(stream, sink)

	require.NoError(t, err)
	assert.Equal(t, "Hi there, héllo ✓", reply)
	assert.Equal(t, []any{"t1", "t2"}, sink.payloads)
	assert.True(t, stream.closed)
}

func TestDecodeWithoutSinkDiscardsTraces(t *testing.T) {
	stream := &sliceStream{events: []Event{trace("t1"), chunk("ok"), trace("t2")}}

	reply, err := Decode(stream, nil)

	require.NoError(t, err)
	assert.Equal(t, "ok", reply)
}

func TestDecodeEmptyStream(t *testing.T) {
	reply, err := Decode(&sliceStream{}, nil)
	require.NoError(t, err)
	assert.Empty(t, reply)
}

func TestDecodeStreamError(t *testing.T) {
	remote := errors.New("throttled")
	stream := &sliceStream{events: []Event{chunk("partial")}, err: remote}

	reply, err := Decode(stream, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, remote)
	op, ok := OpOf(err)
	require.True(t, ok)
	assert.Equal(t, OpDecode, op)
	assert.Equal(t, "partial", reply)
	assert.True(t, stream.closed)
}

func TestDecodeSinkError(t *testing.T) {
	stream := &sliceStream{events: []Event{trace("t1"), chunk("never")}}
	sink := &recordingSink{err: errors.New("disk full")}

	_, err := Decode(stream, sink)

	op, ok := OpOf(err)
	require.True(t, ok)
	assert.Equal(t, OpDecode, op)
	assert.Contains(t, err.Error(), "disk full")
}

func TestDecodeNilStream(t *testing.T) {
	_, err := Decode(nil, nil)
	op, ok := OpOf(err)
	require.True(t, ok)
	assert.Equal(t, OpDecode, op)
}
