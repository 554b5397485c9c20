package book

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tidalchess/tidalchess/engine"
)

func TestProbeSamplesLegalMove(t *testing.T) {
	pos, err := engine.PositionFromFEN(engine.FENStartPos)
	require.NoError(t, err)

	tbl := NewTableWithSeed(map[uint64][]Candidate{
		pos.Zobrist(): {
			{UCI: "e2e4", Weight: 10},
			{UCI: "d2d4", Weight: 10},
		},
	}, 42)

	move, ok := tbl.Probe(pos)
	require.True(t, ok)
	require.True(t, pos.IsLegal(move))
}

func TestProbeMissOnUnknownPosition(t *testing.T) {
	pos, err := engine.PositionFromFEN(engine.FENStartPos)
	require.NoError(t, err)

	tbl := Empty()
	_, ok := tbl.Probe(pos)
	require.False(t, ok)
}

func TestProbeSkipsIllegalCandidate(t *testing.T) {
	pos, err := engine.PositionFromFEN(engine.FENStartPos)
	require.NoError(t, err)

	// e7e5 is not legal for White to move first.
	tbl := NewTableWithSeed(map[uint64][]Candidate{
		pos.Zobrist(): {{UCI: "e7e5", Weight: 1}},
	}, 7)

	_, ok := tbl.Probe(pos)
	require.False(t, ok)
}

// buildArchive writes a minimal gzip+tar archive containing a single
// JSON member matching LoadArchive's expected wire format, for
// round-tripping through LoadArchive.
func buildArchive(t *testing.T, path string, payload map[string][][2]any) {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	require.NoError(t, tw.WriteHeader(&tar.Header{
		Name: "book.json",
		Size: int64(len(body)),
		Mode: 0o644,
	}))
	_, err = tw.Write(body)
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())

	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestLoadArchiveRoundTrip(t *testing.T) {
	pos, err := engine.PositionFromFEN(engine.FENStartPos)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "book.tar.gz")
	key := strconv.FormatUint(pos.Zobrist(), 10)
	buildArchive(t, path, map[string][][2]any{
		key: {{"e2e4", 5}, {"d2d4", 3}},
	})

	tbl, err := LoadArchive(path)
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		move, ok := tbl.Probe(pos)
		require.True(t, ok)
		require.True(t, pos.IsLegal(move))
	}
}

func TestLoadArchiveMissingFileIsError(t *testing.T) {
	_, err := LoadArchive(filepath.Join(t.TempDir(), "does-not-exist.tar.gz"))
	require.Error(t, err)
}
